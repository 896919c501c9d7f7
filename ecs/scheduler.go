package ecs

type System interface {
	Update(w *World)
}

const defaultMaxFixedSteps = 5

// Scheduler runs fixed-step systems zero or more times per frame from an
// accumulator, then every frame system once.
type Scheduler struct {
	fixed []System
	frame []System

	fixedStep float64
	maxSteps  int
	acc       float64
}

func NewScheduler(fixedStep float64) *Scheduler {
	return &Scheduler{fixedStep: fixedStep, maxSteps: defaultMaxFixedSteps}
}

func (s *Scheduler) FixedStep() float64 { return s.fixedStep }

// SetMaxFixedSteps caps catch-up steps per frame. Leftover time is dropped.
func (s *Scheduler) SetMaxFixedSteps(n int) {
	if n > 0 {
		s.maxSteps = n
	}
}

func (s *Scheduler) AddFixed(system System) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

// Update advances the world by one frame of dt seconds. It returns the number
// of fixed steps run.
func (s *Scheduler) Update(w *World, dt float64) int {
	if w == nil {
		return 0
	}

	steps := 0
	if s.fixedStep > 0 {
		s.acc += dt
		for s.acc+1e-9 >= s.fixedStep && steps < s.maxSteps {
			w.SetDeltaTime(s.fixedStep)
			for _, system := range s.fixed {
				system.Update(w)
			}
			s.acc -= s.fixedStep
			steps++
		}
		if steps == s.maxSteps && s.acc >= s.fixedStep {
			s.acc = 0
		}
	}

	w.SetDeltaTime(dt)
	for _, system := range s.frame {
		system.Update(w)
	}
	w.advance(dt)
	w.events.flush()
	return steps
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.fixed)+len(s.frame))
	systems = append(systems, s.fixed...)
	return append(systems, s.frame...)
}
