package component

// Animator receives named parameters from gameplay code and resolves them to
// a display state each frame.
type Animator struct {
	Floats map[string]float64
	Bools  map[string]bool

	State     string
	StateTime float64
}

var AnimatorComponent = NewComponent[Animator]()

func NewAnimator() *Animator {
	return &Animator{Floats: map[string]float64{}, Bools: map[string]bool{}, State: "idle"}
}

func (a *Animator) SetFloat(name string, v float64) {
	if a.Floats == nil {
		a.Floats = map[string]float64{}
	}
	a.Floats[name] = v
}

func (a *Animator) SetBool(name string, v bool) {
	if a.Bools == nil {
		a.Bools = map[string]bool{}
	}
	a.Bools[name] = v
}
