package behavior

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Animator parameter names written by Locomotion.
const (
	AnimYVelocity = "yVelocity"
	AnimXVelocity = "xVelocity"
	AnimJump      = "Jump"
	AnimCrouch    = "Crouch"
)

var (
	down = cp.Vector{X: 0, Y: -1}
	up   = cp.Vector{X: 0, Y: 1}
)

// LocomotionConfig is the per-player tuning. Times are in seconds, speeds in
// world units per second.
type LocomotionConfig struct {
	MoveSpeed      float64
	JumpSpeed      float64
	CoyoteTime     float64
	JumpBufferTime float64

	Cast          CastShape
	ProbeDistance float64
	ProbeSize     cp.Vector
	FootOffset    cp.Vector
	HeadOffset    cp.Vector
	Mask          uint

	PlatformTag    string
	EdgeSlipOffset float64
	JumpCue        string
}

func DefaultLocomotionConfig() LocomotionConfig {
	return LocomotionConfig{
		MoveSpeed:      5,
		JumpSpeed:      8,
		CoyoteTime:     0.2,
		JumpBufferTime: 0.2,
		Cast:           CastCircle,
		ProbeDistance:  0.1,
		ProbeSize:      cp.Vector{X: 0.5, Y: 0.5},
		FootOffset:     cp.Vector{X: 0, Y: -0.5},
		HeadOffset:     cp.Vector{X: 0, Y: 0.5},
		Mask:           ^uint(0),
		PlatformTag:    "PlatformEffector",
		EdgeSlipOffset: 0.5,
		JumpCue:        "Jump",
	}
}

func (c LocomotionConfig) Validate() error {
	switch {
	case c.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed %v < 0", ErrInvalidConfig, c.MoveSpeed)
	case c.JumpSpeed < 0:
		return fmt.Errorf("%w: jump speed %v < 0", ErrInvalidConfig, c.JumpSpeed)
	case c.CoyoteTime < 0:
		return fmt.Errorf("%w: coyote time %v < 0", ErrInvalidConfig, c.CoyoteTime)
	case c.JumpBufferTime < 0:
		return fmt.Errorf("%w: jump buffer time %v < 0", ErrInvalidConfig, c.JumpBufferTime)
	case !c.Cast.Valid():
		return fmt.Errorf("%w: cast shape %v", ErrInvalidConfig, c.Cast)
	case c.ProbeDistance <= 0:
		return fmt.Errorf("%w: probe distance %v must be positive", ErrInvalidConfig, c.ProbeDistance)
	case c.Cast == CastBox && (c.ProbeSize.X <= 0 || c.ProbeSize.Y <= 0):
		return fmt.Errorf("%w: box probe size %v must be positive", ErrInvalidConfig, c.ProbeSize)
	}
	return nil
}

// Input is one frame of player input. JumpPressed and JumpReleased are edges.
type Input struct {
	Horizontal   float64
	JumpPressed  bool
	JumpReleased bool
	DropHeld     bool
}

// LocomotionState is everything Locomotion carries between frames.
type LocomotionState struct {
	Horizontal   float64
	Grounded     bool
	Coyote       float64
	JumpBuffer   float64
	LastGrounded cp.Vector
	FacingLeft   bool
	DropHeld     bool
}

// ProbeHits is the result of the last ground/head check.
type ProbeHits struct {
	Down Collider
	Up   Collider
}

// Locomotion owns grounded detection, coyote time, jump buffering and
// one-way platform traversal for a single player.
//
// Update runs once per rendered frame; FixedUpdate once per physics step.
type Locomotion struct {
	cfg   LocomotionConfig
	state LocomotionState
	hits  ProbeHits

	query PhysicsQuery
	anim  AnimationSink
	audio AudioRouter
}

func NewLocomotion(cfg LocomotionConfig, query PhysicsQuery, anim AnimationSink, audio AudioRouter) (*Locomotion, error) {
	if query == nil || anim == nil || audio == nil {
		return nil, fmt.Errorf("locomotion: %w", ErrNilCollaborator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("locomotion: %w", err)
	}
	return &Locomotion{cfg: cfg, query: query, anim: anim, audio: audio}, nil
}

func (l *Locomotion) Config() LocomotionConfig { return l.cfg }

// SetConfig swaps the tuning, keeping the running state.
func (l *Locomotion) SetConfig(cfg LocomotionConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("locomotion: %w", err)
	}
	l.cfg = cfg
	return nil
}

func (l *Locomotion) SetCastShape(shape CastShape) error {
	cfg := l.cfg
	cfg.Cast = shape
	return l.SetConfig(cfg)
}

func (l *Locomotion) State() LocomotionState { return l.state }

func (l *Locomotion) LastHits() ProbeHits { return l.hits }

// Update runs the per-frame part: ground check, input sampling and
// drop-through.
func (l *Locomotion) Update(dt float64, position cp.Vector, in Input) {
	l.groundCheck(position)
	l.checkInputs(dt, in)
	l.dropThrough(in)
}

// FixedUpdate applies movement and jumping to body. It reports whether a jump
// was triggered on this step.
func (l *Locomotion) FixedUpdate(body Body) bool {
	if body == nil {
		return false
	}

	vel := body.Velocity()
	horizontal := l.state.Horizontal * l.cfg.MoveSpeed
	vertical := vel.Y

	jumped := false
	if l.state.Coyote > 0 && l.state.JumpBuffer > 0 {
		vertical = l.cfg.JumpSpeed
		l.state.JumpBuffer = 0
		jumped = true
		l.audio.PlaySound(l.cfg.JumpCue, body.Position())
	}

	body.SetVelocity(cp.Vector{X: horizontal, Y: vertical})

	moving := 0.0
	if horizontal != 0 && l.state.Grounded {
		moving = 1
	}
	l.anim.SetFloat(AnimYVelocity, vertical)
	l.anim.SetFloat(AnimXVelocity, moving)
	l.anim.SetBool(AnimCrouch, l.state.DropHeld && horizontal == 0)

	return jumped
}

func (l *Locomotion) groundCheck(position cp.Vector) {
	l.hits.Down = l.cast(position.Add(l.cfg.FootOffset), down)
	l.hits.Up = l.cast(position.Add(l.cfg.HeadOffset), up)

	// Jumping up through a one-way platform: switch its collider off so the
	// down probe cannot ground the player mid-pass. PlatformReset turns it
	// back on.
	if l.hits.Up != nil && l.hits.Up.Tag() == l.cfg.PlatformTag {
		l.hits.Up.SetEnabled(false)
	}

	l.state.Grounded = l.hits.Down != nil
	if l.state.Grounded {
		last := position
		if l.state.Horizontal < 0 {
			last.X += l.cfg.EdgeSlipOffset
		} else {
			last.X -= l.cfg.EdgeSlipOffset
		}
		l.state.LastGrounded = last
	}

	l.anim.SetBool(AnimJump, !l.state.Grounded)
}

func (l *Locomotion) cast(origin, dir cp.Vector) Collider {
	return l.query.Cast(CastRequest{
		Shape:     l.cfg.Cast,
		Origin:    origin,
		Direction: dir,
		Distance:  l.cfg.ProbeDistance,
		Size:      l.cfg.ProbeSize,
		Mask:      l.cfg.Mask,
	})
}

func (l *Locomotion) checkInputs(dt float64, in Input) {
	l.state.Horizontal = in.Horizontal
	l.state.DropHeld = in.DropHeld

	if in.JumpPressed {
		l.state.JumpBuffer = l.cfg.JumpBufferTime
	} else {
		l.state.JumpBuffer -= dt
	}

	if l.state.Grounded {
		l.state.Coyote = l.cfg.CoyoteTime
	} else {
		l.state.Coyote -= dt
	}

	if in.JumpReleased {
		l.state.Coyote = 0
	}

	if in.Horizontal > 0 {
		l.state.FacingLeft = false
	} else if in.Horizontal < 0 {
		l.state.FacingLeft = true
	}
}

func (l *Locomotion) dropThrough(in Input) {
	if !in.DropHeld || l.hits.Down == nil {
		return
	}
	if l.hits.Down.Tag() == l.cfg.PlatformTag {
		l.hits.Down.SetTrigger(true)
	}
}
