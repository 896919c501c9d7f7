package component

// TargetDummy is a stompable dummy driven by a tengo script. Destroy is set
// by the script (or the kill plane) and acted on by the dummy system.
type TargetDummy struct {
	Script  string
	Age     float64
	Stomped bool
	Destroy bool
}

var TargetDummyComponent = NewComponent[TargetDummy]()
