package common

const (
	AppName      = "platformer"
	TPS          = 60
	DefaultLevel = "playground"
)
