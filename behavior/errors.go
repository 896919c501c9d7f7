package behavior

import "errors"

var (
	ErrNilCollaborator = errors.New("behavior: nil collaborator")
	ErrInvalidConfig   = errors.New("behavior: invalid config")
	ErrJointKind       = errors.New("behavior: joint kind mismatch")
)
