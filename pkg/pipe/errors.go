package pipe

import "errors"

// Sentinel errors returned by pipe operations. Callers match them with
// errors.Is; the wrapped messages carry the operation context.
var (
	// ErrBusy means the pipe is streaming and its active state is locked.
	ErrBusy = errors.New("pipe: busy")

	// ErrInvalidArgument means the request names a pad, target or value
	// the pipe cannot serve.
	ErrInvalidArgument = errors.New("pipe: invalid argument")

	// ErrUnsupported means an entity name resolves to no known pipe.
	ErrUnsupported = errors.New("pipe: unsupported")
)
