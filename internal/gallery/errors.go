package gallery

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is an expected failure whose Message is safe to show to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf reports the kind of err, KindInternal for anything unexpected.
func KindOf(err error) Kind {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Kind
	}
	return KindInternal
}

var (
	ErrMissingFields      = newError(KindValidation, "Missing required fields")
	ErrUsernameExists     = newError(KindConflict, "Username already exists")
	ErrEmailExists        = newError(KindConflict, "Email already exists")
	ErrInvalidCredentials = newError(KindUnauthenticated, "Invalid credentials")
	ErrUnauthenticated    = newError(KindUnauthenticated, "Unauthorized")

	ErrNoPhoto            = newError(KindValidation, "No photo provided")
	ErrNoSelectedFile     = newError(KindValidation, "No selected file")
	ErrFileTypeNotAllowed = newError(KindValidation, "File type not allowed")
	ErrInvalidFileType    = newError(KindValidation, "Invalid file type")
	ErrFileTooLarge       = newError(KindValidation, "File too large")

	ErrPhotoNotFound     = newError(KindNotFound, "Photo not found")
	ErrPhotoFileNotFound = newError(KindNotFound, "Photo file not found")
	ErrForbidden         = newError(KindForbidden, "Unauthorized")
)
