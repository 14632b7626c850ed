package workout

// Error is a domain error. Callers match with errors.Is against the values below;
// operations wrap them with context.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNotFound        = Error("not found")
	ErrEmptyDay        = Error("day has no exercises")
	ErrInvalidInput    = Error("invalid input")
	ErrNothingToUndo   = Error("no sets to undo")
	ErrCapacity        = Error("best lift capacity reached")
	ErrDuplicate       = Error("exercise already tracked")
	ErrUnknownExercise = Error("exercise not found in any day")
)
