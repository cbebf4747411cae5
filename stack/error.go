package stack

type StackError struct {
	message string
}

func newStackError(message string) *StackError {
	return &StackError{
		message: message,
	}
}

func (e *StackError) Error() string {
	return e.message
}

var (
	ErrAllocationFailure = newStackError("stack storage cannot be allocated")
	ErrUnderflow         = newStackError("stack is empty")
	ErrOutOfRange        = newStackError("index out of range")
	ErrCopyFailure       = newStackError("element cannot be copied")
	ErrDeleted           = newStackError("stack has been deleted")
)
