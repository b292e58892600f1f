package quiz

import "fmt"

// PreconditionError reports an operation attempted in a session state
// that forbids it. The session state is left unchanged.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ContractError reports a malformed payload from a remote walker, e.g.
// feedback referencing a question id the quiz does not contain. The
// operation fails rather than guessing a reasonable value.
type ContractError struct {
	Detail string
	Err    error
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contract violation: %s: %v", e.Detail, e.Err)
	}
	return "contract violation: " + e.Detail
}

func (e *ContractError) Unwrap() error { return e.Err }
