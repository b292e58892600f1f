package walker

import "fmt"

// ServiceError reports a failed walker call: transport error, timeout,
// or a non-success HTTP status. The session layer maps it to a failed
// session; no automatic retry is performed.
type ServiceError struct {
	Op     string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ContractError reports a response the walker contract does not allow:
// unparseable JSON, a payload failing its schema, or a value outside the
// agreed domain. The operation fails rather than guessing.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: malformed walker response: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }
