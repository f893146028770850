package kernel

// Error describes a kernel error. All kernel errors must be defined as global
// variables that are pointers to the Error structure. This requirement stems
// from the fact that the Go allocator is not available to us so we cannot use
// errors.New.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Report captures an unrecoverable failure. A report is built once, either
// statically or by the panic redirect target, and handed to the fatal-failure
// path which consumes it before halting the CPU.
//
// The source location is considered absent when File is empty and the
// message is considered absent when Message is empty.
type Report struct {
	File   string
	Line   uint32
	Column uint32

	// The module that reported the failure; may be empty.
	Module string

	Message string
}

// HasLocation returns true if the report carries a source location.
func (r *Report) HasLocation() bool {
	return r != nil && r.File != ""
}

// HasMessage returns true if the report carries a message.
func (r *Report) HasMessage() bool {
	return r != nil && r.Message != ""
}

// Error implements the error interface.
func (r *Report) Error() string {
	if r == nil {
		return ""
	}
	return r.Message
}
