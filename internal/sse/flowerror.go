package sse

// FlowError carries a send failure and whether the stream may continue.
type FlowError struct {
	Err  error
	Next bool
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func NewFlowError(err error, next bool) *FlowError {
	return &FlowError{
		Err:  err,
		Next: next,
	}
}
