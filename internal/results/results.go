package results

// OperationResult carries the outcome of a service operation. Exactly one of
// Success or Failure is set for a handled operation; a nil/nil result paired
// with a non-nil error means the operation failed for infrastructure reasons
// and the message should be retried.
//
// Business failures (ineligibility, cooldowns, terminal-state rejections)
// travel as Failure payloads so handlers can publish them as events instead
// of nacking the message.
type OperationResult struct {
	Success any
	Failure any
}

// IsSuccess reports whether the operation produced a success payload.
func (r OperationResult) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether the operation produced a business failure payload.
func (r OperationResult) IsFailure() bool { return r.Failure != nil }
