package timesheet

import "errors"

var (
	// ErrFutureMonth rejects any write aimed strictly after the real
	// current month. No backend call is made.
	ErrFutureMonth = errors.New("month is in the future")
	// ErrMonthLocked rejects record writes against a month that already
	// has a submission.
	ErrMonthLocked = errors.New("month is locked by a payroll submission")
	// ErrAlreadySubmitted rejects a second submission for the same month.
	ErrAlreadySubmitted = errors.New("month already submitted")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidRecord    = errors.New("invalid record")
)
