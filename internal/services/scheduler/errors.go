package scheduler

// SchedulerError is a custom error type for scheduler errors
type SchedulerError string

// Error implements the error interface
func (e SchedulerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig = SchedulerError("config cannot be nil")
	ErrNilDriver = SchedulerError("driver cannot be nil")
)
