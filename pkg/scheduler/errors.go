package scheduler

import "errors"

var (
	ErrInvalidJob     = errors.New("scheduler: job requires a name, schedule and function")
	ErrDuplicateJob   = errors.New("scheduler: job already registered")
	ErrAlreadyRunning = errors.New("scheduler: already running")
	ErrNoJobs         = errors.New("scheduler: no jobs registered")
)
