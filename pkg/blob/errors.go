package blob

import "errors"

var (
	ErrNotFound      = errors.New("blob: object not found")
	ErrInvalidKey    = errors.New("blob: invalid key")
	ErrInvalidConfig = errors.New("blob: invalid configuration")
	ErrReadFailed    = errors.New("blob: read failed")
	ErrWriteFailed   = errors.New("blob: write failed")
	ErrAccessDenied  = errors.New("blob: access denied")
	ErrLoadAWSConfig = errors.New("blob: failed to load AWS config")
)
