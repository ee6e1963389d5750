package membership

import "errors"

var (
	ErrMissingMemberID = errors.New("membership: payment event has no member id")
	ErrDuplicateEvent  = errors.New("membership: payment event already applied")
	ErrRecordNotFound  = errors.New("membership: record not found")
	ErrInvalidDate     = errors.New("membership: invalid date")
	ErrPersistFailed   = errors.New("membership: failed to persist record")
	ErrStoreRead       = errors.New("membership: failed to read record")
	ErrLedger          = errors.New("membership: idempotency ledger unavailable")
	ErrGateway         = errors.New("membership: payment gateway failed")
	ErrScanAborted     = errors.New("membership: reminder scan aborted")
)
