package store

import "errors"

var (
	ErrInvalidRecord = errors.New("store: record requires a member id")
	ErrCorruptTable  = errors.New("store: member table is not valid JSON")
	ErrQuery         = errors.New("store: query failed")
)
