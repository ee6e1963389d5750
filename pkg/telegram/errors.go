package telegram

import "errors"

var (
	ErrMissingToken = errors.New("telegram: bot token is required")
	ErrInvalidChat  = errors.New("telegram: chat id is required")
	ErrSendFailed   = errors.New("telegram: send message failed")
)
