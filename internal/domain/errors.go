package domain

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTarget      = errors.New("payment must reference exactly one of course or lesson")
	ErrPaymentGateway     = errors.New("payment gateway error")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidVideoLink   = errors.New("video link must point to an approved host")
)
