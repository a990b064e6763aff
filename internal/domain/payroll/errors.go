package payroll

import "errors"

var (
	ErrUnknownStatuteYear = errors.New("no statute registered for year")
	ErrInvalidStatute     = errors.New("invalid statute")
)
