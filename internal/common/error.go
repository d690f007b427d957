package common

import "fmt"

var (
	ErrNotFound      = fmt.Errorf("file not found")
	ErrParse         = fmt.Errorf("cannot parse file")
	ErrMissingField  = fmt.Errorf("required field is missing")
	ErrIO            = fmt.Errorf("io error")
	ErrInvalidConfig = fmt.Errorf("invalid config")
)
