package history

import "errors"

var (
	ErrUnsupportedDriver = errors.New("unsupported history driver")
	ErrInvalidWindow     = errors.New("history window must be positive")
)
