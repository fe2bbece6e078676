package encode

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding    = errors.New("encoding error")
	ErrCycle       = fmt.Errorf("%w: cycle", ErrEncoding)
	ErrOmittedRoot = fmt.Errorf("%w: root omitted", ErrEncoding)
)
