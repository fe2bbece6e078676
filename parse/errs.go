package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse           = errors.New("parse error")
	ErrEmpty           = fmt.Errorf("%w: unexpected end of input", ErrParse)
	ErrUnexpectedToken = fmt.Errorf("%w: unexpected token", ErrParse)
	ErrRefExists       = fmt.Errorf("%w: reference already exists", ErrParse)
	ErrRefNotFound     = fmt.Errorf("%w: reference not found", ErrParse)
	ErrYAML            = fmt.Errorf("%w: yaml", ErrParse)
)
