package math

import "errors"

var (
	// ErrParse is returned when a numeric or hexadecimal input string is malformed.
	ErrParse = errors.New("malformed numeric input")

	// ErrArithmeticRange is returned when a value does not lie in the range of its modulus.
	ErrArithmeticRange = errors.New("value out of range")

	// ErrDivisionByZero is returned when inverting the zero element.
	ErrDivisionByZero = errors.New("division by zero")
)
