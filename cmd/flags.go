package cmd

import (
	"strconv"

	"github.com/spf13/pflag"
)

// positiveInt is a pflag.Value accepting integers greater than zero and,
// when limit is set, no greater than limit.
type positiveInt struct {
	value   int
	limit   int
	invalid error
}

var _ pflag.Value = (*positiveInt)(nil)

func newPositiveInt(def, limit int, invalid error) *positiveInt {
	return &positiveInt{value: def, limit: limit, invalid: invalid}
}

// Set parses s, rejecting zero, negative, non-numeric and out of range input.
func (p *positiveInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return p.invalid
	}
	if n <= 0 || (p.limit > 0 && n > p.limit) {
		return p.invalid
	}
	p.value = n
	return nil
}

func (p *positiveInt) String() string {
	return strconv.Itoa(p.value)
}

func (p *positiveInt) Type() string {
	return "int"
}
