// Package password generates passwords drawn uniformly from an alphabet.
//
// Sampling is rejection sampling over raw bytes: words of random data are
// split into bytes and every byte that is a member of the alphabet is kept.
// Each alphabet byte is therefore equally likely regardless of the alphabet
// size, at the cost of reading 256/len(alphabet) random bytes per output
// byte on average.
//
// Alphabets are expected to be sorted and de-duplicated; Sample does not
// check. Use alphabet.Parse to sanitize caller-supplied alphabets.
package password

import (
	"errors"
	"fmt"
	"io"

	"github.com/eykd/mkpasswd-go/internal/entropy"
)

// DefaultLength is the length of passwords produced by Quick.
const DefaultLength = 32

// wordSize is the number of random bytes drawn per read.
const wordSize = 8

// ErrRandomness is returned when the randomness source fails.
var ErrRandomness = errors.New("failed to get random data")

// randomnessError ties a source failure to ErrRandomness while keeping the
// underlying cause reachable with errors.Is and errors.As.
type randomnessError struct {
	err error
}

func (e *randomnessError) Error() string {
	return ErrRandomness.Error() + ": " + e.err.Error()
}

func (e *randomnessError) Unwrap() []error {
	return []error{ErrRandomness, e.err}
}

// Sample returns length bytes, each drawn uniformly from alphabet, using
// random data read from rng. If alphabet contains only ASCII bytes the
// result is valid UTF-8.
//
// Sample panics if alphabet is empty or length is negative. A zero length
// returns an empty slice without reading from rng. Read failures are
// returned as ErrRandomness and are not retried.
func Sample(alphabet []byte, length int, rng io.Reader) ([]byte, error) {
	if len(alphabet) == 0 {
		panic("password: the alphabet may not be empty")
	}
	if length < 0 {
		panic(fmt.Sprintf("password: negative length %d", length))
	}
	if length == 0 {
		return []byte{}, nil
	}

	var member [256]bool
	for _, b := range alphabet {
		member[b] = true
	}

	buf := make([]byte, 0, length)
	var word [wordSize]byte
	for len(buf) < length {
		if _, err := io.ReadFull(rng, word[:]); err != nil {
			return nil, &randomnessError{err: err}
		}
		// Accepted bytes past length in the final word are dropped.
		for _, b := range word {
			if member[b] && len(buf) < length {
				buf = append(buf, b)
			}
		}
	}
	return buf, nil
}

// SampleDefault is like Sample but reads from a newly created operating
// system randomness source. Prefer Sample with a reused source, or Shared,
// when generating many passwords.
func SampleDefault(alphabet []byte, length int) ([]byte, error) {
	if len(alphabet) == 0 {
		panic("password: the alphabet may not be empty")
	}
	if length == 0 {
		return []byte{}, nil
	}
	rng, err := entropy.New()
	if err != nil {
		return nil, &randomnessError{err: err}
	}
	return Sample(alphabet, length, rng)
}
