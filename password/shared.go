package password

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/eykd/mkpasswd-go/alphabet"
	"github.com/eykd/mkpasswd-go/internal/entropy"
)

// Shared is a lazily created randomness source shared by concurrent callers.
// The source is created on first use and each Sample call holds it
// exclusively, so reads from different callers never interleave.
type Shared struct {
	newSource func() (io.Reader, error)

	once sync.Once
	err  error

	mu  sync.Mutex
	rng io.Reader
}

// NewShared returns a Shared that creates its source with newSource.
func NewShared(newSource func() (io.Reader, error)) *Shared {
	return &Shared{newSource: newSource}
}

// Sample draws a password from the shared source. If the source could not
// be created, every call returns ErrRandomness.
func (s *Shared) Sample(alphabet []byte, length int) ([]byte, error) {
	s.once.Do(func() {
		rng, err := s.newSource()
		if err != nil {
			s.err = &randomnessError{err: err}
			return
		}
		s.rng = rng
	})
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return Sample(alphabet, length, s.rng)
}

var quick = NewShared(entropy.New)

// Quick returns a DefaultLength password drawn from alphabet.Password using
// a process-wide source created on first call. It panics if the source
// cannot be created or fails, since there is no safe fallback.
func Quick() string {
	return quickFrom(quick)
}

func quickFrom(s *Shared) string {
	pw, err := s.Sample(alphabet.Password, DefaultLength)
	if err != nil {
		panic("password: " + err.Error())
	}
	if !utf8.Valid(pw) {
		panic("password: generated password is not valid UTF-8")
	}
	return string(pw)
}
