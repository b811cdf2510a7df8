// Package entropy provides the cryptographically secure randomness source
// passwords are sampled from.
package entropy

import (
	"crypto/rand"
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Source reads random bytes from an underlying reader and counts them.
type Source struct {
	r    io.Reader
	read atomic.Uint64
}

// New returns a Source backed by the operating system CSPRNG. It performs a
// probe read so that an unusable source fails here rather than mid-batch.
func New() (io.Reader, error) {
	return NewFrom(rand.Reader)
}

// NewFrom returns a Source backed by r after a one-byte probe read.
func NewFrom(r io.Reader) (*Source, error) {
	s := &Source{r: r}
	var probe [1]byte
	if _, err := io.ReadFull(s, probe[:]); err != nil {
		return nil, errors.Wrap(err, "creating random number generator")
	}
	return s, nil
}

// Read fills p with random bytes. A short read is reported as an error.
func (s *Source) Read(p []byte) (int, error) {
	n, err := io.ReadFull(s.r, p)
	s.read.Add(uint64(n))
	if err != nil {
		return n, errors.Wrap(err, "reading random data")
	}
	return n, nil
}

// BytesRead returns the number of random bytes consumed so far, including
// the probe byte.
func (s *Source) BytesRead() uint64 {
	return s.read.Load()
}
