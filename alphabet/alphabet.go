// Package alphabet provides the byte sets passwords are drawn from.
package alphabet

import (
	"errors"
	"math"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmpty is returned when a custom alphabet has no characters.
	ErrEmpty = errors.New("a custom alphabet may not be empty")
	// ErrNotUTF8 is returned when a custom alphabet is not valid UTF-8.
	ErrNotUTF8 = errors.New("a custom alphabet must be valid UTF-8")
)

// Set is a sorted, de-duplicated, non-empty set of bytes.
type Set []byte

// Len returns the number of distinct bytes in the set.
func (s Set) Len() int {
	return len(s)
}

// String returns the set as text.
func (s Set) String() string {
	return string(s)
}

// ASCII reports whether every byte is a single-byte UTF-8 character.
// Passwords sampled from an ASCII set are always valid UTF-8.
func (s Set) ASCII() bool {
	for _, b := range s {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// EntropyBits returns the entropy of a password of the given length
// sampled uniformly from s.
func (s Set) EntropyBits(length int) float64 {
	if len(s) == 0 || length <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(len(s)))
}

// Parse builds a Set from caller-supplied text. Its bytes are sorted and
// de-duplicated as given; the text is never rewritten, so every byte of the
// Set occurs in custom.
func Parse(custom string) (Set, error) {
	if custom == "" {
		return nil, ErrEmpty
	}
	if !utf8.ValidString(custom) {
		return nil, ErrNotUTF8
	}
	return normalize([]byte(custom)), nil
}

// IsNFC reports whether custom is in Unicode normalization form C. Text that
// is not may look identical to a composed alphabet while holding other bytes.
func IsNFC(custom string) bool {
	return norm.NFC.IsNormalString(custom)
}

// normalize sorts and de-duplicates b in place.
func normalize(b []byte) Set {
	slices.Sort(b)
	return Set(slices.Compact(b))
}
