package alphabet

import (
	"slices"
	"strings"
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	hexLow  = "abcdef"
	unclear = "0O1lI|'\"`"
)

// Entry is a named alphabet in the catalog.
type Entry struct {
	Name        string
	Description string
	set         Set
}

// Set returns a copy of the entry's byte set.
func (e Entry) Set() Set {
	return Set(append([]byte(nil), e.set...))
}

// The exported sets are conveniences for callers of password.Sample. The
// catalog keeps its own copies.
var (
	// Password is visible ASCII without characters that are easily confused.
	Password = build(strings.Map(func(r rune) rune {
		if strings.ContainsRune(unclear, r) {
			return -1
		}
		return r
	}, visibleASCII()))
	// LatinNumbers is upper and lower case latin letters and digits.
	LatinNumbers = build(upper + lower + digits)
	// Base64 is the standard base64 alphabet.
	Base64 = build(upper + lower + digits + "+/")
	// Base64URL is the URL-safe base64 alphabet.
	Base64URL = build(upper + lower + digits + "-_")
	// Numbers is the decimal digits.
	Numbers = build(digits)
	// Hex is lower case hexadecimal digits.
	Hex = build(digits + hexLow)
	// Latin is upper and lower case latin letters.
	Latin = build(upper + lower)
	// LatinLower is lower case latin letters.
	LatinLower = build(lower)
	// LatinLowerNumbers is lower case latin letters and digits.
	LatinLowerNumbers = build(lower + digits)
	// LatinUpper is upper case latin letters.
	LatinUpper = build(upper)
	// LatinUpperNumbers is upper case latin letters and digits.
	LatinUpperNumbers = build(upper + digits)
)

// DefaultName is the catalog name of the default alphabet.
const DefaultName = "password"

// catalog holds private copies, so writes to the exported sets do not reach
// Catalog or Lookup.
var catalog = []Entry{
	{Name: DefaultName, Description: "visible ASCII without ambiguous characters", set: slices.Clone(Password)},
	{Name: "latin-numbers", Description: "latin letters and digits", set: slices.Clone(LatinNumbers)},
	{Name: "base64", Description: "base64 characters", set: slices.Clone(Base64)},
	{Name: "base64-url", Description: "URL-safe base64 characters", set: slices.Clone(Base64URL)},
	{Name: "numbers", Description: "digits", set: slices.Clone(Numbers)},
	{Name: "hex", Description: "lower case hexadecimal digits", set: slices.Clone(Hex)},
	{Name: "latin", Description: "latin letters", set: slices.Clone(Latin)},
	{Name: "latin-lower", Description: "lower case latin letters", set: slices.Clone(LatinLower)},
	{Name: "latin-lower-numbers", Description: "lower case latin letters and digits", set: slices.Clone(LatinLowerNumbers)},
	{Name: "latin-upper", Description: "upper case latin letters", set: slices.Clone(LatinUpper)},
	{Name: "latin-upper-numbers", Description: "upper case latin letters and digits", set: slices.Clone(LatinUpperNumbers)},
}

// Catalog returns the named alphabets in display order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

// Lookup returns a copy of the alphabet registered under name.
func Lookup(name string) (Set, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e.Set(), true
		}
	}
	return nil, false
}

// visibleASCII returns every printable ASCII character except space.
func visibleASCII() string {
	var b strings.Builder
	for c := byte('!'); c <= '~'; c++ {
		b.WriteByte(c)
	}
	return b.String()
}

func build(s string) Set {
	return normalize([]byte(s))
}
