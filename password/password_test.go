package password_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/eykd/mkpasswd-go/alphabet"
	"github.com/eykd/mkpasswd-go/password"
)

func seeded(seed byte) io.Reader {
	var s [32]byte
	s[0] = seed
	return rand.NewChaCha8(s)
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

type countingReader struct {
	r     io.Reader
	calls int
	bytes int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	n, err := c.r.Read(p)
	c.bytes += n
	return n, err
}

func TestSample_LengthAndMembership(t *testing.T) {
	tests := []struct {
		name     string
		alphabet []byte
		length   int
	}{
		{name: "two symbols", alphabet: []byte("ab"), length: 1000},
		{name: "digits", alphabet: alphabet.Numbers, length: 8},
		{name: "password", alphabet: alphabet.Password, length: 32},
		{name: "base64", alphabet: alphabet.Base64, length: 1},
		{name: "length not a multiple of the word size", alphabet: alphabet.Hex, length: 13},
		{name: "high bytes", alphabet: []byte{0x80, 0xfe, 0xff}, length: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := password.Sample(tt.alphabet, tt.length, seeded(1))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.length {
				t.Fatalf("len(Sample()) = %d, want %d", len(got), tt.length)
			}
			for i, b := range got {
				if bytes.IndexByte(tt.alphabet, b) < 0 {
					t.Errorf("byte at index %d: %#x not in alphabet", i, b)
				}
			}
		})
	}
}

func TestSample_ZeroLengthReadsNothing(t *testing.T) {
	r := &countingReader{r: seeded(1)}
	got, err := password.Sample([]byte("abc"), 0, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Sample() = %#v, want empty slice", got)
	}
	if r.calls != 0 {
		t.Errorf("rng was read %d times, want 0", r.calls)
	}
}

func TestSample_SingleByteAlphabet(t *testing.T) {
	got, err := password.Sample([]byte("x"), 5, seeded(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "xxxxx" {
		t.Errorf("Sample() = %q, want %q", got, "xxxxx")
	}
}

func TestSample_RejectsBytesOutsideAlphabet(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		length int
		want   string
	}{
		{
			name:   "keeps members in order",
			input:  []byte("xaybzcqq"),
			length: 3,
			want:   "abc",
		},
		{
			name:   "skips a word without members",
			input:  []byte("xyzxyzxyabxxxxxx"),
			length: 2,
			want:   "ab",
		},
		{
			name:   "truncates excess from the final word",
			input:  []byte("aaaabbbb"),
			length: 5,
			want:   "aaaab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := password.Sample([]byte("abc"), tt.length, bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Sample() = %q, want %q", got, tt.want)
			}
			if cap(got) != tt.length {
				t.Errorf("cap = %d, want %d", cap(got), tt.length)
			}
		})
	}
}

func TestSample_ReadsWholeWords(t *testing.T) {
	r := &countingReader{r: bytes.NewReader(bytes.Repeat([]byte("a"), 64))}
	if _, err := password.Sample([]byte("a"), 10, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.bytes != 16 {
		t.Errorf("consumed %d random bytes, want 16", r.bytes)
	}
}

func TestSample_Deterministic(t *testing.T) {
	a, err := password.Sample(alphabet.Password, 64, seeded(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := password.Sample(alphabet.Password, 64, seeded(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("same seed produced %q and %q", a, b)
	}
	c, err := password.Sample(alphabet.Password, 64, seeded(43))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Errorf("different seeds produced the same password %q", a)
	}
}

func TestSample_ASCIIAlphabetYieldsUTF8(t *testing.T) {
	for _, e := range alphabet.Catalog() {
		got, err := password.Sample(e.Set(), 256, seeded(3))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", e.Name, err)
		}
		if !utf8.Valid(got) {
			t.Errorf("%s: output is not valid UTF-8: %q", e.Name, got)
		}
	}
}

func TestSample_Unbiased(t *testing.T) {
	tests := []struct {
		name     string
		alphabet []byte
		n        int
	}{
		{name: "two symbols", alphabet: []byte("ab"), n: 1000},
		{name: "two symbols large", alphabet: []byte("ab"), n: 200000},
		{name: "three symbols", alphabet: []byte("abc"), n: 300000},
		{name: "digits", alphabet: alphabet.Numbers, n: 200000},
		{name: "password", alphabet: alphabet.Password, n: 425000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := password.Sample(tt.alphabet, tt.n, seeded(9))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			counts := make(map[byte]int)
			for _, b := range got {
				counts[b]++
			}

			p := 1 / float64(len(tt.alphabet))
			mean := float64(tt.n) * p
			sigma := math.Sqrt(float64(tt.n) * p * (1 - p))
			for _, b := range tt.alphabet {
				if dev := math.Abs(float64(counts[b]) - mean); dev > 5*sigma {
					t.Errorf("byte %q: count %d deviates from %.0f by %.1f sigma",
						b, counts[b], mean, dev/sigma)
				}
			}
		})
	}
}

func TestSample_EmptyAlphabetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Sample() with empty alphabet did not panic")
		}
	}()
	_, _ = password.Sample(nil, 8, seeded(1))
}

func TestSample_NegativeLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Sample() with negative length did not panic")
		}
	}()
	_, _ = password.Sample([]byte("ab"), -1, seeded(1))
}

func TestSample_ReaderError(t *testing.T) {
	errRead := errors.New("read failed")
	got, err := password.Sample([]byte("ab"), 8, &failingReader{err: errRead})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != nil {
		t.Errorf("Sample() = %q, want nil on error", got)
	}
	if !errors.Is(err, password.ErrRandomness) {
		t.Errorf("error = %v, want %v", err, password.ErrRandomness)
	}
	if !errors.Is(err, errRead) {
		t.Errorf("error = %v, want wrapping %v", err, errRead)
	}
}

func TestSample_ReaderExhausted(t *testing.T) {
	// Two full words hold only four members, not enough for six bytes.
	r := bytes.NewReader([]byte("aaxxxxxxaaxxxxxx"))
	_, err := password.Sample([]byte("a"), 6, r)
	if !errors.Is(err, password.ErrRandomness) {
		t.Fatalf("error = %v, want %v", err, password.ErrRandomness)
	}
	if !errors.Is(err, io.EOF) {
		t.Errorf("error = %v, want wrapping %v", err, io.EOF)
	}
}

func TestSample_DuplicatesMatchDedupedAlphabet(t *testing.T) {
	got, err := password.Sample([]byte("aabcc"), 500, seeded(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := password.Sample([]byte("abc"), 500, seeded(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("duplicated alphabet produced %q, want %q", got, want)
	}
}

func TestSampleDefault(t *testing.T) {
	got, err := password.SampleDefault(alphabet.LatinNumbers, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 24 {
		t.Errorf("len(SampleDefault()) = %d, want 24", len(got))
	}
	for i, b := range got {
		if bytes.IndexByte(alphabet.LatinNumbers, b) < 0 {
			t.Errorf("byte at index %d: %q not in alphabet", i, b)
		}
	}
}

func TestSampleDefault_ZeroLength(t *testing.T) {
	got, err := password.SampleDefault([]byte("ab"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("SampleDefault() = %q, want empty", got)
	}
}

func TestSampleDefault_EmptyAlphabetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SampleDefault() with empty alphabet did not panic")
		}
	}()
	_, _ = password.SampleDefault([]byte{}, 0)
}

func TestQuick(t *testing.T) {
	a := password.Quick()
	b := password.Quick()
	if len(a) != password.DefaultLength {
		t.Errorf("len(Quick()) = %d, want %d", len(a), password.DefaultLength)
	}
	if !utf8.ValidString(a) {
		t.Errorf("Quick() = %q is not valid UTF-8", a)
	}
	for _, c := range []byte(a) {
		if bytes.IndexByte(alphabet.Password, c) < 0 {
			t.Errorf("Quick() contains %q outside the password alphabet", c)
		}
	}
	if a == b {
		t.Errorf("two calls to Quick() returned %q", a)
	}
}
