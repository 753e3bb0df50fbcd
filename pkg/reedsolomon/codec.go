package reedsolomon

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when a Codec is used without New.
	ErrNotInitialized = errors.New("reedsolomon: codec not initialized")

	// ErrInvalidParameters is returned for an unsupported (n, k, m) triple.
	ErrInvalidParameters = errors.New("reedsolomon: invalid code parameters")

	// ErrIllegalSymbol is returned when a symbol does not fit in the field.
	ErrIllegalSymbol = errors.New("reedsolomon: illegal symbol")

	// ErrUncorrectable is returned when a codeword has more errors than the
	// code can correct.
	ErrUncorrectable = errors.New("reedsolomon: uncorrectable codeword")

	// ErrMessageLength is returned when the data block is not k symbols long.
	ErrMessageLength = errors.New("reedsolomon: wrong message length")

	// ErrCodewordLength is returned when a codeword is not n symbols long.
	ErrCodewordLength = errors.New("reedsolomon: wrong codeword length")

	// ErrInvalidErasure is returned for an erasure position outside the
	// codeword, a repeated position, or more erasures than parity symbols.
	ErrInvalidErasure = errors.New("reedsolomon: invalid erasure position")
)

// DefaultFirstRoot is the exponent of the first consecutive root of g(x).
const DefaultFirstRoot = 1

// Config describes an RS(n, k) code over GF(2^m).
type Config struct {
	SymbolSize     int // m, in [2,16]
	CodewordLength int // n, must be 2^m - 1
	MessageLength  int // k, in [1, n-1]
	FirstRoot      int // B0, exponent of the first root of g(x)
}

// Codec encodes and decodes one RS(n, k) code. The field and generator
// polynomial are built by New and never modified, so a Codec may be shared
// between goroutines.
type Codec struct {
	field   *Field
	k       int
	b0      int
	genpoly []int // index form, degree n-k
}

// New returns a codec for RS(n, k) over GF(2^m) with first root alpha^1.
func New(n, k, m int) (*Codec, error) {
	return NewWithConfig(Config{
		SymbolSize:     m,
		CodewordLength: n,
		MessageLength:  k,
		FirstRoot:      DefaultFirstRoot,
	})
}

// NewWithConfig returns a codec for the code described by cfg.
func NewWithConfig(cfg Config) (*Codec, error) {
	field, err := NewField(cfg.SymbolSize)
	if err != nil {
		return nil, err
	}
	if cfg.CodewordLength != field.n {
		return nil, fmt.Errorf("%w: n=%d, want %d for m=%d",
			ErrInvalidParameters, cfg.CodewordLength, field.n, cfg.SymbolSize)
	}
	if cfg.MessageLength <= 0 || cfg.MessageLength >= field.n {
		return nil, fmt.Errorf("%w: k=%d outside [1,%d]",
			ErrInvalidParameters, cfg.MessageLength, field.n-1)
	}
	if cfg.FirstRoot < 0 {
		return nil, fmt.Errorf("%w: negative first root %d", ErrInvalidParameters, cfg.FirstRoot)
	}

	c := &Codec{
		field: field,
		k:     cfg.MessageLength,
		b0:    cfg.FirstRoot,
	}
	c.genpoly = c.buildGenerator()
	return c, nil
}

// buildGenerator multiplies out g(x) = (x + alpha^B0)(x + alpha^(B0+1))...
// over n-k roots and returns its coefficients in index form.
func (c *Codec) buildGenerator() []int {
	f := c.field
	nk := f.n - c.k
	gg := make([]int, nk+1)

	gg[0] = f.alphaTo[f.modnn(c.b0)]
	gg[1] = 1
	for i := 2; i <= nk; i++ {
		gg[i] = 1
		for j := i - 1; j > 0; j-- {
			if gg[j] != 0 {
				gg[j] = gg[j-1] ^ f.alphaTo[f.modnn(f.indexOf[gg[j]]+c.b0+i-1)]
			} else {
				gg[j] = gg[j-1]
			}
		}
		// gg[0] can never be zero
		gg[0] = f.alphaTo[f.modnn(f.indexOf[gg[0]]+c.b0+i-1)]
	}

	for i := range gg {
		gg[i] = f.indexOf[gg[i]]
	}
	return gg
}

// ready reports ErrNotInitialized for a nil or zero-value Codec.
func (c *Codec) ready() error {
	if c == nil || c.field == nil || c.genpoly == nil {
		return ErrNotInitialized
	}
	return nil
}

// Field returns the codec's Galois field.
func (c *Codec) Field() *Field { return c.field }

// N returns the codeword length.
func (c *Codec) N() int { return c.field.n }

// K returns the message length.
func (c *Codec) K() int { return c.k }

// ParityLength returns n-k.
func (c *Codec) ParityLength() int { return c.field.n - c.k }

// Generator returns a copy of g(x) in index form, lowest degree first.
func (c *Codec) Generator() []int {
	out := make([]int, len(c.genpoly))
	copy(out, c.genpoly)
	return out
}

// Codeword lays parity and data out the way Decode expects them:
// parity symbols at positions [0, n-k), data at [n-k, n).
func Codeword(parity, data []int) []int {
	out := make([]int, 0, len(parity)+len(data))
	out = append(out, parity...)
	return append(out, data...)
}

// Message returns the data symbols of a codeword laid out by Codeword.
func (c *Codec) Message(codeword []int) []int {
	return codeword[c.ParityLength():]
}

// String returns a short description of the code.
func (c *Codec) String() string {
	if c.ready() != nil {
		return "RS(uninitialized)"
	}
	return fmt.Sprintf("RS(%d,%d) over %s", c.field.n, c.k, c.field)
}
