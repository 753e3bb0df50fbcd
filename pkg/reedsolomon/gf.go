// Package reedsolomon implements a classical Reed-Solomon codec over GF(2^m)
// for symbol widths from 2 to 16 bits, with systematic encoding and
// errors-and-erasures decoding (Berlekamp-Massey, Chien search, Forney).
package reedsolomon

import "fmt"

// Symbol width limits supported by the primitive polynomial table.
const (
	MinSymbolSize = 2
	MaxSymbolSize = 16
)

// primitivePolynomials holds the coefficients of one primitive polynomial per
// symbol width, lowest degree first. Entry m has m+1 coefficients.
var primitivePolynomials = map[int][]int{
	2:  {1, 1, 1},
	3:  {1, 1, 0, 1},
	4:  {1, 1, 0, 0, 1},
	5:  {1, 0, 1, 0, 0, 1},
	6:  {1, 1, 0, 0, 0, 0, 1},
	7:  {1, 0, 0, 1, 0, 0, 0, 1},
	8:  {1, 0, 1, 1, 1, 0, 0, 0, 1},
	9:  {1, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	10: {1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1},
	11: {1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	12: {1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1},
	13: {1, 1, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	14: {1, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
	15: {1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	16: {1, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1},
}

// Field holds the exponential and logarithm tables of GF(2^m).
// A Field is immutable once built and safe for concurrent use.
type Field struct {
	m       int
	n       int
	a0      int
	alphaTo []int // index form -> polynomial form
	indexOf []int // polynomial form -> index form
}

// NewField builds the tables of GF(2^m) from the fixed primitive polynomial
// for m. The zero element has index form A0 = n.
func NewField(m int) (*Field, error) {
	pp, ok := primitivePolynomials[m]
	if !ok {
		return nil, fmt.Errorf("%w: symbol size %d outside [%d,%d]",
			ErrInvalidParameters, m, MinSymbolSize, MaxSymbolSize)
	}

	n := (1 << m) - 1
	f := &Field{
		m:       m,
		n:       n,
		a0:      n,
		alphaTo: make([]int, n+1),
		indexOf: make([]int, n+1),
	}

	mask := 1
	f.alphaTo[m] = 0
	for i := 0; i < m; i++ {
		f.alphaTo[i] = mask
		f.indexOf[f.alphaTo[i]] = i
		if pp[i] != 0 {
			f.alphaTo[m] ^= mask
		}
		mask <<= 1
	}
	f.indexOf[f.alphaTo[m]] = m

	// Past degree m, multiply by alpha and reduce whenever the top bit carries.
	mask >>= 1
	for i := m + 1; i < n; i++ {
		if f.alphaTo[i-1] >= mask {
			f.alphaTo[i] = f.alphaTo[m] ^ ((f.alphaTo[i-1] ^ mask) << 1)
		} else {
			f.alphaTo[i] = f.alphaTo[i-1] << 1
		}
		f.indexOf[f.alphaTo[i]] = i
	}
	f.indexOf[0] = f.a0
	f.alphaTo[n] = 0

	return f, nil
}

// SymbolSize returns m.
func (f *Field) SymbolSize() int { return f.m }

// Size returns n = 2^m - 1, the number of non-zero field elements.
func (f *Field) Size() int { return f.n }

// A0 returns the index-form value used for the zero element.
func (f *Field) A0() int { return f.a0 }

// Exp returns alpha^i in polynomial form. Exp(A0) is 0.
func (f *Field) Exp(i int) int { return f.alphaTo[i] }

// Log returns the index form of x. Log(0) is A0.
func (f *Field) Log(x int) int { return f.indexOf[x] }

// Multiply returns a*b in polynomial form.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.alphaTo[f.modnn(f.indexOf[a]+f.indexOf[b])]
}

// Divide returns a/b in polynomial form. It panics on division by zero.
func (f *Field) Divide(a, b int) int {
	if b == 0 {
		panic("reedsolomon: division by zero")
	}
	if a == 0 {
		return 0
	}
	return f.alphaTo[f.modnn(f.indexOf[a]-f.indexOf[b]+f.n)]
}

// modnn reduces a non-negative exponent modulo n without a division.
func (f *Field) modnn(x int) int {
	for x >= f.n {
		x -= f.n
		x = (x >> f.m) + (x & f.n)
	}
	return x
}

// String returns a short description of the field.
func (f *Field) String() string {
	return fmt.Sprintf("GF(2^%d)", f.m)
}
