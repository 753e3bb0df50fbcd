package reedsolomon

import "fmt"

// Encode computes the n-k parity symbols for k data symbols with a
// systematic LFSR encoder. Symbols are in polynomial form.
func (c *Codec) Encode(data []int) ([]int, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if len(data) != c.k {
		return nil, fmt.Errorf("%w: got %d symbols, want %d", ErrMessageLength, len(data), c.k)
	}

	f := c.field
	nk := f.n - c.k
	bb := make([]int, nk)

	for i := c.k - 1; i >= 0; i-- {
		if data[i] < 0 || data[i] > f.n {
			return nil, fmt.Errorf("%w: data[%d]=%d exceeds %d", ErrIllegalSymbol, i, data[i], f.n)
		}

		feedback := f.indexOf[data[i]^bb[nk-1]]
		if feedback != f.a0 {
			for j := nk - 1; j > 0; j-- {
				if c.genpoly[j] != f.a0 {
					bb[j] = bb[j-1] ^ f.alphaTo[f.modnn(c.genpoly[j]+feedback)]
				} else {
					bb[j] = bb[j-1]
				}
			}
			bb[0] = f.alphaTo[f.modnn(c.genpoly[0]+feedback)]
		} else {
			for j := nk - 1; j > 0; j-- {
				bb[j] = bb[j-1]
			}
			bb[0] = 0
		}
	}

	return bb, nil
}
