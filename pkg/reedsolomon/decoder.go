package reedsolomon

import "fmt"

// Decode corrects codeword in place and returns the number of corrected
// positions. erasures lists codeword positions known to be unreliable.
//
// The codeword must be laid out as produced by Codeword. On any error the
// codeword is left untouched.
func (c *Codec) Decode(codeword []int, erasures []int) (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	f := c.field
	n, a0 := f.n, f.a0
	nk := n - c.k
	noEras := len(erasures)

	if len(codeword) != n {
		return 0, fmt.Errorf("%w: got %d symbols, want %d", ErrCodewordLength, len(codeword), n)
	}
	if err := c.checkErasures(erasures); err != nil {
		return 0, err
	}

	recd := make([]int, n)
	for j, sym := range codeword {
		if sym < 0 || sym > n {
			return 0, fmt.Errorf("%w: codeword[%d]=%d exceeds %d", ErrIllegalSymbol, j, sym, n)
		}
		recd[j] = f.indexOf[sym]
	}

	// s[1..nk] are the syndromes in index form.
	s := make([]int, nk+1)
	synError := 0
	for i := 1; i <= nk; i++ {
		tmp := 0
		for j := 0; j < n; j++ {
			if recd[j] != a0 {
				tmp ^= f.alphaTo[f.modnn(recd[j]+(c.b0+i-1)*j)]
			}
		}
		synError |= tmp
		s[i] = f.indexOf[tmp]
	}
	if synError == 0 {
		return 0, nil
	}

	// Initialise lambda(x) to the erasure locator polynomial.
	lambda := make([]int, nk+1)
	lambda[0] = 1
	if noEras > 0 {
		lambda[1] = f.alphaTo[erasures[0]]
		for i := 1; i < noEras; i++ {
			u := erasures[i]
			for j := i + 1; j > 0; j-- {
				tmp := f.indexOf[lambda[j-1]]
				if tmp != a0 {
					lambda[j] ^= f.alphaTo[f.modnn(u+tmp)]
				}
			}
		}
	}

	b := make([]int, nk+1)
	for i := range lambda {
		b[i] = f.indexOf[lambda[i]]
	}

	// Berlekamp-Massey: lambda and t are in polynomial form, b in index form.
	t := make([]int, nk+1)
	el := noEras
	for r := noEras + 1; r <= nk; r++ {
		discr := 0
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && s[r-i] != a0 {
				discr ^= f.alphaTo[f.modnn(f.indexOf[lambda[i]]+s[r-i])]
			}
		}
		discr = f.indexOf[discr]

		if discr == a0 {
			// B(x) <- x*B(x)
			copy(b[1:], b[:nk])
			b[0] = a0
			continue
		}

		// T(x) <- lambda(x) - discr*x*B(x)
		t[0] = lambda[0]
		for i := 0; i < nk; i++ {
			if b[i] != a0 {
				t[i+1] = lambda[i+1] ^ f.alphaTo[f.modnn(discr+b[i])]
			} else {
				t[i+1] = lambda[i+1]
			}
		}

		if 2*el <= r+noEras-1 {
			el = r + noEras - el
			// B(x) <- inv(discr)*lambda(x)
			for i := range lambda {
				if lambda[i] == 0 {
					b[i] = a0
				} else {
					b[i] = f.modnn(f.indexOf[lambda[i]] - discr + n)
				}
			}
		} else {
			copy(b[1:], b[:nk])
			b[0] = a0
		}
		copy(lambda, t)
	}

	degLambda := 0
	for i := range lambda {
		lambda[i] = f.indexOf[lambda[i]]
		if lambda[i] != a0 {
			degLambda = i
		}
	}
	if degLambda == 0 {
		return 0, ErrUncorrectable
	}

	// Chien search over every non-zero field element.
	reg := make([]int, nk+1)
	copy(reg[1:], lambda[1:])
	root := make([]int, 0, degLambda)
	loc := make([]int, 0, degLambda)
	for i := 1; i <= n; i++ {
		q := 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = f.modnn(reg[j] + j)
				q ^= f.alphaTo[reg[j]]
			}
		}
		if q != 0 {
			continue
		}
		root = append(root, i)
		loc = append(loc, n-i)
		if len(root) == degLambda {
			break
		}
	}
	if len(root) != degLambda {
		return 0, fmt.Errorf("%w: locator degree %d, %d roots", ErrUncorrectable, degLambda, len(root))
	}

	// omega(x) = s(x)*lambda(x) mod x^(n-k), index form.
	omega := make([]int, nk+1)
	degOmega := 0
	for i := 0; i < nk; i++ {
		tmp := 0
		for j := min(degLambda, i); j >= 0; j-- {
			if s[i+1-j] != a0 && lambda[j] != a0 {
				tmp ^= f.alphaTo[f.modnn(s[i+1-j]+lambda[j])]
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = f.indexOf[tmp]
	}
	omega[nk] = a0

	// Forney: num1 = omega(inv(X)), num2 = inv(X)^(B0-1),
	// den = lambda'(inv(X)).
	magnitude := make([]int, len(root))
	for j := len(root) - 1; j >= 0; j-- {
		num1 := 0
		for i := degOmega; i >= 0; i-- {
			if omega[i] != a0 {
				num1 ^= f.alphaTo[f.modnn(omega[i]+i*root[j])]
			}
		}
		num2 := f.alphaTo[f.modnn(root[j]*(c.b0-1)+n)]

		den := 0
		for i := min(degLambda, nk-1) &^ 1; i >= 0; i -= 2 {
			if lambda[i+1] != a0 {
				den ^= f.alphaTo[f.modnn(lambda[i+1]+i*root[j])]
			}
		}
		if den == 0 {
			return 0, fmt.Errorf("%w: zero Forney denominator", ErrUncorrectable)
		}

		if num1 != 0 {
			magnitude[j] = f.alphaTo[f.modnn(f.indexOf[num1]+f.indexOf[num2]+n-f.indexOf[den])]
		}
	}

	for j, pos := range loc {
		codeword[pos] ^= magnitude[j]
	}
	return len(root), nil
}

// checkErasures validates erasure positions before decoding.
func (c *Codec) checkErasures(erasures []int) error {
	if len(erasures) > c.ParityLength() {
		return fmt.Errorf("%w: %d erasures exceed %d parity symbols",
			ErrInvalidErasure, len(erasures), c.ParityLength())
	}
	seen := make(map[int]struct{}, len(erasures))
	for _, pos := range erasures {
		if pos < 0 || pos >= c.field.n {
			return fmt.Errorf("%w: %d outside [0,%d)", ErrInvalidErasure, pos, c.field.n)
		}
		if _, dup := seen[pos]; dup {
			return fmt.Errorf("%w: %d listed twice", ErrInvalidErasure, pos)
		}
		seen[pos] = struct{}{}
	}
	return nil
}
