package reedsolomon

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomData(rng *rand.Rand, k, n int) []int {
	data := make([]int, k)
	for i := range data {
		data[i] = rng.Intn(n + 1)
	}
	return data
}

// corrupt XORs a non-zero value into count distinct positions and returns them.
func corrupt(rng *rand.Rand, codeword []int, count, n int) []int {
	positions := rng.Perm(len(codeword))[:count]
	for _, pos := range positions {
		codeword[pos] ^= 1 + rng.Intn(n)
	}
	return positions
}

func encodeCodeword(t *testing.T, c *Codec, data []int) []int {
	t.Helper()
	parity, err := c.Encode(data)
	require.NoError(t, err)
	require.Len(t, parity, c.ParityLength())
	return Codeword(parity, data)
}

func TestNewField_Tables(t *testing.T) {
	for m := MinSymbolSize; m <= MaxSymbolSize; m++ {
		f, err := NewField(m)
		require.NoError(t, err, "m=%d", m)

		n := (1 << m) - 1
		assert.Equal(t, n, f.Size())
		assert.Equal(t, n, f.A0())
		assert.Equal(t, f.A0(), f.Log(0))
		assert.Equal(t, 0, f.Exp(n))

		for x := 1; x <= n; x++ {
			if f.Exp(f.Log(x)) != x {
				t.Fatalf("m=%d: Exp(Log(%d)) = %d", m, x, f.Exp(f.Log(x)))
			}
		}
	}
}

func TestNewField_OutOfRange(t *testing.T) {
	for _, m := range []int{-1, 0, 1, 17, 32} {
		_, err := NewField(m)
		assert.ErrorIs(t, err, ErrInvalidParameters, "m=%d", m)
	}
}

func TestField_MultiplyDivide(t *testing.T) {
	f, err := NewField(8)
	require.NoError(t, err)

	// x^8 + x^4 + x^3 + x^2 + 1: alpha^8 = 0x1D
	assert.Equal(t, 0x1D, f.Exp(8))
	assert.Equal(t, 0, f.Multiply(0, 0x53))
	for a := 1; a < 256; a++ {
		for _, b := range []int{1, 2, 0x1D, 0x80, 0xFF} {
			assert.Equal(t, a, f.Divide(f.Multiply(a, b), b))
		}
	}
	assert.Panics(t, func() { f.Divide(1, 0) })
}

func TestNew_InvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		n, k, m int
	}{
		{"symbol size too small", 1, 1, 1},
		{"symbol size too large", 131071, 100, 17},
		{"n does not match m", 200, 100, 8},
		{"k zero", 255, 0, 8},
		{"k equals n", 255, 255, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.n, tt.k, tt.m)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}

	_, err := NewWithConfig(Config{SymbolSize: 8, CodewordLength: 255, MessageLength: 223, FirstRoot: -1})
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCodec_NotInitialized(t *testing.T) {
	var zero Codec
	_, err := zero.Encode(make([]int, 10))
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = zero.Decode(make([]int, 15), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)

	var nilCodec *Codec
	_, err = nilCodec.Encode(nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, "RS(uninitialized)", nilCodec.String())
}

func TestGenerator_RootsAreConsecutivePowers(t *testing.T) {
	for _, b0 := range []int{0, 1, 5} {
		c, err := NewWithConfig(Config{SymbolSize: 8, CodewordLength: 255, MessageLength: 239, FirstRoot: b0})
		require.NoError(t, err)
		f := c.Field()

		g := c.Generator()
		require.Len(t, g, 17)
		assert.Equal(t, 0, g[16], "g(x) must be monic")

		for i := 0; i < 16; i++ {
			x := f.Exp(b0 + i)
			acc := 0
			for d := len(g) - 1; d >= 0; d-- {
				acc = f.Multiply(acc, x) ^ f.Exp(g[d])
			}
			assert.Zero(t, acc, "g(alpha^%d) != 0", b0+i)
		}
	}
}

func TestDecode_FirstRoot(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, m := range []int{4, 8} {
		n := (1 << m) - 1
		for _, b0 := range []int{0, 2, 5, 120} {
			c, err := NewWithConfig(Config{SymbolSize: m, CodewordLength: n, MessageLength: n - 6, FirstRoot: b0})
			require.NoError(t, err)

			for trial := 0; trial < 20; trial++ {
				original := encodeCodeword(t, c, randomData(rng, c.K(), n))

				// two erasures and two errors use all six parity symbols
				received := append([]int(nil), original...)
				positions := corrupt(rng, received, 4, n)

				corrected, err := c.Decode(received, positions[:2])
				require.NoError(t, err, "%s b0=%d", c, b0)
				assert.Equal(t, 4, corrected)
				assert.Equal(t, original, received, "%s b0=%d", c, b0)
			}
		}
	}

	// every single-symbol error of a two-parity code over GF(4)
	for _, b0 := range []int{0, 1, 2} {
		c, err := NewWithConfig(Config{SymbolSize: 2, CodewordLength: 3, MessageLength: 1, FirstRoot: b0})
		require.NoError(t, err)

		for d := 0; d <= 3; d++ {
			original := encodeCodeword(t, c, []int{d})
			for pos := 0; pos < 3; pos++ {
				for e := 1; e <= 3; e++ {
					received := append([]int(nil), original...)
					received[pos] ^= e

					corrected, err := c.Decode(received, nil)
					require.NoError(t, err, "b0=%d data=%d pos=%d err=%d", b0, d, pos, e)
					assert.Equal(t, 1, corrected)
					assert.Equal(t, original, received)
				}
			}
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for m := MinSymbolSize; m <= MaxSymbolSize; m++ {
		n := (1 << m) - 1
		for _, nk := range []int{1, 2, 4} {
			if nk >= n {
				continue
			}
			c, err := New(n, n-nk, m)
			require.NoError(t, err)

			data := randomData(rng, n-nk, n)
			codeword := encodeCodeword(t, c, data)

			corrected, err := c.Decode(codeword, nil)
			require.NoError(t, err, "%s", c)
			assert.Zero(t, corrected)
			assert.Equal(t, data, c.Message(codeword))
		}
	}
}

func TestDecode_CorrectsErrors(t *testing.T) {
	tests := []struct {
		m, k int
	}{
		{3, 3},
		{4, 9},
		{4, 11},
		{5, 21},
		{8, 223},
		{8, 239},
		{10, 1000},
		{12, 4079},
	}

	rng := rand.New(rand.NewSource(42))
	for _, tt := range tests {
		n := (1 << tt.m) - 1
		c, err := New(n, tt.k, tt.m)
		require.NoError(t, err)
		maxErrors := (n - tt.k) / 2

		for trial := 0; trial < 10; trial++ {
			data := randomData(rng, tt.k, n)
			original := encodeCodeword(t, c, data)

			for errs := 1; errs <= maxErrors; errs++ {
				received := append([]int(nil), original...)
				corrupt(rng, received, errs, n)

				corrected, err := c.Decode(received, nil)
				require.NoError(t, err, "%s with %d errors", c, errs)
				assert.Equal(t, errs, corrected)
				assert.Equal(t, original, received)
			}
		}
	}
}

func TestDecode_ErrorsAndErasures(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := New(255, 223, 8)
	require.NoError(t, err)
	nk := c.ParityLength()

	for noEras := 0; noEras <= nk; noEras += 3 {
		maxErrors := (nk - noEras) / 2
		data := randomData(rng, c.K(), c.N())
		original := encodeCodeword(t, c, data)

		received := append([]int(nil), original...)
		positions := corrupt(rng, received, noEras+maxErrors, c.N())
		erasures := positions[:noEras]

		corrected, err := c.Decode(received, erasures)
		require.NoError(t, err, "%d erasures, %d errors", noEras, maxErrors)
		assert.Equal(t, noEras+maxErrors, corrected)
		assert.Equal(t, original, received)
	}
}

func TestDecode_ErasuresOnlySmallField(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c, err := New(15, 9, 4)
	require.NoError(t, err)

	for trial := 0; trial < 50; trial++ {
		data := randomData(rng, c.K(), c.N())
		original := encodeCodeword(t, c, data)

		received := append([]int(nil), original...)
		erasures := corrupt(rng, received, c.ParityLength(), c.N())

		corrected, err := c.Decode(received, erasures)
		require.NoError(t, err)
		assert.Equal(t, c.ParityLength(), corrected)
		assert.Equal(t, original, received)
	}
}

func TestDecode_BeyondCapacityIsUncorrectable(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	c, err := New(255, 223, 8)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		data := randomData(rng, c.K(), c.N())
		original := encodeCodeword(t, c, data)

		received := append([]int(nil), original...)
		corrupt(rng, received, 17+trial%8, c.N())
		snapshot := append([]int(nil), received...)

		corrected, err := c.Decode(received, nil)
		require.ErrorIs(t, err, ErrUncorrectable)
		assert.Zero(t, corrected)
		assert.Equal(t, snapshot, received, "failed decode must not modify the codeword")
	}
}

func TestEncode_IllegalSymbol(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	data := make([]int, 11)
	data[5] = 16
	_, err = c.Encode(data)
	assert.ErrorIs(t, err, ErrIllegalSymbol)

	data[5] = -1
	_, err = c.Encode(data)
	assert.ErrorIs(t, err, ErrIllegalSymbol)

	_, err = c.Encode(make([]int, 10))
	assert.ErrorIs(t, err, ErrMessageLength)
}

func TestDecode_InputValidation(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	codeword := make([]int, 15)
	codeword[3] = 99
	_, err = c.Decode(codeword, nil)
	assert.ErrorIs(t, err, ErrIllegalSymbol)

	_, err = c.Decode(make([]int, 14), nil)
	assert.ErrorIs(t, err, ErrCodewordLength)

	_, err = c.Decode(make([]int, 15), []int{15})
	assert.ErrorIs(t, err, ErrInvalidErasure)

	_, err = c.Decode(make([]int, 15), []int{2, 2})
	assert.ErrorIs(t, err, ErrInvalidErasure)

	_, err = c.Decode(make([]int, 15), []int{0, 1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrInvalidErasure)
}

func TestBytes_RoundTrip(t *testing.T) {
	c, err := New(255, 239, 8)
	require.NoError(t, err)

	data := make([]byte, 239)
	for i := range data {
		data[i] = byte(i * 7)
	}
	parity, err := c.EncodeBytes(data)
	require.NoError(t, err)
	require.Len(t, parity, 16)

	codeword := append(append([]byte(nil), parity...), data...)
	codeword[0] ^= 0xFF
	codeword[100] ^= 0x01
	codeword[254] ^= 0x5A

	corrected, err := c.DecodeBytes(codeword, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, corrected)
	assert.Equal(t, data, codeword[16:])
	assert.Equal(t, parity, codeword[:16])

	wide, err := New(511, 500, 9)
	require.NoError(t, err)
	_, err = wide.EncodeBytes(make([]byte, 500))
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c, err := New(255, 223, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 20; i++ {
				data := randomData(rng, c.K(), c.N())
				parity, err := c.Encode(data)
				if !assert.NoError(t, err) {
					return
				}
				original := Codeword(parity, data)
				received := append([]int(nil), original...)
				corrupt(rng, received, 16, c.N())
				_, err = c.Decode(received, nil)
				assert.NoError(t, err)
				assert.Equal(t, original, received)
			}
		}(int64(w))
	}
	wg.Wait()
}
