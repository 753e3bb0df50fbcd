package reedsolomon

import "fmt"

// EncodeBytes is Encode for codes whose symbols fit in a byte (m <= 8).
func (c *Codec) EncodeBytes(data []byte) ([]byte, error) {
	if err := c.byteSized(); err != nil {
		return nil, err
	}
	parity, err := c.Encode(widen(data))
	if err != nil {
		return nil, err
	}
	return narrow(parity), nil
}

// DecodeBytes is Decode for codes whose symbols fit in a byte (m <= 8).
// codeword is corrected in place only when decoding succeeds.
func (c *Codec) DecodeBytes(codeword []byte, erasures []int) (int, error) {
	if err := c.byteSized(); err != nil {
		return 0, err
	}
	symbols := widen(codeword)
	corrected, err := c.Decode(symbols, erasures)
	if err != nil {
		return 0, err
	}
	for i, sym := range symbols {
		codeword[i] = byte(sym)
	}
	return corrected, nil
}

func (c *Codec) byteSized() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.field.m > 8 {
		return fmt.Errorf("%w: %d-bit symbols do not fit in a byte", ErrInvalidParameters, c.field.m)
	}
	return nil
}

func widen(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func narrow(s []int) []byte {
	out := make([]byte, len(s))
	for i, v := range s {
		out[i] = byte(v)
	}
	return out
}
