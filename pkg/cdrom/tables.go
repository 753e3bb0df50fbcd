package cdrom

import (
	"hash/crc32"

	"github.com/sigurn/crc16"
)

// Tables holds the lookup tables used by the sector checks.
// A Tables value is never modified after construction and may be shared.
type Tables struct {
	eccF [256]byte // multiply by alpha in GF(256), x^8+x^4+x^3+x^2+1
	eccB [256]byte // inverse of 1+alpha applied to eccF output
	edc  *crc32.Table
	crc  *crc16.Table
}

const (
	eccPolynomial = 0x11D
	edcPolynomial = 0xD8018001 // reflected
)

// subchannelCRC is CRC-16/GSM: 0x1021 MSB first from 0, complemented
var subchannelCRC = crc16.Params{
	Poly:   0x1021,
	Init:   0x0000,
	RefIn:  false,
	RefOut: false,
	XorOut: 0xFFFF,
	Check:  0xCE3C,
	Name:   "CRC-16/GSM",
}

// NewTables builds the ECC, EDC and CRC16 tables
func NewTables() *Tables {
	t := &Tables{
		edc: crc32.MakeTable(edcPolynomial),
		crc: crc16.MakeTable(subchannelCRC),
	}
	for i := 0; i < 256; i++ {
		j := i << 1
		if i&0x80 != 0 {
			j ^= eccPolynomial
		}
		t.eccF[i] = byte(j)
		t.eccB[i^j] = byte(i)
	}
	return t
}

var defaultTables = NewTables()

// DefaultTables returns the shared package tables
func DefaultTables() *Tables {
	return defaultTables
}
