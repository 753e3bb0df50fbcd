package cdrom

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// newSector builds a sector with sync, address 00:02:00 and the given mode,
// random user data, and valid EDC/ECC for that mode.
func newSector(t *testing.T, mode Mode, form2 bool, seed int64) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	channel := make([]byte, SectorSize)
	copy(channel, SyncPattern[:])
	channel[addressOffset] = 0x00
	channel[addressOffset+1] = 0x02
	channel[addressOffset+2] = 0x00
	channel[modeOffset] = byte(mode)

	switch mode {
	case Mode1:
		rng.Read(channel[dataOffset : dataOffset+UserDataSize])
	case Mode2:
		subheader := []byte{0x01, 0x00, 0x08, 0x00}
		if form2 {
			subheader[2] |= submodeForm2
			rng.Read(channel[dataOffset+8 : dataOffset+8+Form2DataSize])
		} else {
			rng.Read(channel[dataOffset+8 : dataOffset+8+UserDataSize])
		}
		copy(channel[subheaderOffset:], subheader)
		copy(channel[subheader2Offset:], subheader)
	}

	if mode != Mode0 {
		require.NoError(t, RegenerateChecksums(channel))
	}
	return channel
}

// interleaveSubchannel packs a Q channel and four R-W packs into raw bytes
func interleaveSubchannel(q [QSize]byte, rw [PacksPerSector][RWPackSize]byte) []byte {
	raw := make([]byte, SubchannelSize)
	for p := 0; p < PacksPerSector; p++ {
		for i := 0; i < RWPackSize; i++ {
			raw[RWPackSize*p+i] = rw[p][i] & 0x3F
		}
	}
	for j := 0; j < QSize; j++ {
		for bit := 0; bit < 8; bit++ {
			raw[8*j+bit] |= ((q[j] << bit) & 0x80) >> 1
		}
	}
	return raw
}

// packCDText splits an 18-byte CD-Text pack into 24 six-bit symbols
func packCDText(pack [CDTextPackSize]byte) [RWPackSize]byte {
	var symbols [RWPackSize]byte
	for g := 0; g < RWPackSize/4; g++ {
		b0, b1, b2 := pack[3*g], pack[3*g+1], pack[3*g+2]
		symbols[4*g] = b0 >> 2
		symbols[4*g+1] = (b0&0x03)<<4 | b1>>4
		symbols[4*g+2] = (b1&0x0F)<<2 | b2>>6
		symbols[4*g+3] = b2 & 0x3F
	}
	return symbols
}

// validQ returns a track 1, index 1 position Q frame with its CRC
func validQ() [QSize]byte {
	q := [QSize]byte{0x41, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00}
	binary.BigEndian.PutUint16(q[10:], CRC16(q[:10]))
	return q
}

func validSubchannel() []byte {
	return interleaveSubchannel(validQ(), [PacksPerSector][RWPackSize]byte{})
}
