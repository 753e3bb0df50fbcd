package cdrom

import (
	"bytes"
	"encoding/binary"
	"log"
	"os"
	"testing"

	"github.com/hansbonini/cdverify/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeinterleaveSubchannel_Q(t *testing.T) {
	q := validQ()
	var rw [PacksPerSector][RWPackSize]byte
	rw[2][5] = 0x3F
	raw := interleaveSubchannel(q, rw)

	sub, err := DeinterleaveSubchannel(raw)
	require.NoError(t, err)
	assert.Equal(t, q, sub.Q)
	assert.Equal(t, CRC16(q[:10]), sub.QCRC())
	assert.Equal(t, byte(0x3F), sub.RW[2][5])

	// the P bit never leaks into R-W
	raw[0] |= 0x80
	sub, err = DeinterleaveSubchannel(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0), sub.RW[0][0])
	assert.Equal(t, q, sub.Q)
}

func TestDeinterleaveSubchannel_CDText(t *testing.T) {
	var pack [CDTextPackSize]byte
	for i := range pack {
		pack[i] = byte(0x80 + i*13)
	}
	var rw [PacksPerSector][RWPackSize]byte
	rw[1] = packCDText(pack)

	raw := interleaveSubchannel(validQ(), rw)
	sub, err := DeinterleaveSubchannel(raw)
	require.NoError(t, err)
	assert.Equal(t, pack, sub.CDText[1])

	// P and Q bits never reach a pack
	for i := range raw {
		raw[i] |= 0x80
	}
	sub, err = DeinterleaveSubchannel(raw)
	require.NoError(t, err)
	assert.Equal(t, pack, sub.CDText[1])
	assert.Equal(t, validQ(), sub.Q)
}

func TestDeinterleaveSubchannel_Size(t *testing.T) {
	_, err := DeinterleaveSubchannel(make([]byte, 95))
	assert.ErrorIs(t, err, ErrBufferSize)
	assert.Equal(t, Indeterminate, NewChecker().CheckSubchannel(make([]byte, 10)))
}

func TestCheckSubchannel_QCRC(t *testing.T) {
	checker := NewChecker()
	raw := validSubchannel()
	assert.Equal(t, Valid, checker.CheckSubchannel(raw))

	for bit := 0; bit < 16; bit++ {
		bad := append([]byte(nil), raw...)
		bad[80+bit] ^= 0x40
		assert.Equal(t, Invalid, checker.CheckSubchannel(bad), "CRC bit %d", bit)
	}

	bad := append([]byte(nil), raw...)
	bad[3] ^= 0x40
	assert.Equal(t, Invalid, checker.CheckSubchannel(bad), "data bit")

	// an empty subchannel has no valid Q
	assert.Equal(t, Invalid, checker.CheckSubchannel(make([]byte, SubchannelSize)))
}

func cdTextPack(packType byte) [CDTextPackSize]byte {
	pack := [CDTextPackSize]byte{packType, 0x01, 0x00, 0x00}
	copy(pack[4:16], "CDVERIFY TXT")
	binary.BigEndian.PutUint16(pack[16:], CRC16(pack[:16]))
	return pack
}

func TestCheckSubchannel_CDText(t *testing.T) {
	checker := NewChecker()
	good := cdTextPack(0x80)

	var rw [PacksPerSector][RWPackSize]byte
	for p := range rw {
		rw[p] = packCDText(good)
	}
	assert.Equal(t, Valid, checker.CheckSubchannel(interleaveSubchannel(validQ(), rw)))

	t.Run("bad CRC", func(t *testing.T) {
		bad := good
		bad[17] ^= 0x01
		rw := rw
		rw[3] = packCDText(bad)
		assert.Equal(t, Invalid, checker.CheckSubchannel(interleaveSubchannel(validQ(), rw)))
	})

	t.Run("zero CRC is not checked", func(t *testing.T) {
		bad := good
		bad[5] ^= 0xFF
		bad[16], bad[17] = 0, 0
		rw := rw
		rw[0] = packCDText(bad)
		assert.Equal(t, Valid, checker.CheckSubchannel(interleaveSubchannel(validQ(), rw)))
	})

	t.Run("not a CD-Text pack", func(t *testing.T) {
		other := cdTextPack(0x10)
		other[17] ^= 0x01
		rw := rw
		rw[2] = packCDText(other)
		assert.Equal(t, Valid, checker.CheckSubchannel(interleaveSubchannel(validQ(), rw)))
	})
}

func TestCheckSubchannel_LogsAddress(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	common.SetVerboseMode(true)
	defer func() {
		log.SetOutput(os.Stderr)
		common.SetVerboseMode(false)
	}()

	bad := validSubchannel()
	bad[80] ^= 0x40

	// subchannel alone is named by the Q absolute time
	assert.Equal(t, Invalid, NewChecker().CheckSubchannel(bad))
	assert.Contains(t, buf.String(), "Q subchannel at address 00:02:00")

	// with a data sector the header address wins
	buf.Reset()
	channel := newSector(t, Mode1, false, 3)
	channel[addressOffset+2] = 0x41
	sector := append(channel, bad...)
	NewChecker().Check(sector)
	assert.Contains(t, buf.String(), "Q subchannel at address 00:02:41")

	// CD-Text packs are named the same way
	buf.Reset()
	var pack [CDTextPackSize]byte
	pack[0] = 0x80
	binary.BigEndian.PutUint16(pack[16:], 0x1234)
	var rw [PacksPerSector][RWPackSize]byte
	rw[3] = packCDText(pack)
	assert.Equal(t, Invalid, NewChecker().CheckSubchannel(interleaveSubchannel(validQ(), rw)))
	assert.Contains(t, buf.String(), "CD-Text pack 3 at address 00:02:00")
}
