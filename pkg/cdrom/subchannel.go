package cdrom

import (
	"encoding/binary"

	"github.com/hansbonini/cdverify/pkg/common"
)

// Subchannel sizes after deinterleaving
const (
	QSize          = 12 // 10 data bytes + CRC16, big-endian
	CDTextPackSize = 18 // 16 data bytes + CRC16, big-endian
	RWPackSize     = 24 // 6-bit symbols
	PacksPerSector = 4
)

// Subchannel is the decoded form of the 96 raw subchannel bytes of a sector
type Subchannel struct {
	Q      [QSize]byte
	CDText [PacksPerSector][CDTextPackSize]byte
	RW     [PacksPerSector][RWPackSize]byte
}

// DeinterleaveSubchannel splits raw P-W subchannel bytes into the Q
// channel, the CD-Text packs and the R-W packs. Each raw byte carries
// one bit of Q in bit 6 and one R-W symbol in bits 5..0.
//
// CD-Text packs take four 6-bit symbols s0..s3 per three bytes:
// byte 0 is s0 then the top two bits of s1, byte 1 is the low four bits
// of s1 then the top four of s2, byte 2 is the low two bits of s2 then s3.
// Bits 7..6 of the raw bytes never reach a pack.
func DeinterleaveSubchannel(raw []byte) (*Subchannel, error) {
	if len(raw) != SubchannelSize {
		return nil, ErrBufferSize
	}
	sub := &Subchannel{}

	for j := 0; j < QSize; j++ {
		for bit := 0; bit < 8; bit++ {
			sub.Q[j] |= ((raw[8*j+bit] & 0x40) << 1) >> bit
		}
	}

	for p := 0; p < PacksPerSector; p++ {
		symbols := raw[RWPackSize*p : RWPackSize*(p+1)]
		for i, b := range symbols {
			sub.RW[p][i] = b & 0x3F
		}

		pack := &sub.CDText[p]
		for g := 0; g < RWPackSize/4; g++ {
			s := sub.RW[p][4*g : 4*g+4]
			pack[3*g] = s[0]<<2 | s[1]>>4
			pack[3*g+1] = (s[1]&0x0F)<<4 | s[2]>>2
			pack[3*g+2] = (s[2]&0x03)<<6 | s[3]
		}
	}
	return sub, nil
}

// QCRC returns the CRC stored in the Q channel
func (s *Subchannel) QCRC() uint16 {
	return binary.BigEndian.Uint16(s.Q[10:])
}

// Address returns the absolute time of a position Q frame, bytes 7..9 in BCD
func (s *Subchannel) Address() string {
	return common.FormatBCDAddress(s.Q[7], s.Q[8], s.Q[9])
}

// checkSubchannel validates the Q CRC and the CRC of every CD-Text pack
// that has its top bit set. A stored CD-Text CRC of zero is not checked.
// address names the sector in log messages.
func (t *Tables) checkSubchannel(sub *Subchannel, address string) Verdict {
	verdict := Valid

	if crc := t.CRC16(sub.Q[:10]); crc != sub.QCRC() {
		common.LogDebug(common.DebugQCrcMismatch, address, sub.QCRC(), crc)
		verdict = Invalid
	}

	for p := range sub.CDText {
		pack := sub.CDText[p][:]
		if pack[0]&0x80 == 0 {
			continue
		}
		stored := binary.BigEndian.Uint16(pack[16:])
		if stored == 0 {
			continue
		}
		if crc := t.CRC16(pack[:16]); crc != stored {
			common.LogDebug(common.DebugCdTextCrcMismatch, p, address, stored, crc)
			verdict = Invalid
		}
	}
	return verdict
}
