// Package cdrom verifies raw CD sectors: ECC/EDC of the 2352-byte channel
// and the CRCs carried in the 96-byte subchannel.
// This file contains the byte layout of a raw sector.
package cdrom

import "github.com/hansbonini/cdverify/pkg/common"

// Sector size constants
const (
	SectorSize               = 2352 // Full CD channel sector
	SubchannelSize           = 96   // Raw P-W subchannel bytes per sector
	SectorWithSubchannelSize = 2448 // Channel followed by subchannel
	UserDataSize             = 2048 // Mode 1 / Mode 2 Form 1 user data
	Form2DataSize            = 2324 // Mode 2 Form 2 user data
	SyncSize                 = 12   // Sync pattern size
	HeaderSize               = 4    // Header size (3 address bytes + 1 mode byte)
	SubheaderSize            = 4    // One copy of the mode 2 subheader
)

// Channel offsets
const (
	addressOffset    = 0x00C
	modeOffset       = 0x00F
	dataOffset       = 0x010 // Mode 0/1 data, mode 2 payload
	edcOffset        = 0x810 // Mode 1 EDC
	reservedOffset   = 0x814 // Mode 1 reserved, 8 bytes
	reservedSize     = 8
	eccPOffset       = 0x81C
	eccQOffset       = 0x8C8
	eccPSize         = 172
	eccQSize         = 104
	subheaderOffset  = 0x010
	subheader2Offset = 0x014
	submodeOffset    = 0x012
	submodeForm2     = 0x20
)

// Offsets relative to the mode 2 payload, which starts at channel 0x010
const (
	form1EdcOffset  = 0x808
	form1EccPOffset = 0x80C
	form1EccQOffset = 0x8B8
	form2EdcOffset  = 0x91C
)

// Product-code data views
const (
	eccPDataSize = 2060 // bytes 0x010..0x81B seen by ECC P
	eccQDataSize = 2232 // bytes 0x010..0x8C7 seen by ECC Q
)

// SyncPattern opens every data sector
var SyncPattern = [SyncSize]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Mode is the sector mode byte at offset 0x00F
type Mode byte

// Sector modes
const (
	Mode0 Mode = 0x00
	Mode1 Mode = 0x01
	Mode2 Mode = 0x02
)

// Header is the 4-byte sector header following the sync pattern
type Header struct {
	Minute byte // BCD
	Second byte // BCD
	Frame  byte // BCD
	Mode   Mode
}

// ParseHeader reads the header of a raw channel sector
func ParseHeader(channel []byte) Header {
	return Header{
		Minute: channel[addressOffset],
		Second: channel[addressOffset+1],
		Frame:  channel[addressOffset+2],
		Mode:   Mode(channel[modeOffset]),
	}
}

// String returns the address as MM:SS:FF
func (h Header) String() string {
	return common.FormatBCDAddress(h.Minute, h.Second, h.Frame)
}

// LBA decodes the BCD address
func (h Header) LBA() (int64, error) {
	return common.MSFToLBA(h.Minute, h.Second, h.Frame)
}

// HasSync reports whether the channel starts with the data sync pattern
func HasSync(channel []byte) bool {
	if len(channel) < SyncSize {
		return false
	}
	for i, b := range SyncPattern {
		if channel[i] != b {
			return false
		}
	}
	return true
}
