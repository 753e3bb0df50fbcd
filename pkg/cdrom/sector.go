package cdrom

import (
	"bytes"

	"github.com/hansbonini/cdverify/pkg/common"
)

// checkChannel verifies a 2352-byte channel sector by its mode
func (c *Checker) checkChannel(channel []byte) Verdict {
	if !HasSync(channel) {
		common.LogDebug(common.DebugNoSyncPattern)
		return Indeterminate
	}

	header := ParseHeader(channel)
	common.LogDebug(common.DebugDataSector, header)

	switch header.Mode {
	case Mode0:
		return c.checkMode0(channel, header)
	case Mode1:
		return c.checkMode1(channel, header)
	case Mode2:
		if isForm2(channel) {
			return c.checkMode2Form2(channel, header)
		}
		return c.checkMode2Form1(channel, header)
	default:
		common.LogDebug(common.DebugUnknownMode, byte(header.Mode), header)
		return Indeterminate
	}
}

func (c *Checker) checkMode0(channel []byte, header Header) Verdict {
	for i := dataOffset; i < SectorSize; i++ {
		if channel[i] != 0 {
			common.LogDebug(common.DebugMode0NonZero, header, i)
			return Invalid
		}
	}
	return Valid
}

func (c *Checker) checkMode1(channel []byte, header Header) Verdict {
	for _, b := range channel[reservedOffset : reservedOffset+reservedSize] {
		if b != 0 {
			common.LogDebug(common.DebugMode1Reserved, header)
			return Invalid
		}
	}

	address := channel[addressOffset : addressOffset+4]
	if !c.checkProductCode("Mode 1", header, address, channel[dataOffset:], channel[eccPOffset:], channel[eccQOffset:]) {
		return Invalid
	}
	if !c.checkEdc("Mode 1", channel, header) {
		return Invalid
	}
	return Valid
}

func (c *Checker) checkMode2Form1(channel []byte, header Header) Verdict {
	c.checkSubheader(channel, header)

	var address [4]byte
	payload := channel[dataOffset:]
	if !c.checkProductCode("Mode 2 Form 1", header, address[:], payload, payload[form1EccPOffset:], payload[form1EccQOffset:]) {
		return Invalid
	}
	if !c.checkEdc("Mode 2 Form 1", channel, header) {
		return Invalid
	}
	return Valid
}

func (c *Checker) checkMode2Form2(channel []byte, header Header) Verdict {
	c.checkSubheader(channel, header)
	if !c.checkEdc("Mode 2 Form 2", channel, header) {
		return Invalid
	}
	return Valid
}

// checkSubheader logs differing subheader copies, it never fails the sector
func (c *Checker) checkSubheader(channel []byte, header Header) {
	first := channel[subheaderOffset : subheaderOffset+SubheaderSize]
	second := channel[subheader2Offset : subheader2Offset+SubheaderSize]
	if !bytes.Equal(first, second) {
		common.LogDebug(common.DebugSubheaderMismatch, header)
	}
}

// checkProductCode runs ECC P then ECC Q. data starts right after the
// 4-byte address.
func (c *Checker) checkProductCode(kind string, header Header, address, data, eccP, eccQ []byte) bool {
	t := c.tables()
	if !t.CheckEcc(address, data[:eccPDataSize], EccP, eccP[:eccPSize]) {
		common.LogDebug(common.DebugEccPFailed, kind, header)
		return false
	}
	if !t.CheckEcc(address, data[:eccQDataSize], EccQ, eccQ[:eccQSize]) {
		common.LogDebug(common.DebugEccQFailed, kind, header)
		return false
	}
	return true
}

// checkEdc is a no-op unless EDC verification is enabled
func (c *Checker) checkEdc(kind string, channel []byte, header Header) bool {
	if !c.verifyEDC {
		return true
	}
	covered, offset, ok := edcArea(channel)
	if !ok {
		return true
	}
	stored := storedEdc(channel, offset)
	if Mode(channel[modeOffset]) == Mode2 && isForm2(channel) && stored == 0 {
		return true
	}
	if computed := c.tables().ComputeEdc(0, covered); computed != stored {
		common.LogDebug(common.DebugEdcMismatch, kind, header, stored, computed)
		return false
	}
	return true
}
