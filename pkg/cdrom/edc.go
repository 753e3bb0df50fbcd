package cdrom

import (
	"encoding/binary"
	"hash/crc32"
)

// ComputeEdc continues the sector EDC over data starting from edc.
// Sectors start from 0 and store the result little-endian.
// crc32.Update inverts on entry and exit, the EDC does neither.
func (t *Tables) ComputeEdc(edc uint32, data []byte) uint32 {
	return ^crc32.Update(^edc, t.edc, data)
}

// ComputeEdc computes the sector EDC with the default tables
func ComputeEdc(edc uint32, data []byte) uint32 {
	return defaultTables.ComputeEdc(edc, data)
}

// edcArea locates the bytes covered by the EDC and the channel offset of
// the stored value. ok is false for sectors that carry no EDC.
func edcArea(channel []byte) (covered []byte, offset int, ok bool) {
	switch Mode(channel[modeOffset]) {
	case Mode1:
		return channel[:edcOffset], edcOffset, true
	case Mode2:
		payload := channel[dataOffset:]
		if isForm2(channel) {
			return payload[:form2EdcOffset], dataOffset + form2EdcOffset, true
		}
		return payload[:form1EdcOffset], dataOffset + form1EdcOffset, true
	}
	return nil, 0, false
}

// storedEdc reads the little-endian EDC at offset
func storedEdc(channel []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(channel[offset:])
}

func isForm2(channel []byte) bool {
	return channel[submodeOffset]&submodeForm2 != 0
}
