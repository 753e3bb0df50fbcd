package cdrom

import "github.com/sigurn/crc16"

// CRC16 computes the CRC-CCITT used by the Q subchannel and CD-Text packs:
// polynomial 0x1021, seed 0, MSB first, result complemented.
func (t *Tables) CRC16(data []byte) uint16 {
	return crc16.Checksum(data, t.crc)
}

// CRC16 computes the subchannel CRC with the default tables
func CRC16(data []byte) uint16 {
	return defaultTables.CRC16(data)
}
