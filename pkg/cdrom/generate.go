package cdrom

import "encoding/binary"

// GenerateEdc computes and stores the EDC of a mode 1 or mode 2 sector
func GenerateEdc(channel []byte) error {
	if len(channel) != SectorSize {
		return ErrBufferSize
	}
	covered, offset, ok := edcArea(channel)
	if !ok {
		return ErrUnsupportedMode
	}
	edc := defaultTables.ComputeEdc(0, covered)
	binary.LittleEndian.PutUint32(channel[offset:], edc)
	return nil
}

// GenerateMode1Ecc fills ECC P and ECC Q of a mode 1 sector.
// The EDC must already be in place since ECC P covers it.
func GenerateMode1Ecc(channel []byte) error {
	if len(channel) != SectorSize {
		return ErrBufferSize
	}
	address := channel[addressOffset : addressOffset+4]
	return generateProductCode(address, channel[dataOffset:], channel[eccPOffset:], channel[eccQOffset:])
}

// GenerateMode2Form1Ecc fills ECC P and ECC Q of a mode 2 form 1 sector,
// computed with a zero address
func GenerateMode2Form1Ecc(channel []byte) error {
	if len(channel) != SectorSize {
		return ErrBufferSize
	}
	var address [4]byte
	payload := channel[dataOffset:]
	return generateProductCode(address[:], payload, payload[form1EccPOffset:], payload[form1EccQOffset:])
}

func generateProductCode(address, data, eccP, eccQ []byte) error {
	if err := defaultTables.ComputeEcc(address, data[:eccPDataSize], EccP, eccP[:eccPSize]); err != nil {
		return err
	}
	// ECC Q covers ECC P
	return defaultTables.ComputeEcc(address, data[:eccQDataSize], EccQ, eccQ[:eccQSize])
}

// RegenerateChecksums rewrites the EDC and ECC of a sector for its mode
func RegenerateChecksums(channel []byte) error {
	if len(channel) != SectorSize {
		return ErrBufferSize
	}
	switch Mode(channel[modeOffset]) {
	case Mode1:
		if err := GenerateEdc(channel); err != nil {
			return err
		}
		return GenerateMode1Ecc(channel)
	case Mode2:
		if err := GenerateEdc(channel); err != nil {
			return err
		}
		if isForm2(channel) {
			return nil
		}
		return GenerateMode2Form1Ecc(channel)
	default:
		return ErrUnsupportedMode
	}
}
