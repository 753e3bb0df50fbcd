package cdrom

// ProductCode describes one dimension of the sector P/Q product code
type ProductCode struct {
	MajorCount int // number of codewords, ECC length is 2*MajorCount
	MinorCount int // symbols per codeword
	MajorMult  int
	MinorInc   int
}

// Product code parameters of the 2352-byte sector
var (
	EccP = ProductCode{MajorCount: 86, MinorCount: 24, MajorMult: 2, MinorInc: 86}
	EccQ = ProductCode{MajorCount: 52, MinorCount: 43, MajorMult: 86, MinorInc: 88}
)

// Size is the number of address and data bytes one pass walks over
func (pc ProductCode) Size() int {
	return pc.MajorCount * pc.MinorCount
}

// EccSize is the number of parity bytes
func (pc ProductCode) EccSize() int {
	return 2 * pc.MajorCount
}

// parity returns the two parity bytes of codeword major
func (t *Tables) parity(address, data []byte, pc ProductCode, major int) (byte, byte) {
	size := pc.Size()
	index := (major>>1)*pc.MajorMult + (major & 1)
	var eccA, eccB byte
	for minor := 0; minor < pc.MinorCount; minor++ {
		var temp byte
		if index < 4 {
			temp = address[index]
		} else {
			temp = data[index-4]
		}
		index += pc.MinorInc
		if index >= size {
			index -= size
		}
		eccA ^= temp
		eccB ^= temp
		eccA = t.eccF[eccA]
	}
	eccA = t.eccB[t.eccF[eccA]^eccB]
	return eccA, eccA ^ eccB
}

// CheckEcc reports whether ecc holds the product-code parity of address
// and data. address is 4 bytes, data covers Size()-4 bytes.
func (t *Tables) CheckEcc(address, data []byte, pc ProductCode, ecc []byte) bool {
	if len(address) < 4 || len(data) < pc.Size()-4 || len(ecc) < pc.EccSize() {
		return false
	}
	for major := 0; major < pc.MajorCount; major++ {
		a, b := t.parity(address, data, pc, major)
		if ecc[major] != a || ecc[major+pc.MajorCount] != b {
			return false
		}
	}
	return true
}

// ComputeEcc writes the product-code parity of address and data into ecc
func (t *Tables) ComputeEcc(address, data []byte, pc ProductCode, ecc []byte) error {
	if len(address) < 4 || len(data) < pc.Size()-4 || len(ecc) < pc.EccSize() {
		return ErrBufferSize
	}
	for major := 0; major < pc.MajorCount; major++ {
		ecc[major], ecc[major+pc.MajorCount] = t.parity(address, data, pc, major)
	}
	return nil
}

// CheckEcc runs the product-code check with the default tables
func CheckEcc(address, data []byte, pc ProductCode, ecc []byte) bool {
	return defaultTables.CheckEcc(address, data, pc, ecc)
}

// ComputeEcc fills ecc with the default tables
func ComputeEcc(address, data []byte, pc ProductCode, ecc []byte) error {
	return defaultTables.ComputeEcc(address, data, pc, ecc)
}
