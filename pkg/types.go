package pkg

import (
	"io"

	"github.com/hansbonini/cdverify/pkg/cdrom"
)

// SectorResult describes a sector that did not verify as valid
type SectorResult struct {
	Index   int64         `yaml:"index"`             // position in the image
	MSF     string        `yaml:"msf"`               // position as MM:SS:FF
	Address string        `yaml:"address,omitempty"` // header address of data sectors
	Verdict cdrom.Verdict `yaml:"verdict"`
}

// VerificationReport summarizes the verification of a disc image
type VerificationReport struct {
	Image         string         `yaml:"image"`
	SectorSize    int            `yaml:"sector_size"`
	TotalSectors  int64          `yaml:"total_sectors"`
	EdcVerified   bool           `yaml:"edc_verified"`
	Valid         int64          `yaml:"valid"`
	Invalid       int64          `yaml:"invalid"`
	Indeterminate int64          `yaml:"indeterminate"`
	Sectors       []SectorResult `yaml:"sectors,omitempty"`
	Truncated     bool           `yaml:"truncated,omitempty"` // Sectors holds only the first entries
}

// RSFileHeader is the 12-byte header of a Reed-Solomon protected file
type RSFileHeader struct {
	Magic      [4]byte // Always "CDRS"
	K          uint16  // data bytes per 255-byte block
	Reserved   uint16
	DataLength uint32 // length of the original data
}

// RSDecodeStats reports the work done decoding a protected file
type RSDecodeStats struct {
	Blocks    int
	Corrected int
}

// SectorChecker classifies one raw sector buffer
type SectorChecker interface {
	Check(buffer []byte) cdrom.Verdict
}

// ReportExporter writes a verification report
type ReportExporter interface {
	ExportReport(report *VerificationReport, writer io.Writer) error
}
