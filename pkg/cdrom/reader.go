package cdrom

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/cdverify/pkg/common"
)

// SectorReader reads fixed-size raw sectors from a disc image
type SectorReader struct {
	src           io.ReaderAt
	closer        io.Closer
	sectorSize    int
	totalSectors  int64
	currentSector int64
	sectorBuffer  []byte
}

// DetectSectorSize guesses the raw sector size from the image length.
// An image that divides evenly by both sizes is taken as 2352-byte sectors.
func DetectSectorSize(imageSize int64) (int, error) {
	fitsChannel := imageSize%SectorSize == 0
	fitsSubchannel := imageSize%SectorWithSubchannelSize == 0
	switch {
	case imageSize <= 0:
		return 0, fmt.Errorf("%w: empty image", ErrBufferSize)
	case fitsChannel && fitsSubchannel:
		common.LogWarn(common.WarnAmbiguousSectorSize, imageSize, SectorSize)
		return SectorSize, nil
	case fitsSubchannel:
		common.LogDebug(common.DebugSectorSizeDetected, SectorWithSubchannelSize, imageSize)
		return SectorWithSubchannelSize, nil
	case fitsChannel:
		common.LogDebug(common.DebugSectorSizeDetected, SectorSize, imageSize)
		return SectorSize, nil
	default:
		return 0, fmt.Errorf("%w: image size %d is not a multiple of %d or %d",
			ErrBufferSize, imageSize, SectorSize, SectorWithSubchannelSize)
	}
}

// NewSectorReader reads sectors of sectorSize bytes from src, which holds
// size bytes. A sectorSize of 0 detects the size from the length.
func NewSectorReader(src io.ReaderAt, size int64, sectorSize int) (*SectorReader, error) {
	if sectorSize == 0 {
		detected, err := DetectSectorSize(size)
		if err != nil {
			return nil, err
		}
		sectorSize = detected
	}
	if sectorSize != SectorSize && sectorSize != SectorWithSubchannelSize {
		return nil, fmt.Errorf("%w: unsupported sector size %d", ErrBufferSize, sectorSize)
	}
	if trailing := size % int64(sectorSize); trailing != 0 {
		common.LogWarn(common.WarnTrailingBytes, trailing)
	}

	return &SectorReader{
		src:          src,
		sectorSize:   sectorSize,
		totalSectors: size / int64(sectorSize),
		sectorBuffer: make([]byte, sectorSize),
	}, nil
}

// OpenSectorReader opens an image file
func OpenSectorReader(filename string, sectorSize int) (*SectorReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	r, err := NewSectorReader(file, fileInfo.Size(), sectorSize)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.closer = file
	return r, nil
}

// Close releases the underlying file, if the reader opened one
func (r *SectorReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// SectorSize returns the size of each sector in bytes
func (r *SectorReader) SectorSize() int {
	return r.sectorSize
}

// TotalSectors returns the number of whole sectors in the image
func (r *SectorReader) TotalSectors() int64 {
	return r.totalSectors
}

// SeekToSector positions the reader so the next ReadSector returns sector lba
func (r *SectorReader) SeekToSector(lba int64) error {
	if lba >= r.totalSectors || lba < 0 {
		return fmt.Errorf("LBA %d out of bounds (total: %d)", lba, r.totalSectors)
	}
	r.currentSector = lba
	return nil
}

// ReadSector returns the next sector and its index in the image. The
// returned slice is reused by the next call. io.EOF marks the end.
func (r *SectorReader) ReadSector() (int64, []byte, error) {
	if r.currentSector >= r.totalSectors {
		return r.currentSector, nil, io.EOF
	}

	lba := r.currentSector
	offset := lba * int64(r.sectorSize)
	n, err := r.src.ReadAt(r.sectorBuffer, offset)
	if err != nil && !(err == io.EOF && n == r.sectorSize) {
		return lba, nil, common.FormatError(common.ErrFailedToReadSector, err)
	}
	r.currentSector++
	return lba, r.sectorBuffer, nil
}
