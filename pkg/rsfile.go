// Package pkg provides Reed-Solomon protection of arbitrary files.
// This file contains the block codec behind the rs encode/decode commands.
package pkg

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/cdverify/pkg/common"
	"github.com/hansbonini/cdverify/pkg/reedsolomon"
)

// Protected file layout
const (
	RSMagic        = "CDRS"
	RSBlockSize    = 255 // one RS(255,k) codeword per block, parity first
	RSSymbolSize   = 8
	DefaultRSDataK = 223
)

// RSFileCodec protects files with GF(256) RS(255,k) blocks
type RSFileCodec struct {
	codec *reedsolomon.Codec
}

// NewRSFileCodec creates a codec storing k data bytes per block
func NewRSFileCodec(k int) (*RSFileCodec, error) {
	codec, err := reedsolomon.New(RSBlockSize, k, RSSymbolSize)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildCodec, err)
	}
	return &RSFileCodec{codec: codec}, nil
}

// K returns the number of data bytes per block
func (c *RSFileCodec) K() int {
	return c.codec.K()
}

// Encode reads length bytes from in and writes the header and the
// protected blocks to out, one block at a time.
// It returns the number of blocks written.
func (c *RSFileCodec) Encode(in io.Reader, length int64, out io.Writer) (int, error) {
	k, err := common.SafeIntToUint16(c.K())
	if err != nil {
		return 0, err
	}
	dataLength, err := common.SafeInt64ToUint32(length)
	if err != nil {
		return 0, err
	}

	header := RSFileHeader{K: k, DataLength: dataLength}
	copy(header.Magic[:], RSMagic)
	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	blockData := make([]byte, c.K())
	blocks := 0
	for remaining := int64(dataLength); remaining > 0; {
		n := c.K()
		if remaining < int64(n) {
			n = int(remaining)
			clear(blockData[n:])
			common.LogDebug(common.DebugPaddingAdded, c.K()-n)
		}
		if _, err := io.ReadFull(in, blockData[:n]); err != nil {
			return blocks, common.FormatError(common.ErrFailedToReadInputFile, err)
		}

		parity, err := c.codec.EncodeBytes(blockData)
		if err != nil {
			return blocks, common.FormatError(common.ErrFailedToEncodeBlock, err)
		}
		if _, err := out.Write(parity); err != nil {
			return blocks, err
		}
		if _, err := out.Write(blockData); err != nil {
			return blocks, err
		}
		remaining -= int64(n)
		blocks++
	}

	common.LogInfo(common.InfoBlocksEncoded, dataLength, blocks, RSBlockSize, c.K())
	return blocks, nil
}

// readHeader parses and validates the protected file header
func (c *RSFileCodec) readHeader(in io.Reader) (uint32, error) {
	fr := common.NewFieldReader(in)
	fr.Magic(RSMagic)
	k := fr.Uint16("k")
	fr.Skip("reserved", 2)
	length := fr.Uint32("data length")
	if err := fr.Err(); err != nil {
		return 0, common.FormatError(common.ErrInvalidRSHeader, err)
	}

	if int(k) != c.K() {
		return 0, common.FormatErrorString(common.ErrInvalidRSHeader, "file uses k=%d, codec uses k=%d", k, c.K())
	}
	return length, nil
}

// Decode corrects every block of in and writes the original data to out
func (c *RSFileCodec) Decode(in io.Reader, out io.Writer) (RSDecodeStats, error) {
	var stats RSDecodeStats

	remaining, err := c.readHeader(in)
	if err != nil {
		return stats, err
	}

	parityLength := c.codec.ParityLength()
	blocks := common.NewFieldReader(in)
	for remaining > 0 {
		block := blocks.Bytes("block", RSBlockSize)
		if err := blocks.Err(); err != nil {
			return stats, common.FormatError(common.ErrFailedToReadInputFile, err)
		}

		corrected, err := c.codec.DecodeBytes(block, nil)
		if err != nil {
			return stats, fmt.Errorf("%s %d: %w", common.ErrUncorrectableBlock, stats.Blocks, err)
		}
		if corrected > 0 {
			common.LogDebug(common.DebugBlockCorrected, stats.Blocks, corrected)
		}

		data := block[parityLength:]
		if uint32(len(data)) > remaining {
			data = data[:remaining]
		}
		if _, err := out.Write(data); err != nil {
			return stats, err
		}

		remaining -= uint32(len(data))
		stats.Blocks++
		stats.Corrected += corrected
	}

	common.LogInfo(common.InfoBlocksDecoded, stats.Blocks, RSBlockSize, c.K(), stats.Corrected)
	if stats.Corrected == 0 {
		common.LogDebug(common.InfoAllBlocksVerified)
	}
	return stats, nil
}

// EncodeFile protects inputFile into outputFile
func (c *RSFileCodec) EncodeFile(inputFile, outputFile string) (blocks int, err error) {
	in, err := os.Open(inputFile)
	if err != nil {
		return 0, common.FormatError(common.ErrFailedToReadInputFile, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, common.FormatError(common.ErrFailedToReadInputFile, err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return 0, common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer closeOutput(out, &err)

	w := bufio.NewWriter(out)
	blocks, err = c.Encode(bufio.NewReader(in), info.Size(), w)
	if err != nil {
		return blocks, err
	}
	return blocks, w.Flush()
}

// DecodeFile recovers outputFile from the protected inputFile
func (c *RSFileCodec) DecodeFile(inputFile, outputFile string) (stats RSDecodeStats, err error) {
	in, err := os.Open(inputFile)
	if err != nil {
		return RSDecodeStats{}, common.FormatError(common.ErrFailedToReadInputFile, err)
	}
	defer in.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		return RSDecodeStats{}, common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer closeOutput(out, &err)

	w := bufio.NewWriter(out)
	stats, err = c.Decode(bufio.NewReader(in), w)
	if err != nil {
		return stats, err
	}
	return stats, w.Flush()
}
