// Package common provides common utilities for CD-ROM operations.
// This file contains functions for MSF conversion and BCD sector addresses.
package common

import "fmt"

// Pregap is the number of frames before LBA 0 (two seconds).
const Pregap = 150

// FramesPerSecond and SecondsPerMinute define MSF addressing.
const (
	FramesPerSecond  = 75
	SecondsPerMinute = 60
)

// LBAToMSF converts LBA (Logical Block Address) to MSF (Minutes:Seconds:Frames) format
// LBA to MSF conversion: LBA + 150 (pregap)
func LBAToMSF(lba uint32) string {
	totalFrames := lba + Pregap

	minutes := totalFrames / (SecondsPerMinute * FramesPerSecond)
	seconds := (totalFrames % (SecondsPerMinute * FramesPerSecond)) / FramesPerSecond
	frames := totalFrames % FramesPerSecond

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

// FormatBCDAddress renders a raw sector header address as MM:SS:FF.
// The digits are printed as stored, so a valid BCD address reads naturally.
func FormatBCDAddress(minute, second, frame byte) string {
	return fmt.Sprintf("%02X:%02X:%02X", minute, second, frame)
}

// BCDToInt decodes a packed BCD byte
func BCDToInt(b byte) (int, error) {
	hi, lo := int(b>>4), int(b&0x0F)
	if hi > 9 || lo > 9 {
		return 0, fmt.Errorf("invalid BCD byte 0x%02X", b)
	}
	return hi*10 + lo, nil
}

// MSFToLBA converts a BCD sector header address to an LBA.
// Addresses inside the pregap give negative values.
func MSFToLBA(minute, second, frame byte) (int64, error) {
	m, err := BCDToInt(minute)
	if err != nil {
		return 0, err
	}
	s, err := BCDToInt(second)
	if err != nil {
		return 0, err
	}
	f, err := BCDToInt(frame)
	if err != nil {
		return 0, err
	}
	if s >= SecondsPerMinute || f >= FramesPerSecond {
		return 0, fmt.Errorf("address %s out of range", FormatBCDAddress(minute, second, frame))
	}
	return int64((m*SecondsPerMinute+s)*FramesPerSecond+f) - Pregap, nil
}
