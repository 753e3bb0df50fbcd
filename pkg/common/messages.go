package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToOpenImage        = "failed to open CD image"
	ErrFailedToReadSector       = "failed to read sector"
	ErrFailedToDetectSectorSize = "failed to detect sector size"
	ErrFailedToLoadConfig       = "failed to load configuration"
	ErrFailedToParseConfig      = "failed to parse configuration YAML"
	ErrFailedToWriteReport      = "failed to write verification report"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToCloseOutputFile  = "failed to close output file"
	ErrFailedToReadInputFile    = "failed to read input file"
	ErrFailedToBuildCodec       = "failed to build Reed-Solomon codec"
	ErrFailedToEncodeBlock      = "failed to encode Reed-Solomon block"
	ErrUncorrectableBlock       = "uncorrectable Reed-Solomon block"
	ErrInvalidRSHeader          = "invalid protected file header"
)

// Info messages
const (
	InfoImageOpened       = "Opened CD image %s: %d sectors of %d bytes"
	InfoVerificationDone  = "Verified %d sectors: %d valid, %d invalid, %d indeterminate"
	InfoReportWritten     = "Verification report written to: %s"
	InfoBlocksEncoded     = "Encoded %d bytes into %d RS(%d,%d) blocks"
	InfoBlocksDecoded     = "Decoded %d RS(%d,%d) blocks, %d symbols corrected"
	InfoConfigLoaded      = "Loaded configuration from: %s"
	InfoEdcVerification   = "EDC verification enabled"
	InfoNoInvalidSectors  = "No invalid sectors found"
	InfoAllBlocksVerified = "All blocks verified without corrections"
)

// Debug messages
const (
	DebugDataSector         = "Data sector, address %s"
	DebugNoSyncPattern      = "Sector has no sync pattern, not a data sector"
	DebugMode0NonZero       = "Mode 0 sector at address %s has non-zero byte at offset 0x%03X"
	DebugMode1Reserved      = "Mode 1 sector at address %s has data in reserved bytes"
	DebugEccPFailed         = "%s sector at address %s fails ECC P check"
	DebugEccQFailed         = "%s sector at address %s fails ECC Q check"
	DebugEdcMismatch        = "%s sector at address %s has EDC 0x%08X, computed 0x%08X"
	DebugSubheaderMismatch  = "Subheader copies differ in mode 2 sector at address %s"
	DebugUnknownMode        = "Unknown mode 0x%02X in sector at address %s"
	DebugQCrcMismatch       = "Q subchannel at address %s has CRC 0x%04X, expected 0x%04X"
	DebugCdTextCrcMismatch  = "CD-Text pack %d at address %s has CRC 0x%04X, expected 0x%04X"
	DebugSectorVerdict      = "Sector %d (%s): %s"
	DebugBlockCorrected     = "Block %d: corrected %d symbols"
	DebugSectorSizeDetected = "Detected sector size %d from image size %d"
	DebugPaddingAdded       = "Last block padded with %d zero bytes"
)

// Warning messages
const (
	WarnAmbiguousSectorSize = "Image size %d is a multiple of both 2352 and 2448, assuming %d"
	WarnTrailingBytes       = "Image has %d trailing bytes after the last whole sector"
	WarnBadSectorsTruncated = "Report lists the first %d of %d non-valid sectors"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
