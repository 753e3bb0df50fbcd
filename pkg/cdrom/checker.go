package cdrom

import "errors"

var (
	// ErrBufferSize is returned when a buffer does not have the length an
	// operation requires
	ErrBufferSize = errors.New("cdrom: invalid buffer size")
	// ErrUnsupportedMode is returned when generating checksums for a sector
	// whose mode carries none
	ErrUnsupportedMode = errors.New("cdrom: unsupported sector mode")
)

// Checker verifies raw sectors. The zero value uses the default tables and
// does not enforce EDC. A Checker is safe for concurrent use.
type Checker struct {
	t         *Tables
	verifyEDC bool
}

// Option configures a Checker
type Option func(*Checker)

// WithEDC turns an EDC mismatch into an Invalid verdict
func WithEDC(enabled bool) Option {
	return func(c *Checker) {
		c.verifyEDC = enabled
	}
}

// WithTables makes the checker use t instead of the package tables
func WithTables(t *Tables) Option {
	return func(c *Checker) {
		c.t = t
	}
}

// NewChecker creates a checker
func NewChecker(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifiesEDC reports whether EDC mismatches fail a sector
func (c *Checker) VerifiesEDC() bool {
	return c.verifyEDC
}

func (c *Checker) tables() *Tables {
	if c.t == nil {
		return defaultTables
	}
	return c.t
}

// Check dispatches on the buffer length. A 2448-byte buffer is a channel
// sector followed by its subchannel, a 2352-byte buffer is a channel
// sector only, anything else is Indeterminate.
func (c *Checker) Check(buffer []byte) Verdict {
	switch len(buffer) {
	case SectorWithSubchannelSize:
		channel := c.CheckChannel(buffer[:SectorSize])
		subchannel := c.checkSubchannelAt(buffer[SectorSize:], channelAddress(buffer[:SectorSize]))
		return Combine(channel, subchannel)
	case SectorSize:
		return c.CheckChannel(buffer)
	default:
		return Indeterminate
	}
}

// CheckChannel verifies the ECC (and EDC if enabled) of a 2352-byte sector
func (c *Checker) CheckChannel(channel []byte) Verdict {
	if len(channel) != SectorSize {
		return Indeterminate
	}
	return c.checkChannel(channel)
}

// CheckSubchannel verifies the CRCs of 96 raw subchannel bytes.
// Log messages name the sector by the Q frame's absolute time.
func (c *Checker) CheckSubchannel(raw []byte) Verdict {
	return c.checkSubchannelAt(raw, "")
}

// checkSubchannelAt verifies raw subchannel bytes of the sector at address,
// falling back to the Q address when address is empty
func (c *Checker) checkSubchannelAt(raw []byte, address string) Verdict {
	sub, err := DeinterleaveSubchannel(raw)
	if err != nil {
		return Indeterminate
	}
	if address == "" {
		address = sub.Address()
	}
	return c.tables().checkSubchannel(sub, address)
}

// channelAddress returns the header address of a data sector, or "" when
// the channel has no sync pattern
func channelAddress(channel []byte) string {
	if !HasSync(channel) {
		return ""
	}
	return ParseHeader(channel).String()
}

// CheckSector verifies a buffer with a default Checker
func CheckSector(buffer []byte) Verdict {
	var c Checker
	return c.Check(buffer)
}
