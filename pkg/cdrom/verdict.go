package cdrom

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Verdict is the outcome of a sector or subchannel check
type Verdict int

// Verdicts. The zero value is Indeterminate.
const (
	Indeterminate Verdict = iota // not a recognised sector or nothing to check
	Valid
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "indeterminate"
	}
}

// MarshalYAML writes the verdict as its name
func (v Verdict) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// UnmarshalYAML reads a verdict written by MarshalYAML
func (v *Verdict) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseVerdict(value.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict converts a verdict name back to a Verdict
func ParseVerdict(name string) (Verdict, error) {
	for _, v := range []Verdict{Indeterminate, Valid, Invalid} {
		if v.String() == name {
			return v, nil
		}
	}
	return Indeterminate, fmt.Errorf("unknown verdict %q", name)
}

// Combine merges the channel and subchannel verdicts of one sector.
// Either Invalid wins; otherwise any Valid makes the sector Valid.
func Combine(channel, subchannel Verdict) Verdict {
	switch {
	case channel == Invalid || subchannel == Invalid:
		return Invalid
	case channel == Valid || subchannel == Valid:
		return Valid
	default:
		return Indeterminate
	}
}
