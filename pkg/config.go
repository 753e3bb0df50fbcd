package pkg

import (
	"fmt"
	"os"

	"github.com/hansbonini/cdverify/pkg/cdrom"
	"github.com/hansbonini/cdverify/pkg/common"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the verify command
type Config struct {
	SectorSize int    `yaml:"sector_size"` // 0 detects from the image size
	VerifyEDC  bool   `yaml:"verify_edc"`
	Report     string `yaml:"report"`     // YAML report path, empty for none
	MaxListed  int    `yaml:"max_listed"` // 0 lists every non-valid sector
}

// DefaultConfig returns the settings used without a configuration file
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToLoadConfig, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, common.FormatError(common.ErrFailedToParseConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, common.FormatError(common.ErrFailedToLoadConfig, err)
	}

	common.LogDebug(common.InfoConfigLoaded, path)
	return cfg, nil
}

// Validate checks the configured values
func (c *Config) Validate() error {
	switch c.SectorSize {
	case 0, cdrom.SectorSize, cdrom.SectorWithSubchannelSize:
	default:
		return fmt.Errorf("sector_size must be 0, %d or %d, got %d",
			cdrom.SectorSize, cdrom.SectorWithSubchannelSize, c.SectorSize)
	}
	if c.MaxListed < 0 {
		return fmt.Errorf("max_listed must not be negative, got %d", c.MaxListed)
	}
	return nil
}
