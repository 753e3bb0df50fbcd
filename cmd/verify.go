// Package cmd provides command-line interface for CD image verification.
// This file contains the verify command.
package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hansbonini/cdverify/pkg"
	"github.com/hansbonini/cdverify/pkg/cdrom"
	"github.com/spf13/cobra"
)

// verifyCmd checks every sector of a raw CD image.
// It reports the number of valid, invalid and indeterminate sectors and
// optionally writes the list of non-valid sectors to a YAML report.
var verifyCmd = &cobra.Command{
	Use:   "verify [image_file]",
	Short: "Verify the sectors of a raw CD image",
	Long: `Verify the sectors of a raw CD image (.bin format).

Each sector is classified as:
  - valid          ECC (and EDC with --edc) or subchannel CRCs match
  - invalid        a check failed
  - indeterminate  not a data sector and no subchannel to check

Sector size is detected from the image size unless given with -s
(2352 for channel data only, 2448 with 96 bytes of raw subchannel).

Settings may be read from a YAML file (-c):
  sector_size: 2448
  verify_edc: true
  report: report.yaml
  max_listed: 100

Flags given on the command line override the file.

Example:
  cdverify verify disc.bin
  cdverify verify -s 2448 --edc -r report.yaml disc.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		if err := setVerbose(cmd); err != nil {
			return err
		}

		cfg, err := verifyConfig(cmd)
		if err != nil {
			return err
		}

		verifier := pkg.NewImageVerifier(cfg)

		fmt.Printf("Verifying CD image file: %s\n", inputFile)
		report, err := verifier.Process(inputFile)
		if err != nil {
			return fmt.Errorf("failed to verify CD image file: %w", err)
		}

		printSummary(cmd.OutOrStdout(), report)
		if report.Invalid > 0 {
			return fmt.Errorf("%d invalid sectors", report.Invalid)
		}
		return nil
	},
}

// verifyConfig merges the optional configuration file with the flags
func verifyConfig(cmd *cobra.Command) (*pkg.Config, error) {
	cfg := pkg.DefaultConfig()

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if cfg, err = pkg.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sector-size") {
		if cfg.SectorSize, err = flags.GetInt("sector-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("edc") {
		if cfg.VerifyEDC, err = flags.GetBool("edc"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("report") {
		if cfg.Report, err = flags.GetString("report"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-listed") {
		if cfg.MaxListed, err = flags.GetInt("max-listed"); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// printSummary writes the colored verdict counts and the non-valid sectors
func printSummary(w io.Writer, report *pkg.VerificationReport) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	cyan.Fprintf(w, "\n%d sectors of %d bytes\n", report.TotalSectors, report.SectorSize)
	green.Fprintf(w, "  valid:         %d\n", report.Valid)
	red.Fprintf(w, "  invalid:       %d\n", report.Invalid)
	yellow.Fprintf(w, "  indeterminate: %d\n", report.Indeterminate)

	for _, s := range report.Sectors {
		c := yellow
		if s.Verdict == cdrom.Invalid {
			c = red
		}
		c.Fprintf(w, "  sector %d (%s): %s\n", s.Index, s.MSF, s.Verdict)
	}
	if report.Truncated {
		yellow.Fprintln(w, "  ...")
	}
}

// init initializes the verify command with its flags.
func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().IntP("sector-size", "s", 0, "Sector size in bytes (2352 or 2448, 0 to detect)")
	verifyCmd.Flags().Bool("edc", false, "Fail sectors whose EDC does not match")
	verifyCmd.Flags().StringP("report", "r", "", "Write a YAML report of non-valid sectors to this file")
	verifyCmd.Flags().IntP("max-listed", "m", 0, "List at most this many non-valid sectors (0 for all)")
	verifyCmd.Flags().StringP("config", "c", "", "YAML configuration file")
	verifyCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output with per-sector details")
}
