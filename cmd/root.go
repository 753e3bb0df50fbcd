// Package cmd provides command-line interface functionality for cdverify.
// cdverify checks the error correction and detection codes of raw CD
// images and protects arbitrary files with Reed-Solomon codes.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/cdverify/pkg/common"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the cdverify application.
var rootCmd = &cobra.Command{
	Use:   "cdverify",
	Short: "Verify raw CD images and Reed-Solomon protected files",
	Long: `cdverify - Verification tools for raw CD images.

Currently supports:
  - Raw CD images with 2352-byte sectors or 2448-byte sectors with subchannel
    (ECC P/Q, optional EDC, Q subchannel and CD-Text CRC)
  - Reed-Solomon RS(255,k) protection of arbitrary files

Examples:
  cdverify verify disc.bin
  cdverify verify -v --edc -r report.yaml disc.bin
  cdverify rs encode data.bin data.cdrs
  cdverify rs decode data.cdrs data.bin

Use 'cdverify [command] --help' for more information about a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setVerbose enables debug logging when the command's verbose flag is set
func setVerbose(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("error getting verbose flag: %w", err)
	}
	common.SetVerboseMode(verbose)
	return nil
}
