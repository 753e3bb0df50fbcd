// Package pkg provides the processors behind the cdverify commands.
// This file contains the disc image verifier.
package pkg

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hansbonini/cdverify/pkg/cdrom"
	"github.com/hansbonini/cdverify/pkg/common"
)

// ImageVerifier checks every sector of a raw disc image
type ImageVerifier struct {
	checker  SectorChecker
	config   *Config
	exporter ReportExporter
}

// NewImageVerifier creates a verifier for the given settings
func NewImageVerifier(cfg *Config) *ImageVerifier {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ImageVerifier{
		checker:  cdrom.NewChecker(cdrom.WithEDC(cfg.VerifyEDC)),
		config:   cfg,
		exporter: NewYAMLReportExporter(),
	}
}

// Process verifies inputFile and writes the report if one is configured
func (v *ImageVerifier) Process(inputFile string) (*VerificationReport, error) {
	report, err := v.VerifyFile(inputFile)
	if err != nil {
		return nil, err
	}

	if v.config.Report != "" {
		if err := ExportReportFile(v.exporter, report, v.config.Report); err != nil {
			return report, err
		}
		common.LogInfo(common.InfoReportWritten, v.config.Report)
	}
	return report, nil
}

// VerifyFile opens and verifies a disc image
func (v *ImageVerifier) VerifyFile(inputFile string) (*VerificationReport, error) {
	reader, err := cdrom.OpenSectorReader(inputFile, v.config.SectorSize)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenImage, err)
	}
	defer reader.Close()

	common.LogInfo(common.InfoImageOpened, filepath.Base(inputFile), reader.TotalSectors(), reader.SectorSize())
	if v.config.VerifyEDC {
		common.LogInfo(common.InfoEdcVerification)
	}

	report, err := v.Verify(reader)
	if err != nil {
		return nil, err
	}
	report.Image = inputFile
	return report, nil
}

// Verify checks every remaining sector of reader
func (v *ImageVerifier) Verify(reader *cdrom.SectorReader) (*VerificationReport, error) {
	report := &VerificationReport{
		SectorSize:   reader.SectorSize(),
		TotalSectors: reader.TotalSectors(),
		EdcVerified:  v.config.VerifyEDC,
	}
	listed := int64(0)

	for {
		index, sector, err := reader.ReadSector()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		verdict := v.checker.Check(sector)
		msf, err := sectorMSF(index)
		if err != nil {
			return nil, err
		}
		common.LogDebug(common.DebugSectorVerdict, index, msf, verdict)

		switch verdict {
		case cdrom.Valid:
			report.Valid++
			continue
		case cdrom.Invalid:
			report.Invalid++
		default:
			report.Indeterminate++
		}

		listed++
		if v.config.MaxListed > 0 && listed > int64(v.config.MaxListed) {
			report.Truncated = true
			continue
		}
		result := SectorResult{Index: index, MSF: msf, Verdict: verdict}
		if cdrom.HasSync(sector) {
			result.Address = cdrom.ParseHeader(sector).String()
		}
		report.Sectors = append(report.Sectors, result)
	}

	if report.Truncated {
		common.LogWarn(common.WarnBadSectorsTruncated, v.config.MaxListed, listed)
	}
	common.LogInfo(common.InfoVerificationDone, report.TotalSectors, report.Valid, report.Invalid, report.Indeterminate)
	if report.Invalid == 0 {
		common.LogInfo(common.InfoNoInvalidSectors)
	}
	return report, nil
}

func sectorMSF(index int64) (string, error) {
	lba, err := common.SafeInt64ToUint32(index)
	if err != nil {
		return "", fmt.Errorf("sector %d: %w", index, err)
	}
	return common.LBAToMSF(lba), nil
}
