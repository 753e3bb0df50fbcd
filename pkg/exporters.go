package pkg

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hansbonini/cdverify/pkg/common"
)

// YAMLReportExporter writes verification reports as YAML
type YAMLReportExporter struct{}

// NewYAMLReportExporter creates a new YAML report exporter
func NewYAMLReportExporter() *YAMLReportExporter {
	return &YAMLReportExporter{}
}

// ExportReport encodes report to writer
func (e *YAMLReportExporter) ExportReport(report *VerificationReport, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// ExportReportFile writes report to path with exporter
func ExportReportFile(exporter ReportExporter, report *VerificationReport, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer closeOutput(file, &err)

	if err := exporter.ExportReport(report, file); err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}
	return nil
}

// closeOutput closes a file opened for writing and reports the close
// error through err unless err already holds one
func closeOutput(file io.Closer, err *error) {
	if cerr := file.Close(); cerr != nil && *err == nil {
		*err = common.FormatError(common.ErrFailedToCloseOutputFile, cerr)
	}
}

// LoadReport reads a report written by YAMLReportExporter
func LoadReport(reader io.Reader) (*VerificationReport, error) {
	report := &VerificationReport{}
	if err := yaml.NewDecoder(reader).Decode(report); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return report, nil
}
