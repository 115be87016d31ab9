package cmd

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/minhnv203/toolvet/internal/probe"
	consts "github.com/minhnv203/toolvet/internal/shared/constants"
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

//go:embed templates/report.md
var reportTemplateFS embed.FS

var markdownReportTemplate = template.Must(
	template.New("report.md").ParseFS(reportTemplateFS, "templates/report.md"),
)

// RunMetadata describes one completed scan.
type RunMetadata struct {
	Hostname    string    `json:"hostname"`
	Platform    string    `json:"platform"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	TotalProbes int       `json:"total_probes"`
}

// ResultRecord is one probe's final classification in a persisted run.
type ResultRecord struct {
	Name   string              `json:"name"`
	Status probe.VersionStatus `json:"status"`
}

// RunOutput is the persisted form of a scan, consumed by `toolvet report`.
type RunOutput struct {
	Metadata RunMetadata    `json:"metadata"`
	Results  []ResultRecord `json:"results"`
}

func buildRunOutput(startedAt, completedAt time.Time, store *probe.Store) RunOutput {
	hostname, _ := os.Hostname()
	entries := store.Snapshot()
	results := make([]ResultRecord, 0, len(entries))
	for _, name := range store.Names() {
		results = append(results, ResultRecord{Name: name, Status: entries[name]})
	}
	return RunOutput{
		Metadata: RunMetadata{
			Hostname:    hostname,
			Platform:    runtime.GOOS + "/" + runtime.GOARCH,
			StartedAt:   startedAt,
			CompletedAt: completedAt,
			TotalProbes: len(results),
		},
		Results: results,
	}
}

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Render or export a saved scan (table, json, md, pdf)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		output, err := loadRunOutput(args[0])
		if err != nil {
			return err
		}

		format = strings.ToLower(format)
		switch format {
		case "table", "":
			renderResultTable(os.Stdout, output)
			return nil
		case "json":
			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return err
			}
			return writeReport(outPath, "report.json", data)
		case "md":
			content, err := generateMarkdownReport(output)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			return writeReport(outPath, "report.md", []byte(content))
		case "pdf":
			data, err := generatePDFReportBytes(output)
			if err != nil {
				return fmt.Errorf("failed to generate PDF report: %w", err)
			}
			return writeReport(outPath, "report.pdf", data)
		default:
			return fmt.Errorf("%w: %s (must be table, json, md, or pdf)", errs.ErrInvalidFormat, format)
		}
	},
}

func loadRunOutput(path string) (RunOutput, error) {
	var output RunOutput
	data, err := os.ReadFile(path)
	if err != nil {
		return output, fmt.Errorf("%w: %s", errs.ErrNoResults, path)
	}
	if err := json.Unmarshal(data, &output); err != nil {
		return output, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(output.Results) == 0 {
		return output, fmt.Errorf("%w: %s holds no probe results", errs.ErrNoResults, path)
	}
	return output, nil
}

func writeReport(outPath, defaultName string, data []byte) error {
	if outPath == "" {
		outPath = defaultName
	}
	if err := os.WriteFile(outPath, data, consts.DefaultFilePerm); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report generated: %s\n", outPath)
	return nil
}

// renderResultTable prints the aligned summary table for a saved run.
func renderResultTable(w *os.File, output RunOutput) {
	fmt.Fprintf(w, "Scan of %s (%s), %s\n\n",
		output.Metadata.Hostname,
		output.Metadata.Platform,
		output.Metadata.CompletedAt.Format(time.RFC3339))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tSTATUS\tVERSION")
	for _, rec := range sortedResults(output.Results) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Name, statusLabel(rec.Status), rec.Status.Text)
	}
	tw.Flush()

	ok, warn, missing := tallyResults(output.Results)
	fmt.Fprintf(w, "\n%d ok, %d warnings, %d missing (of %d probes)\n",
		ok, warn, missing, output.Metadata.TotalProbes)
}

func sortedResults(results []ResultRecord) []ResultRecord {
	out := make([]ResultRecord, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func statusLabel(status probe.VersionStatus) string {
	switch status.Kind {
	case probe.KindMissing:
		return colorError("missing")
	case probe.KindWarning:
		return colorWarn("warning")
	default:
		return colorSuccess("ok")
	}
}

func tallyResults(results []ResultRecord) (ok, warn, missing int) {
	for _, rec := range results {
		switch rec.Status.Kind {
		case probe.KindMissing:
			missing++
		case probe.KindWarning:
			warn++
		default:
			ok++
		}
	}
	return ok, warn, missing
}

// templateData feeds the markdown template.
type templateData struct {
	Metadata RunMetadata
	Found    []ResultRecord
	Warnings []ResultRecord
	Missing  []ResultRecord
	OKCount  int
	WarnRows int
	MissRows int
}

func buildTemplateData(output RunOutput) templateData {
	data := templateData{Metadata: output.Metadata}
	for _, rec := range sortedResults(output.Results) {
		switch rec.Status.Kind {
		case probe.KindMissing:
			data.Missing = append(data.Missing, rec)
		case probe.KindWarning:
			data.Warnings = append(data.Warnings, rec)
		default:
			data.Found = append(data.Found, rec)
		}
	}
	data.OKCount = len(data.Found)
	data.WarnRows = len(data.Warnings)
	data.MissRows = len(data.Missing)
	return data
}

func generateMarkdownReport(output RunOutput) (string, error) {
	var sb strings.Builder
	if err := markdownReportTemplate.Execute(&sb, buildTemplateData(output)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func generatePDFReportBytes(output RunOutput) ([]byte, error) {
	data := buildTemplateData(output)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Tool Inventory Report", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Host: %s (%s)", data.Metadata.Hostname, data.Metadata.Platform), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Completed: %s", data.Metadata.CompletedAt.Format(time.RFC3339)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%d ok, %d warnings, %d missing (of %d probes)",
		data.OKCount, data.WarnRows, data.MissRows, data.Metadata.TotalProbes), "", 1, "", false, 0, "")
	pdf.Ln(4)

	section := func(title string, rows []ResultRecord, textFor func(ResultRecord) string) {
		if len(rows) == 0 {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, rec := range rows {
			pdf.CellFormat(0, 5, textFor(rec), "", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Installed", data.Found, func(rec ResultRecord) string {
		return fmt.Sprintf("%s: %s", rec.Name, rec.Status.Text)
	})
	section("Warnings", data.Warnings, func(rec ResultRecord) string {
		return fmt.Sprintf("%s (%s)", rec.Name, rec.Status.Text)
	})
	section("Missing", data.Missing, func(rec ResultRecord) string {
		return rec.Name
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func init() {
	reportCmd.Flags().String("format", "table", "output format: table, json, md, or pdf")
	reportCmd.Flags().String("out", "", "output file path (default: report.<format> in the working directory)")
}
