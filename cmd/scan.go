package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhnv203/toolvet/internal/probe"
	consts "github.com/minhnv203/toolvet/internal/shared/constants"
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Probe the machine for installed tools and report their versions",
	Long: `Run every declared probe and report, per tool, whether it is installed and
at what version. Probes run sequentially in declaration order by default;
--concurrency trades the streamed output order for speed. The run never
aborts on a single probe failure, and a partial report is still printed if
the engine itself hits an unexpected error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		only, _ := cmd.Flags().GetString("only")
		output, _ := cmd.Flags().GetString("output")
		// A bare filename lands in the configured results directory.
		if output != "" && output == filepath.Base(output) {
			output = filepath.Join(cliConfig.ResultsDir, output)
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		showProgress, _ := cmd.Flags().GetBool("progress")
		showProgress = showProgress || cliConfig.ProgressEnabled

		probes := buildProbeCatalog(catalogConfig{
			Timeout:     time.Duration(cliConfig.TimeoutSecs) * time.Second,
			SearchRoots: cliConfig.SearchRoots,
		})
		if only != "" {
			var err error
			probes, err = filterProbes(probes, only)
			if err != nil {
				return err
			}
		}

		return runScan(cmd.Context(), probes, scanOptions{
			Output:       output,
			Quiet:        quiet,
			ShowProgress: showProgress,
		})
	},
}

type scanOptions struct {
	Output       string
	Quiet        bool
	ShowProgress bool
}

// runScan executes the probes and always renders whatever was accumulated:
// the terminal title is restored and the summary printed on every exit path,
// including a panic escaping the engine (a defect in toolvet, not in a
// probed tool).
func runScan(ctx context.Context, probes []probe.Probe, opts scanOptions) (err error) {
	store := probe.NewStore()
	startedAt := time.Now().UTC()

	setTerminalTitle("toolvet: scanning...")
	defer resetTerminalTitle()

	var progress *progressPrinter
	if opts.ShowProgress {
		progress = newProgressPrinter(len(probes))
		progress.Start()
	}

	defer func() {
		if rec := recover(); rec != nil {
			if logger != nil {
				logger.Errorf("unexpected fatal error during scan: %v", rec)
			}
			err = fmt.Errorf("scan aborted by internal error: %v", rec)
		}
		if progress != nil {
			progress.Stop()
		}
		renderSummary(store)
		if opts.Output != "" {
			if werr := writeResults(opts.Output, startedAt, store); werr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write results: %v\n", werr)
			} else {
				fmt.Printf("\n%s %s\n", colorInfo("Results written:"), opts.Output)
			}
		}
	}()

	runner := &probe.Runner{
		Concurrency: cliConfig.Concurrency,
		RateLimit:   cliConfig.RateLimit,
		Timeout:     time.Duration(cliConfig.TimeoutSecs) * time.Second,
		Threshold:   cliConfig.VerboseThreshold,
		Logger:      logger,
		OnResult: func(name string, status probe.VersionStatus) {
			if progress != nil {
				progress.Increment(status)
				return
			}
			if !opts.Quiet {
				fmt.Println(formatStatusLine(name, status))
			}
		},
	}
	runner.Run(ctx, probes, store)
	return nil
}

// filterProbes restricts the catalog to a comma-separated list of probe
// names, matched case-insensitively.
func filterProbes(probes []probe.Probe, only string) ([]probe.Probe, error) {
	wanted := make(map[string]bool)
	for _, name := range strings.Split(only, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			wanted[strings.ToLower(trimmed)] = false
		}
	}

	var out []probe.Probe
	for _, p := range probes {
		key := strings.ToLower(p.Name)
		if _, ok := wanted[key]; ok {
			wanted[key] = true
			out = append(out, p)
		}
	}
	for name, found := range wanted {
		if !found {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnknownProbe, name)
		}
	}
	return out, nil
}

// renderSummary prints the final report: every stored entry in lexicographic
// order, classified into ok / warning / missing buckets.
func renderSummary(store *probe.Store) {
	if store.Len() == 0 {
		return
	}

	var ok, warn, missing []string
	entries := store.Snapshot()
	for _, name := range store.Names() {
		switch entries[name].Kind {
		case probe.KindMissing:
			missing = append(missing, name)
		case probe.KindWarning:
			warn = append(warn, name)
		default:
			ok = append(ok, name)
		}
	}

	fmt.Println()
	fmt.Println(colorInfo("=== Summary ==="))
	for _, name := range ok {
		fmt.Println(formatStatusLine(name, entries[name]))
	}
	for _, name := range warn {
		fmt.Println(formatStatusLine(name, entries[name]))
	}
	for _, name := range missing {
		fmt.Println(formatStatusLine(name, entries[name]))
	}
	fmt.Printf("\n%d ok, %d warnings, %d missing (of %d probes)\n",
		len(ok), len(warn), len(missing), store.Len())
}

// writeResults persists a scan for later `toolvet report` rendering.
func writeResults(path string, startedAt time.Time, store *probe.Store) error {
	out := buildRunOutput(startedAt, time.Now().UTC(), store)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, consts.DefaultFilePerm)
}

// Terminal title handling: the scan sets a transient title and must restore
// a sane one on every exit path, fatal errors included.
func setTerminalTitle(title string) {
	fmt.Fprintf(os.Stdout, "\x1b]0;%s\a", title)
}

func resetTerminalTitle() {
	fmt.Fprint(os.Stdout, "\x1b]0;\a")
}

func init() {
	scanCmd.Flags().String("only", "", "comma-separated probe names to run (default: all)")
	scanCmd.Flags().String("output", "", "write results JSON to this path")
	scanCmd.Flags().Bool("quiet", false, "suppress per-probe lines; print only the summary")
	scanCmd.Flags().Bool("progress", false, "show a progress line instead of per-probe output")
}
