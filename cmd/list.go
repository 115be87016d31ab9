package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhnv203/toolvet/internal/probe"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the probe catalog without executing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		probes := buildProbeCatalog(catalogConfig{
			Timeout:     time.Duration(cliConfig.TimeoutSecs) * time.Second,
			SearchRoots: cliConfig.SearchRoots,
		})

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tPROBE\tTARGET\tSTRATEGY")
		for _, p := range probes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Category, p.Name, p.Target, strategyLabel(p.Strategy))
		}
		tw.Flush()
		fmt.Printf("\n%d probes declared\n", len(probes))
		return nil
	},
}

// strategyLabel names a strategy for catalog listings.
func strategyLabel(s probe.Strategy) string {
	switch s.(type) {
	case nil, probe.ExecStrategy:
		return "exec"
	case probe.DualStrategy:
		return "dual-mode"
	case probe.ChainStrategy:
		return "chain"
	case probe.RegistryStrategy:
		return "registry"
	case probe.SearchStrategy:
		return "search"
	case probe.MetadataStrategy:
		return "file-metadata"
	case probe.FeatureStrategy:
		return "os-feature"
	default:
		return "custom"
	}
}
