package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	consts "github.com/minhnv203/toolvet/internal/shared/constants"
)

var cfgFile string
var logger *zap.SugaredLogger

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	TimeoutSecs      int
	Concurrency      int
	RateLimit        int
	VerboseThreshold int
	SearchRoots      []string
	ResultsDir       string
	NoColor          bool
	ProgressEnabled  bool
	Debug            bool
}

var cliConfig CLIConfig

var rootCmd = &cobra.Command{
	Use:   "toolvet",
	Short: "Read-only diagnostics for installed developer tools and their versions",
	Long: `toolvet probes the local machine for developer tools and reports which are
installed and at what version. Discovery is layered: PATH execution first,
then registry lookup, filesystem search and file-metadata reads for tools
that install outside PATH or must never be executed. toolvet never installs,
modifies or removes anything.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".toolvet")
			viper.SetConfigType("yaml")
		}
		viper.SetDefault("timeout_secs", int(consts.DefaultProbeTimeout.Seconds()))
		viper.SetDefault("concurrency", consts.DefaultConcurrency)
		viper.SetDefault("rate_limit", consts.DefaultRateLimit)
		viper.SetDefault("verbose_threshold", consts.DefaultVerboseThreshold)

		_ = viper.ReadInConfig()

		if !cmd.Flags().Changed("timeout") {
			cliConfig.TimeoutSecs = viper.GetInt("timeout_secs")
		}
		if !cmd.Flags().Changed("concurrency") {
			cliConfig.Concurrency = viper.GetInt("concurrency")
		}
		cliConfig.RateLimit = viper.GetInt("rate_limit")
		cliConfig.VerboseThreshold = viper.GetInt("verbose_threshold")
		cliConfig.SearchRoots = viper.GetStringSlice("search_roots")
		cliConfig.ResultsDir = viper.GetString("results_dir")
		if cliConfig.ResultsDir == "" {
			if dataDir, err := getDataDir(); err == nil {
				cliConfig.ResultsDir = filepath.Join(dataDir, "results")
			} else {
				cliConfig.ResultsDir = "./results"
			}
		}
		if viper.GetBool("no_color") {
			cliConfig.NoColor = true
		}
		cliConfig.ProgressEnabled = viper.GetBool("progress")
		if cliConfig.NoColor {
			color.NoColor = true
		}

		// init logger
		var l *zap.Logger
		var err error
		if cliConfig.Debug {
			l, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			l, err = cfg.Build()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.toolvet.yaml)")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&cliConfig.TimeoutSecs, "timeout", int(consts.DefaultProbeTimeout.Seconds()), "per-probe timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&cliConfig.Concurrency, "concurrency", consts.DefaultConcurrency, "number of probes to run in parallel (1 = sequential)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
