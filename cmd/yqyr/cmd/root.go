// Package cmd provides the commands of the yqyr CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/logger"
)

// Version is the CLI version, overridden at build time with -ldflags.
var Version = "1.0.0"

// options are the flags shared by every command.
type options struct {
	dataFile        string
	verbose         bool
	maxApplications int
	heapLimitMB     int

	log zerolog.Logger
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "yqyr",
		Short: "Quote carrier-imposed YQ/YR surcharges offline",
		Long: `yqyr runs the YQ/YR surcharge engine against a filing bundle on disk.

A quote request uses the same JSON body as POST /api/v1/surcharges/quote.

Examples:
  yqyr quote --request quote.json
  yqyr quote --data filings.json --request quote.json --format text
  yqyr lower-bound --request quote.json
  cat quote.json | yqyr quote --request -`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.log = logger.NewWithOutput(logger.Config{
				Level:  level,
				Format: "console",
			}, cmd.ErrOrStderr()).Logger
		},
	}

	root.PersistentFlags().StringVar(&opts.dataFile, "data", envOr("DATA_FILE", "fixtures/yqyr.json"), "filing bundle (JSON)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log calculator activity to stderr")
	root.PersistentFlags().IntVar(&opts.maxApplications, "max-applications", 200000, "combinatorial budget per calculator (0 = unbounded)")
	root.PersistentFlags().IntVar(&opts.heapLimitMB, "heap-limit-mb", 0, "heap limit in MB that fails precalculation (0 = none)")

	root.AddCommand(newQuoteCmd(opts))
	root.AddCommand(newLowerBoundCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yqyr version %s\n", Version)
		},
	}
}
