// Command nsid inspects, validates and writes Main datasets.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	verbose     bool
	lockTimeout time.Duration
	log         *slog.Logger
}

func (a *app) fileOptions() []hstore.FileOption {
	return []hstore.FileOption{hstore.WithLockTimeout(a.lockTimeout)}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "nsid",
		Short:         "Inspect and write Main datasets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.NewWithWriter(cmd.ErrOrStderr(), a.verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every check at debug level")
	rootCmd.PersistentFlags().DurationVar(&a.lockTimeout, "lock-timeout", time.Second, "how long to wait for a file locked by another writer, 0 waits forever")

	rootCmd.AddCommand(
		newTreeCmd(a),
		newFindCmd(a),
		newFindNameCmd(a),
		newCheckCmd(a),
		newAttachCmd(a),
		newWriteCmd(a),
		newReadCmd(a),
	)
	return rootCmd
}
