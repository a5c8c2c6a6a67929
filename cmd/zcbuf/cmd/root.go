package cmd

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zcbuf",
	Short: "Inspect binary buffers and compactwire frames",
	Long: `zcbuf decodes binary files in place with bounds-checked cursors.

Use "peek" to walk a file field by field and "frame" to list and verify the
compactwire frames stored in a file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, _ := cmd.Flags().GetString("log-level")
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return errors.Wrap(err, "bad --log-level")
		}
		logrus.SetOutput(cmd.ErrOrStderr())
		logrus.SetLevel(level)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("memprofile")
		if path == "" {
			return nil
		}
		return writeHeapProfile(path)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create memory profile")
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrap(err, "failed to write memory profile")
	}
	logrus.WithField("path", path).Info("memory profile written")
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("memprofile", "", "Write a heap profile to this file on exit")
}
