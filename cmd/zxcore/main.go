// Command zxcore is a thin CLI over the zx-core/spectrum library: it runs a
// machine headlessly for a fixed number of frames, dumps the resulting
// framebuffer as a PNG, or disassembles a raw binary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zx-core/spectrum/zxlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zxcore",
		Short: "Headless ZX Spectrum core: run, disassemble, and inspect port traffic",
	}
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error, silent")
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newPortsCmd())
	return root
}

// loggerFromFlags builds a zxlog.Logger writing to cmd's error stream at the
// level named by the inherited --log-level flag, defaulting to LevelInfo on
// an unrecognized name.
func loggerFromFlags(cmd *cobra.Command) *zxlog.Logger {
	name, _ := cmd.Flags().GetString("log-level")
	level := zxlog.LevelInfo
	switch name {
	case "debug":
		level = zxlog.LevelDebug
	case "warn":
		level = zxlog.LevelWarn
	case "error":
		level = zxlog.LevelError
	case "silent":
		level = zxlog.LevelSilent
	}
	return zxlog.New(cmd.ErrOrStderr(), level)
}
