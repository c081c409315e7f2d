// Command cli is the operator console for Trackside. It drives the same
// adapter and store stack as the dashboard against a running operations API.
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/trackside/cmd/cli/ops"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(ops.Group)
	rootCmd.AddCommand(
		ops.Trains,
		ops.KPIs,
		ops.Recommendations,
		ops.Accept,
		ops.Reject,
		ops.Override,
		ops.Simulate,
		ops.Chat,
		ops.Audit,
		ops.Watch,
	)
}

var rootCmd = &cobra.Command{
	Use:  "trackside-cli",
	Long: `Operator console for Trackside https://github.com/myrjola/trackside`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
