package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/version"
)

// newVersionCommand creates the version command
func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetVersionInfo()
			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				fmt.Fprintln(w, info.JSON())
				return
			}
			fmt.Fprintln(w, "Version:", info.Version)
			fmt.Fprintln(w, "Revision:", info.Revision)
			fmt.Fprintln(w, "Built At:", info.BuiltAt)
			fmt.Fprintln(w, "Go:", info.GoVersion)
		},
	}
}
