// Package commands implements the teamops command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/version"
)

// options shared by every command
type options struct {
	configFile string
	jsonOutput bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "teamops",
		Short:         "Team Ops Dashboard",
		Long:          `Team and task administration from the terminal, plus the PDF generation server.`,
		Version:       version.GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "conf", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print raw JSON instead of tables")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newMeCommand(opts),
		newTasksCommand(opts),
		newTeamsCommand(opts),
		newEmployeesCommand(opts),
		newNotificationsCommand(opts),
		newLogsCommand(opts),
		newMetricsCommand(opts),
		newExportCommand(opts),
		newPDFCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}
