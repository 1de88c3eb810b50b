// @title issuedesk API
// @version 1.0
// @description Product defect ticketing: intake, triage, merge and SLA tracking.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"issuedesk/internal/interfaces/cli/migrate"
	"issuedesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "issuedesk",
		Short: "issuedesk - product defect ticketing service",
		Long:  `issuedesk tracks customer-reported product defects from intake to resolution, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
