package main

import (
	"github.com/Veraticus/finyo-console/internal/cli"
	"github.com/Veraticus/finyo-console/internal/dashboard"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the confidence dashboard",
		Long: `Load the decision summary, repayment transactions and applicant analytics
concurrently and print the dashboard. A section whose request failed is
reported in place; the others still render.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	orch := dashboard.New(client)
	defer orch.Close()

	var (
		snap    dashboard.Snapshot
		loadErr error
	)
	cli.Spin(cmd.ErrOrStderr(), "Loading dashboard", func() {
		snap, loadErr = orch.Activate(cmd.Context())
	})
	if loadErr != nil {
		return loadErr
	}

	return cli.NewPrinter(cmd.OutOrStdout()).Dashboard(snap)
}
