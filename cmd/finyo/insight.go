package main

import (
	"github.com/Veraticus/finyo-console/internal/cli"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id>",
		Short: "Print the eligibility analysis of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			machine, err := loadApplication(cmd, id)
			if err != nil {
				return err
			}
			return cli.NewPrinter(cmd.OutOrStdout()).Analysis(viewmodel.NewAnalysisView(*machine.Application()))
		},
	}
}

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <id>",
		Short: "List the features behind an application's score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			machine, err := loadApplication(cmd, id)
			if err != nil {
				return err
			}
			return cli.NewPrinter(cmd.OutOrStdout()).Explain(viewmodel.NewExplainView(*machine.Application()))
		},
	}
}
