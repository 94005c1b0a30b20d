package main

import (
	"github.com/Veraticus/finyo-console/internal/cli"
	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/submission"
	"github.com/spf13/cobra"
)

func submitCmd() *cobra.Command {
	form := submission.DefaultForm()

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a new loan application",
		Long: `Submit a loan application for an applicant. The amount must be at least
1000 AED in steps of 500 and the tenure at least one month. The recent
applications list is reloaded after a successful submission.`,
		Example: `  finyo submit --applicant 7 --amount 2500 --tenure 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSubmit(cmd, form)
		},
	}

	cmd.Flags().Int64Var(&form.ApplicantID, "applicant", form.ApplicantID, "applicant id")
	cmd.Flags().Float64Var(&form.Amount, "amount", form.Amount, "requested amount in AED")
	cmd.Flags().IntVar(&form.TenureMonths, "tenure", form.TenureMonths, "requested tenure in months")

	return cmd
}

func runSubmit(cmd *cobra.Command, form submission.Form) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	orch := submission.New(client)
	if _, err := orch.Submit(cmd.Context(), form); err != nil {
		return common.NewUserError("Submission failed", err)
	}

	printer := cli.NewPrinter(cmd.OutOrStdout())
	if err := printer.Submitted(orch.Message()); err != nil {
		return err
	}
	if recent, ok := orch.Recent(); ok {
		return printer.Recent(recent)
	}
	return nil
}

func recentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently submitted applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			orch := submission.New(client)
			// A failed load is rendered in the list itself.
			_ = orch.Refresh(cmd.Context())
			recent, _ := orch.Recent()
			return cli.NewPrinter(cmd.OutOrStdout()).Recent(recent)
		},
	}
}
