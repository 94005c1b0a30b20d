package main

import (
	"fmt"

	"github.com/Veraticus/finyo-console/internal/cli"
	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and decide on applications",
	}

	cmd.AddCommand(reviewShowCmd())
	cmd.AddCommand(reviewDecideCmd())

	return cmd
}

func reviewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one application",
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
			return cli.NewPrinter(cmd.OutOrStdout()).Application(*machine.Application())
		},
	}
}

type decideOptions struct {
	decision    string
	comment     string
	offerAmount float64
	offerTenure int
	yes         bool
}

func reviewDecideCmd() *cobra.Command {
	opts := decideOptions{
		decision:    string(model.DecisionApprove),
		offerAmount: review.MinOfferAmount,
		offerTenure: review.MinOfferTenure,
	}

	cmd := &cobra.Command{
		Use:   "decide <id>",
		Short: "Record a human decision on an application",
		Long: `Override the automated decision on an application that is still under
process. An offer needs an amount of at least 500 AED and a tenure of at
least one month. The application is re-fetched afterwards so the printed
status is the backend's.`,
		Example: `  finyo review decide 101 --decision approve --comment "Verified income"
  finyo review decide 101 --decision offer --offer-amount 1500 --offer-tenure 12 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.decision, "decision", "d", opts.decision, "decision (approve, reject, offer)")
	cmd.Flags().StringVarP(&opts.comment, "comment", "c", "", "reviewer comment")
	cmd.Flags().Float64Var(&opts.offerAmount, "offer-amount", opts.offerAmount, "offer amount in AED")
	cmd.Flags().IntVar(&opts.offerTenure, "offer-tenure", opts.offerTenure, "offer tenure in months")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runDecide(cmd *cobra.Command, arg string, opts decideOptions) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	decision, err := parseDecision(opts.decision)
	if err != nil {
		return err
	}
	draft := review.Draft{
		Decision: decision,
		Comment:  opts.comment,
		Offer:    model.Offer{Amount: opts.offerAmount, TenureMonths: opts.offerTenure},
	}
	if _, err := draft.Request(); err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), true)
	cmd.SetContext(ctx)

	machine, err := loadApplication(cmd, id)
	if err != nil {
		return err
	}
	app := machine.Application()
	if !machine.CanDecide() {
		return common.NewUserError(
			fmt.Sprintf("Application %s is %s and no longer accepts a decision", viewmodel.FormatID(id), app.Status),
			common.ErrIllegalTransition)
	}

	printer := cli.NewPrinter(cmd.OutOrStdout())
	if !opts.yes {
		question := fmt.Sprintf("%s application %s?", decision.Label(), viewmodel.FormatID(id))
		ok, err := cli.NewLineReader(cmd.InOrStdin()).Confirm(ctx, cmd.OutOrStdout(), question)
		if err != nil {
			return err
		}
		if !ok {
			return printer.Message("Decision not submitted.")
		}
	}

	if err := machine.Decide(ctx, draft); err != nil {
		if msg := machine.Message(); msg != "" {
			return common.NewUserError(msg, err)
		}
		return common.NewUserError("Decision failed", err)
	}

	if err := printer.Submitted(machine.Message()); err != nil {
		return err
	}
	return printer.Application(*machine.Application())
}
