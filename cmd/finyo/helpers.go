package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/config"
	"github.com/Veraticus/finyo-console/internal/gateway"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newClient builds the backend client from the loaded configuration.
func newClient() (*gateway.Client, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}
	return gateway.New(gateway.Config{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
	}), nil
}

// loadApplication fetches application id through a fresh review machine.
func loadApplication(cmd *cobra.Command, id int64) (*review.Machine, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	machine := review.New(client)
	if err := machine.Select(cmd.Context(), id); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Couldn't load application %s", viewmodel.FormatID(id)), err)
	}
	return machine, nil
}

// parseID reads an application id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id < 1 {
		return 0, common.NewValidationError("id", fmt.Sprintf("must be a positive integer, got %q", arg))
	}
	return id, nil
}

// parseDecision maps a --decision value to a human decision.
func parseDecision(value string) (model.Decision, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "approve", "approved":
		return model.DecisionApprove, nil
	case "reject", "rejected":
		return model.DecisionReject, nil
	case "offer":
		return model.DecisionOffer, nil
	default:
		return "", common.NewValidationError("decision", fmt.Sprintf("must be approve, reject or offer, got %q", value))
	}
}

// parseTab maps a --tab value to a console tab.
func parseTab(value string) (viewmodel.Tab, error) {
	for _, tab := range viewmodel.Tabs {
		if strings.EqualFold(tab.String(), strings.TrimSpace(value)) {
			return tab, nil
		}
	}
	return 0, common.NewValidationError("tab", fmt.Sprintf("must be dashboard, submit or review, got %q", value))
}

// describeError renders err for the operator, preferring the backend's
// detail over the wrapped Go error chain.
func describeError(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		if userErr.Err == nil {
			return userErr.UserMessage
		}
		return userErr.UserMessage + ": " + common.Detail(userErr.Err)
	}
	return common.Detail(err)
}
