package main

import (
	"strings"

	"github.com/Veraticus/finyo-console/internal/tui"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/spf13/cobra"
)

func consoleCmd() *cobra.Command {
	var tabName, themeName string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open the terminal console with the dashboard, submission and review tabs.
Logs are discarded unless logging.file is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, err := parseTab(tabName)
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(),
				tui.WithGateway(client),
				tui.WithInitialTab(tab),
				tui.WithTheme(themes.GetTheme(themeName)),
			)
		},
	}

	cmd.Flags().StringVar(&tabName, "tab", "dashboard", "tab to open first (dashboard, submit, review)")
	cmd.Flags().StringVar(&themeName, "theme", themes.Names[0], "colour theme ("+strings.Join(themes.Names, ", ")+")")

	return cmd
}
