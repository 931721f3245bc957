package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/presupuesto/internal/console"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu (default)",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	return console.New(e.svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}
