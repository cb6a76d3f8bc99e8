package cmd

import (
	"crdfix/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Checks whether the current cluster serves the foldertrees resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectStatusCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle()
	},
}
