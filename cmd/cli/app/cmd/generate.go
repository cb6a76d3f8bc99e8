package cmd

import (
	"crdfix/cmd/cli/app"
	"crdfix/internal/core"

	"github.com/spf13/cobra"
)

var generateCrdFile string

func init() {
	generateCmd.Flags().StringVarP(&generateCrdFile, "file", "f", core.DefaultCrdPath, "Path of the CRD file controller-gen produces")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Runs controller-gen and patches the FolderTree CRD it produces",
	Long: `Runs controller-gen for the rbac, crd and webhook artifacts and then
applies the recursive schema fix to the generated FolderTree CRD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectGenerateCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(generateCrdFile)
	},
}
