package cmd

import (
	"crdfix/cmd/cli/app"
	"crdfix/internal/core"

	"github.com/spf13/cobra"
)

var crdFile string

func init() {
	fixCmd.Flags().StringVarP(&crdFile, "file", "f", core.DefaultCrdPath, "Path to the generated CRD file")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Replaces the recursive subfolders schema in the generated CRD",
	Long: `Replaces tree.properties.subfolders in the generated FolderTree CRD
with a permissive array-of-open-object schema. The sibling folders field is
not recursive and is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectFixCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(crdFile)
	},
}
