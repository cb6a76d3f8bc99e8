package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crdfix",
	Short: "Build-time fixups for the generated FolderTree CRD",
	Long: `crdfix post-processes the CRDs that controller-gen emits for the
FolderTree API. controller-gen cannot express the recursive TreeNode
schema, so the generated subfolders field is replaced with a permissive
array-of-open-object schema that the API server accepts.

Common workflows:
  crdfix fix                  Patch the generated CRD in place
  crdfix generate             Run controller-gen, then patch its output
  crdfix status               Check whether the cluster serves foldertrees`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
