package handler

import (
	"fmt"

	"crdfix/internal/cli/output"
	"crdfix/internal/core"
	"crdfix/internal/core/domain"
)

type FixCommandHandler struct {
	crdPatcher core.CrdPatcher
}

func ProvideFixCommandHandler(crdPatcher core.CrdPatcher) FixCommandHandler {
	return FixCommandHandler{
		crdPatcher: crdPatcher,
	}
}

func (h *FixCommandHandler) Handle(crdPath string) error {
	output.PrintInfo(fmt.Sprintf("Fixing recursive schema in %s", crdPath))

	result, err := h.crdPatcher.Patch(crdPath)
	if err != nil {
		return err
	}

	reportPatchResult(result)
	output.PrintSuccess("Successfully wrote fixed CRD")
	return nil
}

// reportPatchResult prints one line per checkpoint of the patch. Absent
// optional fields are warnings, never failures.
func reportPatchResult(result *domain.PatchResult) {
	if result.UnexpectedKind != "" {
		output.PrintWarning(fmt.Sprintf("document is not a CustomResourceDefinition: %s", result.UnexpectedKind))
	}

	switch {
	case !result.TreeFound:
		output.PrintWarning("tree field not found in spec")
	case !result.TreePropertiesFound:
		output.PrintWarning("could not fix tree schema: properties not found")
	case !result.SubfoldersFixed:
		output.PrintWarning("subfolders field not found in tree schema")
	default:
		output.PrintSuccess("Fixed tree.subfolders schema")
	}

	if result.FoldersFound {
		output.PrintSuccess("Folders schema is already correct (no recursion)")
	} else {
		output.PrintWarning("folders field not found in spec")
	}
}
