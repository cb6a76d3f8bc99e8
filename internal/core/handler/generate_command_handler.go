package handler

import (
	"fmt"

	"crdfix/internal/cli/output"
	"crdfix/internal/core"
	"crdfix/internal/ports"
)

type GenerateCommandHandler struct {
	commandRunner ports.CommandRunner
	crdPatcher    core.CrdPatcher
}

func ProvideGenerateCommandHandler(
	commandRunner ports.CommandRunner,
	crdPatcher core.CrdPatcher,
) GenerateCommandHandler {
	return GenerateCommandHandler{
		commandRunner: commandRunner,
		crdPatcher:    crdPatcher,
	}
}

// Handle regenerates the CRDs with controller-gen and applies the recursive
// schema fix to the FolderTree CRD it produced.
func (h *GenerateCommandHandler) Handle(crdPath string) error {
	output.PrintStep("Running controller-gen")
	err := h.commandRunner.RunInteractive(
		"controller-gen",
		"rbac:roleName=manager-role",
		"crd",
		"webhook",
		"paths=./...",
		"output:crd:artifacts:config=config/crd/bases",
	)
	if err != nil {
		return fmt.Errorf("controller-gen failed: %w", err)
	}

	output.PrintStep(fmt.Sprintf("Fixing recursive schema in %s", crdPath))
	result, err := h.crdPatcher.Patch(crdPath)
	if err != nil {
		return err
	}

	reportPatchResult(result)
	output.PrintSuccess("CRD generation with fixes completed")
	return nil
}
