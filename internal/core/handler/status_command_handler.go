package handler

import (
	"fmt"

	"crdfix/internal/cli/output"
	"crdfix/internal/core"
	"crdfix/internal/ports"
)

type StatusCommandHandler struct {
	clusterInspector ports.ClusterInspector
}

func ProvideStatusCommandHandler(clusterInspector ports.ClusterInspector) StatusCommandHandler {
	return StatusCommandHandler{
		clusterInspector: clusterInspector,
	}
}

// Handle reports whether the current cluster serves the FolderTree resource.
func (h *StatusCommandHandler) Handle() error {
	served, err := h.clusterInspector.ResourceServed(core.FolderTreeGroupVersion, core.FolderTreeResource)
	if err != nil {
		return fmt.Errorf("failed to query cluster: %w", err)
	}

	if served {
		output.PrintSuccess(fmt.Sprintf(
			"%s is served as %s by the current cluster",
			core.FolderTreeResource, core.FolderTreeGroupVersion,
		))
	} else {
		output.PrintWarning(fmt.Sprintf(
			"%s is not served by the current cluster, apply config/crd/bases first",
			core.FolderTreeResource,
		))
	}
	return nil
}
