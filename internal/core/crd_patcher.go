package core

import (
	"errors"
	"fmt"

	"crdfix/internal/core/domain"
	"crdfix/internal/ports"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// DefaultCrdPath is where controller-gen writes the FolderTree CRD, relative
// to the repository root the generator ran in.
const DefaultCrdPath = "config/crd/bases/rbac.kubevirt.io_foldertrees.yaml"

// FolderTree API coordinates, matching the controller's kubebuilder markers.
const (
	FolderTreeGroupVersion = "rbac.kubevirt.io/v1alpha1"
	FolderTreeResource     = "foldertrees"
)

var (
	ErrCrdNotFound      = errors.New("CRD file not found")
	ErrCrdUnparsable    = errors.New("CRD file is not valid YAML")
	ErrStructureMissing = errors.New("failed to navigate CRD structure")
)

// CrdPatcher rewrites the recursive subfolders schema in a generated
// FolderTree CRD with a permissive placeholder that the API server accepts.
type CrdPatcher interface {
	Patch(path string) (*domain.PatchResult, error)
}

type FileSystemCrdPatcher struct {
	fileService ports.FileSystem
}

func ProvideFileSystemCrdPatcher(fileService ports.FileSystem) *FileSystemCrdPatcher {
	return &FileSystemCrdPatcher{fileService: fileService}
}

// subfoldersSchema is the replacement for the self-referential TreeNode list
// that controller-gen cannot express. Items are open objects carrying the
// preserve-unknown-fields marker.
type subfoldersSchema struct {
	Description string           `yaml:"description"`
	Type        string           `yaml:"type"`
	Items       subfolderElement `yaml:"items"`
}

type subfolderElement struct {
	Type                  string `yaml:"type"`
	PreserveUnknownFields bool   `yaml:"x-kubernetes-preserve-unknown-fields"`
}

func replacementSubfoldersSchema() subfoldersSchema {
	return subfoldersSchema{
		Description: "Subfolders is a list of child tree nodes",
		Type:        "array",
		Items: subfolderElement{
			Type:                  "object",
			PreserveUnknownFields: true,
		},
	}
}

// Patch loads the CRD at path, replaces tree.properties.subfolders with the
// fixed permissive schema when present, and writes the document back in
// place. Key order and block style of the document survive the round trip.
func (p *FileSystemCrdPatcher) Patch(path string) (*domain.PatchResult, error) {
	exists, err := p.fileService.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCrdNotFound, path)
	}

	data, err := p.fileService.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CRD file: %w", err)
	}

	document, err := domain.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrdUnparsable, err)
	}

	root, ok := document.Root()
	if !ok {
		return nil, fmt.Errorf("%w: document root is not a mapping", ErrStructureMissing)
	}

	result := &domain.PatchResult{UnexpectedKind: checkDocumentKind(root)}

	specProperties, err := navigateToSpecProperties(root)
	if err != nil {
		return nil, err
	}

	if tree, ok := specProperties.Map("tree"); ok {
		result.TreeFound = true
		if treeProperties, ok := tree.Map("properties"); ok {
			result.TreePropertiesFound = true
			if treeProperties.Has("subfolders") {
				if err := treeProperties.Set("subfolders", replacementSubfoldersSchema()); err != nil {
					return nil, err
				}
				result.SubfoldersFixed = true
			}
		}
	}

	// The folders array is flat, never recursive, and must stay untouched.
	result.FoldersFound = specProperties.Has("folders")

	serialized, err := document.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to write CRD: %w", err)
	}
	if err := p.fileService.WriteFile(path, serialized, ports.ReadAllWriteOwner); err != nil {
		return nil, fmt.Errorf("failed to write CRD: %w", err)
	}

	return result, nil
}

// navigateToSpecProperties descends the fixed key path
// spec.versions[0].schema.openAPIV3Schema.properties.spec.properties.
// Any missing segment aborts the patch before a write happens.
func navigateToSpecProperties(root *domain.Mapping) (*domain.Mapping, error) {
	spec, ok := root.Map("spec")
	if !ok {
		return nil, missingSegment("spec")
	}
	versions, ok := spec.Seq("versions")
	if !ok {
		return nil, missingSegment("spec.versions")
	}
	version, ok := versions.Map(0)
	if !ok {
		return nil, missingSegment("spec.versions[0]")
	}
	versionSchema, ok := version.Map("schema")
	if !ok {
		return nil, missingSegment("schema")
	}
	openAPISchema, ok := versionSchema.Map("openAPIV3Schema")
	if !ok {
		return nil, missingSegment("openAPIV3Schema")
	}
	properties, ok := openAPISchema.Map("properties")
	if !ok {
		return nil, missingSegment("openAPIV3Schema.properties")
	}
	specProperty, ok := properties.Map("spec")
	if !ok {
		return nil, missingSegment("properties.spec")
	}
	specProperties, ok := specProperty.Map("properties")
	if !ok {
		return nil, missingSegment("spec.properties")
	}
	return specProperties, nil
}

func missingSegment(segment string) error {
	return fmt.Errorf("%w: %s", ErrStructureMissing, segment)
}

// checkDocumentKind returns the parsed group/version/kind when the document
// declares one that is not a CustomResourceDefinition. The patcher still
// proceeds; the document is otherwise treated as an opaque tree.
func checkDocumentKind(root *domain.Mapping) string {
	apiVersion, hasAPIVersion := root.Scalar("apiVersion")
	kind, hasKind := root.Scalar("kind")
	if !hasAPIVersion || !hasKind {
		return ""
	}

	gvk := schema.FromAPIVersionAndKind(apiVersion, kind)
	if gvk.Group == "apiextensions.k8s.io" && gvk.Kind == "CustomResourceDefinition" {
		return ""
	}
	return gvk.String()
}

var _ CrdPatcher = (*FileSystemCrdPatcher)(nil)
