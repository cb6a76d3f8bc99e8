package domain

// PatchResult records what a patch run found and changed so the caller can
// report each checkpoint. Absent optional fields are not errors.
type PatchResult struct {
	TreeFound           bool
	TreePropertiesFound bool
	SubfoldersFixed     bool
	FoldersFound        bool

	// UnexpectedKind holds the document's group/version/kind when it is
	// present but does not name a CustomResourceDefinition. Empty otherwise.
	UnexpectedKind string
}
