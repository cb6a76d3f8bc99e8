package core

import (
	"errors"
	"testing"

	"crdfix/internal/ports"
	"crdfix/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const crdPath = "config/crd/bases/rbac.kubevirt.io_foldertrees.yaml"

// generatedCrd mirrors what controller-gen emits for the FolderTree API,
// including the self-referential subfolders schema the patcher replaces.
const generatedCrd = `apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: foldertrees.rbac.kubevirt.io
spec:
  group: rbac.kubevirt.io
  names:
    kind: FolderTree
    plural: foldertrees
    singular: foldertree
  scope: Cluster
  versions:
    - name: v1alpha1
      schema:
        openAPIV3Schema:
          description: FolderTree is the Schema for the foldertrees API
          properties:
            apiVersion:
              type: string
            kind:
              type: string
            spec:
              properties:
                folders:
                  items:
                    type: string
                  type: array
                tree:
                  properties:
                    name:
                      type: string
                    subfolders:
                      items:
                        $ref: '#/definitions/TreeNode'
                      type: array
                  type: object
              type: object
          type: object
      served: true
      storage: true
`

func writeCrd(t *testing.T, fileSystem *testutil.TestFileSystem, content string) {
	t.Helper()
	err := fileSystem.WriteFile(crdPath, []byte(content), ports.ReadAllWriteOwner)
	require.NoError(t, err)
}

func decodeYaml(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	return decoded
}

func specProperties(t *testing.T, decoded map[string]interface{}) map[string]interface{} {
	t.Helper()
	spec := decoded["spec"].(map[string]interface{})
	versions := spec["versions"].([]interface{})
	version := versions[0].(map[string]interface{})
	versionSchema := version["schema"].(map[string]interface{})
	openAPISchema := versionSchema["openAPIV3Schema"].(map[string]interface{})
	properties := openAPISchema["properties"].(map[string]interface{})
	specProperty := properties["spec"].(map[string]interface{})
	return specProperty["properties"].(map[string]interface{})
}

func TestPatch_ReplacesSubfoldersWithOpenSchema(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, generatedCrd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	result, err := sut.Patch(crdPath)

	require.NoError(t, err)
	assert.True(t, result.TreeFound)
	assert.True(t, result.TreePropertiesFound)
	assert.True(t, result.SubfoldersFixed)
	assert.True(t, result.FoldersFound)
	assert.Empty(t, result.UnexpectedKind)

	patched, err := fileSystem.ReadFile(crdPath)
	require.NoError(t, err)
	properties := specProperties(t, decodeYaml(t, patched))
	tree := properties["tree"].(map[string]interface{})
	treeProperties := tree["properties"].(map[string]interface{})

	assert.Equal(t, map[string]interface{}{
		"description": "Subfolders is a list of child tree nodes",
		"type":        "array",
		"items": map[string]interface{}{
			"type":                                 "object",
			"x-kubernetes-preserve-unknown-fields": true,
		},
	}, treeProperties["subfolders"])

	// Sibling fields inside tree survive the rewrite
	assert.Equal(t, map[string]interface{}{"type": "string"}, treeProperties["name"])
}

func TestPatch_IsIdempotent(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, generatedCrd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	_, err := sut.Patch(crdPath)
	require.NoError(t, err)
	firstPass, err := fileSystem.ReadFile(crdPath)
	require.NoError(t, err)

	result, err := sut.Patch(crdPath)
	require.NoError(t, err)
	secondPass, err := fileSystem.ReadFile(crdPath)
	require.NoError(t, err)

	assert.True(t, result.SubfoldersFixed)
	assert.Equal(t, string(firstPass), string(secondPass))
}

func TestPatch_LeavesFoldersUntouched(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, generatedCrd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	original := specProperties(t, decodeYaml(t, []byte(generatedCrd)))["folders"]

	_, err := sut.Patch(crdPath)
	require.NoError(t, err)

	patched, err := fileSystem.ReadFile(crdPath)
	require.NoError(t, err)
	assert.Equal(t, original, specProperties(t, decodeYaml(t, patched))["folders"])
}

func TestPatch_PreservesKeyOrder(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, generatedCrd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	_, err := sut.Patch(crdPath)
	require.NoError(t, err)

	patched, err := fileSystem.ReadFile(crdPath)
	require.NoError(t, err)

	// folders was generated before tree and must stay there
	foldersIndex := indexOf(t, patched, "folders:")
	treeIndex := indexOf(t, patched, "tree:")
	assert.Less(t, foldersIndex, treeIndex)

	// top-level ordering survives as well
	assert.Less(t, indexOf(t, patched, "apiVersion:"), indexOf(t, patched, "kind:"))
	assert.Less(t, indexOf(t, patched, "metadata:"), indexOf(t, patched, "spec:"))
}

func indexOf(t *testing.T, data []byte, substring string) int {
	t.Helper()
	index := -1
	for i := 0; i+len(substring) <= len(data); i++ {
		if string(data[i:i+len(substring)]) == substring {
			index = i
			break
		}
	}
	require.GreaterOrEqual(t, index, 0, "expected %q in output", substring)
	return index
}

func TestPatch_MissingFileFailsWithoutWrite(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	_, err := sut.Patch(crdPath)

	assert.ErrorIs(t, err, ErrCrdNotFound)
	exists, statErr := fileSystem.FileExists(crdPath)
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestPatch_MalformedYamlFailsWithoutWrite(t *testing.T) {
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, "spec: [unclosed")
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	_, err := sut.Patch(crdPath)

	assert.ErrorIs(t, err, ErrCrdUnparsable)
	content, readErr := fileSystem.ReadFile(crdPath)
	require.NoError(t, readErr)
	assert.Equal(t, "spec: [unclosed", string(content))
}

func TestPatch_MissingStructureFailsWithoutWrite(t *testing.T) {
	tests := []struct {
		name      string
		crd       string
		wantInErr string
	}{
		{"no spec", "metadata:\n  name: x\n", "spec"},
		{"no versions", "spec:\n  group: rbac.kubevirt.io\n", "spec.versions"},
		{"empty versions", "spec:\n  versions: []\n", "spec.versions[0]"},
		{"no schema", "spec:\n  versions:\n    - name: v1alpha1\n", "schema"},
		{"no openAPIV3Schema", "spec:\n  versions:\n    - schema:\n        foo: bar\n", "openAPIV3Schema"},
		{"no properties", "spec:\n  versions:\n    - schema:\n        openAPIV3Schema:\n          type: object\n", "openAPIV3Schema.properties"},
		{"no spec property", "spec:\n  versions:\n    - schema:\n        openAPIV3Schema:\n          properties:\n            kind:\n              type: string\n", "properties.spec"},
		{"no spec properties", "spec:\n  versions:\n    - schema:\n        openAPIV3Schema:\n          properties:\n            spec:\n              type: object\n", "spec.properties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileSystem := testutil.NewTestFileSystem(t)
			writeCrd(t, fileSystem, tt.crd)
			sut := ProvideFileSystemCrdPatcher(fileSystem)

			_, err := sut.Patch(crdPath)

			assert.ErrorIs(t, err, ErrStructureMissing)
			assert.ErrorContains(t, err, tt.wantInErr)

			content, readErr := fileSystem.ReadFile(crdPath)
			require.NoError(t, readErr)
			assert.Equal(t, tt.crd, string(content))
		})
	}
}

func TestPatch_MissingTreeIsNotAFailure(t *testing.T) {
	crd := `spec:
  versions:
    - schema:
        openAPIV3Schema:
          properties:
            spec:
              properties:
                folders:
                  type: array
`
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, crd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	result, err := sut.Patch(crdPath)

	require.NoError(t, err)
	assert.False(t, result.TreeFound)
	assert.False(t, result.SubfoldersFixed)
	assert.True(t, result.FoldersFound)

	// Nothing changed semantically
	patched, readErr := fileSystem.ReadFile(crdPath)
	require.NoError(t, readErr)
	assert.Equal(t, decodeYaml(t, []byte(crd)), decodeYaml(t, patched))
}

func TestPatch_TreeWithoutPropertiesSkipsRewrite(t *testing.T) {
	crd := `spec:
  versions:
    - schema:
        openAPIV3Schema:
          properties:
            spec:
              properties:
                tree:
                  type: object
`
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, crd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	result, err := sut.Patch(crdPath)

	require.NoError(t, err)
	assert.True(t, result.TreeFound)
	assert.False(t, result.TreePropertiesFound)
	assert.False(t, result.SubfoldersFixed)
	assert.False(t, result.FoldersFound)
}

func TestPatch_MissingSubfoldersIsNotAFailure(t *testing.T) {
	crd := `spec:
  versions:
    - schema:
        openAPIV3Schema:
          properties:
            spec:
              properties:
                tree:
                  properties:
                    name:
                      type: string
`
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, crd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	result, err := sut.Patch(crdPath)

	require.NoError(t, err)
	assert.True(t, result.TreeFound)
	assert.True(t, result.TreePropertiesFound)
	assert.False(t, result.SubfoldersFixed)
}

func TestPatch_ReportsUnexpectedKind(t *testing.T) {
	crd := `apiVersion: v1
kind: ConfigMap
spec:
  versions:
    - schema:
        openAPIV3Schema:
          properties:
            spec:
              properties:
                tree:
                  properties:
                    subfolders:
                      type: array
`
	fileSystem := testutil.NewTestFileSystem(t)
	writeCrd(t, fileSystem, crd)
	sut := ProvideFileSystemCrdPatcher(fileSystem)

	result, err := sut.Patch(crdPath)

	require.NoError(t, err)
	assert.Contains(t, result.UnexpectedKind, "ConfigMap")
	// The patch still applies, the document stays schema-opaque
	assert.True(t, result.SubfoldersFixed)
}

func TestPatch_WriteFailureIsReported(t *testing.T) {
	mockFileSystem := new(testutil.MockFileSystem)
	mockFileSystem.On("FileExists", crdPath).Return(true, nil)
	mockFileSystem.On("ReadFile", crdPath).Return([]byte(generatedCrd), nil)
	mockFileSystem.On("WriteFile", crdPath, mock.Anything, mock.Anything).
		Return(errors.New("disk full"))
	sut := ProvideFileSystemCrdPatcher(mockFileSystem)

	_, err := sut.Patch(crdPath)

	assert.ErrorContains(t, err, "failed to write CRD")
	assert.ErrorContains(t, err, "disk full")
}
