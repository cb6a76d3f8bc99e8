package handler

import (
	"errors"
	"testing"

	"crdfix/internal/core/domain"
	"crdfix/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestFixCommandHandler_PatchesTheCrd(t *testing.T) {
	crdPatcher := new(testutil.MockCrdPatcher)
	crdPatcher.On("Patch", "config/crd/bases/rbac.kubevirt.io_foldertrees.yaml").
		Return(&domain.PatchResult{
			TreeFound:           true,
			TreePropertiesFound: true,
			SubfoldersFixed:     true,
			FoldersFound:        true,
		}, nil)

	sut := FixCommandHandler{crdPatcher: crdPatcher}

	err := sut.Handle("config/crd/bases/rbac.kubevirt.io_foldertrees.yaml")

	assert.Nil(t, err)
	crdPatcher.AssertExpectations(t)
}

func TestFixCommandHandler_SucceedsWhenOptionalFieldsAreAbsent(t *testing.T) {
	crdPatcher := new(testutil.MockCrdPatcher)
	crdPatcher.On("Patch", "some/crd.yaml").Return(&domain.PatchResult{}, nil)

	sut := FixCommandHandler{crdPatcher: crdPatcher}

	err := sut.Handle("some/crd.yaml")

	assert.Nil(t, err)
}

func TestFixCommandHandler_PropagatesPatchFailure(t *testing.T) {
	crdPatcher := new(testutil.MockCrdPatcher)
	crdPatcher.On("Patch", "some/crd.yaml").Return(nil, errors.New("CRD file not found"))

	sut := FixCommandHandler{crdPatcher: crdPatcher}

	err := sut.Handle("some/crd.yaml")

	assert.ErrorContains(t, err, "CRD file not found")
}
