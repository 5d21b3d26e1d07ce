// Package difficulty decides whether a block header is an acceptable
// successor of its parent.
//
// Each network has its own Verifier. StandardVerifier enforces the
// proof-of-work retarget rules. RelaxedVerifier, used by networks that allow
// ad-hoc difficulty resets, only checks that the header links to its parent
// and that a transition time was supplied at retarget boundaries.
//
// Verifiers hold no state and may be shared by any number of goroutines.
package difficulty

import (
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
)

// Verifier checks a candidate header against its immediate predecessor.
//
// transitionTime is the timestamp of the block that opened the current
// retarget interval. It only matters when block lands on a retarget
// boundary; callers may pass 0 otherwise.
//
// A nil return means the header is accepted. Rejections are *errors.Error
// values coded ERR_INVALID_LINKAGE, ERR_MISSING_TRANSITION_TIME or
// ERR_TARGET_MISMATCH, or ERR_CONFIGURATION when the verifier itself was
// built with unusable constants.
type Verifier interface {
	Verify(block, previous *model.BlockHeader, transitionTime uint32) error
}

// Retargeter is implemented by verifiers that treat some heights as retarget
// boundaries. Callers computing transition times must use the same interval.
type Retargeter interface {
	BoundaryInterval() uint32
}

// IsBoundary reports whether height is a retarget boundary for interval.
func IsBoundary(height, interval uint32) bool {
	return interval != 0 && height%interval == 0
}

// verifyLinkage checks the parent hash and the height step shared by every
// verifier.
func verifyLinkage(block, previous *model.BlockHeader) error {
	if block == nil || previous == nil {
		return errors.NewInvalidArgumentError("block and previous header are required")
	}

	if block.HashPrevBlock == nil || !block.HashPrevBlock.IsEqual(previous.Hash()) {
		return errors.NewInvalidLinkageError("[verifyLinkage][%s] previous hash %s does not match parent %s", block.Hash(), block.HashPrevBlock, previous.Hash())
	}

	if block.Height != previous.Height+1 {
		return errors.NewInvalidLinkageError("[verifyLinkage][%s] height %d does not follow parent height %d", block.Hash(), block.Height, previous.Height)
	}

	return nil
}
