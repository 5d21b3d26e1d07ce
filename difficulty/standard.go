package difficulty

import (
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
)

// StandardVerifier enforces the proof-of-work retarget rules: between
// boundaries the target must not change, and at a boundary it must equal
// the target recomputed from the previous interval's duration.
type StandardVerifier struct {
	Retarget RetargetParams
}

func NewStandardVerifier(retarget RetargetParams) *StandardVerifier {
	return &StandardVerifier{Retarget: retarget}
}

func (v *StandardVerifier) BoundaryInterval() uint32 {
	return v.Retarget.Interval
}

func (v *StandardVerifier) Verify(block, previous *model.BlockHeader, transitionTime uint32) error {
	if err := verifyLinkage(block, previous); err != nil {
		return err
	}

	expected := previous.Bits.Uint32()

	if IsBoundary(block.Height, v.Retarget.Interval) {
		if err := v.Retarget.Validate(); err != nil {
			return err
		}

		// the interval is measured up to the parent, not the new block
		expected = v.Retarget.RecomputeTarget(transitionTime, previous.Timestamp, previous.Bits.Uint32())
	}

	if block.Bits.Uint32() != expected {
		return errors.NewTargetMismatchError("[StandardVerifier][%s] target %s at height %d, expected %08x", block.Hash(), block.Bits, block.Height, expected)
	}

	return nil
}
