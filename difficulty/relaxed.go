package difficulty

import (
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
)

// RelaxedVerifier is used on networks that permit emergency difficulty
// resets. It checks linkage and, at retarget boundaries, that the caller
// supplied the interval-opening timestamp. The numeric target is never
// compared; checkpoints bound what a peer can feed us instead.
type RelaxedVerifier struct {
	// Interval is the number of blocks between retargets.
	Interval uint32
}

func NewRelaxedVerifier(interval uint32) *RelaxedVerifier {
	return &RelaxedVerifier{Interval: interval}
}

func (v *RelaxedVerifier) BoundaryInterval() uint32 {
	return v.Interval
}

func (v *RelaxedVerifier) Verify(block, previous *model.BlockHeader, transitionTime uint32) error {
	if err := verifyLinkage(block, previous); err != nil {
		return err
	}

	if IsBoundary(block.Height, v.Interval) && transitionTime == 0 {
		return errors.NewMissingTransitionTimeError("[RelaxedVerifier][%s] no transition time for retarget at height %d", block.Hash(), block.Height)
	}

	return nil
}
