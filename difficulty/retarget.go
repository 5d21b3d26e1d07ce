package difficulty

import (
	"math/big"
	"time"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/util"
)

// RetargetParams are the constants of the classic every-N-blocks retarget.
type RetargetParams struct {
	// Interval is the number of blocks between retargets.
	Interval uint32

	// TargetTimespan is how long Interval blocks are meant to take.
	TargetTimespan time.Duration

	// AdjustmentFactor bounds a single retarget to [1/f, f] of the
	// previous target.
	AdjustmentFactor int64

	// PowLimit is the easiest target allowed.
	PowLimit *big.Int
}

// Validate rejects constants RecomputeTarget cannot work with.
func (r RetargetParams) Validate() error {
	switch {
	case r.Interval == 0:
		return errors.NewConfigurationError("[RetargetParams] interval must be positive")
	case r.TargetTimespan < time.Second:
		return errors.NewConfigurationError("[RetargetParams] target timespan %s is under a second", r.TargetTimespan)
	case r.AdjustmentFactor <= 0:
		return errors.NewConfigurationError("[RetargetParams] adjustment factor %d must be positive", r.AdjustmentFactor)
	}

	return nil
}

// Equal reports whether r and other retarget identically.
func (r RetargetParams) Equal(other RetargetParams) bool {
	if r.Interval != other.Interval || r.TargetTimespan != other.TargetTimespan || r.AdjustmentFactor != other.AdjustmentFactor {
		return false
	}

	if r.PowLimit == nil || other.PowLimit == nil {
		return r.PowLimit == other.PowLimit
	}

	return r.PowLimit.Cmp(other.PowLimit) == 0
}

// RecomputeTarget returns the compact target for the block that opens a new
// interval. firstTimestamp is the time of the block that opened the previous
// interval and lastTimestamp the time of the last block in it; the elapsed
// time is clamped to the adjustment factor before scaling previousBits.
// r must pass Validate.
func (r RetargetParams) RecomputeTarget(firstTimestamp, lastTimestamp, previousBits uint32) uint32 {
	targetTimespan := int64(r.TargetTimespan / time.Second)

	actualTimespan := int64(lastTimestamp) - int64(firstTimestamp)

	minTimespan := targetTimespan / r.AdjustmentFactor
	maxTimespan := targetTimespan * r.AdjustmentFactor

	if actualTimespan < minTimespan {
		actualTimespan = minTimespan
	} else if actualTimespan > maxTimespan {
		actualTimespan = maxTimespan
	}

	newTarget := util.CompactToBig(previousBits)
	newTarget.Mul(newTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if r.PowLimit != nil && newTarget.Cmp(r.PowLimit) > 0 {
		newTarget.Set(r.PowLimit)
	}

	return util.BigToCompact(newTarget)
}
