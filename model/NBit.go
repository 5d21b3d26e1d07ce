package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/spvchain/util"
)

// NBit is the compact difficulty target of a block header, stored in the
// little-endian byte order it has on the wire.
type NBit [4]byte

// powLimitTarget is the target of difficulty 1, the reference for
// CalculateDifficulty.
var powLimitTarget = util.CompactToBig(0x1d00ffff)

func NewNBitFromUint32(bits uint32) NBit {
	var nb NBit
	binary.LittleEndian.PutUint32(nb[:], bits)

	return nb
}

// NewNBitFromSlice takes the 4 little-endian bytes as found in a serialized header.
func NewNBitFromSlice(nBits []byte) (*NBit, error) {
	if len(nBits) != 4 {
		return nil, fmt.Errorf("nBits should be 4 bytes long, got %d", len(nBits))
	}

	nb := NBit{}
	copy(nb[:], nBits)

	return &nb, nil
}

// NewNBitFromString takes the big-endian hex form, e.g. "1d00ffff".
func NewNBitFromString(nBitsString string) (*NBit, error) {
	nBits, err := hex.DecodeString(nBitsString)
	if err != nil {
		return nil, err
	}

	return NewNBitFromSlice(bt.ReverseBytes(nBits))
}

func (b NBit) Uint32() uint32 {
	return binary.LittleEndian.Uint32(b[:])
}

func (b NBit) String() string {
	return hex.EncodeToString(bt.ReverseBytes(b[:]))
}

func (b NBit) CloneBytes() []byte {
	nb := make([]byte, 4)
	copy(nb, b[:])

	return nb
}

func (b NBit) CalculateTarget() *big.Int {
	return util.CompactToBig(b.Uint32())
}

// CalculateDifficulty returns how many times harder this target is than the
// proof of work limit 0x1d00ffff.
func (b NBit) CalculateDifficulty() *big.Float {
	target := new(big.Float).SetInt(b.CalculateTarget())
	if target.Sign() <= 0 {
		return new(big.Float)
	}

	return new(big.Float).Quo(new(big.Float).SetInt(powLimitTarget), target)
}
