package model

import (
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type BlockHeaderMeta struct {
	Height    uint32          // Height of the block in the header chain.
	ChainWork *chainhash.Hash // Cumulative work from the anchor, little-endian.
}

// blockHeaderMetaJSON renders chain work as a big-endian hex string, the
// way node RPCs report it.
type blockHeaderMetaJSON struct {
	Height    uint32 `json:"height"`
	ChainWork string `json:"chain_work"`
}

func (m BlockHeaderMeta) MarshalJSON() ([]byte, error) {
	out := blockHeaderMetaJSON{Height: m.Height}
	if m.ChainWork != nil {
		out.ChainWork = m.ChainWork.String()
	}

	return json.Marshal(out)
}

func (m *BlockHeaderMeta) UnmarshalJSON(data []byte) error {
	var in blockHeaderMetaJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	m.Height = in.Height
	m.ChainWork = nil

	if in.ChainWork != "" {
		work, err := chainhash.NewHashFromStr(in.ChainWork)
		if err != nil {
			return err
		}

		m.ChainWork = work
	}

	return nil
}

// Work returns the cumulative work as an integer.
func (m *BlockHeaderMeta) Work() *big.Int {
	if m == nil || m.ChainWork == nil {
		return new(big.Int)
	}

	return new(big.Int).SetBytes(bt.ReverseBytes(m.ChainWork.CloneBytes()))
}

// HasMoreWork reports whether m carries strictly more work than other.
func (m *BlockHeaderMeta) HasMoreWork(other *BlockHeaderMeta) bool {
	return m.Work().Cmp(other.Work()) > 0
}
