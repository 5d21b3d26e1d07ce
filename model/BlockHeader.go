package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

const BlockHeaderSize = 80

// BlockHeader is the header a light client sees. Height is not part of the
// serialized header; it is assigned by whoever links the header into a chain.
type BlockHeader struct {
	// Height of the block in the chain it was linked into.
	Height uint32

	// Version of the block.  This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32

	// hash is only set on anchor headers, which are known by hash alone.
	hash *chainhash.Hash
}

// NewAnchorHeader builds a header for a trusted point in the chain (a
// checkpoint) where only the hash, time and target are known. Hash returns
// the given hash instead of hashing the serialized fields.
func NewAnchorHeader(height uint32, hash *chainhash.Hash, timestamp uint32, bits NBit) *BlockHeader {
	h := *hash

	return &BlockHeader{
		Height:         height,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: &chainhash.Hash{},
		Timestamp:      timestamp,
		Bits:           bits,
		hash:           &h,
	}
}

func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) != BlockHeaderSize {
		return nil, fmt.Errorf("block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	hashPrevBlock, err := chainhash.NewHash(headerBytes[4:36])
	if err != nil {
		return nil, fmt.Errorf("error creating previous block hash from bytes: %w", err)
	}

	hashMerkleRoot, err := chainhash.NewHash(headerBytes[36:68])
	if err != nil {
		return nil, fmt.Errorf("error creating merkle root hash from bytes: %w", err)
	}

	bits, err := NewNBitFromSlice(headerBytes[72:76])
	if err != nil {
		return nil, err
	}

	return &BlockHeader{
		Version:        binary.LittleEndian.Uint32(headerBytes[:4]),
		HashPrevBlock:  hashPrevBlock,
		HashMerkleRoot: hashMerkleRoot,
		Timestamp:      binary.LittleEndian.Uint32(headerBytes[68:72]),
		Bits:           *bits,
		Nonce:          binary.LittleEndian.Uint32(headerBytes[76:]),
	}, nil
}

func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, fmt.Errorf("error decoding hex string to bytes: %w", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

func (bh *BlockHeader) Hash() *chainhash.Hash {
	if bh.hash != nil {
		h := *bh.hash
		return &h
	}

	hash := chainhash.DoubleHashH(bh.Bytes())

	return &hash
}

// IsAnchor reports whether the header was built from a checkpoint rather
// than from serialized bytes.
func (bh *BlockHeader) IsAnchor() bool {
	return bh.hash != nil
}

func (bh *BlockHeader) Bytes() []byte {
	if bh == nil {
		return nil
	}

	blockHeaderBytes := make([]byte, 0, BlockHeaderSize)

	blockHeaderBytes = binary.LittleEndian.AppendUint32(blockHeaderBytes, bh.Version)
	blockHeaderBytes = append(blockHeaderBytes, hashBytes(bh.HashPrevBlock)...)
	blockHeaderBytes = append(blockHeaderBytes, hashBytes(bh.HashMerkleRoot)...)
	blockHeaderBytes = binary.LittleEndian.AppendUint32(blockHeaderBytes, bh.Timestamp)
	blockHeaderBytes = append(blockHeaderBytes, bh.Bits[:]...)
	blockHeaderBytes = binary.LittleEndian.AppendUint32(blockHeaderBytes, bh.Nonce)

	return blockHeaderBytes
}

// WithHeight returns a copy of the header linked at the given height.
func (bh *BlockHeader) WithHeight(height uint32) *BlockHeader {
	c := *bh
	c.Height = height

	return &c
}

func (bh *BlockHeader) String() string {
	return fmt.Sprintf("%s (height %d, prev %s, time %d, bits %s)", bh.Hash(), bh.Height, hashString(bh.HashPrevBlock), bh.Timestamp, bh.Bits)
}

func hashBytes(h *chainhash.Hash) []byte {
	if h == nil {
		return make([]byte, chainhash.HashSize)
	}

	return h.CloneBytes()
}

func hashString(h *chainhash.Hash) string {
	if h == nil {
		return "<nil>"
	}

	return h.String()
}
