package util

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactToBig(t *testing.T) {
	tests := []struct {
		name    string
		compact uint32
		want    string
	}{
		{"proof of work limit", 0x1d00ffff, "26959535291011309493156476344723991336010898738574164086137773096960"},
		{"zero", 0x00000000, "0"},
		{"small exponent", 0x03123456, "1193046"},
		{"exponent one", 0x01120000, "18"},
		{"negative", 0x04923456, "-305419776"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactToBig(tt.compact).String())
		})
	}
}

func TestBigToCompactRoundTrip(t *testing.T) {
	for _, compact := range []uint32{0x1d00ffff, 0x1c09fd72, 0x1c0cfa29, 0x1c018d5a, 0x1b1dce77, 0x1b1306e6, 0x1b08de0f, 0x1c3fffc0, 0x1d00b2ff} {
		assert.Equalf(t, compact, BigToCompact(CompactToBig(compact)), "compact %08x", compact)
	}
}

func TestBigToCompact(t *testing.T) {
	// sign bit would be set, so the mantissa is shifted and the exponent bumped
	n := new(big.Int).Lsh(big.NewInt(0xffff), 208)
	assert.Equal(t, uint32(0x1d00ffff), BigToCompact(n))

	assert.Equal(t, uint32(0), BigToCompact(big.NewInt(0)))
	assert.Equal(t, uint32(0x01120000), BigToCompact(big.NewInt(0x12)))
	assert.Equal(t, uint32(0x04923456), BigToCompact(big.NewInt(-305419776)))
}

func TestCalcWork(t *testing.T) {
	assert.Equal(t, "4295032833", CalcWork(0x1d00ffff).String())
	assert.Equal(t, "2", CalcWork(0x207fffff).String())
	assert.Equal(t, "0", CalcWork(0x01800000).String())
	assert.Equal(t, "0", CalcWork(0).String())
}

func TestCalculateWork(t *testing.T) {
	genesis := CalculateWork(&chainhash.Hash{}, 0x1d00ffff)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000000100010001", genesis.String())

	second := CalculateWork(genesis, 0x1d00ffff)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000000200020002", second.String())
}
