package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
The bits "1e0cbb05" expand to 0x0cbb05 * 256^(0x1e-3). Against the difficulty 1
target 0xffff * 256^(0x1d-3) that is 65535 / (834309 * 256) ~= 0.0003068360688.
*/
func TestNBit(t *testing.T) {
	bits, err := NewNBitFromString("1e0cbb05")
	require.NoError(t, err)
	require.Equal(t, "1e0cbb05", bits.String())
	require.Equal(t, uint32(0x1e0cbb05), bits.Uint32())

	difficulty := bits.CalculateDifficulty()
	require.Equal(t, "0.0003068360688", difficulty.String())

	target := bits.CalculateTarget()
	require.Equal(t, "87862992749702277876753291758735394717545048148536728461472937357082624", target.String())
}

func TestCalculateTarget(t *testing.T) {
	bits, err := NewNBitFromString("180f7f7d") // block #869334
	require.NoError(t, err)

	difficulty, _ := bits.CalculateDifficulty().Float32()
	expectedDifficulty, _ := big.NewFloat(70944300723.85233).Float32()
	require.Equal(t, expectedDifficulty, difficulty)

	target := bits.CalculateTarget()
	require.Equal(t, "380009881215830907712605183958726704270100120947772096512", target.String())
}

func TestNBitConversions(t *testing.T) {
	nb := NewNBitFromUint32(0x1d00ffff)
	assert.Equal(t, NBit{0xff, 0xff, 0x00, 0x1d}, nb)
	assert.Equal(t, "1d00ffff", nb.String())
	assert.Equal(t, []byte{0xff, 0xff, 0x00, 0x1d}, nb.CloneBytes())
	assert.Equal(t, "1", nb.CalculateDifficulty().String())

	fromSlice, err := NewNBitFromSlice([]byte{0xff, 0xff, 0x00, 0x1d})
	require.NoError(t, err)
	assert.Equal(t, nb, *fromSlice)

	_, err = NewNBitFromSlice([]byte{0x01})
	require.Error(t, err)

	_, err = NewNBitFromString("zz")
	require.Error(t, err)

	zero := NewNBitFromUint32(0)
	assert.Equal(t, "0", zero.CalculateDifficulty().String())
}
