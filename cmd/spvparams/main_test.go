package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"spvparams"}, args...))

	return out.String(), err
}

// headersFile writes n headers built on the mainnet genesis block, the last
// one with the given bits.
func headersFile(t *testing.T, n int, lastBits uint32) string {
	t.Helper()

	genesis := chaincfg.MainNetParams.Checkpoints[0]
	parent := genesis.Header()

	lines := []string{"# built on mainnet genesis", ""}

	for i := 0; i < n; i++ {
		bits := uint32(0x1d00ffff)
		if i == n-1 {
			bits = lastBits
		}

		header := &model.BlockHeader{
			Version:        1,
			HashPrevBlock:  parent.Hash(),
			HashMerkleRoot: &chainhash.Hash{},
			Timestamp:      parent.Timestamp + 600,
			Bits:           model.NewNBitFromUint32(bits),
			Nonce:          uint32(i),
		}

		lines = append(lines, hex.EncodeToString(header.Bytes()))
		parent = header
	}

	path := filepath.Join(t.TempDir(), "headers.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	return path
}

func TestParamsCommand(t *testing.T) {
	out, err := run(t, "params")
	require.NoError(t, err)

	assert.Contains(t, out, "network:     mainnet")
	assert.Contains(t, out, "magic:       0xd3bbb0fd")
	assert.Contains(t, out, "port:        4877")
	assert.Contains(t, out, "explorer.iop.cash, mainnet.iop.cash")
	assert.Contains(t, out, "120960 00000000000626d833f02392bb0e7efce81bbaeb6bc4cb3c9342e71afca6e50f 1540127974 1b08de0f")

	out, err = run(t, "--network", "testnet", "params")
	require.NoError(t, err)
	assert.Contains(t, out, "magic:       0xb350fcb1")
	assert.Contains(t, out, "port:        7475")

	_, err = run(t, "--network", "regtest", "params")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownNetwork))
}

func TestCheckpointCommand(t *testing.T) {
	out, err := run(t, "checkpoint", "--height", "50000")
	require.NoError(t, err)
	assert.Equal(t, "40320 0000000007f8e37570026a9219613f1f1122f4273976187e27a21d0018abf997 1497363978 1c0cfa29\n", out)

	_, err = run(t, "checkpoint", "--height", "50000", "--exact")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	out, err = run(t, "--network", "testnet", "checkpoint", "--height", "20160", "--exact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "20160 000000004a21d988dfd5fd10001f7ec94c7f16e95f307c02010fd5f7ed1483dd"))

	_, err = run(t, "checkpoint", "--height", "5000000000")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestVerifyCommand(t *testing.T) {
	t.Setenv("headerchain_metricsEnabled", "false")

	out, err := run(t, "verify", "--file", headersFile(t, 3, 0x1d00ffff))
	require.NoError(t, err)
	assert.Contains(t, out, "accepted 3 headers from checkpoint 0, tip 3 ")

	_, err = run(t, "verify", "--file", headersFile(t, 3, 0x1c00ffff))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTargetMismatch))
	assert.Contains(t, err.Error(), "line 5")

	// headers built on genesis do not link to a later checkpoint
	_, err = run(t, "verify", "--file", headersFile(t, 1, 0x1d00ffff), "--start-height", "20160")
	assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

	_, err = run(t, "verify", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestVerifyCommandRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("deadbeef\n"), 0o600))

	_, err := run(t, "verify", "--file", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestParamsCommandJSON(t *testing.T) {
	out, err := run(t, "--network", "testnet", "params", "--json")
	require.NoError(t, err)

	var got paramsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "testnet", got.Network)
	assert.Equal(t, "0xb350fcb1", got.Magic)
	assert.Equal(t, uint32(2016), got.DifficultyInterval)
	assert.Equal(t, int64(1209600), got.TargetTimespanSeconds)
	require.Len(t, got.Checkpoints, 6)
	assert.Equal(t, checkpointJSON{
		Height:    100800,
		Hash:      "000000009bf4d894fb86fe78f6504092d9d3a66b9f6bfe87f127025409f99e39",
		Timestamp: 1552846675,
		Bits:      "1d00b2ff",
	}, got.Checkpoints[5])
}

func TestVerifyCommandCountsNewHeadersOnly(t *testing.T) {
	t.Setenv("headerchain_metricsEnabled", "false")

	path := headersFile(t, 2, 0x1d00ffff)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	content = append(content, []byte(lines[len(lines)-1]+"\n")...)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	out, err := run(t, "verify", "--file", path, "--json")
	require.NoError(t, err)

	var got verifyJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 2, got.Accepted)
	assert.Equal(t, uint32(0), got.AnchorHeight)
	require.NotNil(t, got.Tip)
	assert.Equal(t, uint32(2), got.Tip.Height)
	assert.Equal(t, "12885098499", got.Tip.Work().String())
}

func TestVerifyCommandStartHeightFromSettings(t *testing.T) {
	t.Setenv("headerchain_metricsEnabled", "false")
	t.Setenv("headerchain_startHeight", "20160")

	path := headersFile(t, 1, 0x1d00ffff)

	// the configured anchor is kept when the flag is absent
	_, err := run(t, "verify", "--file", path)
	assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

	out, err := run(t, "verify", "--file", path, "--start-height", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted 1 headers from checkpoint 0")
}
