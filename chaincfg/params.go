// Package chaincfg holds the static facts a light client needs about each
// network before it can validate anything: how to find and talk to peers,
// and the checkpoints it trusts to start a header download from.
//
// Parameter sets are package-level values built once at init and validated
// there. They are shared by reference and must not be modified.
package chaincfg

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-wire"
	"github.com/bsv-blockchain/spvchain/difficulty"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// powLimit is the highest proof of work value a block can have on
	// either network.  It is the value 2^224 - 1.
	powLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
)

const (
	// difficultyInterval is the number of blocks between retargets.
	difficultyInterval = 2016

	targetTimespan     = time.Hour * 24 * 14 // 14 days
	targetTimePerBlock = time.Minute * 10    // 10 minutes
)

// Checkpoint identifies a known good point in the block chain. Checkpoints
// double as resume points for partial header downloads, so every one after
// genesis sits on a retarget boundary: the timestamp and target recorded
// here are what the next retarget is verified against.
type Checkpoint struct {
	Height    uint32
	Hash      *chainhash.Hash
	Timestamp uint32
	Bits      model.NBit
}

// Header returns the checkpoint as a trusted anchor header that later
// headers can be linked to.
func (c Checkpoint) Header() *model.BlockHeader {
	return model.NewAnchorHeader(c.Height, c.Hash, c.Timestamp, c.Bits)
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("%d %s %d %s", c.Height, c.Hash, c.Timestamp, c.Bits)
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering
	// by service flags (wire.ServiceFlag).
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a network by its parameters.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Network is the enumeration value these parameters belong to.
	Network Network

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// Services are the service bits advertised to and required of peers.
	Services wire.ServiceFlag

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// DifficultyInterval is the number of blocks between retargets.
	DifficultyInterval uint32

	// TargetTimespan is the desired amount of time that should elapse
	// before the block difficulty requirement is examined to determine how
	// it should be changed in order to maintain the desired block
	// generation rate.
	TargetTimespan time.Duration

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// RetargetAdjustmentFactor is the adjustment factor used to limit
	// the minimum and maximum amount of adjustment that can occur between
	// difficulty retargets.
	RetargetAdjustmentFactor int64

	// VerifyDifficulty decides whether a header may follow its parent on
	// this network. Its retarget constants must match the fields above;
	// the built-in networks derive it from them in init.
	VerifyDifficulty difficulty.Verifier

	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:        "mainnet",
	Network:     MainNet,
	Net:         wire.BitcoinNet(0xd3bbb0fd),
	DefaultPort: "4877",
	DNSSeeds: []DNSSeed{
		{"explorer.iop.cash", false},
		{"mainnet.iop.cash", false},
		{"main1.iop.cash", false},
		{"main2.iop.cash", false},
		{"main3.iop.cash", false},
		{"main4.iop.cash", false},
		{"main5.iop.cash", false},
		{"mainnet.iop.global", false},
	},
	Services: 0,

	// Chain parameters
	GenesisHash:              newHashFromStr("00000000bf5f2ee556cb9be8be64e0776af14933438dbb1af72c41bfb6c82db3"),
	PowLimit:                 powLimit,
	PowLimitBits:             0x1d00ffff,
	DifficultyInterval:       difficultyInterval,
	TargetTimespan:           targetTimespan,
	TargetTimePerBlock:       targetTimePerBlock,
	RetargetAdjustmentFactor: 4, // 25% less, 400% more

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("00000000bf5f2ee556cb9be8be64e0776af14933438dbb1af72c41bfb6c82db3"), 1463452181, model.NewNBitFromUint32(0x1d00ffff)},
		{20160, newHashFromStr("0000000004c386ce4ba68926a6c5a91c5332127bb7b9e940dbcb1f6789a9aaf7"), 1484253352, model.NewNBitFromUint32(0x1c09fd72)},
		{40320, newHashFromStr("0000000007f8e37570026a9219613f1f1122f4273976187e27a21d0018abf997"), 1497363978, model.NewNBitFromUint32(0x1c0cfa29)},
		{60480, newHashFromStr("000000000186215285c3164974a6be1e3f67e40dadf5bc5fa77c3134457f1218"), 1507851127, model.NewNBitFromUint32(0x1c018d5a)},
		{80640, newHashFromStr("0000000000167332516b8258b34139a8ddaa3ec3ef8be37cf15fd880bc59c1e2"), 1517294643, model.NewNBitFromUint32(0x1b1dce77)},
		{100800, newHashFromStr("0000000000062f145230e99035d2bd905b7484b0f5fbbc216f0ef4f52e6ccbf5"), 1528894997, model.NewNBitFromUint32(0x1b1306e6)},
		{120960, newHashFromStr("00000000000626d833f02392bb0e7efce81bbaeb6bc4cb3c9342e71afca6e50f"), 1540127974, model.NewNBitFromUint32(0x1b08de0f)},
	},
}

// TestNetParams defines the network parameters for the test network. The
// test network allows difficulty resets, so only linkage is verified.
var TestNetParams = Params{
	Name:        "testnet",
	Network:     TestNet,
	Net:         wire.BitcoinNet(0xb350fcb1),
	DefaultPort: "7475",
	DNSSeeds: []DNSSeed{
		{"testnet.iop.cash", false},
		{"test1.iop.cash", false},
		{"test2.iop.cash", false},
		{"testnet.iop.global", false},
	},
	Services: 0,

	// Chain parameters
	GenesisHash:              newHashFromStr("000000006f2bb863230cda4f4fbee520314077e599a90b9c6072ea2018d7f3a3"),
	PowLimit:                 powLimit,
	PowLimitBits:             0x1d00ffff,
	DifficultyInterval:       difficultyInterval,
	TargetTimespan:           targetTimespan,
	TargetTimePerBlock:       targetTimePerBlock,
	RetargetAdjustmentFactor: 4,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("000000006f2bb863230cda4f4fbee520314077e599a90b9c6072ea2018d7f3a3"), 1463452342, model.NewNBitFromUint32(0x1d00ffff)},
		{20160, newHashFromStr("000000004a21d988dfd5fd10001f7ec94c7f16e95f307c02010fd5f7ed1483dd"), 1520859326, model.NewNBitFromUint32(0x1d00ffff)},
		{40320, newHashFromStr("000000004fd1c98e61f6eeaaca1f17219ad62b6745416e03b3e1f9dc07c03b78"), 1532080436, model.NewNBitFromUint32(0x1d00e684)},
		{60480, newHashFromStr("0000000032a652f2e7e1fceb550f08e61ec5df00f18f224ddfd4c825ede42624"), 1536631371, model.NewNBitFromUint32(0x1c3fffc0)},
		{80640, newHashFromStr("0000000019a8c796084eb81c772f99f0e937ec917d37eee5795be7c3e491fbe7"), 1545781751, model.NewNBitFromUint32(0x1c1a749a)},
		{100800, newHashFromStr("000000009bf4d894fb86fe78f6504092d9d3a66b9f6bfe87f127025409f99e39"), 1552846675, model.NewNBitFromUint32(0x1d00b2ff)},
	},
}

// ForNetwork returns the parameters of a known network. The enumeration is
// closed, so an unknown value is a programming error and panics; validate
// configured names with ParseNetwork first.
func ForNetwork(network Network) *Params {
	switch network {
	case MainNet:
		return &MainNetParams
	case TestNet:
		return &TestNetParams
	default:
		panic(fmt.Sprintf("chaincfg: unknown network %d", network))
	}
}

// GetChainParams returns the parameters for a configured network name.
func GetChainParams(network string) (*Params, error) {
	n, err := ParseNetwork(network)
	if err != nil {
		return nil, err
	}

	return ForNetwork(n), nil
}

// Retarget returns the retarget constants of the network.
func (p *Params) Retarget() difficulty.RetargetParams {
	return difficulty.RetargetParams{
		Interval:         p.DifficultyInterval,
		TargetTimespan:   p.TargetTimespan,
		AdjustmentFactor: p.RetargetAdjustmentFactor,
		PowLimit:         p.PowLimit,
	}
}

// SeedHostnames returns the DNS seed hosts in declaration order.
func (p *Params) SeedHostnames() []string {
	hosts := make([]string, 0, len(p.DNSSeeds))
	for _, seed := range p.DNSSeeds {
		hosts = append(hosts, seed.Host)
	}

	return hosts
}

// CheckpointBefore returns the checkpoint with the greatest height that is
// not above height. It returns false when there is none.
func (p *Params) CheckpointBefore(height uint32) (Checkpoint, bool) {
	// index of the first checkpoint strictly above height
	i := sort.Search(len(p.Checkpoints), func(i int) bool {
		return p.Checkpoints[i].Height > height
	})

	if i == 0 {
		return Checkpoint{}, false
	}

	return p.Checkpoints[i-1], true
}

// CheckpointAt returns the checkpoint at exactly height.
func (p *Params) CheckpointAt(height uint32) (Checkpoint, bool) {
	i := sort.Search(len(p.Checkpoints), func(i int) bool {
		return p.Checkpoints[i].Height >= height
	})

	if i < len(p.Checkpoints) && p.Checkpoints[i].Height == height {
		return p.Checkpoints[i], true
	}

	return Checkpoint{}, false
}

// LastCheckpoint returns the newest checkpoint.
func (p *Params) LastCheckpoint() (Checkpoint, bool) {
	if len(p.Checkpoints) == 0 {
		return Checkpoint{}, false
	}

	return p.Checkpoints[len(p.Checkpoints)-1], true
}

// Validate checks the invariants the lookups and the header chain rely on.
// The retarget constants must be usable and agree with the verifier. The
// table starts at genesis, heights strictly increase and every later
// checkpoint sits on a retarget boundary.
func (p *Params) Validate() error {
	if p.VerifyDifficulty == nil {
		return errors.NewConfigurationError("[%s] no difficulty verifier", p.Name)
	}

	if err := p.Retarget().Validate(); err != nil {
		return errors.NewConfigurationError("[%s] unusable retarget constants", p.Name, err)
	}

	if r, ok := p.VerifyDifficulty.(difficulty.Retargeter); ok && r.BoundaryInterval() != p.DifficultyInterval {
		return errors.NewConfigurationError("[%s] verifier retargets every %d blocks, params every %d", p.Name, r.BoundaryInterval(), p.DifficultyInterval)
	}

	if v, ok := p.VerifyDifficulty.(*difficulty.StandardVerifier); ok && !v.Retarget.Equal(p.Retarget()) {
		return errors.NewConfigurationError("[%s] verifier retarget constants differ from params", p.Name)
	}

	if len(p.Checkpoints) == 0 {
		return errors.NewConfigurationError("[%s] no checkpoints", p.Name)
	}

	genesis := p.Checkpoints[0]
	if genesis.Height != 0 {
		return errors.NewConfigurationError("[%s] first checkpoint is at height %d, expected genesis", p.Name, genesis.Height)
	}

	if p.GenesisHash == nil || !genesis.Hash.IsEqual(p.GenesisHash) {
		return errors.NewConfigurationError("[%s] first checkpoint hash %s is not the genesis hash", p.Name, genesis.Hash)
	}

	for i := 1; i < len(p.Checkpoints); i++ {
		cp := p.Checkpoints[i]

		if cp.Height <= p.Checkpoints[i-1].Height {
			return errors.NewConfigurationError("[%s] checkpoint heights not increasing at %d", p.Name, cp.Height)
		}

		if !difficulty.IsBoundary(cp.Height, p.DifficultyInterval) {
			return errors.NewConfigurationError("[%s] checkpoint %d is not on a retarget boundary", p.Name, cp.Height)
		}

		if cp.Hash == nil {
			return errors.NewConfigurationError("[%s] checkpoint %d has no hash", p.Name, cp.Height)
		}
	}

	return nil
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}

	return hash
}

func init() {
	MainNetParams.VerifyDifficulty = difficulty.NewStandardVerifier(MainNetParams.Retarget())
	TestNetParams.VerifyDifficulty = difficulty.NewRelaxedVerifier(TestNetParams.DifficultyInterval)

	for _, n := range Networks {
		params := ForNetwork(n)
		if err := params.Validate(); err != nil {
			panic("invalid chain parameters: " + err.Error())
		}

		if !strings.EqualFold(params.Name, n.String()) {
			panic("chain parameters registered under the wrong network: " + params.Name)
		}
	}
}
