package chaincfg

import (
	"strings"

	"github.com/bsv-blockchain/spvchain/errors"
)

// Network selects one of the known parameter sets.
type Network uint8

const (
	MainNet Network = iota
	TestNet
)

// Networks lists every known network in declaration order.
var Networks = []Network{MainNet, TestNet}

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	default:
		return "unknown"
	}
}

// ParseNetwork maps a configured network name onto a Network. It is the
// place where a bad configuration value is caught, so that ForNetwork never
// sees an unknown value at runtime.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "test":
		return TestNet, nil
	default:
		return 0, errors.NewUnknownNetworkError("unknown network %q", name)
	}
}
