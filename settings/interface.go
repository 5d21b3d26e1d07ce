package settings

import (
	"time"

	"github.com/bsv-blockchain/spvchain/chaincfg"
)

type HeaderChainSettings struct {
	// StartHeight picks the checkpoint a header download is anchored to:
	// the newest checkpoint at or below this height.
	StartHeight uint32
	// MetricsEnabled registers the header chain prometheus collectors.
	MetricsEnabled bool
	// OrphanTTL is how long headers with an unknown parent are pooled. Zero
	// turns the pool off.
	OrphanTTL time.Duration
}

type LoggingSettings struct {
	Level  string
	Type   string
	Pretty bool
}

type Settings struct {
	ClientName     string
	Network        string
	ChainCfgParams *chaincfg.Params
	Logging        LoggingSettings
	HeaderChain    HeaderChainSettings
}
