package settings

import (
	"time"

	"github.com/bsv-blockchain/spvchain/chaincfg"
)

// NewSettings reads the settings from gocore config. An unknown network is
// a configuration error the process cannot continue from, so it panics.
func NewSettings() *Settings {
	s, err := NewSettingsForNetwork(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return s
}

// NewSettingsForNetwork reads the settings from gocore config, overriding the
// configured network.
func NewSettingsForNetwork(network string) (*Settings, error) {
	params, err := chaincfg.GetChainParams(network)
	if err != nil {
		return nil, err
	}

	return &Settings{
		ClientName:     getString("clientName", "spv"),
		Network:        params.Name,
		ChainCfgParams: params,
		Logging: LoggingSettings{
			Level:  getString("logLevel", "INFO"),
			Type:   getString("logger", "zerolog"),
			Pretty: getBool("PRETTY_LOGS", true),
		},
		HeaderChain: HeaderChainSettings{
			StartHeight:    getUint32("headerchain_startHeight", 0),
			MetricsEnabled: getBool("headerchain_metricsEnabled", true),
			OrphanTTL:      time.Duration(getInt("headerchain_orphanTTLSeconds", 600)) * time.Second,
		},
	}, nil
}
