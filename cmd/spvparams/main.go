// Command spvparams prints the chain parameters a light client is built with
// and verifies files of raw block headers against them.
//
// Usage:
//
//	spvparams [--network testnet] params [--json]
//	spvparams checkpoint --height 50000 [--exact]
//	spvparams verify --file headers.txt [--start-height 40320] [--json]
//
// A headers file holds one 80-byte header per line, hex encoded. Blank lines
// and lines starting with '#' are skipped.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/headerchain"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/ulogger"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "print JSON instead of text",
	}
}

type checkpointJSON struct {
	Height    uint32 `json:"height"`
	Hash      string `json:"hash"`
	Timestamp uint32 `json:"timestamp"`
	Bits      string `json:"bits"`
}

type paramsJSON struct {
	Network               string           `json:"network"`
	Magic                 string           `json:"magic"`
	Port                  string           `json:"port"`
	Services              uint64           `json:"services"`
	Genesis               string           `json:"genesis"`
	PowLimitBits          string           `json:"pow_limit_bits"`
	DifficultyInterval    uint32           `json:"difficulty_interval"`
	TargetTimespanSeconds int64            `json:"target_timespan_seconds"`
	DNSSeeds              []string         `json:"dns_seeds"`
	Checkpoints           []checkpointJSON `json:"checkpoints"`
}

type verifyJSON struct {
	Accepted     int                    `json:"accepted"`
	AnchorHeight uint32                 `json:"anchor_height"`
	TipHash      string                 `json:"tip_hash"`
	Tip          *model.BlockHeaderMeta `json:"tip"`
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "spvparams",
		Usage: "Inspect chain parameters and verify block headers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "network",
				Usage:   "network to use (mainnet or testnet)",
				Value:   "mainnet",
				EnvVars: []string{"network"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "params",
				Usage:  "Print the parameters of the network",
				Action: printParams,
				Flags:  []cli.Flag{jsonFlag()},
			},
			{
				Name:   "checkpoint",
				Usage:  "Print the checkpoint a download from the given height starts at",
				Action: printCheckpoint,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "height",
						Usage:    "block height",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "exact",
						Usage: "only print a checkpoint at exactly this height",
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Verify a file of hex encoded block headers",
				Action: verifyHeaders,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path of the headers file",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:  "start-height",
						Usage: "height of the checkpoint the first header builds on, overrides headerchain_startHeight",
					},
					jsonFlag(),
				},
			},
		},
	}
}

func loadSettings(c *cli.Context) (*settings.Settings, error) {
	return settings.NewSettingsForNetwork(c.String("network"))
}

func printParams(c *cli.Context) error {
	tSettings, err := loadSettings(c)
	if err != nil {
		return err
	}

	p := tSettings.ChainCfgParams
	w := c.App.Writer

	if c.Bool("json") {
		out := paramsJSON{
			Network:               p.Name,
			Magic:                 fmt.Sprintf("0x%08x", uint32(p.Net)),
			Port:                  p.DefaultPort,
			Services:              uint64(p.Services),
			Genesis:               p.GenesisHash.String(),
			PowLimitBits:          fmt.Sprintf("%08x", p.PowLimitBits),
			DifficultyInterval:    p.DifficultyInterval,
			TargetTimespanSeconds: int64(p.TargetTimespan.Seconds()),
			DNSSeeds:              p.SeedHostnames(),
		}

		for _, cp := range p.Checkpoints {
			out.Checkpoints = append(out.Checkpoints, checkpointJSON{
				Height:    cp.Height,
				Hash:      cp.Hash.String(),
				Timestamp: cp.Timestamp,
				Bits:      cp.Bits.String(),
			})
		}

		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "network:     %s\n", p.Name)
	fmt.Fprintf(w, "magic:       0x%08x\n", uint32(p.Net))
	fmt.Fprintf(w, "port:        %s\n", p.DefaultPort)
	fmt.Fprintf(w, "services:    %d\n", uint64(p.Services))
	fmt.Fprintf(w, "genesis:     %s\n", p.GenesisHash)
	fmt.Fprintf(w, "pow limit:   %08x\n", p.PowLimitBits)
	fmt.Fprintf(w, "interval:    %d\n", p.DifficultyInterval)
	fmt.Fprintf(w, "dns seeds:   %s\n", strings.Join(p.SeedHostnames(), ", "))
	fmt.Fprintln(w, "checkpoints:")

	for _, cp := range p.Checkpoints {
		fmt.Fprintf(w, "  %s\n", cp)
	}

	return nil
}

func printCheckpoint(c *cli.Context) error {
	tSettings, err := loadSettings(c)
	if err != nil {
		return err
	}

	height, err := heightFlag(c, "height")
	if err != nil {
		return err
	}

	p := tSettings.ChainCfgParams

	lookup := p.CheckpointBefore
	if c.Bool("exact") {
		lookup = p.CheckpointAt
	}

	cp, ok := lookup(height)
	if !ok {
		return errors.NewNotFoundError("no %s checkpoint for height %d", p.Name, height)
	}

	fmt.Fprintln(c.App.Writer, cp)

	return nil
}

func verifyHeaders(c *cli.Context) error {
	tSettings, err := loadSettings(c)
	if err != nil {
		return err
	}

	if c.IsSet("start-height") {
		startHeight, err := heightFlag(c, "start-height")
		if err != nil {
			return err
		}

		tSettings.HeaderChain.StartHeight = startHeight
	}

	logger := ulogger.New("spvparams",
		ulogger.WithWriter(c.App.ErrWriter),
		ulogger.WithLevel(tSettings.Logging.Level),
		ulogger.WithLoggerType(tSettings.Logging.Type),
		ulogger.WithPrettyLogs(tSettings.Logging.Pretty),
	)

	hc, err := headerchain.NewFromSettings(logger, tSettings)
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return errors.NewInvalidArgumentError("could not open headers file", err)
	}
	defer f.Close()

	known := hc.Len()
	lineNum := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		header, err := model.NewBlockHeaderFromString(line)
		if err != nil {
			return errors.NewInvalidArgumentError("line %d is not a block header", lineNum, err)
		}

		if _, err = hc.Accept(header); err != nil {
			return errors.NewBlockInvalidError("header on line %d rejected", lineNum, err)
		}
	}

	if err = scanner.Err(); err != nil {
		return errors.NewProcessingError("error reading headers file", err)
	}

	// duplicates in the file are not counted twice
	accepted := hc.Len() - known
	tip := hc.Tip()

	if c.Bool("json") {
		meta, _ := hc.Meta(tip.Hash())

		return writeJSON(c.App.Writer, verifyJSON{
			Accepted:     accepted,
			AnchorHeight: hc.Anchor().Height,
			TipHash:      tip.Hash().String(),
			Tip:          meta,
		})
	}

	fmt.Fprintf(c.App.Writer, "accepted %d headers from checkpoint %d, tip %d %s\n", accepted, hc.Anchor().Height, tip.Height, tip.Hash())

	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewProcessingError("could not encode output", err)
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

func heightFlag(c *cli.Context, name string) (uint32, error) {
	height := c.Uint64(name)
	if height > uint64(^uint32(0)) {
		return 0, errors.NewInvalidArgumentError("--%s %d is out of range", name, height)
	}

	return uint32(height), nil
}
