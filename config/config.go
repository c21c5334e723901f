// Package config resolves the mevtrace binary's settings from CLI flags
// and an optional YAML file, flags always winning. The accessor style
// (reading a cli.Context into a plain struct) follows
// cmd/shisui's getPortalConfig pattern.
package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// Config is everything the batch pipeline and its dependencies need to
// run one invocation of the mevtrace binary.
type Config struct {
	RPCURL      string `yaml:"rpc_url"`
	DataDir     string `yaml:"data_dir"`
	FromBlock   uint64 `yaml:"from_block"`
	ToBlock     uint64 `yaml:"to_block"`
	Concurrency int    `yaml:"concurrency"`
	QuoteToken  string `yaml:"quote_token"`
	LogLevel    int    `yaml:"log_level"`
}

var (
	rpcURLFlag = &cli.StringFlag{Name: "rpc.url", Usage: "Archival node JSON-RPC endpoint (http(s):// or ws(s)://)"}
	configFlag = &cli.StringFlag{Name: "config", Usage: "Path to an optional YAML config file; CLI flags override its values"}
	dataDirFlag = &cli.StringFlag{Name: "data.dir", Value: defaultDataDir(), Usage: "Directory for the leveldb evaluation store"}
	fromBlockFlag = &cli.Uint64Flag{Name: "from.block", Usage: "First block to inspect (inclusive)"}
	toBlockFlag = &cli.Uint64Flag{Name: "to.block", Usage: "Last block to inspect (exclusive)"}
	concurrencyFlag = &cli.IntFlag{Name: "concurrency", Value: 8, Usage: "Max concurrent block fetches and evaluations"}
	quoteTokenFlag = &cli.StringFlag{Name: "quote.token", Usage: "Address profit is denominated in (defaults to WETH)"}
	verbosityFlag = &cli.IntFlag{Name: "verbosity", Value: 3, Usage: "Log level 0-5 (0-1=error, 2=warn, 3=info, 4=debug, 5=trace)"}
)

// Flags returns the flag set the mevtrace command registers.
func Flags() []cli.Flag {
	return []cli.Flag{rpcURLFlag, configFlag, dataDirFlag, fromBlockFlag, toBlockFlag, concurrencyFlag, quoteTokenFlag, verbosityFlag}
}

// Load builds a Config from ctx, first reading a YAML file named by
// --config (if any) and then overlaying any flags the user explicitly
// set, so flags always win over the file.
func Load(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		DataDir:     dataDirFlag.Value,
		Concurrency: concurrencyFlag.Value,
		LogLevel:    verbosityFlag.Value,
	}

	if path := ctx.String(configFlag.Name); path != "" {
		if err := mergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(rpcURLFlag.Name) || cfg.RPCURL == "" {
		cfg.RPCURL = ctx.String(rpcURLFlag.Name)
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(fromBlockFlag.Name) || cfg.FromBlock == 0 {
		cfg.FromBlock = ctx.Uint64(fromBlockFlag.Name)
	}
	if ctx.IsSet(toBlockFlag.Name) || cfg.ToBlock == 0 {
		cfg.ToBlock = ctx.Uint64(toBlockFlag.Name)
	}
	if ctx.IsSet(concurrencyFlag.Name) {
		cfg.Concurrency = ctx.Int(concurrencyFlag.Name)
	}
	if ctx.IsSet(quoteTokenFlag.Name) || cfg.QuoteToken == "" {
		cfg.QuoteToken = ctx.String(quoteTokenFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.LogLevel = ctx.Int(verbosityFlag.Name)
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("config: --rpc.url is required")
	}
	if cfg.ToBlock != 0 && cfg.ToBlock <= cfg.FromBlock {
		return nil, fmt.Errorf("config: to.block (%d) must be greater than from.block (%d)", cfg.ToBlock, cfg.FromBlock)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = concurrencyFlag.Value
	}
	return cfg, nil
}

// QuoteAddress resolves QuoteToken to an mevtypes.Address, defaulting
// to the zero address (the caller substitutes WETH) when unset.
func (c *Config) QuoteAddress() mevtypes.Address {
	if c.QuoteToken == "" {
		return mevtypes.Address{}
	}
	return common.HexToAddress(c.QuoteToken)
}

func mergeYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mevtrace"
	}
	return home + "/.mevtrace"
}
