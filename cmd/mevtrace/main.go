// Command mevtrace streams MEV evaluations for a block range from an
// archival node into a persistence sink.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethinspect/mevtrace/batch"
	"github.com/ethinspect/mevtrace/config"
	"github.com/ethinspect/mevtrace/decoders"
	"github.com/ethinspect/mevtrace/evaluator"
	"github.com/ethinspect/mevtrace/log"
	"github.com/ethinspect/mevtrace/mevtypes"
	"github.com/ethinspect/mevtrace/reducer"
	"github.com/ethinspect/mevtrace/rpcmw"
	"github.com/ethinspect/mevtrace/sink"
)

var (
	version = "v0.1.0"
	commit  = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "mevtrace",
		Usage:   "extract MEV events from historical Ethereum traces",
		Version: version,
		Flags:   config.Flags(),
		Action:  run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)
	log.Info("starting mevtrace", "version", version, "commit", commit,
		"rpc", cfg.RPCURL, "from", cfg.FromBlock, "to", cfg.ToBlock, "concurrency", cfg.Concurrency)

	gctx := context.Background()
	client, err := rpcmw.Dial(gctx, cfg.RPCURL)
	if err != nil {
		return err
	}

	registry := decoders.NewRegistry()
	registry.Register(decoders.NewCompound())
	registry.Register(decoders.NewAave())
	registry.Register(decoders.NewBalancer())
	registry.Register(decoders.NewUniswapV2())
	registry.Register(decoders.NewSushiswap())
	registry.Register(decoders.NewCurve())
	registry.Register(decoders.NewERC20())
	registry.Freeze()

	quote := cfg.QuoteAddress()
	oracle := evaluator.NewStaticOracle(nil)
	var eval *evaluator.Evaluator
	if quote == (mevtypes.Address{}) {
		eval = evaluator.NewDefault(oracle)
	} else {
		eval = evaluator.New(oracle, quote)
	}

	store, err := sink.OpenLevelDB(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()
	inserter := sink.NewRetrying(store)

	pipeline := batch.New(batch.Config{
		Middleware:  client,
		Registry:    registry,
		Reducers:    reducer.DefaultPipeline(),
		Evaluator:   eval,
		Concurrency: cfg.Concurrency,
	})

	results := pipeline.Run(gctx, cfg.FromBlock, cfg.ToBlock)
	var failed int
	for r := range results {
		if r.Err != nil {
			log.Warn("block/transaction failed", "block", r.Block, "hash", r.Hash, "err", r.Err)
			failed++
			continue
		}
		if err := inserter.Insert(gctx, r.Evaluation); err != nil {
			log.Error("insert failed", "block", r.Block, "hash", r.Hash, "err", err)
			failed++
			continue
		}
	}

	log.Info("mevtrace finished", "failed", failed)
	return nil
}

func setupLogging(verbosity int) {
	var lvl slog.Level
	switch {
	case verbosity <= 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = gethlog.LevelTrace
	}
	gethlog.SetDefault(gethlog.NewLogger(gethlog.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))
	log.SetDefault(log.New(lvl))
}
