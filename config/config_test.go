package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args []string) *Config {
	t.Helper()
	var got *Config
	app := &cli.App{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx *cli.Context) error {
			cfg, err := Load(ctx)
			if err != nil {
				return err
			}
			got = cfg
			return nil
		},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	return got
}

func TestLoad_FlagsOnly(t *testing.T) {
	cfg := runApp(t, []string{
		"--rpc.url", "http://localhost:8545",
		"--from.block", "100",
		"--to.block", "200",
		"--concurrency", "4",
	})
	if cfg.RPCURL != "http://localhost:8545" {
		t.Fatalf("RPCURL = %q", cfg.RPCURL)
	}
	if cfg.FromBlock != 100 || cfg.ToBlock != 200 {
		t.Fatalf("block range = [%d, %d)", cfg.FromBlock, cfg.ToBlock)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("Concurrency = %d, want 4", cfg.Concurrency)
	}
}

func TestLoad_MissingRPCURLIsError(t *testing.T) {
	app := &cli.App{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx *cli.Context) error {
			_, err := Load(ctx)
			return err
		},
	}
	if err := app.Run([]string{"test"}); err == nil {
		t.Fatalf("expected error when --rpc.url is unset")
	}
}

func TestLoad_InvalidBlockRangeIsError(t *testing.T) {
	app := &cli.App{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx *cli.Context) error {
			_, err := Load(ctx)
			return err
		},
	}
	args := []string{"test", "--rpc.url", "http://localhost:8545", "--from.block", "200", "--to.block", "100"}
	if err := app.Run(args); err == nil {
		t.Fatalf("expected error when to.block <= from.block")
	}
}

func TestLoad_YAMLFileMergedWithFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := "rpc_url: http://file-endpoint:8545\nconcurrency: 16\nfrom_block: 10\nto_block: 20\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg := runApp(t, []string{"--config", path, "--concurrency", "2"})
	if cfg.RPCURL != "http://file-endpoint:8545" {
		t.Fatalf("RPCURL = %q, want value from file", cfg.RPCURL)
	}
	if cfg.Concurrency != 2 {
		t.Fatalf("Concurrency = %d, want 2 (flag overrides file)", cfg.Concurrency)
	}
	if cfg.FromBlock != 10 || cfg.ToBlock != 20 {
		t.Fatalf("block range = [%d, %d), want [10, 20) from file", cfg.FromBlock, cfg.ToBlock)
	}
}
