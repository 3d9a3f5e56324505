package cli

// -----------------------------------------------------------------------------
// common.go – shared client bootstrap for all CLI concerns
// -----------------------------------------------------------------------------
// Every command group uses ensureClient as its PersistentPreRunE middleware:
// it loads .env, resolves the node ring and chain settings from config or
// environment, and builds the shared core.Client exactly once.
// -----------------------------------------------------------------------------

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hivenet/core"
	"hivenet/pkg/config"
	"hivenet/pkg/utils"
)

var (
	cliClient *core.Client
	cliMu     sync.RWMutex
)

func ensureClient(cmd *cobra.Command, _ []string) error {
	cliMu.RLock()
	ready := cliClient != nil
	cliMu.RUnlock()
	if ready {
		return nil
	}

	_ = godotenv.Load()

	cfg, err := config.Load(utils.EnvOrDefault("HIVE_ENV", ""))
	if err != nil {
		// No config file on disk; environment variables alone are fine.
		cfg = config.LoadFromEnv()
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	core.SetLogger(logger)

	nodes := cfg.Nodes.URLs
	if env := utils.EnvOrDefault("HIVE_NODES", ""); env != "" {
		nodes = utils.SplitList(env)
	}
	if len(nodes) == 0 {
		nodes = core.DefaultNodes
	}

	options := core.DefaultOptions()
	if cfg.Chain.Network == "testnet" {
		options = core.TestnetOptions()
	}
	options.Timeout = time.Duration(cfg.Nodes.TimeoutSeconds) * time.Second
	options.FailoverThreshold = uint32(cfg.Nodes.FailoverThreshold)
	options.AddressPrefix = cfg.Chain.AddressPrefix
	options.Backoff = backoffFromConfig(cfg)

	cliMu.Lock()
	cliClient = core.NewClient(nodes, options)
	cliMu.Unlock()
	return nil
}

func backoffFromConfig(cfg *config.Config) core.Backoff {
	base := time.Duration(cfg.Backoff.BaseMS) * time.Millisecond
	max := time.Duration(cfg.Backoff.MaxMS) * time.Millisecond
	switch cfg.Backoff.Strategy {
	case "fixed":
		return core.FixedBackoff{Wait: base}
	case "linear":
		return core.LinearBackoff{Step: base, Max: max}
	default:
		return core.ExponentialBackoff{Base: base, Max: max}
	}
}

func client() *core.Client {
	cliMu.RLock()
	defer cliMu.RUnlock()
	return cliClient
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
