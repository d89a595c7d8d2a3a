package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MJE43/pf-crosscheck/internal/config"
	"github.com/MJE43/pf-crosscheck/internal/engine"
	"github.com/MJE43/pf-crosscheck/internal/games"
	"github.com/MJE43/pf-crosscheck/internal/logging"
)

// exitUsage is returned for bad flags or arguments, matching cobra's convention
// of treating them apart from kernel failures.
const exitUsage = 64

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app carries the streams and lazily built dependencies shared by subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	envFile   string
	logLevel  string
	logFormat string

	serverSeed string
	clientSeed string
	nonce      uint64

	cfg    config.Config
	logger *zap.Logger
	// rng overrides the process RNG, for tests.
	rng games.RNG
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pfcheck",
		Short: "Cross-check leaderboard, deck and wheel logic",
		Long: `pfcheck runs stateless kernels that reproduce the group casino's
leaderboard ranking, card dealing and roulette slice selection.

Kernel commands read JSON from stdin and write JSON to stdout. Exit codes:
  0 ok, 1 internal, 2 malformed input, 3 invalid argument, 4 empty deck.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	pf.StringVar(&a.logLevel, "log-level", "", "override PFC_LOG_LEVEL")
	pf.StringVar(&a.logFormat, "log-format", "", "override PFC_LOG_FORMAT (json|console)")

	root.AddCommand(
		newRankCmd(a),
		newStandingsCmd(a),
		newDealCmd(a),
		newSliceCmd(a),
		newSpinCmd(a),
		newPokerEngineCmd(a),
		newServeCmd(a),
		newKernelsCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return usageError{err}
		}
		a.logger = logger
	}
	return nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// addSeedFlags registers the provably-fair seed flags on cmd.
func (a *app) addSeedFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.serverSeed, "server-seed", "", "replay from the HMAC-SHA256 stream keyed by this server seed")
	f.StringVar(&a.clientSeed, "client-seed", "", "client seed for the provably-fair stream")
	f.Uint64Var(&a.nonce, "nonce", 0, "nonce for the provably-fair stream")
}

// picker returns the RNG for a draw: the seeded stream when --server-seed is
// set, otherwise the process RNG.
func (a *app) picker(cmd *cobra.Command) (games.RNG, error) {
	if a.serverSeed == "" {
		if cmd.Flags().Changed("client-seed") || cmd.Flags().Changed("nonce") {
			return nil, usageError{fmt.Errorf("--client-seed and --nonce need --server-seed")}
		}
		if a.rng != nil {
			return a.rng, nil
		}
		return games.StdRNG{}, nil
	}
	a.logger.Debug("provably fair draw",
		zap.String("server_seed_hash", engine.HashServerSeed(a.serverSeed)),
		zap.String("client_seed", a.clientSeed),
		zap.Uint64("nonce", a.nonce),
	)
	return engine.NewStream(a.serverSeed, a.clientSeed, a.nonce), nil
}
