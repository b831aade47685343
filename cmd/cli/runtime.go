// Package cli provides the roll2roll command line tool: one cobra command
// tree per instruction group (config, round, deposit, vrf, claim, degen).
// Every command operates against a *core.Runtime backed by a gob snapshot
// on disk so state survives between separate invocations of the binary.
package cli

import (
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roll2roll/roll2roll/core"
	"github.com/roll2roll/roll2roll/pkg/utils"
)

var (
	rt         *core.Runtime
	tokens     *core.InMemoryTokenLedger
	statePath  string
	cliOnce    sync.Once
	cliInitErr error

	// auditLog records every command invocation as structured JSON,
	// separate from logrus's free-text debug/error stream: an operator
	// tailing this CLI's audit trail wants one parseable line per
	// instruction attempted, not whatever a handler happened to log.
	auditLog *zap.Logger
)

// rootInitMiddleware loads .env, sets the logging level, and restores the
// runtime's account store from its snapshot file. It runs once per process
// regardless of how many subcommands a single invocation touches.
func rootInitMiddleware(cmd *cobra.Command, _ []string) error {
	cliOnce.Do(func() {
		_ = godotenv.Load()

		lvl := utils.EnvOrDefault("LOG_LEVEL", "info")
		lv, err := logrus.ParseLevel(lvl)
		if err != nil {
			cliInitErr = err
			return
		}
		logrus.SetLevel(lv)

		statePath = utils.EnvOrDefault("ROLL2ROLL_STATE", "./roll2roll_state.gob")
		program := programPubkey()

		tokens = core.NewInMemoryTokenLedger()
		swap := &core.FixedRateSwapExecutor{Tokens: tokens, RateNumerator: 1, RateDenominator: 1}
		rt = core.NewRuntime(program, tokens, core.InMemoryVRFQueue{}, swap)

		if err := rt.Store.LoadSnapshot(statePath); err != nil {
			cliInitErr = err
			return
		}

		auditLog, err = zap.NewProduction()
		if err != nil {
			cliInitErr = err
			return
		}
	})
	return cliInitErr
}

// auditCommand logs one structured audit line per invocation outcome.
func auditCommand(path string, args []string, err error) {
	if auditLog == nil {
		return
	}
	fields := []zap.Field{
		zap.String("command", path),
		zap.Strings("args", args),
	}
	if err != nil {
		auditLog.Warn("command failed", append(fields, zap.Error(err))...)
		return
	}
	auditLog.Info("command succeeded", fields...)
}

// persistState is called by every mutating leaf command once its
// instruction succeeds, writing the runtime's account store back to its snapshot file.
func persistState() error {
	return rt.Store.SaveSnapshot(statePath)
}

// programPubkey resolves which program id to derive PDAs under. It
// defaults to the zero pubkey rather than a fresh random one so that the
// cli, crankd and explorer binaries, run against the same
// ROLL2ROLL_STATE snapshot without ROLL2ROLL_PROGRAM_ID set, all derive
// the same PDAs instead of three mutually unintelligible account spaces.
func programPubkey() core.Pubkey {
	return utils.EnvOrDefaultPubkey("ROLL2ROLL_PROGRAM_ID", core.ZeroPubkey)
}

func parsePubkey(s string) (core.Pubkey, error) {
	return core.PubkeyFromBase58(s)
}

func parseU64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
