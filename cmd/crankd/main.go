// Command crankd is the reference off-chain keeper: it periodically walks
// a fixed set of rounds and drives every permissionless lifecycle
// transition this program exposes (lock_round, cancel_round, auto_claim,
// close_round) plus, when configured with the VRF authority's own keys,
// the VRF and degen callbacks a real deployment would instead receive from
// a separate oracle service.
package main

import (
	"context"
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/roll2roll/roll2roll/core"
	"github.com/roll2roll/roll2roll/pkg/utils"
)

// degenFallbackReasonTimeout tags claims this keeper settled itself because
// the fallback window elapsed, distinct from reason 1 (no eligible target
// mint) that DegenVRFCallback records.
const degenFallbackReasonTimeout = 2

func main() {
	_ = godotenv.Load(".env")
	viper.AutomaticEnv()

	statePath := utils.EnvOrDefault("ROLL2ROLL_STATE", "./roll2roll_state.gob")
	pollInterval := time.Duration(utils.EnvOrDefaultInt("ROLL2ROLL_POLL_MS", 2000)) * time.Millisecond
	isAuthority := utils.EnvOrDefault("ROLL2ROLL_IS_VRF_AUTHORITY", "") == "true"
	// Defaults to the zero pubkey, matching cmd/cli and cmd/explorer, so
	// all three binaries derive identical PDAs over the same state
	// snapshot when none of them is given an explicit program id.
	program := utils.EnvOrDefaultPubkey("ROLL2ROLL_PROGRAM_ID", core.ZeroPubkey)

	tokens := core.NewInMemoryTokenLedger()
	rt := core.NewRuntime(program, tokens, core.InMemoryVRFQueue{}, nil)
	rt.Metrics = core.NewMetrics(prometheus.NewRegistry())

	watcher := &PollingRoundWatcher{RoundIDs_: parseRoundIDs(utils.EnvOrDefault("ROLL2ROLL_ROUND_IDS", ""))}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	logrus.Infof("crankd watching %d rounds every %s", len(watcher.RoundIDs_), pollInterval)
	for {
		if err := rt.Store.LoadSnapshot(statePath); err != nil {
			logrus.Errorf("crankd: load snapshot: %v", err)
		} else {
			tick(rt, watcher, isAuthority)
			if err := rt.Store.SaveSnapshot(statePath); err != nil {
				logrus.Errorf("crankd: save snapshot: %v", err)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func tick(rt *core.Runtime, watcher *PollingRoundWatcher, isAuthority bool) {
	ctx := context.Background()
	ids, err := watcher.RoundIDs(ctx)
	if err != nil {
		logrus.Errorf("crankd: watcher: %v", err)
		return
	}
	for _, id := range ids {
		advanceRound(rt, id, isAuthority)
	}
}

// advanceRound drives one round's permissionless transitions forward by
// exactly one step per tick, logging (and swallowing) precondition errors
// since most ticks will find a round not yet ready for its next step.
func advanceRound(rt *core.Runtime, roundID uint64, isAuthority bool) {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return
	}
	switch rd.Status {
	case core.StatusOpen:
		if err := core.LockRound(rt, roundID); err != nil {
			logrus.Debugf("round %d: lock_round: %v", roundID, err)
		}
		if err := core.CancelRound(rt, roundID); err != nil {
			logrus.Debugf("round %d: cancel_round: %v", roundID, err)
		}
	case core.StatusLocked:
		// correlationID ties this request_vrf call to whatever the
		// downstream oracle logs against the same seed, since the seed
		// itself (the round PDA) isn't a friendly grep target.
		correlationID := uuid.New()
		if err := core.RequestVRF(rt, rt.IdentityPDA(), roundID); err != nil {
			logrus.Debugf("round %d: request_vrf[%s]: %v", roundID, correlationID, err)
		} else {
			logrus.Infof("round %d: request_vrf[%s] submitted", roundID, correlationID)
		}
	case core.StatusVrfRequested:
		// A production deployment points ROLL2ROLL_IS_VRF_AUTHORITY at a real
		// VRF oracle process instead; this branch exists so the reference
		// driver can settle rounds end to end without one.
		if isAuthority {
			cfg, err := rt.LoadConfig()
			if err != nil {
				return
			}
			var randomness core.Randomness
			if _, err := rand.Read(randomness[:]); err != nil {
				logrus.Errorf("round %d: randomness source: %v", roundID, err)
				return
			}
			if err := core.VRFCallback(rt, cfg.VrfAuthority, roundID, randomness); err != nil {
				logrus.Debugf("round %d: vrf_callback: %v", roundID, err)
			}
		}
	case core.StatusSettled:
		switch rd.DegenMode {
		case core.DegenModeNone:
			if err := core.AutoClaim(rt, roundID); err != nil {
				logrus.Debugf("round %d: auto_claim: %v", roundID, err)
			}
		case core.DegenModeRequested:
			if isAuthority {
				cfg, err := rt.LoadConfig()
				if err != nil {
					return
				}
				var randomness core.Randomness
				if _, err := rand.Read(randomness[:]); err != nil {
					logrus.Errorf("round %d: randomness source: %v", roundID, err)
					return
				}
				if err := core.DegenVRFCallback(rt, cfg.VrfAuthority, roundID, randomness); err != nil {
					logrus.Debugf("round %d: degen_vrf_callback: %v", roundID, err)
				}
			}
		default:
			// The winner or the configured executor normally drives the
			// remaining degen steps (BeginDegenExecution, FinalizeDegenSuccess);
			// crankd's only role here is sweeping claims that sat past their
			// fallback window.
			if err := core.AutoClaimDegenFallback(rt, roundID, degenFallbackReasonTimeout); err != nil {
				logrus.Debugf("round %d: auto_claim_degen_fallback: %v", roundID, err)
			}
		}
	case core.StatusClaimed, core.StatusCancelled:
		if err := core.CloseRound(rt, roundID); err != nil {
			logrus.Debugf("round %d: close_round: %v", roundID, err)
		}
	}
}

func parseRoundIDs(s string) []uint64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

