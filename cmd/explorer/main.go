// Command explorer serves read-only JSON views of a roll2roll program's
// account state plus a Prometheus /metrics endpoint, reading whatever
// state the CLI or crankd last wrote to the shared snapshot file.
package main

import (
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/roll2roll/roll2roll/core"
	"github.com/roll2roll/roll2roll/pkg/utils"
)

func main() {
	_ = godotenv.Load(".env")
	viper.AutomaticEnv()

	statePath := utils.EnvOrDefault("ROLL2ROLL_STATE", "./roll2roll_state.gob")
	addr := utils.EnvOrDefault("EXPLORER_BIND", ":8081")

	// Defaults to the zero pubkey, matching cmd/cli and cmd/crankd, so all
	// three binaries derive identical PDAs over the same state snapshot
	// when none of them is given an explicit program id.
	program := utils.EnvOrDefaultPubkey("ROLL2ROLL_PROGRAM_ID", core.ZeroPubkey)

	tokens := core.NewInMemoryTokenLedger()
	rt := core.NewRuntime(program, tokens, core.InMemoryVRFQueue{}, nil)
	rt.Metrics = core.NewMetrics(prometheus.DefaultRegisterer)

	reload := func() error { return rt.Store.LoadSnapshot(statePath) }
	if err := reload(); err != nil {
		logrus.Fatalf("initial snapshot load: %v", err)
	}

	svc := newExplorerService(rt)
	srv := NewServer(addr, svc, reload)

	logrus.Infof("explorer listening on %s", addr)
	if err := srv.Start(); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}

func parseU64Param(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
