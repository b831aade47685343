package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var vrfRootCmd = &cobra.Command{
	Use:               "vrf",
	Short:             "Randomness request/callback (request_vrf, vrf_callback)",
	PersistentPreRunE: rootInitMiddleware,
}

var vrfRequestCmd = &cobra.Command{
	Use:   "request <payer> <round_id>",
	Short: "Request randomness for a locked round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		roundID, err := parseU64(args[1])
		if err != nil {
			return err
		}
		if err := core.RequestVRF(rt, payer, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var vrfCallbackCmd = &cobra.Command{
	Use:   "callback <authority> <round_id> <randomness_hex>",
	Short: "Deliver VRF randomness, selecting the round's winner",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		roundID, err := parseU64(args[1])
		if err != nil {
			return err
		}
		randomness, err := parseRandomness(args[2])
		if err != nil {
			return err
		}
		if err := core.VRFCallback(rt, authority, roundID, randomness); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		rd, err := rt.LoadRound(roundID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "round %d settled, winner=%s winning_ticket=%d\n", roundID, rd.Winner, rd.WinningTicket)
		return nil
	},
}

func parseRandomness(hexStr string) (core.Randomness, error) {
	var r core.Randomness
	b, err := hex.DecodeString(hexStr)
	if err != nil || len(b) != len(r) {
		return r, fmt.Errorf("randomness must be %d hex bytes", len(r))
	}
	copy(r[:], b)
	return r, nil
}

func init() {
	vrfRootCmd.AddCommand(vrfRequestCmd, vrfCallbackCmd)
}

// VrfCmd is exported for assembly by RootCmd.
var VrfCmd = vrfRootCmd

// RegisterVrf adds the vrf command tree to root.
func RegisterVrf(root *cobra.Command) { root.AddCommand(VrfCmd) }
