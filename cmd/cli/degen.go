package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var degenRootCmd = &cobra.Command{
	Use:               "degen",
	Short:             "Degen payout mode (request_degen_vrf through the fallback path)",
	PersistentPreRunE: rootInitMiddleware,
}

var degenRequestCmd = &cobra.Command{
	Use:   "request <signer> <round_id>",
	Short: "Winner requests degen mode for a settled round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		roundID, err := parseU64(args[1])
		if err != nil {
			return err
		}
		if err := core.RequestDegenVRF(rt, signer, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var degenCallbackCmd = &cobra.Command{
	Use:   "callback <authority> <round_id> <randomness_hex>",
	Short: "Deliver degen randomness, selecting the target mint or arming fallback",
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
		if err := core.DegenVRFCallback(rt, authority, roundID, randomness); err != nil {
			return err
		}
		return persistState()
	},
}

var degenBeginCmd = &cobra.Command{
	Use:   "begin <signer> <round_id>",
	Short: "Executor begins a degen execution window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		roundID, err := parseU64(args[1])
		if err != nil {
			return err
		}
		if err := core.BeginDegenExecution(rt, signer, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var degenFinalizeCmd = &cobra.Command{
	Use:   "finalize <signer> <round_id> <min_out>",
	Short: "Executor finalizes a successful degen swap",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		roundID, err := parseU64(args[1])
		if err != nil {
			return err
		}
		minOut, err := parseU64(args[2])
		if err != nil {
			return err
		}
		if err := core.FinalizeDegenSuccess(rt, signer, roundID, minOut); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "round %d degen payout finalized\n", roundID)
		return nil
	},
}

var degenFallbackCmd = &cobra.Command{
	Use:   "claim-fallback <round_id> <reason>",
	Short: "Settle a degen claim via the USDC fallback path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		reason, err := parseU64(args[1])
		if err != nil {
			return err
		}
		if err := core.ClaimDegenFallback(rt, roundID, uint8(reason)); err != nil {
			return err
		}
		return persistState()
	},
}

func init() {
	degenRootCmd.AddCommand(degenRequestCmd, degenCallbackCmd, degenBeginCmd, degenFinalizeCmd, degenFallbackCmd)
}

// DegenCmd is exported for assembly by RootCmd.
var DegenCmd = degenRootCmd

// RegisterDegen adds the degen command tree to root.
func RegisterDegen(root *cobra.Command) { root.AddCommand(DegenCmd) }
