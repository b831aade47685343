package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var claimRootCmd = &cobra.Command{
	Use:               "claim",
	Short:             "Payout claims (claim, auto_claim, claim_refund)",
	PersistentPreRunE: rootInitMiddleware,
}

var claimWinnerCmd = &cobra.Command{
	Use:   "winner <signer> <round_id>",
	Short: "Claim a settled round's payout as its winner",
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
		if err := core.Claim(rt, signer, roundID); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "round %d claimed\n", roundID)
		return nil
	},
}

var claimAutoCmd = &cobra.Command{
	Use:   "auto <round_id>",
	Short: "Close out a settled round's payout on behalf of any keeper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		if err := core.AutoClaim(rt, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var claimRefundCmd = &cobra.Command{
	Use:   "refund <round_id> <user>",
	Short: "Refund a participant's deposit from a cancelled round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		user, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		if err := core.ClaimRefund(rt, roundID, user); err != nil {
			return err
		}
		return persistState()
	},
}

func init() {
	claimRootCmd.AddCommand(claimWinnerCmd, claimAutoCmd, claimRefundCmd)
}

// ClaimCmd is exported for assembly by RootCmd.
var ClaimCmd = claimRootCmd

// RegisterClaim adds the claim command tree to root.
func RegisterClaim(root *cobra.Command) { root.AddCommand(ClaimCmd) }
