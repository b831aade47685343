package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var depositRootCmd = &cobra.Command{
	Use:               "deposit",
	Short:             "Ticket deposits (deposit_any, close_participant)",
	PersistentPreRunE: rootInitMiddleware,
}

var depositAnyCmd = &cobra.Command{
	Use:   "any <round_id> <user> <user_ata> <usdc_balance_before> <min_out>",
	Short: "Deposit into an open round, crediting tickets for the post-transfer delta",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		user, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		userAta, err := parsePubkey(args[2])
		if err != nil {
			return err
		}
		before, err := parseU64(args[3])
		if err != nil {
			return err
		}
		minOut, err := parseU64(args[4])
		if err != nil {
			return err
		}
		if err := core.DepositAny(rt, roundID, user, userAta, before, minOut); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deposit recorded for round %d\n", roundID)
		return nil
	},
}

var depositSeedCmd = &cobra.Command{
	Use:   "seed <ata> <amount>",
	Short: "Seed a token account balance directly (test/demo fixtures only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ata, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		amount, err := parseU64(args[1])
		if err != nil {
			return err
		}
		tokens.Seed(ata, amount)
		return persistState()
	},
}

var depositCloseParticipantCmd = &cobra.Command{
	Use:   "close-participant <round_id> <user>",
	Short: "Close a zeroed-out Participant account",
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
		if err := core.CloseParticipant(rt, roundID, user); err != nil {
			return err
		}
		return persistState()
	},
}

func init() {
	depositRootCmd.AddCommand(depositAnyCmd, depositSeedCmd, depositCloseParticipantCmd)
}

// DepositCmd is exported for assembly by RootCmd.
var DepositCmd = depositRootCmd

// RegisterDeposit adds the deposit command tree to root.
func RegisterDeposit(root *cobra.Command) { root.AddCommand(DepositCmd) }
