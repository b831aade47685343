package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var roundRootCmd = &cobra.Command{
	Use:               "round",
	Short:             "Round lifecycle (start_round, lock_round, cancel_round, close_round)",
	PersistentPreRunE: rootInitMiddleware,
}

var roundStartCmd = &cobra.Command{
	Use:   "start <round_id>",
	Short: "Start a new round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		if err := core.StartRound(rt, roundID); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "round %d started\n", roundID)
		return nil
	},
}

var roundLockCmd = &cobra.Command{
	Use:   "lock <round_id>",
	Short: "Lock a round once its end_ts has passed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		if err := core.LockRound(rt, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var roundCancelCmd = &cobra.Command{
	Use:   "cancel <round_id>",
	Short: "Permissionlessly cancel an under-subscribed, past-grace round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		if err := core.CancelRound(rt, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var roundForceCancelCmd = &cobra.Command{
	Use:   "force-cancel <signer> <round_id>",
	Short: "Admin-only cancel of any pre-claimed round",
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
		if err := core.AdminForceCancel(rt, signer, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var roundCloseCmd = &cobra.Command{
	Use:   "close <round_id>",
	Short: "Close a claimed/cancelled round once its vault and participants are drained",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		if err := core.CloseRound(rt, roundID); err != nil {
			return err
		}
		return persistState()
	},
}

var roundShowCmd = &cobra.Command{
	Use:   "show <round_id>",
	Short: "Print a round's decoded account state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roundID, err := parseU64(args[0])
		if err != nil {
			return err
		}
		rd, err := rt.LoadRound(roundID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "round %d: status=%s total_usdc=%d total_tickets=%d participants=%d winner=%s\n",
			rd.RoundID, rd.Status, rd.TotalUsdc, rd.TotalTickets, rd.ParticipantsCount, rd.Winner)
		return nil
	},
}

func init() {
	roundRootCmd.AddCommand(roundStartCmd, roundLockCmd, roundCancelCmd, roundForceCancelCmd, roundCloseCmd, roundShowCmd)
}

// RoundCmd is exported for assembly by RootCmd.
var RoundCmd = roundRootCmd

// RegisterRound adds the round command tree to root.
func RegisterRound(root *cobra.Command) { root.AddCommand(RoundCmd) }
