package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roll2roll/roll2roll/core"
)

var configRootCmd = &cobra.Command{
	Use:               "config",
	Short:             "Program configuration (init_config, update_config, transfer_admin)",
	PersistentPreRunE: rootInitMiddleware,
}

var configInitCmd = &cobra.Command{
	Use:   "init <admin> <usdc_mint> <treasury_ata> <fee_bps> <ticket_unit> <round_duration_sec> <min_participants> <min_total_tickets> <max_deposit_per_user>",
	Short: "Initialise the program's Config account",
	Args:  cobra.ExactArgs(9),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		usdcMint, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		treasuryAta, err := parsePubkey(args[2])
		if err != nil {
			return err
		}
		feeBps, err := parseU64(args[3])
		if err != nil {
			return err
		}
		ticketUnit, err := parseU64(args[4])
		if err != nil {
			return err
		}
		roundDurationSec, err := parseU64(args[5])
		if err != nil {
			return err
		}
		minParticipants, err := parseU64(args[6])
		if err != nil {
			return err
		}
		minTotalTickets, err := parseU64(args[7])
		if err != nil {
			return err
		}
		maxDepositPerUser, err := parseU64(args[8])
		if err != nil {
			return err
		}
		if err := core.InitConfig(rt, admin, usdcMint, treasuryAta, uint16(feeBps), ticketUnit, uint32(roundDurationSec), uint16(minParticipants), minTotalTickets, maxDepositPerUser); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config initialised, admin=%s\n", admin)
		return nil
	},
}

var configTransferAdminCmd = &cobra.Command{
	Use:   "transfer-admin <signer> <new_admin>",
	Short: "Rotate the program admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		newAdmin, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		if err := core.TransferAdmin(rt, signer, newAdmin); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin transferred to %s\n", newAdmin)
		return nil
	},
}

var configSetTreasuryCmd = &cobra.Command{
	Use:   "set-treasury <signer> <ata> <mint>",
	Short: "Set the treasury USDC ATA",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		ata, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		mint, err := parsePubkey(args[2])
		if err != nil {
			return err
		}
		if err := core.SetTreasuryUsdcAta(rt, signer, ata, mint); err != nil {
			return err
		}
		return persistState()
	},
}

var configPauseCmd = &cobra.Command{
	Use:   "pause <signer> <true|false>",
	Short: "Pause or unpause the program",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		paused := args[1] == "true"
		if err := core.UpdateConfig(rt, signer, core.ConfigUpdate{Paused: &paused}); err != nil {
			return err
		}
		return persistState()
	},
}

var configDegenUpsertCmd = &cobra.Command{
	Use:   "upsert-degen <signer> <executor> <fallback_timeout_sec> [approved_mint...]",
	Short: "Create or update the DegenConfig account",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		executor, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		timeout, err := parseU64(args[2])
		if err != nil {
			return err
		}
		mints := make([]core.Pubkey, 0, len(args)-3)
		for _, m := range args[3:] {
			pk, err := parsePubkey(m)
			if err != nil {
				return err
			}
			mints = append(mints, pk)
		}
		if err := core.UpsertDegenConfig(rt, signer, executor, uint32(timeout), mints); err != nil {
			return err
		}
		return persistState()
	},
}

var configDegenUpsertFromFileCmd = &cobra.Command{
	Use:   "upsert-degen-from-file <signer> <executor> <fallback_timeout_sec> <mints.yaml>",
	Short: "Create or update DegenConfig from a YAML approved-mint-list fixture",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := parsePubkey(args[0])
		if err != nil {
			return err
		}
		executor, err := parsePubkey(args[1])
		if err != nil {
			return err
		}
		timeout, err := parseU64(args[2])
		if err != nil {
			return err
		}
		mints, contentHash, err := core.LoadApprovedMintsFixture(args[3])
		if err != nil {
			return err
		}
		if err := core.UpsertDegenConfig(rt, signer, executor, uint32(timeout), mints); err != nil {
			return err
		}
		if err := persistState(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "degen config updated from %s (content hash %s), %d mints\n", args[3], hex.EncodeToString(contentHash[:8]), len(mints))
		return nil
	},
}

func init() {
	configRootCmd.AddCommand(configInitCmd, configTransferAdminCmd, configSetTreasuryCmd, configPauseCmd, configDegenUpsertCmd, configDegenUpsertFromFileCmd)
}

// ConfigCmd is exported for assembly by RootCmd.
var ConfigCmd = configRootCmd

// RegisterConfig adds the config command tree to root.
func RegisterConfig(root *cobra.Command) { root.AddCommand(ConfigCmd) }
