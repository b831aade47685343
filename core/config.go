package core

// InitConfig implements init_config (§4.2): single-shot; fails if Config
// has already been initialised. The calling signer becomes admin.
func InitConfig(rt *Runtime, signer Pubkey, usdcMint, treasuryAta Pubkey, feeBps uint16, ticketUnit uint64, roundDurationSec uint32, minParticipants uint16, minTotalTickets uint64, maxDepositPerUser uint64) error {
	if rt.Store.Exists(rt.ConfigPDA()) {
		return Fail(ErrWrongStatus, "config already initialised")
	}
	if feeBps > FeeBpsDenominator {
		return Fail(ErrFeeArithmeticOverflow, "fee_bps %d exceeds denominator %d", feeBps, FeeBpsDenominator)
	}
	if ticketUnit == 0 {
		return Fail(ErrInvalidTicketUnit, "ticket_unit must be positive")
	}
	cfg := &Config{
		Admin:             signer,
		UsdcMint:          usdcMint,
		TreasuryUsdcAta:   treasuryAta,
		FeeBps:            feeBps,
		TicketUnit:        ticketUnit,
		RoundDurationSec:  roundDurationSec,
		MinParticipants:   minParticipants,
		MinTotalTickets:   minTotalTickets,
		Paused:            false,
		MaxDepositPerUser: maxDepositPerUser,
		VrfAuthority:      signer,
	}
	rt.SaveConfig(cfg)
	return nil
}

// ConfigUpdate carries the optional per-field updates update_config
// accepts; a nil pointer means "leave unchanged", mirroring the
// Option<T>-style partial-update instructions common to Anchor programs.
type ConfigUpdate struct {
	FeeBps            *uint16
	TicketUnit        *uint64
	RoundDurationSec  *uint32
	MinParticipants   *uint16
	MinTotalTickets   *uint64
	Paused            *bool
	MaxDepositPerUser *uint64
	VrfAuthority      *Pubkey
}

// UpdateConfig implements update_config (§4.2): admin-only, applies any
// non-nil fields in upd after validating them.
func UpdateConfig(rt *Runtime, signer Pubkey, upd ConfigUpdate) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Admin != signer {
		return Fail(ErrUnauthorized, "only admin may update config")
	}
	if upd.FeeBps != nil {
		if *upd.FeeBps > FeeBpsDenominator {
			return Fail(ErrFeeArithmeticOverflow, "fee_bps %d exceeds denominator %d", *upd.FeeBps, FeeBpsDenominator)
		}
		cfg.FeeBps = *upd.FeeBps
	}
	if upd.TicketUnit != nil {
		if *upd.TicketUnit == 0 {
			return Fail(ErrInvalidTicketUnit, "ticket_unit must be positive")
		}
		cfg.TicketUnit = *upd.TicketUnit
	}
	if upd.RoundDurationSec != nil {
		cfg.RoundDurationSec = *upd.RoundDurationSec
	}
	if upd.MinParticipants != nil {
		cfg.MinParticipants = *upd.MinParticipants
	}
	if upd.MinTotalTickets != nil {
		cfg.MinTotalTickets = *upd.MinTotalTickets
	}
	if upd.Paused != nil {
		cfg.Paused = *upd.Paused
	}
	if upd.MaxDepositPerUser != nil {
		cfg.MaxDepositPerUser = *upd.MaxDepositPerUser
	}
	if upd.VrfAuthority != nil {
		cfg.VrfAuthority = *upd.VrfAuthority
	}
	rt.SaveConfig(cfg)
	return nil
}

// TransferAdmin implements transfer_admin (§4.2): a one-step rotation by
// the current admin.
func TransferAdmin(rt *Runtime, signer, newAdmin Pubkey) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Admin != signer {
		return Fail(ErrUnauthorized, "only admin may transfer admin")
	}
	cfg.Admin = newAdmin
	rt.SaveConfig(cfg)
	return nil
}

// SetTreasuryUsdcAta implements set_treasury_usdc_ata (§4.2). mintOfAta is
// the mint the caller asserts ata belongs to, standing in for the
// on-chain Mint account check a real validator performs by reading the
// token account itself.
func SetTreasuryUsdcAta(rt *Runtime, signer, ata, mintOfAta Pubkey) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Admin != signer {
		return Fail(ErrUnauthorized, "only admin may set treasury ata")
	}
	if mintOfAta != cfg.UsdcMint {
		return Fail(ErrAccountOwnerMismatch, "ata mint does not match usdc_mint")
	}
	cfg.TreasuryUsdcAta = ata
	rt.SaveConfig(cfg)
	return nil
}

// UpsertDegenConfig implements upsert_degen_config (§4.2): admin-only,
// creates or updates the DegenConfig account. approvedMints may be empty,
// in which case no target mint can be selected and every degen callback
// arms the USDC fallback (fallback_reason 1).
func UpsertDegenConfig(rt *Runtime, signer, executor Pubkey, fallbackTimeoutSec uint32, approvedMints []Pubkey) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Admin != signer {
		return Fail(ErrUnauthorized, "only admin may upsert degen config")
	}
	if len(approvedMints) > MaxApprovedMints {
		return Fail(ErrDegenDisabled, "at most %d approved mints, got %d", MaxApprovedMints, len(approvedMints))
	}
	dc := &DegenConfig{
		Executor:           executor,
		FallbackTimeoutSec: fallbackTimeoutSec,
		ApprovedMintCount:  uint8(len(approvedMints)),
	}
	copy(dc.ApprovedMints[:], approvedMints)
	rt.SaveDegenConfig(dc)
	return nil
}
