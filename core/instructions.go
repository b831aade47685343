package core

// This file wires every handler in config.go, round.go, deposit.go, vrf.go,
// claim.go and degen.go into the Discriminator-keyed registry
// instruction_dispatcher.go exposes. Each adapter below decodes its
// instruction's fixed account order and Borsh-encoded scalar args, then
// calls straight through to the typed function that does the real work.
//
// Account ordering and arg layout follow §6's wire table: accounts carry
// every pubkey an instruction touches (signers, mints, token accounts),
// data carries only the instruction's scalar args. A handler that needs an
// account this runtime tracks by convention (a round's vault, a claim's ATA)
// derives it instead of taking it as an explicit account, exactly as
// AssociatedTokenAccount does for claim-path ATAs.

func accountAt(accounts []Pubkey, i int) (Pubkey, error) {
	if i < 0 || i >= len(accounts) {
		return ZeroPubkey, Fail(ErrAccountOwnerMismatch, "instruction expects at least %d accounts, got %d", i+1, len(accounts))
	}
	return accounts[i], nil
}

func init() {
	RegisterInstruction("init_config", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		usdcMint, err := accountAt(accounts, 1)
		if err != nil {
			return err
		}
		treasuryAta, err := accountAt(accounts, 2)
		if err != nil {
			return err
		}
		r := newReader(data)
		feeBps := r.u16()
		ticketUnit := r.u64()
		roundDurationSec := r.u32()
		minParticipants := r.u16()
		minTotalTickets := r.u64()
		maxDepositPerUser := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "init_config: %v", r.err)
		}
		return InitConfig(rt, signer, usdcMint, treasuryAta, feeBps, ticketUnit, roundDurationSec, minParticipants, minTotalTickets, maxDepositPerUser)
	})

	RegisterInstruction("update_config", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		upd, err := decodeConfigUpdate(data)
		if err != nil {
			return err
		}
		return UpdateConfig(rt, signer, upd)
	})

	RegisterInstruction("transfer_admin", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		newAdmin, err := accountAt(accounts, 1)
		if err != nil {
			return err
		}
		return TransferAdmin(rt, signer, newAdmin)
	})

	RegisterInstruction("set_treasury_usdc_ata", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		ata, err := accountAt(accounts, 1)
		if err != nil {
			return err
		}
		mintOfAta, err := accountAt(accounts, 2)
		if err != nil {
			return err
		}
		return SetTreasuryUsdcAta(rt, signer, ata, mintOfAta)
	})

	RegisterInstruction("upsert_degen_config", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		executor, err := accountAt(accounts, 1)
		if err != nil {
			return err
		}
		r := newReader(data)
		fallbackTimeoutSec := r.u32()
		count := r.u8()
		mints := make([]Pubkey, count)
		for i := range mints {
			r.pubkey(&mints[i])
		}
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "upsert_degen_config: %v", r.err)
		}
		return UpsertDegenConfig(rt, signer, executor, fallbackTimeoutSec, mints)
	})

	RegisterInstruction("start_round", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "start_round: %v", r.err)
		}
		return StartRound(rt, roundID)
	})

	RegisterInstruction("lock_round", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "lock_round: %v", r.err)
		}
		return LockRound(rt, roundID)
	})

	RegisterInstruction("cancel_round", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "cancel_round: %v", r.err)
		}
		return CancelRound(rt, roundID)
	})

	RegisterInstruction("admin_force_cancel", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "admin_force_cancel: %v", r.err)
		}
		return AdminForceCancel(rt, signer, roundID)
	})

	RegisterInstruction("close_round", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "close_round: %v", r.err)
		}
		return CloseRound(rt, roundID)
	})

	RegisterInstruction("deposit_any", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		user, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		userAta, err := accountAt(accounts, 1)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		usdcBalanceBefore := r.u64()
		minOut := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "deposit_any: %v", r.err)
		}
		return DepositAny(rt, roundID, user, userAta, usdcBalanceBefore, minOut)
	})

	RegisterInstruction("close_participant", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		user, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "close_participant: %v", r.err)
		}
		return CloseParticipant(rt, roundID, user)
	})

	RegisterInstruction("request_vrf", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		payer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "request_vrf: %v", r.err)
		}
		return RequestVRF(rt, payer, roundID)
	})

	RegisterInstruction("vrf_callback", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		authority, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		roundID, randomness, err := decodeRoundIDAndRandomness(data)
		if err != nil {
			return err
		}
		return VRFCallback(rt, authority, roundID, randomness)
	})

	RegisterInstruction("claim", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "claim: %v", r.err)
		}
		return Claim(rt, signer, roundID)
	})

	RegisterInstruction("auto_claim", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "auto_claim: %v", r.err)
		}
		return AutoClaim(rt, roundID)
	})

	RegisterInstruction("claim_refund", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		user, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "claim_refund: %v", r.err)
		}
		return ClaimRefund(rt, roundID, user)
	})

	RegisterInstruction("request_degen_vrf", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "request_degen_vrf: %v", r.err)
		}
		return RequestDegenVRF(rt, signer, roundID)
	})

	RegisterInstruction("degen_vrf_callback", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		authority, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		roundID, randomness, err := decodeRoundIDAndRandomness(data)
		if err != nil {
			return err
		}
		return DegenVRFCallback(rt, authority, roundID, randomness)
	})

	RegisterInstruction("begin_degen_execution", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "begin_degen_execution: %v", r.err)
		}
		return BeginDegenExecution(rt, signer, roundID)
	})

	RegisterInstruction("finalize_degen_success", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		signer, err := accountAt(accounts, 0)
		if err != nil {
			return err
		}
		r := newReader(data)
		roundID := r.u64()
		minOut := r.u64()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "finalize_degen_success: %v", r.err)
		}
		return FinalizeDegenSuccess(rt, signer, roundID, minOut)
	})

	RegisterInstruction("claim_degen_fallback", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		reason := r.u8()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "claim_degen_fallback: %v", r.err)
		}
		return ClaimDegenFallback(rt, roundID, reason)
	})

	RegisterInstruction("auto_claim_degen_fallback", func(rt *Runtime, accounts []Pubkey, data []byte) error {
		r := newReader(data)
		roundID := r.u64()
		reason := r.u8()
		if r.err != nil {
			return Fail(ErrInvalidDiscriminator, "auto_claim_degen_fallback: %v", r.err)
		}
		return AutoClaimDegenFallback(rt, roundID, reason)
	})
}

// decodeRoundIDAndRandomness decodes the (round_id u64, randomness [32]byte)
// arg pair shared by vrf_callback and degen_vrf_callback.
func decodeRoundIDAndRandomness(data []byte) (uint64, Randomness, error) {
	r := newReader(data)
	roundID := r.u64()
	var randomness Randomness
	r.fixed(randomness[:])
	if r.err != nil {
		return 0, Randomness{}, Fail(ErrInvalidDiscriminator, "vrf callback args: %v", r.err)
	}
	return roundID, randomness, nil
}

// decodeConfigUpdate decodes update_config's Option<T>-style partial-update
// payload: a presence bitmask byte (bit i set means field i follows), then
// each present field's value in the fixed order FeeBps, TicketUnit,
// RoundDurationSec, MinParticipants, MinTotalTickets, Paused,
// MaxDepositPerUser, VrfAuthority.
func decodeConfigUpdate(data []byte) (ConfigUpdate, error) {
	r := newReader(data)
	mask := r.u8()
	var upd ConfigUpdate
	if mask&(1<<0) != 0 {
		v := r.u16()
		upd.FeeBps = &v
	}
	if mask&(1<<1) != 0 {
		v := r.u64()
		upd.TicketUnit = &v
	}
	if mask&(1<<2) != 0 {
		v := r.u32()
		upd.RoundDurationSec = &v
	}
	if mask&(1<<3) != 0 {
		v := r.u16()
		upd.MinParticipants = &v
	}
	if mask&(1<<4) != 0 {
		v := r.u64()
		upd.MinTotalTickets = &v
	}
	if mask&(1<<5) != 0 {
		v := r.boolean()
		upd.Paused = &v
	}
	if mask&(1<<6) != 0 {
		v := r.u64()
		upd.MaxDepositPerUser = &v
	}
	if mask&(1<<7) != 0 {
		var v Pubkey
		r.pubkey(&v)
		upd.VrfAuthority = &v
	}
	if r.err != nil {
		return ConfigUpdate{}, Fail(ErrInvalidDiscriminator, "update_config args: %v", r.err)
	}
	return upd, nil
}
