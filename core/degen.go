package core

// SwapExecutor is the CPI-shaped seam onto the aggregator swap the degen
// executor builds (§4.6 step 3-4). The program never constructs the swap
// itself — finalize_degen_success only validates its post-condition — so
// this interface exists purely to let tests and the reference crank
// simulate "the executor's swap landed" without a real aggregator.
type SwapExecutor interface {
	// Swap moves amount of fromMint out of vault and credits toMint into
	// the winner's target-mint ATA, returning the amount actually
	// credited (which callers compare against min_out).
	Swap(fromMint, toMint, vault, winnerTargetAta Pubkey, amount uint64) (credited uint64, err error)
}

// RequestDegenVRF implements request_degen_vrf (§4.6 step 1): creates the
// DegenClaim, snapshots the net payout, and requests a second randomness
// draw.
func RequestDegenVRF(rt *Runtime, signer Pubkey, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusSettled {
		return Fail(ErrWrongStatus, "round %d is not settled", roundID)
	}
	if signer != rd.Winner {
		return Fail(ErrNotWinner, "only the winner may request degen mode")
	}
	dc, err := rt.LoadDegenConfig()
	if err != nil {
		return err
	}
	if rt.Store.Exists(rt.DegenClaimPDA(roundID, rd.Winner)) {
		return Fail(ErrWrongStatus, "degen claim already requested for round %d", roundID)
	}

	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	reimburse := reimburseAmount(rd)
	_, payout, err := computeFeeSplit(rd.TotalUsdc, reimburse, cfg.FeeBps)
	if err != nil {
		return err
	}

	claim := &DegenClaim{
		Round:     rt.RoundPDA(roundID),
		Winner:    rd.Winner,
		RoundID:   roundID,
		Status:    DegenClaimPending,
		PayoutRaw: payout,
		Executor:  dc.Executor,
	}
	rt.SaveDegenClaim(claim)

	if err := rt.VRF.RequestRandomness(claim.Round[:]); err != nil {
		return err
	}
	rd.DegenMode = DegenModeRequested
	rt.SaveRound(rd)
	return nil
}

// DegenVRFCallback implements degen_vrf_callback (§4.6 step 2): stores the
// randomness, selects target_mint, and arms the fallback timeout.
func DegenVRFCallback(rt *Runtime, authority Pubkey, roundID uint64, randomness Randomness) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if authority != cfg.VrfAuthority {
		return Fail(ErrInvalidVrfAuthority, "caller is not the configured vrf authority")
	}
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	claim, err := rt.LoadDegenClaim(roundID, rd.Winner)
	if err != nil {
		return err
	}
	if claim.Status != DegenClaimPending {
		return Fail(ErrVrfAlreadyDelivered, "degen claim %d is not pending", roundID)
	}
	dc, err := rt.LoadDegenConfig()
	if err != nil {
		return err
	}

	claim.RandomnessVal = randomness
	mint, ok := rt.MintSelect.SelectMint(dc, randomness)
	if !ok {
		claim.Status = DegenClaimReadyToClaim
		claim.FallbackReason = 1
	} else {
		claim.TargetMint = mint
		claim.Status = DegenClaimReadyToExecute
	}
	claim.FallbackAfterTs = rt.Now() + int64(dc.FallbackTimeoutSec)
	rt.SaveDegenClaim(claim)

	rd.DegenMode = DegenModeSelected
	rt.SaveRound(rd)
	return nil
}

// BeginDegenExecution implements begin_degen_execution (§4.6 step 3):
// executor-signed, ReadyToExecute -> Executing.
func BeginDegenExecution(rt *Runtime, signer Pubkey, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	claim, err := rt.LoadDegenClaim(roundID, rd.Winner)
	if err != nil {
		return err
	}
	if claim.Executor != signer {
		return Fail(ErrDegenWrongExecutor, "signer is not the configured degen executor")
	}
	if claim.Status != DegenClaimReadyToExecute {
		return Fail(ErrDegenFallbackNotReady, "degen claim %d is not ready to execute", roundID)
	}
	claim.Status = DegenClaimExecuting
	rt.SaveDegenClaim(claim)
	rd.DegenMode = DegenModeExecuting
	rt.SaveRound(rd)
	return nil
}

// FinalizeDegenSuccess implements finalize_degen_success (§4.6 step 4):
// executor-signed, still inside the execution window. Validates the
// swap's post-condition via SwapExecutor, pays fee and VRF reimbursement
// from the vault, and marks the claim Claimed.
func FinalizeDegenSuccess(rt *Runtime, signer Pubkey, roundID uint64, minOut uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	claim, err := rt.LoadDegenClaim(roundID, rd.Winner)
	if err != nil {
		return err
	}
	if claim.Executor != signer {
		return Fail(ErrDegenWrongExecutor, "signer is not the configured degen executor")
	}
	if claim.Status != DegenClaimExecuting {
		return Fail(ErrDegenAlreadyFinalised, "degen claim %d is not executing", roundID)
	}
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}

	winnerTargetAta := rt.AssociatedTokenAccount(rd.Winner, claim.TargetMint)
	credited, err := rt.Swap.Swap(cfg.UsdcMint, claim.TargetMint, rd.VaultAta, winnerTargetAta, claim.PayoutRaw)
	if err != nil {
		return err
	}
	if credited < minOut {
		return Fail(ErrDegenBalanceCheckFailed, "swap credited %d, want at least %d", credited, minOut)
	}

	reimburse := reimburseAmount(rd)
	fee, _, err := computeFeeSplit(rd.TotalUsdc, reimburse, cfg.FeeBps)
	if err != nil {
		return err
	}
	vrfPayerAta := rt.AssociatedTokenAccount(rd.VrfPayer, cfg.UsdcMint)
	if reimburse > 0 {
		if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, vrfPayerAta, reimburse); err != nil {
			return err
		}
		rd.VrfReimbursed = true
	}
	if fee > 0 {
		if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, cfg.TreasuryUsdcAta, fee); err != nil {
			return err
		}
	}

	claim.Status = DegenClaimClaimedOrFallback
	claim.ClaimedAt = rt.Now()
	rt.SaveDegenClaim(claim)
	rd.DegenMode = DegenModeFinalisedOrFallback
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveDegenSuccess()
	}
	return nil
}

// claimDegenFallbackCommon implements the shared body of
// claim_degen_fallback / auto_claim_degen_fallback (§4.6 step 5): pays
// payout_raw to winner, fee to treasury, vrf_reimburse to vrf_payer,
// coalescing the winner/vrf_payer legs into a single transfer when the
// two ATAs are identical, per §8's double-borrow-safety invariant.
func claimDegenFallbackCommon(rt *Runtime, roundID uint64, reason uint8) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	claim, err := rt.LoadDegenClaim(roundID, rd.Winner)
	if err != nil {
		return err
	}
	switch claim.Status {
	case DegenClaimPending, DegenClaimReadyToExecute, DegenClaimReadyToClaim:
	default:
		return Fail(ErrDegenAlreadyFinalised, "degen claim %d is not eligible for fallback", roundID)
	}
	now := rt.Now()
	if now <= claim.FallbackAfterTs {
		return Fail(ErrDegenFallbackNotReady, "degen claim %d fallback window has not elapsed", roundID)
	}

	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	reimburse := reimburseAmount(rd)
	fee, payout, err := computeFeeSplit(rd.TotalUsdc, reimburse, cfg.FeeBps)
	if err != nil {
		return err
	}

	winnerAta := rt.AssociatedTokenAccount(rd.Winner, cfg.UsdcMint)
	vrfPayerAta := rt.AssociatedTokenAccount(rd.VrfPayer, cfg.UsdcMint)

	if reimburse > 0 && vrfPayerAta == winnerAta {
		payout += reimburse
		reimburse = 0
	}
	if reimburse > 0 {
		if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, vrfPayerAta, reimburse); err != nil {
			return err
		}
	}
	if fee > 0 {
		if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, cfg.TreasuryUsdcAta, fee); err != nil {
			return err
		}
	}
	if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, winnerAta, payout); err != nil {
		return err
	}
	rd.VrfReimbursed = true

	claim.Status = DegenClaimClaimedOrFallback
	claim.FallbackReason = reason
	claim.ClaimedAt = now
	rt.SaveDegenClaim(claim)
	rd.DegenMode = DegenModeFinalisedOrFallback
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveDegenFallback()
	}
	return nil
}

// ClaimDegenFallback implements claim_degen_fallback.
func ClaimDegenFallback(rt *Runtime, roundID uint64, reason uint8) error {
	return claimDegenFallbackCommon(rt, roundID, reason)
}

// AutoClaimDegenFallback implements auto_claim_degen_fallback: identical
// settlement, callable by any keeper.
func AutoClaimDegenFallback(rt *Runtime, roundID uint64, reason uint8) error {
	return claimDegenFallbackCommon(rt, roundID, reason)
}
