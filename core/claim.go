package core

import "github.com/holiman/uint256"

// AssociatedTokenAccount derives the deterministic token account address
// for (owner, mint), standing in for the real associated-token-program
// derivation. Claim-path instructions only take round_id as a scalar arg
// per §6's wire table; every ATA they touch is derived here rather than
// threaded through as an explicit argument.
func (rt *Runtime) AssociatedTokenAccount(owner, mint Pubkey) Pubkey {
	return derivePDA(rt.Program, []byte("ata"), owner[:], mint[:])
}

// computeFeeSplit implements the fee-exactness invariant of §8:
// fee = ((total_usdc - vrf_reimburse) * fee_bps) / FeeBpsDenominator,
// truncating, with payout = total_usdc - fee - vrf_reimburse. The
// intermediate product is carried in a uint256 so a fee_bps close to its
// ceiling can never wrap a uint64 multiply, even though every operand and
// result here fits comfortably in 64 bits.
func computeFeeSplit(totalUsdc, vrfReimburse uint64, feeBps uint16) (fee, payout uint64, err error) {
	if vrfReimburse > totalUsdc {
		return 0, 0, Fail(ErrFeeArithmeticOverflow, "vrf_reimburse %d exceeds total_usdc %d", vrfReimburse, totalUsdc)
	}
	base := totalUsdc - vrfReimburse

	product := new(uint256.Int).Mul(uint256.NewInt(base), uint256.NewInt(uint64(feeBps)))
	feeInt := new(uint256.Int).Div(product, uint256.NewInt(uint64(FeeBpsDenominator)))
	if !feeInt.IsUint64() {
		return 0, 0, Fail(ErrFeeArithmeticOverflow, "fee computation overflowed u64")
	}
	fee = feeInt.Uint64()
	return fee, base - fee, nil
}

// reimburseAmount returns the VRF reimbursement owed for rd: 0 if there is
// no payer to reimburse, reimbursement already happened, or the pot is
// smaller than VRFReimburseRaw (the reimbursement is then skipped and the
// whole pot is split between fee and winner).
func reimburseAmount(rd *Round) uint64 {
	if rd.VrfPayer.IsZero() || rd.VrfReimbursed || rd.TotalUsdc < VRFReimburseRaw {
		return 0
	}
	return VRFReimburseRaw
}

// payoutClassic moves a round's settled pot out of the vault: VRF
// reimbursement to vrf_payer, fee to treasury, remainder to winner. When
// winner and vrf_payer share an ATA (winner requested their own VRF), the
// reimbursement and payout are combined into a single transfer so the
// vault is debited exactly once for that recipient — the Go equivalent of
// the "no simultaneous mutable borrow of the same token account" rule
// Anchor programs must observe (§8 "double-borrow safety").
func payoutClassic(rt *Runtime, rd *Round, cfg *Config) error {
	reimburse := reimburseAmount(rd)
	fee, payout, err := computeFeeSplit(rd.TotalUsdc, reimburse, cfg.FeeBps)
	if err != nil {
		return err
	}

	winnerAta := rt.AssociatedTokenAccount(rd.Winner, cfg.UsdcMint)
	vrfPayerAta := rt.AssociatedTokenAccount(rd.VrfPayer, cfg.UsdcMint)

	if reimburse > 0 {
		if vrfPayerAta == winnerAta {
			payout += reimburse
			reimburse = 0
		} else if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, vrfPayerAta, reimburse); err != nil {
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
	return nil
}

func claimCommon(rt *Runtime, roundID uint64, requireSigner bool, signer Pubkey) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status == StatusClaimed {
		return Fail(ErrAlreadyClaimed, "round %d already claimed", roundID)
	}
	if rd.Status != StatusSettled {
		return Fail(ErrWrongStatus, "round %d is not settled", roundID)
	}
	if rd.DegenMode != DegenModeNone {
		return Fail(ErrWrongStatus, "round %d has an active degen claim", roundID)
	}
	if requireSigner && signer != rd.Winner {
		return Fail(ErrNotWinner, "signer is not the round's winner")
	}
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if err := payoutClassic(rt, rd, cfg); err != nil {
		return err
	}
	rd.Status = StatusClaimed
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveClaimLatency(float64(rt.Now() - rd.EndTs))
	}
	return nil
}

// Claim implements claim (§4.3): requires the winner's signature.
func Claim(rt *Runtime, signer Pubkey, roundID uint64) error {
	return claimCommon(rt, roundID, true, signer)
}

// AutoClaim implements auto_claim (§4.3): any fee-payer may close the
// flow; funds still land exclusively in the winner's own ATA.
func AutoClaim(rt *Runtime, roundID uint64) error {
	return claimCommon(rt, roundID, false, ZeroPubkey)
}

// ClaimRefund implements claim_refund (§4.3): while a Round is Cancelled,
// a participant pulls back exactly their usdc_deposited.
func ClaimRefund(rt *Runtime, roundID uint64, user Pubkey) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusCancelled {
		return Fail(ErrWrongStatus, "round %d is not cancelled", roundID)
	}
	roundPDA := rt.RoundPDA(roundID)
	p, err := rt.LoadParticipant(roundPDA, user)
	if err != nil {
		return err
	}
	if p.UsdcDeposited == 0 {
		return Fail(ErrAlreadyClaimed, "participant already refunded")
	}
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	userAta := rt.AssociatedTokenAccount(user, cfg.UsdcMint)
	amount := p.UsdcDeposited
	if err := rt.Tokens.Transfer(cfg.UsdcMint, rd.VaultAta, userAta, amount); err != nil {
		return err
	}
	p.UsdcDeposited = 0
	rt.SaveParticipant(roundPDA, p)
	return nil
}
