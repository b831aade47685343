package core

// VaultPDA derives a Round's vault token account address (seed "vault" ‖
// round_pda), kept distinct from the Round PDA itself since a real vault
// is a separate SPL token account whose authority is the Round PDA.
func (rt *Runtime) VaultPDA(roundPDA Pubkey) Pubkey {
	return derivePDA(rt.Program, []byte("vault"), roundPDA[:])
}

// StartRound implements start_round (§4.3): creates the Round PDA and its
// vault, fails if the program is paused or the round id is already in use.
func StartRound(rt *Runtime, roundID uint64) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Paused {
		return Fail(ErrPaused, "program is paused")
	}
	if rt.Store.Exists(rt.RoundPDA(roundID)) {
		return Fail(ErrWrongStatus, "round %d already exists", roundID)
	}
	now := rt.Now()
	rd := &Round{
		RoundID:        roundID,
		Status:         StatusOpen,
		StartTs:        now,
		EndTs:          now + int64(cfg.RoundDurationSec),
		FirstDepositTs: 0,
		VaultAta:       rt.VaultPDA(rt.RoundPDA(roundID)),
	}
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveRoundOpened()
	}
	return nil
}

// LockRound implements lock_round (§4.3): Open -> Locked once now >=
// end_ts, or Open -> Cancelled if lock preconditions are unmet. It is a
// no-op once already past Open.
func LockRound(rt *Runtime, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusOpen {
		return nil
	}
	now := rt.Now()
	if now < rd.EndTs {
		return Fail(ErrRoundNotYetExpired, "round %d has not reached end_ts", roundID)
	}
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if lockPreconditionsUnmet(rd, cfg) {
		rd.Status = StatusCancelled
		if rt.Metrics != nil {
			rt.Metrics.ObserveRoundCancelled()
		}
	} else {
		rd.Status = StatusLocked
	}
	rt.SaveRound(rd)
	return nil
}

func lockPreconditionsUnmet(rd *Round, cfg *Config) bool {
	return rd.ParticipantsCount < cfg.MinParticipants || rd.TotalTickets < cfg.MinTotalTickets
}

// CancelRound implements cancel_round (§4.3): permissionless, Open ->
// Cancelled once now > end_ts + CancelGraceSec and lock preconditions
// still fail.
func CancelRound(rt *Runtime, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusOpen {
		return Fail(ErrWrongStatus, "round %d is not open", roundID)
	}
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	now := rt.Now()
	if now <= rd.EndTs+CancelGraceSec {
		return Fail(ErrRoundNotYetExpired, "round %d grace period has not elapsed", roundID)
	}
	if !lockPreconditionsUnmet(rd, cfg) {
		return Fail(ErrLockPreconditionsUnmet, "round %d would satisfy lock preconditions", roundID)
	}
	rd.Status = StatusCancelled
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveRoundCancelled()
	}
	return nil
}

// AdminForceCancel implements admin_force_cancel (§4.3): admin-only,
// transitions any pre-Claimed round to Cancelled.
func AdminForceCancel(rt *Runtime, signer Pubkey, roundID uint64) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Admin != signer {
		return Fail(ErrUnauthorized, "only admin may force-cancel a round")
	}
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status == StatusClaimed {
		return Fail(ErrAlreadyClaimed, "round %d already claimed", roundID)
	}
	rd.Status = StatusCancelled
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveRoundCancelled()
	}
	return nil
}

// CloseRound implements close_round (§4.3): once the vault is empty and
// every Participant has been closed, closes the Round PDA.
func CloseRound(rt *Runtime, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusClaimed && rd.Status != StatusCancelled {
		return Fail(ErrWrongStatus, "round %d must be claimed or cancelled before closing", roundID)
	}
	if rt.Tokens.BalanceOf(rd.VaultAta) != 0 {
		return Fail(ErrInsufficientVault, "round %d vault is not empty", roundID)
	}
	roundPDA := rt.RoundPDA(roundID)
	for i := 0; i < int(rd.ParticipantsCount); i++ {
		if rt.Store.Exists(rt.ParticipantPDA(roundPDA, rd.Roster[i])) {
			return Fail(ErrWrongStatus, "round %d still has open participant accounts", roundID)
		}
	}
	rt.Store.Delete(roundPDA)
	return nil
}
