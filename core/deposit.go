package core

// DepositAny implements deposit_any (§4.4). usdcBalanceBefore is the
// caller-supplied pre-transaction balance of userAta; the program reads
// userAta's current balance itself as the post-transaction value, so a
// front end may prepend an aggregator swap that settles into USDC without
// this program ever having to understand the aggregator.
func DepositAny(rt *Runtime, roundID uint64, user, userAta Pubkey, usdcBalanceBefore, minOut uint64) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Paused {
		return Fail(ErrPaused, "program is paused")
	}
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusOpen {
		return Fail(ErrWrongStatus, "round %d is not open", roundID)
	}
	now := rt.Now()
	if now >= rd.EndTs {
		return Fail(ErrRoundExpired, "round %d has reached end_ts", roundID)
	}

	post := rt.Tokens.BalanceOf(userAta)
	if post < usdcBalanceBefore {
		return Fail(ErrAccountOwnerMismatch, "userAta balance decreased since the supplied snapshot")
	}
	delta := post - usdcBalanceBefore
	if delta == 0 || delta%cfg.TicketUnit != 0 {
		return Fail(ErrInvalidTicketUnit, "delta %d is not a positive multiple of ticket_unit %d", delta, cfg.TicketUnit)
	}
	if delta < minOut {
		return Fail(ErrSlippageExceeded, "delta %d below min_out %d", delta, minOut)
	}

	roundPDA := rt.RoundPDA(roundID)
	p, err := rt.LoadParticipant(roundPDA, user)
	isNew := err != nil
	if isNew {
		p = &Participant{RoundID: roundID, User: user}
	}

	if cfg.MaxDepositPerUser > 0 && p.UsdcDeposited+delta > cfg.MaxDepositPerUser {
		return Fail(ErrDepositTooLarge, "deposit would exceed max_deposit_per_user %d", cfg.MaxDepositPerUser)
	}

	ticketsAdded := delta / cfg.TicketUnit

	if isNew {
		if rd.ParticipantsCount >= MaxParticipants {
			return Fail(ErrRosterFull, "round %d roster is full", roundID)
		}
		p.FenwickIndex = rd.ParticipantsCount
		rd.Roster[rd.ParticipantsCount] = user
		rd.ParticipantsCount++
		if rd.FirstDepositTs == 0 {
			rd.FirstDepositTs = now
		}
	}
	p.Tickets += ticketsAdded
	p.UsdcDeposited += delta

	if err := rt.Tokens.Transfer(cfg.UsdcMint, userAta, rd.VaultAta, delta); err != nil {
		return err
	}

	rd.Fenwick.Add(int(p.FenwickIndex), ticketsAdded)
	rd.TotalTickets += ticketsAdded
	rd.TotalUsdc += delta

	rt.SaveRound(rd)
	rt.SaveParticipant(roundPDA, p)
	return nil
}

// CloseParticipant implements close_participant (§4.3): after a claim or
// refund has zeroed a Participant's stake in the round, returns its rent
// by deleting the account.
func CloseParticipant(rt *Runtime, roundID uint64, user Pubkey) error {
	roundPDA := rt.RoundPDA(roundID)
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status != StatusClaimed && rd.Status != StatusCancelled {
		return Fail(ErrWrongStatus, "round %d has not reached a closeable state", roundID)
	}
	p, err := rt.LoadParticipant(roundPDA, user)
	if err != nil {
		return err
	}
	if rd.Status == StatusCancelled && p.UsdcDeposited != 0 {
		return Fail(ErrWrongStatus, "participant has not claimed its refund for round %d", roundID)
	}
	rt.Store.Delete(rt.ParticipantPDA(roundPDA, user))
	return nil
}
