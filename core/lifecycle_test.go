package core

import "testing"

// fakeClock is a settable Clock used to drive rounds past end_ts and past
// degen fallback timeouts without sleeping real time.
type fakeClock int64

func (f *fakeClock) Unix() int64 { return int64(*f) }

func newTestRuntime() (*Runtime, *fakeClock, *InMemoryTokenLedger) {
	tokens := NewInMemoryTokenLedger()
	rt := NewRuntime(NewRandomPubkey(), tokens, InMemoryVRFQueue{}, nil)
	clk := fakeClock(1_000)
	rt.Clock = &clk
	return rt, &clk, tokens
}

// TestHappyClassicClaim exercises spec.md's scenario 1: a single
// participant wins their own round, claims and the vault drains to zero.
func TestHappyClassicClaim(t *testing.T) {
	rt, clk, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()

	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 10_000, 1, 1, 2, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	if err := StartRound(rt, 1); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	user := NewRandomPubkey()
	userAta := NewRandomPubkey()
	tokens.Seed(userAta, 20_000)

	if err := DepositAny(rt, 1, user, userAta, 0, 20_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}

	rd, err := rt.LoadRound(1)
	if err != nil {
		t.Fatalf("LoadRound: %v", err)
	}
	*clk = fakeClock(rd.EndTs + 1)

	if err := LockRound(rt, 1); err != nil {
		t.Fatalf("LockRound: %v", err)
	}
	rd, _ = rt.LoadRound(1)
	if rd.Status != StatusLocked {
		t.Fatalf("round status = %v, want Locked", rd.Status)
	}

	vrfPayer := NewRandomPubkey()
	if err := RequestVRF(rt, vrfPayer, 1); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}

	var randomness Randomness // zero randomness: ticket 0, sole participant wins
	if err := VRFCallback(rt, admin, 1, randomness); err != nil {
		t.Fatalf("VRFCallback: %v", err)
	}
	rd, _ = rt.LoadRound(1)
	if rd.Winner != user {
		t.Fatalf("winner = %s, want %s", rd.Winner, user)
	}

	if err := Claim(rt, user, 1); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	winnerAta := rt.AssociatedTokenAccount(user, usdcMint)
	if got := tokens.BalanceOf(winnerAta); got != 19_950 {
		t.Fatalf("winner balance = %d, want 19950", got)
	}
	if got := tokens.BalanceOf(treasuryAta); got != 50 {
		t.Fatalf("treasury balance = %d, want 50", got)
	}
	rd, _ = rt.LoadRound(1)
	if got := tokens.BalanceOf(rd.VaultAta); got != 0 {
		t.Fatalf("vault balance = %d, want 0", got)
	}
	if rd.Status != StatusClaimed {
		t.Fatalf("round status = %v, want Claimed", rd.Status)
	}

	if err := Claim(rt, user, 1); !isCode(err, ErrAlreadyClaimed) {
		t.Fatalf("second Claim: got %v, want ErrAlreadyClaimed", err)
	}
}

// TestCancelUnderSubscribedRound exercises scenario 2: a round that never
// reaches min_participants is cancelled after the grace period and its sole
// depositor is refunded in full.
func TestCancelUnderSubscribedRound(t *testing.T) {
	rt, clk, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 10_000, 1, 2, 2, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := StartRound(rt, 7); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	user := NewRandomPubkey()
	userAta := NewRandomPubkey()
	tokens.Seed(userAta, 10_000)
	if err := DepositAny(rt, 7, user, userAta, 0, 10_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}

	rd, _ := rt.LoadRound(7)
	*clk = fakeClock(rd.EndTs + CancelGraceSec + 1)

	if err := CancelRound(rt, 7); err != nil {
		t.Fatalf("CancelRound: %v", err)
	}
	rd, _ = rt.LoadRound(7)
	if rd.Status != StatusCancelled {
		t.Fatalf("round status = %v, want Cancelled", rd.Status)
	}

	if err := ClaimRefund(rt, 7, user); err != nil {
		t.Fatalf("ClaimRefund: %v", err)
	}
	userAtaBalance := tokens.BalanceOf(rt.AssociatedTokenAccount(user, usdcMint))
	if userAtaBalance != 10_000 {
		t.Fatalf("refunded balance = %d, want 10000", userAtaBalance)
	}
	if got := tokens.BalanceOf(rd.VaultAta); got != 0 {
		t.Fatalf("vault balance = %d, want 0", got)
	}
}

// TestTwoParticipantWeightedSelection exercises scenario 3: two
// participants with unequal ticket counts, a winning ticket that lands in
// the second participant's range.
func TestTwoParticipantWeightedSelection(t *testing.T) {
	rt, clk, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 0, 1, 1, 2, 2, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := StartRound(rt, 3); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	userA, ataA := NewRandomPubkey(), NewRandomPubkey()
	userB, ataB := NewRandomPubkey(), NewRandomPubkey()
	tokens.Seed(ataA, 3)
	tokens.Seed(ataB, 7)

	if err := DepositAny(rt, 3, userA, ataA, 0, 0); err != nil {
		t.Fatalf("DepositAny A: %v", err)
	}
	if err := DepositAny(rt, 3, userB, ataB, 0, 0); err != nil {
		t.Fatalf("DepositAny B: %v", err)
	}

	rd, _ := rt.LoadRound(3)
	*clk = fakeClock(rd.EndTs + 1)
	if err := LockRound(rt, 3); err != nil {
		t.Fatalf("LockRound: %v", err)
	}
	if err := RequestVRF(rt, NewRandomPubkey(), 3); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}

	// total_tickets = 10; ticket 5 falls in userB's [3,9] range.
	var randomness Randomness
	randomness[0] = 5
	if err := VRFCallback(rt, admin, 3, randomness); err != nil {
		t.Fatalf("VRFCallback: %v", err)
	}
	rd, _ = rt.LoadRound(3)
	if rd.Winner != userB {
		t.Fatalf("winner = %s, want userB %s (winning_ticket=%d)", rd.Winner, userB, rd.WinningTicket)
	}
}

// TestDegenFallbackCoalescesWinnerAndVrfPayerAta exercises scenario 4: a
// degen claim with no approved target mint falls back to a classic-shaped
// payout once its fallback window elapses, and since the winner requested
// their own VRF the winner and vrf_payer legs share one ATA and must be
// paid in a single coalesced transfer.
func TestDegenFallbackCoalescesWinnerAndVrfPayerAta(t *testing.T) {
	rt, clk, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 1, 1, 1, 1, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := UpsertDegenConfig(rt, admin, NewRandomPubkey(), 10, nil); err != nil {
		t.Fatalf("UpsertDegenConfig: %v", err)
	}

	if err := StartRound(rt, 9); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	winner := NewRandomPubkey()
	winnerAta := NewRandomPubkey()
	tokens.Seed(winnerAta, 10_000_000)
	if err := DepositAny(rt, 9, winner, winnerAta, 0, 10_000_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}

	rd, _ := rt.LoadRound(9)
	*clk = fakeClock(rd.EndTs + 1)
	if err := LockRound(rt, 9); err != nil {
		t.Fatalf("LockRound: %v", err)
	}

	// winner also pays for its own VRF request, so vrf_payer and winner end
	// up sharing an ATA once the sole participant wins.
	if err := RequestVRF(rt, winner, 9); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}
	var randomness Randomness
	if err := VRFCallback(rt, admin, 9, randomness); err != nil {
		t.Fatalf("VRFCallback: %v", err)
	}
	rd, _ = rt.LoadRound(9)
	if rd.Winner != winner {
		t.Fatalf("winner = %s, want %s", rd.Winner, winner)
	}

	if err := RequestDegenVRF(rt, winner, 9); err != nil {
		t.Fatalf("RequestDegenVRF: %v", err)
	}
	var degenRandomness Randomness
	degenRandomness[0] = 1
	if err := DegenVRFCallback(rt, admin, 9, degenRandomness); err != nil {
		t.Fatalf("DegenVRFCallback: %v", err)
	}
	claim, err := rt.LoadDegenClaim(9, winner)
	if err != nil {
		t.Fatalf("LoadDegenClaim: %v", err)
	}
	if claim.Status != DegenClaimReadyToClaim {
		t.Fatalf("claim status = %v, want ReadyToClaim (no approved mints)", claim.Status)
	}

	*clk = fakeClock(claim.FallbackAfterTs + 1)
	if err := ClaimDegenFallback(rt, 9, claim.FallbackReason); err != nil {
		t.Fatalf("ClaimDegenFallback: %v", err)
	}

	ownAta := rt.AssociatedTokenAccount(winner, usdcMint)
	if got := tokens.BalanceOf(ownAta); got != 9_975_500 {
		t.Fatalf("winner balance = %d, want 9975500 (9775500 payout + 200000 coalesced reimburse)", got)
	}
	if got := tokens.BalanceOf(treasuryAta); got != 24_500 {
		t.Fatalf("treasury balance = %d, want 24500", got)
	}
	rd, _ = rt.LoadRound(9)
	if got := tokens.BalanceOf(rd.VaultAta); got != 0 {
		t.Fatalf("vault balance = %d, want 0", got)
	}
}

// TestDepositRejectsSubTicketUnitDelta exercises scenario 5: a deposit
// whose delta isn't a positive multiple of ticket_unit is rejected before
// it ever reaches the Fenwick tree.
func TestDepositRejectsSubTicketUnitDelta(t *testing.T) {
	rt, _, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 10_000, 1, 1, 1, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := StartRound(rt, 4); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	user := NewRandomPubkey()
	userAta := NewRandomPubkey()
	tokens.Seed(userAta, 9_999)

	if err := DepositAny(rt, 4, user, userAta, 0, 0); !isCode(err, ErrInvalidTicketUnit) {
		t.Fatalf("DepositAny: got %v, want ErrInvalidTicketUnit", err)
	}
}

// TestVRFCallbackReplay exercises scenario 6: replaying vrf_callback with
// the same randomness after settle is an idempotent no-op, but replaying it
// with different randomness fails with WrongStatus and leaves the winner
// unchanged.
func TestVRFCallbackReplay(t *testing.T) {
	rt, clk, tokens := newTestRuntime()

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 10_000, 1, 1, 2, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := StartRound(rt, 5); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	user := NewRandomPubkey()
	userAta := NewRandomPubkey()
	tokens.Seed(userAta, 20_000)
	if err := DepositAny(rt, 5, user, userAta, 0, 20_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}

	rd, _ := rt.LoadRound(5)
	*clk = fakeClock(rd.EndTs + 1)
	if err := LockRound(rt, 5); err != nil {
		t.Fatalf("LockRound: %v", err)
	}
	if err := RequestVRF(rt, NewRandomPubkey(), 5); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}

	var randomness Randomness
	if err := VRFCallback(rt, admin, 5, randomness); err != nil {
		t.Fatalf("VRFCallback: %v", err)
	}
	rd, _ = rt.LoadRound(5)
	winner := rd.Winner

	// Replay with matching randomness: idempotent no-op.
	if err := VRFCallback(rt, admin, 5, randomness); err != nil {
		t.Fatalf("matching replay: got %v, want nil", err)
	}
	rd, _ = rt.LoadRound(5)
	if rd.Winner != winner {
		t.Fatalf("winner changed after matching replay: got %s, want %s", rd.Winner, winner)
	}

	// Replay with different randomness: must fail, winner unchanged.
	var forged Randomness
	forged[0] = 0xff
	if err := VRFCallback(rt, admin, 5, forged); !isCode(err, ErrWrongStatus) {
		t.Fatalf("forged replay: got %v, want ErrWrongStatus", err)
	}
	rd, _ = rt.LoadRound(5)
	if rd.Winner != winner {
		t.Fatalf("winner changed after forged replay: got %s, want %s", rd.Winner, winner)
	}
}

func isCode(err error, code Code) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
