package core

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// TestRequestVRFCallsQueueWithRoundSeed exercises RequestVRF against a
// mocked VRFQueue rather than the in-memory simulator, asserting exactly
// one RequestRandomness call carrying the round's derived PDA as seed.
func TestRequestVRFCallsQueueWithRoundSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVRF := NewMockVRFQueue(ctrl)

	tokens := NewInMemoryTokenLedger()
	rt := NewRuntime(NewRandomPubkey(), tokens, mockVRF, nil)
	clk := fakeClock(1_000)
	rt.Clock = &clk

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 25, 10_000, 1, 1, 1, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if err := StartRound(rt, 1); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	user, userAta := NewRandomPubkey(), NewRandomPubkey()
	tokens.Seed(userAta, 10_000)
	if err := DepositAny(rt, 1, user, userAta, 0, 10_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}

	rd, _ := rt.LoadRound(1)
	clk = fakeClock(rd.EndTs + 1)
	if err := LockRound(rt, 1); err != nil {
		t.Fatalf("LockRound: %v", err)
	}

	wantSeed := rt.RoundPDA(1)
	mockVRF.EXPECT().RequestRandomness(wantSeed[:]).Return(nil).Times(1)

	if err := RequestVRF(rt, NewRandomPubkey(), 1); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}
}

// TestFinalizeDegenSuccessUsesSwapExecutorMock asserts FinalizeDegenSuccess
// drives SwapExecutor with exactly the vault and payout amount the degen
// claim recorded, rather than inferring it indirectly from balances.
func TestFinalizeDegenSuccessUsesSwapExecutorMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSwap := NewMockSwapExecutor(ctrl)

	tokens := NewInMemoryTokenLedger()
	rt := NewRuntime(NewRandomPubkey(), tokens, InMemoryVRFQueue{}, mockSwap)
	clk := fakeClock(1_000)
	rt.Clock = &clk

	admin := NewRandomPubkey()
	usdcMint := NewRandomPubkey()
	treasuryAta := NewRandomPubkey()
	if err := InitConfig(rt, admin, usdcMint, treasuryAta, 0, 1, 1, 1, 1, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	executor := NewRandomPubkey()
	targetMint := NewRandomPubkey()
	if err := UpsertDegenConfig(rt, admin, executor, 3_600, []Pubkey{targetMint}); err != nil {
		t.Fatalf("UpsertDegenConfig: %v", err)
	}

	if err := StartRound(rt, 9); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	user, userAta := NewRandomPubkey(), NewRandomPubkey()
	tokens.Seed(userAta, 1_000_000)
	if err := DepositAny(rt, 9, user, userAta, 0, 1_000_000); err != nil {
		t.Fatalf("DepositAny: %v", err)
	}
	rd, _ := rt.LoadRound(9)
	clk = fakeClock(rd.EndTs + 1)
	if err := LockRound(rt, 9); err != nil {
		t.Fatalf("LockRound: %v", err)
	}
	if err := RequestVRF(rt, NewRandomPubkey(), 9); err != nil {
		t.Fatalf("RequestVRF: %v", err)
	}
	var randomness Randomness
	if err := VRFCallback(rt, admin, 9, randomness); err != nil {
		t.Fatalf("VRFCallback: %v", err)
	}

	if err := RequestDegenVRF(rt, user, 9); err != nil {
		t.Fatalf("RequestDegenVRF: %v", err)
	}
	randomness[8] = 0 // selects the sole approved mint
	if err := DegenVRFCallback(rt, admin, 9, randomness); err != nil {
		t.Fatalf("DegenVRFCallback: %v", err)
	}
	if err := BeginDegenExecution(rt, executor, 9); err != nil {
		t.Fatalf("BeginDegenExecution: %v", err)
	}

	claim, err := rt.LoadDegenClaim(9, user)
	if err != nil {
		t.Fatalf("LoadDegenClaim: %v", err)
	}
	rd, _ = rt.LoadRound(9)
	winnerTargetAta := rt.AssociatedTokenAccount(user, targetMint)
	mockSwap.EXPECT().
		Swap(usdcMint, targetMint, rd.VaultAta, winnerTargetAta, claim.PayoutRaw).
		Return(claim.PayoutRaw, nil).
		Times(1)

	if err := FinalizeDegenSuccess(rt, executor, 9, claim.PayoutRaw); err != nil {
		t.Fatalf("FinalizeDegenSuccess: %v", err)
	}
}
