package core

import (
	"crypto/rand"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	want := &Config{
		Admin:             NewRandomPubkey(),
		UsdcMint:          NewRandomPubkey(),
		TreasuryUsdcAta:   NewRandomPubkey(),
		FeeBps:            250,
		TicketUnit:        1_000_000,
		RoundDurationSec:  3600,
		MinParticipants:   2,
		MinTotalTickets:   10,
		Paused:            false,
		Bump:              254,
		MaxDepositPerUser: 500_000_000,
		VrfAuthority:      NewRandomPubkey(),
	}
	enc := want.Encode()
	if len(enc) != ConfigSize {
		t.Fatalf("Encode() length = %d, want %d", len(enc), ConfigSize)
	}
	got, err := DecodeConfig(enc)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDegenConfigRoundTrip(t *testing.T) {
	want := &DegenConfig{
		Executor:           NewRandomPubkey(),
		FallbackTimeoutSec: 900,
		Bump:               255,
		ApprovedMintCount:  3,
	}
	want.ApprovedMints[0] = NewRandomPubkey()
	want.ApprovedMints[1] = NewRandomPubkey()
	want.ApprovedMints[2] = NewRandomPubkey()

	enc := want.Encode()
	if len(enc) != DegenConfigSize {
		t.Fatalf("Encode() length = %d, want %d", len(enc), DegenConfigSize)
	}
	got, err := DecodeDegenConfig(enc)
	if err != nil {
		t.Fatalf("DecodeDegenConfig: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestRoundRoundTrip(t *testing.T) {
	want := &Round{
		RoundID:           42,
		Status:            StatusLocked,
		Bump:              1,
		StartTs:           1_700_000_000,
		EndTs:             1_700_003_600,
		FirstDepositTs:    1_700_000_100,
		VaultAta:          NewRandomPubkey(),
		TotalUsdc:         4_000_000,
		TotalTickets:      4,
		ParticipantsCount: 2,
		WinningTicket:     0,
		Winner:            ZeroPubkey,
		VrfPayer:          NewRandomPubkey(),
		VrfReimbursed:     true,
		DegenMode:         DegenModeNone,
	}
	want.Roster[0] = NewRandomPubkey()
	want.Roster[1] = NewRandomPubkey()
	want.Fenwick.Add(0, 1)
	want.Fenwick.Add(1, 3)
	_, _ = rand.Read(want.RandomnessVal[:])

	enc := want.Encode()
	if len(enc) != RoundSize {
		t.Fatalf("Encode() length = %d, want %d", len(enc), RoundSize)
	}
	got, err := DecodeRound(enc)
	if err != nil {
		t.Fatalf("DecodeRound: %v", err)
	}
	if got.RoundID != want.RoundID || got.Status != want.Status ||
		got.TotalTickets != want.TotalTickets || got.Roster != want.Roster ||
		got.Fenwick != want.Fenwick || got.RandomnessVal != want.RandomnessVal ||
		got.VrfReimbursed != want.VrfReimbursed {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
	if got.Fenwick.Sum() != want.TotalTickets {
		t.Fatalf("decoded Fenwick.Sum() = %d, want %d", got.Fenwick.Sum(), want.TotalTickets)
	}
}

func TestParticipantRoundTrip(t *testing.T) {
	want := &Participant{
		RoundID:       7,
		User:          NewRandomPubkey(),
		Tickets:       3,
		UsdcDeposited: 3_000_000,
		FenwickIndex:  1,
		Bump:          253,
	}
	enc := want.Encode()
	got, err := DecodeParticipant(enc)
	if err != nil {
		t.Fatalf("DecodeParticipant: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDegenClaimRoundTrip(t *testing.T) {
	want := &DegenClaim{
		Round:           NewRandomPubkey(),
		Winner:          NewRandomPubkey(),
		RoundID:         7,
		Status:          DegenClaimReadyToExecute,
		FallbackReason:  0,
		ClaimedAt:       0,
		FallbackAfterTs: 1_700_001_000,
		PayoutRaw:       9_000_000,
		TargetMint:      NewRandomPubkey(),
		Executor:        NewRandomPubkey(),
	}
	enc := want.Encode()
	got, err := DecodeDegenClaim(enc)
	if err != nil {
		t.Fatalf("DecodeDegenClaim: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDecodeRejectsWrongDiscriminator(t *testing.T) {
	cfg := &Config{}
	enc := cfg.Encode()
	enc[0] ^= 0xFF // corrupt discriminator
	if _, err := DecodeConfig(enc); err == nil {
		t.Fatal("DecodeConfig accepted a corrupted discriminator")
	} else if code, ok := CodeOf(err); !ok || code != ErrInvalidDiscriminator {
		t.Fatalf("expected ErrInvalidDiscriminator, got %v", err)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, err := DecodeRound(make([]byte, 10)); err == nil {
		t.Fatal("DecodeRound accepted truncated input")
	}
}
