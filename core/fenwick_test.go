package core

import "testing"

// TestFenwickTwoParticipantWeighted mirrors spec.md §8 scenario 3: A
// deposits 1 ticket, B deposits 3 tickets; t=0 selects A, t in {1,2,3}
// selects B.
func TestFenwickTwoParticipantWeighted(t *testing.T) {
	var f Fenwick
	f.Add(0, 1) // participant A, index 0
	f.Add(1, 3) // participant B, index 1

	if got := f.Sum(); got != 4 {
		t.Fatalf("Sum() = %d, want 4", got)
	}

	cases := []struct {
		ticket uint64
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
	}
	for _, c := range cases {
		if got := f.FindByTicket(c.ticket); got != c.want {
			t.Errorf("FindByTicket(%d) = %d, want %d", c.ticket, got, c.want)
		}
	}
}

// TestFenwickRepeatDepositUpdatesExistingIndex verifies a second deposit by
// an existing participant updates their Fenwick entry in place rather than
// growing the roster (§3 invariant).
func TestFenwickRepeatDepositUpdatesExistingIndex(t *testing.T) {
	var f Fenwick
	f.Add(0, 2)
	f.Add(1, 5)
	f.Add(0, 3) // repeat deposit by participant 0

	if got := f.Sum(); got != 10 {
		t.Fatalf("Sum() = %d, want 10", got)
	}
	if got := f.PrefixSum(0); got != 5 {
		t.Fatalf("PrefixSum(0) = %d, want 5", got)
	}
}

// TestFenwickManyParticipants exercises a larger, denser roster and checks
// every boundary ticket resolves to the expected participant.
func TestFenwickManyParticipants(t *testing.T) {
	var f Fenwick
	counts := []uint64{1, 1, 2, 5, 1, 10, 3}
	var total uint64
	for i, c := range counts {
		f.Add(i, c)
		total += c
	}
	if got := f.Sum(); got != total {
		t.Fatalf("Sum() = %d, want %d", got, total)
	}

	var ticket uint64
	for i, c := range counts {
		for k := uint64(0); k < c; k++ {
			if got := f.FindByTicket(ticket); got != i {
				t.Errorf("FindByTicket(%d) = %d, want %d", ticket, got, i)
			}
			ticket++
		}
	}
}

// TestFenwickFullRoster exercises the maximum 200-participant roster with
// one ticket each, checking the first, middle and last participants.
func TestFenwickFullRoster(t *testing.T) {
	var f Fenwick
	for i := 0; i < MaxParticipants; i++ {
		f.Add(i, 1)
	}
	if got := f.Sum(); got != MaxParticipants {
		t.Fatalf("Sum() = %d, want %d", got, MaxParticipants)
	}
	if got := f.FindByTicket(0); got != 0 {
		t.Errorf("FindByTicket(0) = %d, want 0", got)
	}
	if got := f.FindByTicket(MaxParticipants - 1); got != MaxParticipants-1 {
		t.Errorf("FindByTicket(%d) = %d, want %d", MaxParticipants-1, got, MaxParticipants-1)
	}
	if got := f.FindByTicket(99); got != 99 {
		t.Errorf("FindByTicket(99) = %d, want 99", got)
	}
}
