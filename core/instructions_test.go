package core

import (
	"encoding/binary"
	"testing"
)

func appendDiscU64(name string, roundID uint64) []byte {
	d := InstructionDiscriminator(name)
	buf := make([]byte, 0, DiscriminatorSize+8)
	buf = append(buf, d[:]...)
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], roundID)
	return append(buf, idBytes[:]...)
}

// TestDispatchRoutesStartAndLockRound exercises the byte-blob Dispatch path
// end to end, confirming the instruction registry's discriminators and arg
// decoding line up with the typed handlers they wrap.
func TestDispatchRoutesStartAndLockRound(t *testing.T) {
	rt, clk, _ := newTestRuntime()
	admin := NewRandomPubkey()
	if err := InitConfig(rt, admin, NewRandomPubkey(), NewRandomPubkey(), 25, 10_000, 1, 1, 1, 0); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	if err := Dispatch(rt, nil, appendDiscU64("start_round", 42)); err != nil {
		t.Fatalf("Dispatch start_round: %v", err)
	}
	rd, err := rt.LoadRound(42)
	if err != nil {
		t.Fatalf("LoadRound: %v", err)
	}
	if rd.Status != StatusOpen {
		t.Fatalf("round status = %v, want Open", rd.Status)
	}

	*clk = fakeClock(rd.EndTs + 1)
	if err := Dispatch(rt, nil, appendDiscU64("lock_round", 42)); err != nil {
		t.Fatalf("Dispatch lock_round: %v", err)
	}
	rd, _ = rt.LoadRound(42)
	if rd.Status != StatusCancelled {
		t.Fatalf("round status = %v, want Cancelled (min_participants unmet)", rd.Status)
	}
}

// TestDispatchUnknownDiscriminator confirms an unregistered blob fails with
// the documented error code instead of a panic.
func TestDispatchUnknownDiscriminator(t *testing.T) {
	rt, _, _ := newTestRuntime()
	blob := make([]byte, DiscriminatorSize)
	if err := Dispatch(rt, nil, blob); !isCode(err, ErrInvalidDiscriminator) {
		t.Fatalf("Dispatch: got %v, want ErrInvalidDiscriminator", err)
	}
}

// TestDecodeConfigUpdateMask confirms the presence-bitmask decoding for
// update_config only touches the fields it flags.
func TestDecodeConfigUpdateMask(t *testing.T) {
	data := []byte{1 << 0, 0x32, 0x00} // bit 0 set: fee_bps = 0x0032 (50)
	upd, err := decodeConfigUpdate(data)
	if err != nil {
		t.Fatalf("decodeConfigUpdate: %v", err)
	}
	if upd.FeeBps == nil || *upd.FeeBps != 50 {
		t.Fatalf("FeeBps = %v, want 50", upd.FeeBps)
	}
	if upd.TicketUnit != nil {
		t.Fatalf("TicketUnit should be nil, got %v", upd.TicketUnit)
	}
}
