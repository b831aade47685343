// Package core implements the roll2roll jackpot program's deterministic
// state machine: account layouts, the instruction set, lifecycle rules,
// ticket math, weighted winner selection, fee arithmetic and the degen
// payout fallback. It has no network or storage dependency of its own —
// callers provide an AccountStore and the CPI-shaped collaborators
// (TokenLedger, VRFQueue, SwapExecutor) the real validator would supply.
package core

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize is the length in bytes of a program address.
const PubkeySize = 32

// Pubkey is a 32-byte program/account/mint address, matching the Solana
// address space the protocol operates in.
type Pubkey [PubkeySize]byte

// ZeroPubkey is the all-zero default Pubkey value, used
// throughout the account layouts to mean "unset" (e.g. vrf_payer before a
// VRF request, target_mint before selection).
var ZeroPubkey Pubkey

// IsZero reports whether k is the default, unset address.
func (k Pubkey) IsZero() bool { return k == ZeroPubkey }

// String renders k as base58, the text encoding used across the Solana
// ecosystem for addresses.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

// PubkeyFromBase58 decodes a base58 string into a Pubkey, rejecting any
// input that does not decode to exactly PubkeySize bytes.
func PubkeyFromBase58(s string) (Pubkey, error) {
	var out Pubkey
	b, err := base58.Decode(s)
	if err != nil {
		return out, fmt.Errorf("pubkey: bad base58: %w", err)
	}
	if len(b) != PubkeySize {
		return out, fmt.Errorf("pubkey: expected %d bytes, got %d", PubkeySize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// NewRandomPubkey generates a Pubkey from the system CSPRNG. It is used by
// tests and CLI scaffolding to mint throwaway addresses; it is never used
// by protocol logic itself.
func NewRandomPubkey() Pubkey {
	var out Pubkey
	_, _ = rand.Read(out[:])
	return out
}

// Randomness is the 32-byte VRF payload delivered by vrf_callback and
// degen_vrf_callback.
type Randomness [32]byte

// Uint64LE interprets the first 8 bytes of r as a little-endian u64, per
// §4.5's winner-selection formula.
func (r Randomness) Uint64LE() uint64 {
	return binary.LittleEndian.Uint64(r[0:8])
}

// ByteAt returns the byte at index i, used by the degen mint selector
// (randomness[8] in §G.4).
func (r Randomness) ByteAt(i int) byte { return r[i] }
