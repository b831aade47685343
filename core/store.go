package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/gob"
	"os"
	"sync"
	"time"
)

// AccountStore is the in-process stand-in for a validator's account
// database: a flat map from the account's derived address to its encoded
// bytes, which Runtime's typed Load*/Save* accessors decode and encode.
// Durability is a whole-map gob snapshot (SaveSnapshot/LoadSnapshot) that
// callers invoke themselves; cmd/crankd does so on every tick.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[Pubkey][]byte
}

// NewAccountStore returns an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[Pubkey][]byte)}
}

// Get returns the raw bytes stored at addr, or nil if no account exists
// there yet.
func (s *AccountStore) Get(addr Pubkey) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.accounts[addr]
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Put writes raw bytes at addr, overwriting any existing account.
func (s *AccountStore) Put(addr Pubkey, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.accounts[addr] = cp
}

// Exists reports whether an account has been created at addr.
func (s *AccountStore) Exists(addr Pubkey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[addr]
	return ok
}

// Delete removes the account at addr, simulating rent-reclaim account
// closure (close_participant, close_round).
func (s *AccountStore) Delete(addr Pubkey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, addr)
}

// SaveSnapshot writes the entire account map to path via gob encoding. A
// CLI invocation is short-lived and has nothing to replay, so a single
// snapshot write on exit is enough to carry state to the next invocation.
func (s *AccountStore) SaveSnapshot(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(s.accounts)
}

// LoadSnapshot replaces the store's contents with the snapshot at path. A
// missing file is not an error: it means "no prior state", the same as a
// freshly created store.
func (s *AccountStore) LoadSnapshot(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	accounts := make(map[Pubkey][]byte)
	if err := gob.NewDecoder(f).Decode(&accounts); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	return nil
}

// Clock abstracts wall-clock time so lifecycle instructions (lock_round's
// expiry check, degen's fallback timeout) are deterministically testable.
// The zero value is unusable; use SystemClock in production callers and a
// fixed fakeClock in tests.
type Clock interface {
	Unix() int64
}

// SystemClock reports the real wall clock.
type SystemClock struct{}

// Unix returns time.Now().Unix().
func (SystemClock) Unix() int64 { return time.Now().Unix() }

// Runtime bundles an AccountStore with the CPI-shaped collaborators a real
// validator would otherwise supply via cross-program invocation: the SPL
// token vault, the VRF oracle queue, and (for degen mode) the swap
// executor. Instruction handlers take a *Runtime and never reach for a
// package-level global.
type Runtime struct {
	Store      *AccountStore
	Tokens     TokenLedger
	VRF        VRFQueue
	Swap       SwapExecutor
	MintSelect MintSelector
	Clock      Clock
	Metrics    *Metrics // optional; nil disables instrumentation
	Program    Pubkey   // this program's own address, used to derive PDAs
}

// NewRuntime wires a Runtime from its collaborators. program is this
// program's address (used as the PDA derivation seed namespace).
func NewRuntime(program Pubkey, tokens TokenLedger, vrf VRFQueue, swap SwapExecutor) *Runtime {
	return &Runtime{
		Store:      NewAccountStore(),
		Tokens:     tokens,
		VRF:        vrf,
		Swap:       swap,
		MintSelect: DefaultMintSelector{},
		Clock:      SystemClock{},
		Program:    program,
	}
}

// Now returns the runtime's current Unix timestamp.
func (rt *Runtime) Now() int64 { return rt.Clock.Unix() }

// --- PDA derivation ---------------------------------------------------

// derivePDA computes a deterministic address from the program id and a set
// of seed byte slices, mirroring Solana's find_program_address minus the
// bump-seed search: no bump is derived, and the Bump fields of the account
// layouts are left at zero.
func derivePDA(program Pubkey, seeds ...[]byte) Pubkey {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write(program[:])
	sum := h.Sum(nil)
	var out Pubkey
	copy(out[:], sum[:PubkeySize])
	return out
}

// ConfigPDA derives the program's single Config account address (seed
// "cfg").
func (rt *Runtime) ConfigPDA() Pubkey {
	return derivePDA(rt.Program, []byte("cfg"))
}

// DegenConfigPDA derives the program's single DegenConfig account address
// (seed "degen_cfg").
func (rt *Runtime) DegenConfigPDA() Pubkey {
	return derivePDA(rt.Program, []byte("degen_cfg"))
}

// RoundPDA derives a Round account's address from its round id (seed
// "round" ‖ u64_le(id)).
func (rt *Runtime) RoundPDA(roundID uint64) Pubkey {
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], roundID)
	return derivePDA(rt.Program, []byte("round"), idBytes[:])
}

// ParticipantPDA derives a Participant account's address (seed "p" ‖
// round_pda ‖ user).
func (rt *Runtime) ParticipantPDA(roundPDA, user Pubkey) Pubkey {
	return derivePDA(rt.Program, []byte("p"), roundPDA[:], user[:])
}

// DegenClaimPDA derives a DegenClaim account's address (seed "degen_claim"
// ‖ u64_le(round_id) ‖ winner).
func (rt *Runtime) DegenClaimPDA(roundID uint64, winner Pubkey) Pubkey {
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], roundID)
	return derivePDA(rt.Program, []byte("degen_claim"), idBytes[:], winner[:])
}

// --- typed store accessors --------------------------------------------

// LoadConfig fetches and decodes the Config account, failing if it has not
// been initialised yet.
func (rt *Runtime) LoadConfig() (*Config, error) {
	b := rt.Store.Get(rt.ConfigPDA())
	if b == nil {
		return nil, Fail(ErrAccountOwnerMismatch, "config account not initialised")
	}
	return DecodeConfig(b)
}

// SaveConfig encodes and persists cfg at its PDA.
func (rt *Runtime) SaveConfig(cfg *Config) {
	rt.Store.Put(rt.ConfigPDA(), cfg.Encode())
}

// LoadDegenConfig fetches and decodes the DegenConfig account, failing if
// degen mode has never been configured.
func (rt *Runtime) LoadDegenConfig() (*DegenConfig, error) {
	b := rt.Store.Get(rt.DegenConfigPDA())
	if b == nil {
		return nil, Fail(ErrDegenDisabled, "degen config not initialised")
	}
	return DecodeDegenConfig(b)
}

// SaveDegenConfig encodes and persists dc at its PDA.
func (rt *Runtime) SaveDegenConfig(dc *DegenConfig) {
	rt.Store.Put(rt.DegenConfigPDA(), dc.Encode())
}

// LoadRound fetches and decodes a Round account by id.
func (rt *Runtime) LoadRound(roundID uint64) (*Round, error) {
	b := rt.Store.Get(rt.RoundPDA(roundID))
	if b == nil {
		return nil, Fail(ErrWrongStatus, "round %d does not exist", roundID)
	}
	return DecodeRound(b)
}

// SaveRound encodes and persists rd at its derived PDA.
func (rt *Runtime) SaveRound(rd *Round) {
	rt.Store.Put(rt.RoundPDA(rd.RoundID), rd.Encode())
}

// LoadParticipant fetches and decodes a Participant account for (round,
// user).
func (rt *Runtime) LoadParticipant(roundPDA, user Pubkey) (*Participant, error) {
	b := rt.Store.Get(rt.ParticipantPDA(roundPDA, user))
	if b == nil {
		return nil, Fail(ErrNotWinner, "no participant account for this user in this round")
	}
	return DecodeParticipant(b)
}

// SaveParticipant encodes and persists p at its derived PDA.
func (rt *Runtime) SaveParticipant(roundPDA Pubkey, p *Participant) {
	rt.Store.Put(rt.ParticipantPDA(roundPDA, p.User), p.Encode())
}

// LoadDegenClaim fetches and decodes a DegenClaim account.
func (rt *Runtime) LoadDegenClaim(roundID uint64, winner Pubkey) (*DegenClaim, error) {
	b := rt.Store.Get(rt.DegenClaimPDA(roundID, winner))
	if b == nil {
		return nil, Fail(ErrDegenDisabled, "no degen claim for this round/winner")
	}
	return DecodeDegenClaim(b)
}

// SaveDegenClaim encodes and persists dc at its derived PDA.
func (rt *Runtime) SaveDegenClaim(dc *DegenClaim) {
	rt.Store.Put(rt.DegenClaimPDA(dc.RoundID, dc.Winner), dc.Encode())
}
