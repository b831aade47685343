package core

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// TokenLedger is the CPI-shaped seam onto the SPL token program: every
// instruction that moves USDC or a degen mint routes through it instead of
// touching balances directly. A real validator backs this with actual SPL
// token accounts; tests and the reference crank back it with
// InMemoryTokenLedger below.
type TokenLedger interface {
	// Transfer moves amount of mint from the owner of fromAta to the owner
	// of toAta. It fails if fromAta's balance is insufficient.
	Transfer(mint Pubkey, fromAta, toAta Pubkey, amount uint64) error

	// BalanceOf returns the current balance of ata.
	BalanceOf(ata Pubkey) uint64

	// Mint credits amount of mint into ata, used only by the in-memory
	// simulator to seed test fixtures and by the degen swap executor's
	// meme-token payout leg.
	Mint(mint Pubkey, ata Pubkey, amount uint64) error
}

// InMemoryTokenLedger is a minimal SPL-token-account simulator: balances
// keyed by token account address, with no mint-level accounting (callers
// are trusted to pass a consistent mint for a given ata, exactly as a real
// validator's account-owner checks would enforce out of band).
type InMemoryTokenLedger struct {
	mu       sync.Mutex
	balances map[Pubkey]uint64
}

// NewInMemoryTokenLedger returns an empty simulator.
func NewInMemoryTokenLedger() *InMemoryTokenLedger {
	return &InMemoryTokenLedger{balances: make(map[Pubkey]uint64)}
}

// Seed sets ata's balance directly, used by tests to fund a vault or user
// token account without going through Transfer.
func (l *InMemoryTokenLedger) Seed(ata Pubkey, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[ata] = amount
}

// BalanceOf returns ata's current balance.
func (l *InMemoryTokenLedger) BalanceOf(ata Pubkey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[ata]
}

// Transfer moves amount from fromAta to toAta.
func (l *InMemoryTokenLedger) Transfer(mint Pubkey, fromAta, toAta Pubkey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[fromAta] < amount {
		return Fail(ErrInsufficientVault, "transfer %d from %s: balance %d", amount, fromAta, l.balances[fromAta])
	}
	l.balances[fromAta] -= amount
	l.balances[toAta] += amount
	logrus.Debugf("vault: transferred %d of mint %s from %s to %s", amount, mint, fromAta, toAta)
	return nil
}

// Mint credits amount into ata.
func (l *InMemoryTokenLedger) Mint(mint Pubkey, ata Pubkey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[ata] += amount
	logrus.Debugf("vault: minted %d of %s into %s", amount, mint, ata)
	return nil
}

// FixedRateSwapExecutor is a deterministic SwapExecutor simulator: it
// debits amount of fromMint out of the vault and credits RateNumerator /
// RateDenominator times amount of toMint into the winner's target ATA via
// the same TokenLedger the rest of the runtime uses, so vault-conservation
// tests see consistent balances across both token types.
type FixedRateSwapExecutor struct {
	Tokens          TokenLedger
	RateNumerator   uint64
	RateDenominator uint64
}

// aggregatorSink stands in for funds leaving program custody into the
// external aggregator route this program never constructs itself (§1
// "Deliberately out of scope").
var aggregatorSink = ZeroPubkey

// Swap implements SwapExecutor.
func (s *FixedRateSwapExecutor) Swap(fromMint, toMint, vault, winnerTargetAta Pubkey, amount uint64) (uint64, error) {
	if err := s.Tokens.Transfer(fromMint, vault, aggregatorSink, amount); err != nil {
		return 0, err
	}
	credited := amount * s.RateNumerator / s.RateDenominator
	if err := s.Tokens.Mint(toMint, winnerTargetAta, credited); err != nil {
		return 0, err
	}
	logrus.Debugf("swap: %d of %s -> %d of %s into %s", amount, fromMint, credited, toMint, winnerTargetAta)
	return credited, nil
}
