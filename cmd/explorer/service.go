package main

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roll2roll/roll2roll/core"
)

// decodedRoundCacheSize bounds the explorer's decoded-account cache. This
// process never drives more than a handful of rounds at once in practice,
// so a small fixed cache avoids unbounded growth across a long uptime.
const decodedRoundCacheSize = 256

type cachedRound struct {
	rawHash [32]byte
	round   *core.Round
}

// explorerService wraps a *core.Runtime with the read-only queries the
// explorer's HTTP handlers need. Decoded Round accounts are cached by id,
// each entry tagged with a hash of the account's raw bytes so a snapshot
// reload that actually changed a round transparently busts its entry
// instead of serving stale decoded state.
type explorerService struct {
	rt         *core.Runtime
	roundCache *lru.Cache[uint64, cachedRound]
}

func newExplorerService(rt *core.Runtime) *explorerService {
	cache, err := lru.New[uint64, cachedRound](decodedRoundCacheSize)
	if err != nil {
		panic(err)
	}
	return &explorerService{rt: rt, roundCache: cache}
}

func (s *explorerService) config() (*core.Config, error) {
	return s.rt.LoadConfig()
}

func (s *explorerService) degenConfig() (*core.DegenConfig, error) {
	return s.rt.LoadDegenConfig()
}

func (s *explorerService) round(roundID uint64) (*core.Round, error) {
	raw := s.rt.Store.Get(s.rt.RoundPDA(roundID))
	if raw == nil {
		return s.rt.LoadRound(roundID)
	}
	hash := sha256.Sum256(raw)
	if entry, ok := s.roundCache.Get(roundID); ok && entry.rawHash == hash {
		return entry.round, nil
	}
	rd, err := s.rt.LoadRound(roundID)
	if err != nil {
		return nil, err
	}
	s.roundCache.Add(roundID, cachedRound{rawHash: hash, round: rd})
	return rd, nil
}

func (s *explorerService) participant(roundID uint64, user core.Pubkey) (*core.Participant, error) {
	rd, err := s.rt.LoadRound(roundID)
	if err != nil {
		return nil, err
	}
	return s.rt.LoadParticipant(s.rt.RoundPDA(rd.RoundID), user)
}

func (s *explorerService) degenClaim(roundID uint64, winner core.Pubkey) (*core.DegenClaim, error) {
	return s.rt.LoadDegenClaim(roundID, winner)
}

func (s *explorerService) roundSummary(rd *core.Round) map[string]interface{} {
	return map[string]interface{}{
		"round_id":           rd.RoundID,
		"status":             rd.Status.String(),
		"start_ts":           rd.StartTs,
		"end_ts":             rd.EndTs,
		"total_usdc":         rd.TotalUsdc,
		"total_tickets":      rd.TotalTickets,
		"participants_count": rd.ParticipantsCount,
		"winner":             fmt.Sprintf("%s", rd.Winner),
		"winning_ticket":     rd.WinningTicket,
		"vault_ata":          fmt.Sprintf("%s", rd.VaultAta),
		"degen_mode":         rd.DegenMode,
	}
}
