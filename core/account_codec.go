package core

import (
	"encoding/binary"
	"fmt"
)

// Every persisted account begins with an 8-byte discriminator (§4.1).
// Field order and widths below follow §3 exactly; little-endian
// throughout via encoding/binary.
//
// Two of §3's layouts grow beyond the literal byte counts spec.md gives,
// because this port resolves two of §9's Open Questions by adding fields
// spec.md left unplaced (see SPEC_FULL.md §G.4): Config gains a 32-byte
// vrf_authority, and DegenConfig gains an inline approved-mint list. Both
// additions eat into what would otherwise be reserved padding; the
// resulting total sizes are documented per type below and in DESIGN.md.

// Config is the program's single admin/parameter account (seed "cfg").
// ConfigSize (194 bytes: discriminator + fields + vrf_authority + 24 bytes
// reserved padding) exceeds spec.md's literal 162-byte figure because of
// the vrf_authority field this port's §G.4 resolution adds; see
// configEncodedSize and DESIGN.md.
type Config struct {
	Admin             Pubkey
	UsdcMint          Pubkey
	TreasuryUsdcAta   Pubkey
	FeeBps            uint16
	TicketUnit        uint64
	RoundDurationSec  uint32
	MinParticipants   uint16
	MinTotalTickets   uint64
	Paused            bool
	Bump              uint8
	MaxDepositPerUser uint64
	VrfAuthority      Pubkey // §G.4 resolution: authority pubkey, not program identity
	reservedPad       [24]byte
}

// ConfigSize is the total encoded size of a Config account.
const ConfigSize = DiscriminatorSize + 32*4 + 2 + 8 + 4 + 2 + 8 + 1 + 1 + 8 + 24

// Encode serialises c to its bit-exact wire layout, discriminator first.
func (c *Config) Encode() []byte {
	buf := make([]byte, 0, configEncodedSize())
	buf = append(buf, discConfig[:]...)
	buf = append(buf, c.Admin[:]...)
	buf = append(buf, c.UsdcMint[:]...)
	buf = append(buf, c.TreasuryUsdcAta[:]...)
	buf = appendU16(buf, c.FeeBps)
	buf = appendU64(buf, c.TicketUnit)
	buf = appendU32(buf, c.RoundDurationSec)
	buf = appendU16(buf, c.MinParticipants)
	buf = appendU64(buf, c.MinTotalTickets)
	buf = append(buf, boolByte(c.Paused))
	buf = append(buf, c.Bump)
	buf = appendU64(buf, c.MaxDepositPerUser)
	buf = append(buf, c.VrfAuthority[:]...)
	buf = append(buf, c.reservedPad[:]...)
	return buf
}

func configEncodedSize() int { return ConfigSize }

// DecodeConfig validates the discriminator and decodes b into a Config.
func DecodeConfig(b []byte) (*Config, error) {
	if len(b) != configEncodedSize() {
		return nil, Fail(ErrInvalidDiscriminator, "config: bad length %d", len(b))
	}
	if err := checkDiscriminator(b, discConfig, "Config"); err != nil {
		return nil, err
	}
	r := newReader(b[DiscriminatorSize:])
	c := &Config{}
	r.pubkey(&c.Admin)
	r.pubkey(&c.UsdcMint)
	r.pubkey(&c.TreasuryUsdcAta)
	c.FeeBps = r.u16()
	c.TicketUnit = r.u64()
	c.RoundDurationSec = r.u32()
	c.MinParticipants = r.u16()
	c.MinTotalTickets = r.u64()
	c.Paused = r.boolean()
	c.Bump = r.u8()
	c.MaxDepositPerUser = r.u64()
	r.pubkey(&c.VrfAuthority)
	r.skip(24)
	return c, r.err
}

// DegenConfig is the optional degen-mode parameter account (seed
// "degen_cfg"). ApprovedMints / ApprovedMintCount resolve §9's open
// question on where the approved mint list lives (§G.4).
type DegenConfig struct {
	Executor           Pubkey
	FallbackTimeoutSec uint32
	Bump               uint8
	ApprovedMintCount  uint8
	ApprovedMints      [MaxApprovedMints]Pubkey
}

// DegenConfigSize is the total encoded size of a DegenConfig account. It
// exceeds spec.md's literal 72-byte figure because that figure assumed
// the approved-mint list (§9 open question #3) lived elsewhere; this port
// resolves that question by embedding the list here.
const DegenConfigSize = DiscriminatorSize + 32 + 4 + 1 + 1 + MaxApprovedMints*32

func degenConfigEncodedSize() int { return DegenConfigSize }

// Encode serialises dc to its wire layout.
func (dc *DegenConfig) Encode() []byte {
	buf := make([]byte, 0, degenConfigEncodedSize())
	buf = append(buf, discDegenConfig[:]...)
	buf = append(buf, dc.Executor[:]...)
	buf = appendU32(buf, dc.FallbackTimeoutSec)
	buf = append(buf, dc.Bump, dc.ApprovedMintCount)
	for _, m := range dc.ApprovedMints {
		buf = append(buf, m[:]...)
	}
	return buf
}

// DecodeDegenConfig validates the discriminator and decodes b.
func DecodeDegenConfig(b []byte) (*DegenConfig, error) {
	if len(b) != degenConfigEncodedSize() {
		return nil, Fail(ErrInvalidDiscriminator, "degen_config: bad length %d", len(b))
	}
	if err := checkDiscriminator(b, discDegenConfig, "DegenConfig"); err != nil {
		return nil, err
	}
	r := newReader(b[DiscriminatorSize:])
	dc := &DegenConfig{}
	r.pubkey(&dc.Executor)
	dc.FallbackTimeoutSec = r.u32()
	dc.Bump = r.u8()
	dc.ApprovedMintCount = r.u8()
	for i := range dc.ApprovedMints {
		r.pubkey(&dc.ApprovedMints[i])
	}
	return dc, r.err
}

// Round is the per-round state account (seed "round" ‖ u64_le(id)).
// RoundSize below matches spec.md §3's literal 8,248-byte account size
// exactly once discriminator + fields + a 30-byte reserved trailer are
// accounted for.
type Round struct {
	RoundID           uint64
	Status            RoundStatus
	Bump              uint8
	StartTs           int64
	EndTs             int64
	FirstDepositTs    int64
	VaultAta          Pubkey
	TotalUsdc         uint64
	TotalTickets      uint64
	ParticipantsCount uint16
	WinningTicket     uint64
	Winner            Pubkey
	RandomnessVal     Randomness
	Roster            [MaxParticipants]Pubkey
	Fenwick           Fenwick
	VrfPayer          Pubkey
	VrfReimbursed     bool
	DegenMode         DegenMode
}

// RoundSize is the bit-exact total account size from §3.
const RoundSize = 8248

// Encode serialises rd to its wire layout, padded to RoundSize.
func (rd *Round) Encode() []byte {
	buf := make([]byte, 0, RoundSize)
	buf = append(buf, discRound[:]...)
	buf = appendU64(buf, rd.RoundID)
	buf = append(buf, byte(rd.Status), rd.Bump)
	buf = append(buf, make([]byte, 6)...)
	buf = appendI64(buf, rd.StartTs)
	buf = appendI64(buf, rd.EndTs)
	buf = appendI64(buf, rd.FirstDepositTs)
	buf = append(buf, rd.VaultAta[:]...)
	buf = appendU64(buf, rd.TotalUsdc)
	buf = appendU64(buf, rd.TotalTickets)
	buf = appendU16(buf, rd.ParticipantsCount)
	buf = append(buf, make([]byte, 6)...)
	buf = appendU64(buf, rd.WinningTicket)
	buf = append(buf, rd.Winner[:]...)
	buf = append(buf, rd.RandomnessVal[:]...)
	for _, p := range rd.Roster {
		buf = append(buf, p[:]...)
	}
	for _, v := range rd.Fenwick.tree {
		buf = appendU64(buf, v)
	}
	buf = append(buf, rd.VrfPayer[:]...)
	buf = append(buf, boolByte(rd.VrfReimbursed), byte(rd.DegenMode))
	if pad := RoundSize - len(buf); pad > 0 {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}

// DecodeRound validates the discriminator and decodes b into a Round.
func DecodeRound(b []byte) (*Round, error) {
	if len(b) != RoundSize {
		return nil, Fail(ErrInvalidDiscriminator, "round: bad length %d, want %d", len(b), RoundSize)
	}
	if err := checkDiscriminator(b, discRound, "Round"); err != nil {
		return nil, err
	}
	r := newReader(b[DiscriminatorSize:])
	rd := &Round{}
	rd.RoundID = r.u64()
	rd.Status = RoundStatus(r.u8())
	rd.Bump = r.u8()
	r.skip(6)
	rd.StartTs = r.i64()
	rd.EndTs = r.i64()
	rd.FirstDepositTs = r.i64()
	r.pubkey(&rd.VaultAta)
	rd.TotalUsdc = r.u64()
	rd.TotalTickets = r.u64()
	rd.ParticipantsCount = r.u16()
	r.skip(6)
	rd.WinningTicket = r.u64()
	r.pubkey(&rd.Winner)
	r.fixed(rd.RandomnessVal[:])
	for i := range rd.Roster {
		r.pubkey(&rd.Roster[i])
	}
	for i := range rd.Fenwick.tree {
		rd.Fenwick.tree[i] = r.u64()
	}
	r.pubkey(&rd.VrfPayer)
	rd.VrfReimbursed = r.boolean()
	rd.DegenMode = DegenMode(r.u8())
	return rd, r.err
}

// Participant records one user's deposit state within a Round (seed
// "p" ‖ round_pda ‖ user).
type Participant struct {
	RoundID       uint64
	User          Pubkey
	Tickets       uint64
	UsdcDeposited uint64
	FenwickIndex  uint16
	Bump          uint8
}

// ParticipantSize is the total encoded size of a Participant account.
const ParticipantSize = DiscriminatorSize + 8 + 32 + 8 + 8 + 2 + 1

func participantEncodedSize() int { return ParticipantSize }

// Encode serialises p to its wire layout.
func (p *Participant) Encode() []byte {
	buf := make([]byte, 0, participantEncodedSize())
	buf = append(buf, discParticipant[:]...)
	buf = appendU64(buf, p.RoundID)
	buf = append(buf, p.User[:]...)
	buf = appendU64(buf, p.Tickets)
	buf = appendU64(buf, p.UsdcDeposited)
	buf = appendU16(buf, p.FenwickIndex)
	buf = append(buf, p.Bump)
	return buf
}

// DecodeParticipant validates the discriminator and decodes b.
func DecodeParticipant(b []byte) (*Participant, error) {
	if len(b) != participantEncodedSize() {
		return nil, Fail(ErrInvalidDiscriminator, "participant: bad length %d", len(b))
	}
	if err := checkDiscriminator(b, discParticipant, "Participant"); err != nil {
		return nil, err
	}
	r := newReader(b[DiscriminatorSize:])
	p := &Participant{}
	p.RoundID = r.u64()
	r.pubkey(&p.User)
	p.Tickets = r.u64()
	p.UsdcDeposited = r.u64()
	p.FenwickIndex = r.u16()
	p.Bump = r.u8()
	return p, r.err
}

// DegenClaim tracks a single winner's degen-mode payout attempt (seed
// "degen_claim" ‖ u64_le(id) ‖ winner).
type DegenClaim struct {
	Round           Pubkey
	Winner          Pubkey
	RoundID         uint64
	Status          DegenClaimStatus
	FallbackReason  uint8
	ClaimedAt       int64
	FallbackAfterTs int64
	PayoutRaw       uint64
	RandomnessVal   Randomness
	TargetMint      Pubkey
	Executor        Pubkey
}

// DegenClaimSize is the total encoded size of a DegenClaim account.
const DegenClaimSize = DiscriminatorSize + 32 + 32 + 8 + 1 + 1 + 8 + 8 + 8 + 32 + 32 + 32

func degenClaimEncodedSize() int { return DegenClaimSize }

// Encode serialises dc to its wire layout.
func (dc *DegenClaim) Encode() []byte {
	buf := make([]byte, 0, degenClaimEncodedSize())
	buf = append(buf, discDegenClaim[:]...)
	buf = append(buf, dc.Round[:]...)
	buf = append(buf, dc.Winner[:]...)
	buf = appendU64(buf, dc.RoundID)
	buf = append(buf, byte(dc.Status), dc.FallbackReason)
	buf = appendI64(buf, dc.ClaimedAt)
	buf = appendI64(buf, dc.FallbackAfterTs)
	buf = appendU64(buf, dc.PayoutRaw)
	buf = append(buf, dc.RandomnessVal[:]...)
	buf = append(buf, dc.TargetMint[:]...)
	buf = append(buf, dc.Executor[:]...)
	return buf
}

// DecodeDegenClaim validates the discriminator and decodes b.
func DecodeDegenClaim(b []byte) (*DegenClaim, error) {
	if len(b) != degenClaimEncodedSize() {
		return nil, Fail(ErrInvalidDiscriminator, "degen_claim: bad length %d", len(b))
	}
	if err := checkDiscriminator(b, discDegenClaim, "DegenClaim"); err != nil {
		return nil, err
	}
	r := newReader(b[DiscriminatorSize:])
	dc := &DegenClaim{}
	r.pubkey(&dc.Round)
	r.pubkey(&dc.Winner)
	dc.RoundID = r.u64()
	dc.Status = DegenClaimStatus(r.u8())
	dc.FallbackReason = r.u8()
	dc.ClaimedAt = r.i64()
	dc.FallbackAfterTs = r.i64()
	dc.PayoutRaw = r.u64()
	r.fixed(dc.RandomnessVal[:])
	r.pubkey(&dc.TargetMint)
	r.pubkey(&dc.Executor)
	return dc, r.err
}

// --- shared encode/decode helpers -----------------------------------------

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendI64(buf []byte, v int64) []byte {
	return appendU64(buf, uint64(v))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func checkDiscriminator(b []byte, want Discriminator, typeName string) error {
	if len(b) < DiscriminatorSize {
		return Fail(ErrInvalidDiscriminator, "%s: account too short", typeName)
	}
	var got Discriminator
	copy(got[:], b[:DiscriminatorSize])
	if got != want {
		return Fail(ErrInvalidDiscriminator, "%s: discriminator mismatch", typeName)
	}
	return nil
}

// byteReader sequentially decodes a little-endian encoded account body,
// accumulating the first error encountered (mirrors the "sticky error"
// idiom used by bufio.Scanner/encoding readers throughout the standard
// library) so call sites stay linear instead of checking err after every
// field.
type byteReader struct {
	b   []byte
	off int
	err error
}

func newReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.b) {
		r.err = fmt.Errorf("codec: unexpected end of account data")
		return false
	}
	return true
}

func (r *byteReader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.off]
	r.off++
	return v
}

func (r *byteReader) boolean() bool { return r.u8() != 0 }

func (r *byteReader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v
}

func (r *byteReader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v
}

func (r *byteReader) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.b[r.off:])
	r.off += 8
	return v
}

func (r *byteReader) i64() int64 { return int64(r.u64()) }

func (r *byteReader) fixed(dst []byte) {
	if !r.need(len(dst)) {
		return
	}
	copy(dst, r.b[r.off:r.off+len(dst)])
	r.off += len(dst)
}

func (r *byteReader) pubkey(dst *Pubkey) { r.fixed(dst[:]) }

func (r *byteReader) skip(n int) {
	if !r.need(n) {
		return
	}
	r.off += n
}
