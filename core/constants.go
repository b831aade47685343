package core

// Protocol-wide constants. These are deliberately Go consts rather than
// Config fields: each one fixes a choice spec.md §9 leaves open, and baking
// it into a mutable config account would let update_config silently change
// accounting assumptions (the Round account's fixed byte layout, worked-fee
// examples, etc.) that must hold for the lifetime of the program.
const (
	// MaxParticipants is the fixed roster capacity per Round (§3, §9 open
	// question #2): the Round account's 8,248-byte layout is sized for
	// exactly this many roster entries plus a 201-slot Fenwick tree.
	MaxParticipants = 200

	// FenwickSize is the number of slots in the Round's Fenwick tree: one
	// sentinel slot plus one per possible participant index.
	FenwickSize = MaxParticipants + 1

	// VRFReimburseRaw is the fixed reimbursement, in raw USDC units, paid
	// to whichever account paid for the VRF request (§9 open question #1).
	// It is a protocol constant, not configurable at init_config time, and
	// is skipped for a round whose total_usdc is smaller than it.
	VRFReimburseRaw uint64 = 200_000

	// FeeBpsDenominator is the basis-point denominator used throughout fee
	// arithmetic (fee_bps ranges 0..=FeeBpsDenominator).
	FeeBpsDenominator uint16 = 10_000

	// MaxApprovedMints bounds DegenConfig's inline approved-mint list.
	MaxApprovedMints = 8

	// CancelGraceSec is the grace period cancel_round waits past end_ts
	// before anyone may permissionlessly cancel an under-subscribed round
	// (§4.3).
	CancelGraceSec int64 = 60
)

// RoundStatus enumerates the Round lifecycle states of §3.
type RoundStatus uint8

const (
	StatusOpen RoundStatus = iota
	StatusLocked
	StatusVrfRequested
	StatusSettled
	StatusCancelled
	StatusClaimed
)

func (s RoundStatus) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusLocked:
		return "Locked"
	case StatusVrfRequested:
		return "VrfRequested"
	case StatusSettled:
		return "Settled"
	case StatusCancelled:
		return "Cancelled"
	case StatusClaimed:
		return "Claimed"
	default:
		return "Unknown"
	}
}

// DegenMode enumerates Round.degen_mode (§3). Finalised and Fallback share
// the wire encoding 4, distinguished at the DegenClaim level by
// fallback_reason, exactly as §3 specifies.
type DegenMode uint8

const (
	DegenModeNone DegenMode = iota
	DegenModeRequested
	DegenModeSelected
	DegenModeExecuting
	DegenModeFinalisedOrFallback
)

// DegenClaimStatus enumerates DegenClaim.status (§3). Claimed and
// FallbackClaimed share the wire encoding 5, distinguished by
// fallback_reason != 0.
type DegenClaimStatus uint8

const (
	DegenClaimPending DegenClaimStatus = iota + 1
	DegenClaimReadyToExecute
	DegenClaimReadyToClaim
	DegenClaimExecuting
	DegenClaimClaimedOrFallback
)
