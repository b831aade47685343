package core

import "github.com/sirupsen/logrus"

// VRFQueue is the CPI-shaped seam onto an external verifiable-randomness
// queue program (§4.5): request_vrf and request_degen_vrf each submit one
// request here; the corresponding *_callback instruction is a separate,
// later transaction the queue program (or its configured authority)
// submits back into this program, exactly as §4.7 describes ("a separate
// user-signed transaction with explicit status preconditions").
type VRFQueue interface {
	// RequestRandomness submits a randomness request tagged by seed,
	// conceptually signed by the program's identity PDA.
	RequestRandomness(seed []byte) error
}

// InMemoryVRFQueue is a no-op simulator: it only logs requests. Tests and
// the reference crank drive vrf_callback / degen_vrf_callback directly
// rather than waiting on an asynchronous oracle.
type InMemoryVRFQueue struct{}

// RequestRandomness logs the request and always succeeds.
func (InMemoryVRFQueue) RequestRandomness(seed []byte) error {
	logrus.Debugf("vrf: randomness requested for seed %x", seed)
	return nil
}

// IdentityPDA derives the program's identity PDA (seed "identity"), the
// signer used for outgoing VRF requests (§4.5).
func (rt *Runtime) IdentityPDA() Pubkey {
	return derivePDA(rt.Program, []byte("identity"))
}

// RequestVRF implements request_vrf (§4.3): Locked -> VrfRequested,
// recording payer as vrf_payer. Idempotent if already VrfRequested.
func RequestVRF(rt *Runtime, payer Pubkey, roundID uint64) error {
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	switch rd.Status {
	case StatusVrfRequested:
		return nil
	case StatusLocked:
	default:
		return Fail(ErrWrongStatus, "round %d is not locked", roundID)
	}
	seed := rt.RoundPDA(roundID)
	if err := rt.VRF.RequestRandomness(seed[:]); err != nil {
		return err
	}
	rd.Status = StatusVrfRequested
	rd.VrfPayer = payer
	rt.SaveRound(rd)
	return nil
}

// VRFCallback implements vrf_callback (§4.5): must be signed by
// config.vrf_authority. Transitions VrfRequested -> Settled and selects
// the winner via the Fenwick tree.
func VRFCallback(rt *Runtime, authority Pubkey, roundID uint64, randomness Randomness) error {
	cfg, err := rt.LoadConfig()
	if err != nil {
		return err
	}
	if authority != cfg.VrfAuthority {
		return Fail(ErrInvalidVrfAuthority, "caller is not the configured vrf authority")
	}
	rd, err := rt.LoadRound(roundID)
	if err != nil {
		return err
	}
	if rd.Status == StatusSettled {
		if rd.RandomnessVal == randomness {
			return nil // idempotent no-op per §4.7: replay with matching randomness
		}
		return Fail(ErrWrongStatus, "round %d is already settled with different randomness", roundID)
	}
	if rd.Status != StatusVrfRequested {
		return Fail(ErrVrfNotRequested, "round %d has not requested vrf", roundID)
	}
	if rd.TotalTickets == 0 {
		return Fail(ErrRandomnessOutOfRange, "round %d has zero total_tickets", roundID)
	}

	t := randomness.Uint64LE() % rd.TotalTickets
	winnerIdx := rd.Fenwick.FindByTicket(t)

	rd.RandomnessVal = randomness
	rd.WinningTicket = t
	rd.Winner = rd.Roster[winnerIdx]
	rd.Status = StatusSettled
	rt.SaveRound(rd)
	if rt.Metrics != nil {
		rt.Metrics.ObserveRoundSettled()
	}
	return nil
}
