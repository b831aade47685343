package core

import (
	"fmt"
	"sync"
)

// InstructionFunc is the concrete handler invoked for one instruction.
// accounts carries the transaction's account list in the fixed order each
// instruction documents (the Solana equivalent of an AccountInfo slice);
// data carries only the instruction's scalar Borsh-encoded arguments, never
// pubkeys, the same split §6's wire table draws between an instruction's
// "accounts" and its "args". instructions.go registers exactly one of
// these per entry in §4's instruction set from a single init().
type InstructionFunc func(rt *Runtime, accounts []Pubkey, data []byte) error

var (
	instructionTable = make(map[Discriminator]InstructionFunc, 32)
	instructionNames = make(map[Discriminator]string, 32)
	instrMu          sync.RWMutex
)

// RegisterInstruction binds an instruction name's discriminator to its
// handler. It panics on collisions, which can only mean two instructions
// hashed to the same discriminator or the same instruction registered
// twice — both are programmer errors, never a runtime condition.
func RegisterInstruction(name string, fn InstructionFunc) {
	instrMu.Lock()
	defer instrMu.Unlock()
	d := InstructionDiscriminator(name)
	if _, exists := instructionTable[d]; exists {
		panic(fmt.Sprintf("instruction collision: %q already registered", name))
	}
	instructionTable[d] = fn
	instructionNames[d] = name
}

// Dispatch routes a raw instruction blob (8-byte discriminator followed by
// Borsh-shaped little-endian instruction data) plus its account list to the
// registered handler.
func Dispatch(rt *Runtime, accounts []Pubkey, blob []byte) error {
	if len(blob) < DiscriminatorSize {
		return Fail(ErrInvalidDiscriminator, "instruction blob shorter than discriminator")
	}
	var d Discriminator
	copy(d[:], blob[:DiscriminatorSize])

	instrMu.RLock()
	fn, ok := instructionTable[d]
	instrMu.RUnlock()
	if !ok {
		return Fail(ErrInvalidDiscriminator, "unknown instruction discriminator %x", d)
	}
	return fn(rt, accounts, blob[DiscriminatorSize:])
}

// InstructionNameOf reports the registered instruction name for d, if any.
func InstructionNameOf(d Discriminator) (string, bool) {
	instrMu.RLock()
	defer instrMu.RUnlock()
	n, ok := instructionNames[d]
	return n, ok
}
