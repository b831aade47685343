package core

import (
	"github.com/sirupsen/logrus"
	wasmer "github.com/wasmerio/wasmer-go/wasmer"
)

// MintSelector resolves a degen round's target mint from VRF randomness
// against DegenConfig's approved-mint list (§9 open question #3, resolved
// in §G.4). ok=false means no approved mint is usable, which the caller
// must treat as an automatic fallback (fallback_reason = 1).
type MintSelector interface {
	SelectMint(dc *DegenConfig, randomness Randomness) (mint Pubkey, ok bool)
}

// DefaultMintSelector is the protocol's built-in policy: deterministic
// modulo selection over the approved-mint list, using the ninth
// randomness byte so it never collides with winner selection's first
// eight bytes (§4.6 step 2).
type DefaultMintSelector struct{}

// SelectMint implements MintSelector.
func (DefaultMintSelector) SelectMint(dc *DegenConfig, randomness Randomness) (Pubkey, bool) {
	if dc.ApprovedMintCount == 0 {
		return ZeroPubkey, false
	}
	idx := randomness.ByteAt(8) % dc.ApprovedMintCount
	return dc.ApprovedMints[idx], true
}

// WasmMintSelector delegates mint selection to an operator-supplied wasm
// module exporting `select_mint(count: i32, seed_byte: i32) -> i32`,
// letting an operator swap in a weighted or denylist-aware policy without
// a program upgrade. It falls back to DefaultMintSelector if the wasm call
// fails or returns an out-of-range index, so a broken policy module can
// never brick degen mode. A module that cannot be loaded makes
// NewWasmMintSelector fail instead.
type WasmMintSelector struct {
	instance *wasmer.Instance
	selectFn wasmer.NativeFunction
	fallback MintSelector
}

// NewWasmMintSelector compiles and instantiates wasmBytes, exposing no
// imports (the policy is pure: it only maps (count, seed_byte) -> index).
func NewWasmMintSelector(wasmBytes []byte) (*WasmMintSelector, error) {
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	module, err := wasmer.NewModule(store, wasmBytes)
	if err != nil {
		return nil, Fail(ErrDegenDisabled, "mint selector module: %v", err)
	}
	importObject := wasmer.NewImportObject()
	instance, err := wasmer.NewInstance(module, importObject)
	if err != nil {
		return nil, Fail(ErrDegenDisabled, "mint selector instantiate: %v", err)
	}
	fn, err := instance.Exports.GetFunction("select_mint")
	if err != nil {
		return nil, Fail(ErrDegenDisabled, "mint selector missing select_mint export: %v", err)
	}
	return &WasmMintSelector{instance: instance, selectFn: fn, fallback: DefaultMintSelector{}}, nil
}

// SelectMint implements MintSelector, calling into the wasm policy and
// falling back to the default modulo policy on any error.
func (w *WasmMintSelector) SelectMint(dc *DegenConfig, randomness Randomness) (Pubkey, bool) {
	if dc.ApprovedMintCount == 0 {
		return ZeroPubkey, false
	}
	result, err := w.selectFn(int32(dc.ApprovedMintCount), int32(randomness.ByteAt(8)))
	if err != nil {
		logrus.Warnf("mint selector: wasm call failed, falling back to default policy: %v", err)
		return w.fallback.SelectMint(dc, randomness)
	}
	idx, ok := result.(int32)
	if !ok || idx < 0 || idx >= int32(dc.ApprovedMintCount) {
		logrus.Warnf("mint selector: wasm policy returned out-of-range index %v, falling back", result)
		return w.fallback.SelectMint(dc, randomness)
	}
	return dc.ApprovedMints[idx], true
}
