package core

// Hand-maintained in the shape go.uber.org/mock/mockgen generates for
// TokenLedger, VRFQueue and SwapExecutor, used where a test needs to
// assert on the exact sequence of calls a handler makes rather than just
// the resulting balances InMemoryTokenLedger would show.

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

type MockTokenLedger struct {
	ctrl     *gomock.Controller
	recorder *MockTokenLedgerMockRecorder
}

type MockTokenLedgerMockRecorder struct {
	mock *MockTokenLedger
}

func NewMockTokenLedger(ctrl *gomock.Controller) *MockTokenLedger {
	m := &MockTokenLedger{ctrl: ctrl}
	m.recorder = &MockTokenLedgerMockRecorder{m}
	return m
}

func (m *MockTokenLedger) EXPECT() *MockTokenLedgerMockRecorder {
	return m.recorder
}

func (m *MockTokenLedger) Transfer(mint, fromAta, toAta Pubkey, amount uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transfer", mint, fromAta, toAta, amount)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockTokenLedgerMockRecorder) Transfer(mint, fromAta, toAta, amount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transfer", reflect.TypeOf((*MockTokenLedger)(nil).Transfer), mint, fromAta, toAta, amount)
}

func (m *MockTokenLedger) BalanceOf(ata Pubkey) uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BalanceOf", ata)
	bal, _ := ret[0].(uint64)
	return bal
}

func (mr *MockTokenLedgerMockRecorder) BalanceOf(ata interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BalanceOf", reflect.TypeOf((*MockTokenLedger)(nil).BalanceOf), ata)
}

func (m *MockTokenLedger) Mint(mint, ata Pubkey, amount uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mint", mint, ata, amount)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockTokenLedgerMockRecorder) Mint(mint, ata, amount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mint", reflect.TypeOf((*MockTokenLedger)(nil).Mint), mint, ata, amount)
}

type MockVRFQueue struct {
	ctrl     *gomock.Controller
	recorder *MockVRFQueueMockRecorder
}

type MockVRFQueueMockRecorder struct {
	mock *MockVRFQueue
}

func NewMockVRFQueue(ctrl *gomock.Controller) *MockVRFQueue {
	m := &MockVRFQueue{ctrl: ctrl}
	m.recorder = &MockVRFQueueMockRecorder{m}
	return m
}

func (m *MockVRFQueue) EXPECT() *MockVRFQueueMockRecorder {
	return m.recorder
}

func (m *MockVRFQueue) RequestRandomness(seed []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RequestRandomness", seed)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockVRFQueueMockRecorder) RequestRandomness(seed interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequestRandomness", reflect.TypeOf((*MockVRFQueue)(nil).RequestRandomness), seed)
}

type MockSwapExecutor struct {
	ctrl     *gomock.Controller
	recorder *MockSwapExecutorMockRecorder
}

type MockSwapExecutorMockRecorder struct {
	mock *MockSwapExecutor
}

func NewMockSwapExecutor(ctrl *gomock.Controller) *MockSwapExecutor {
	m := &MockSwapExecutor{ctrl: ctrl}
	m.recorder = &MockSwapExecutorMockRecorder{m}
	return m
}

func (m *MockSwapExecutor) EXPECT() *MockSwapExecutorMockRecorder {
	return m.recorder
}

func (m *MockSwapExecutor) Swap(fromMint, toMint, vault, winnerTargetAta Pubkey, amount uint64) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Swap", fromMint, toMint, vault, winnerTargetAta, amount)
	credited, _ := ret[0].(uint64)
	err, _ := ret[1].(error)
	return credited, err
}

func (mr *MockSwapExecutorMockRecorder) Swap(fromMint, toMint, vault, winnerTargetAta, amount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Swap", reflect.TypeOf((*MockSwapExecutor)(nil).Swap), fromMint, toMint, vault, winnerTargetAta, amount)
}
