package main

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// RoundWatcher yields round ids crankd should inspect on its next tick. The
// default PollingRoundWatcher just replays a fixed list; GrpcRoundWatcher is
// the seam for a push-based "new round" notifier service an operator can
// stand up separately: a minimal stub interface over a grpc.ClientConn,
// with the real .proto compiled separately from this reference driver.
type RoundWatcher interface {
	RoundIDs(ctx context.Context) ([]uint64, error)
}

// PollingRoundWatcher always returns the same fixed set of round ids,
// configured once at startup. It is the default: a real deployment either
// knows its round ids out of band or layers a GrpcRoundWatcher on top.
type PollingRoundWatcher struct {
	RoundIDs_ []uint64
}

// RoundIDs implements RoundWatcher.
func (w *PollingRoundWatcher) RoundIDs(ctx context.Context) ([]uint64, error) {
	return w.RoundIDs_, nil
}

// GrpcRoundWatcher dials an operator-supplied round-notification service.
// Its RPC surface (a streaming NewRounds call) is compiled separately from
// this binary; here it is only a connection handle plus the interface this
// driver depends on, not a working remote call.
type GrpcRoundWatcher struct {
	conn *grpc.ClientConn
}

// NewGrpcRoundWatcher dials endpoint with insecure transport credentials,
// suitable for a sidecar notifier running on localhost or inside the same
// cluster as crankd.
func NewGrpcRoundWatcher(endpoint string) (*GrpcRoundWatcher, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GrpcRoundWatcher{conn: conn}, nil
}

// RoundIDs implements RoundWatcher. The streaming RPC this would front is
// compiled separately from this reference driver; until that proto lands,
// it reports no rounds rather than guessing at a wire format.
func (w *GrpcRoundWatcher) RoundIDs(ctx context.Context) ([]uint64, error) {
	return nil, nil
}

// Close releases the underlying connection.
func (w *GrpcRoundWatcher) Close() error { return w.conn.Close() }
