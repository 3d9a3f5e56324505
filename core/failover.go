package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"
)

// FailoverTransport routes JSON-RPC calls across a ring of nodes with sticky
// selection: the last node that answered keeps receiving traffic until its
// transport-failure counter crosses the threshold, at which point the sticky
// index advances. RPC-level errors are returned to the caller immediately
// and never advance the ring.
//
// The state mutex guards only the (currentIndex, failures) pair; it is never
// held across an HTTP request.
type FailoverTransport struct {
	nodes     []*nodeTransport
	threshold uint32
	backoff   Backoff

	mu           sync.Mutex
	currentIndex int
	failures     []uint32
}

// NewFailoverTransport builds a transport over the given node URLs with one
// shared per-request timeout. The threshold is clamped to at least one.
func NewFailoverTransport(nodes []string, timeout time.Duration, threshold uint32, backoff Backoff) (*FailoverTransport, error) {
	if len(nodes) == 0 {
		return nil, &OtherError{Reason: "at least one node URL is required"}
	}
	if threshold < 1 {
		threshold = 1
	}
	if backoff == nil {
		backoff = DefaultBackoff()
	}

	httpClient := &http.Client{Timeout: timeout}
	transports := make([]*nodeTransport, len(nodes))
	for i, node := range nodes {
		transports[i] = newNodeTransport(node, httpClient)
	}

	return &FailoverTransport{
		nodes:     transports,
		threshold: threshold,
		backoff:   backoff,
		failures:  make([]uint32, len(transports)),
	}, nil
}

// NodeURLs lists the ring in construction order.
func (t *FailoverTransport) NodeURLs() []string {
	urls := make([]string, len(t.nodes))
	for i, node := range t.nodes {
		urls[i] = node.nodeURL()
	}
	return urls
}

// Call posts one JSON-RPC request, walking the ring from the sticky index
// until a node answers. The raw result payload is returned undecoded.
func (t *FailoverTransport) Call(ctx context.Context, api, method string, params any) (json.RawMessage, error) {
	t.mu.Lock()
	start := t.currentIndex
	t.mu.Unlock()

	var lastErr error
	for offset := 0; offset < len(t.nodes); offset++ {
		index := (start + offset) % len(t.nodes)
		node := t.nodes[index]
		rpcRequestsTotal.WithLabelValues(node.nodeURL()).Inc()

		result, err := node.call(ctx, api, method, params)
		if err == nil {
			t.mu.Lock()
			t.currentIndex = index
			t.failures[index] = 0
			t.mu.Unlock()
			return result, nil
		}

		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			// The node is up and rejected this request; not a routing matter.
			return nil, rpcErr
		}

		lastErr = err
		rpcFailuresTotal.WithLabelValues(node.nodeURL()).Inc()

		t.mu.Lock()
		t.failures[index]++
		tries := t.failures[index]
		if tries >= t.threshold {
			t.currentIndex = (index + 1) % len(t.nodes)
			rpcFailoversTotal.Inc()
			coreLog.WithField("node", node.nodeURL()).
				WithField("failures", tries).
				Warn("node crossed failure threshold, advancing sticky index")
		}
		t.mu.Unlock()

		if offset+1 < len(t.nodes) {
			if err := sleepContext(ctx, t.backoff.Delay(tries)); err != nil {
				return nil, err
			}
		}
	}

	if lastErr != nil {
		return nil, &allNodesError{last: lastErr}
	}
	return nil, &OtherError{Reason: "no nodes available"}
}

// FailureCount returns the current failure counter for one node; it exists
// for observability and tests.
func (t *FailoverTransport) FailureCount(index int) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[index]
}

// CurrentIndex returns the sticky node index.
func (t *FailoverTransport) CurrentIndex() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentIndex
}

// allNodesError carries the last transport error while matching
// ErrAllNodesFailed under errors.Is.
type allNodesError struct {
	last error
}

func (e *allNodesError) Error() string {
	return ErrAllNodesFailed.Error() + ": " + e.last.Error()
}

func (e *allNodesError) Is(target error) bool { return target == ErrAllNodesFailed }

func (e *allNodesError) Unwrap() error { return e.last }

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return &TransportError{Reason: "call cancelled", Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}
