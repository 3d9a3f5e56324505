package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func okNode(t *testing.T, result string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"id":0,"jsonrpc":"2.0","result":` + result + `}`))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func failingNode(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

// TestFailoverToHealthyNode: node A answers HTTP 500, node B answers; the
// call succeeds via B and B becomes sticky with a clean failure counter.
func TestFailoverToHealthyNode(t *testing.T) {
	bad, badHits := failingNode(t)
	good, _ := okNode(t, `{"pong":true}`)

	transport, err := NewFailoverTransport(
		[]string{bad.URL, good.URL}, time.Second, 1, FixedBackoff{})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	result, err := transport.Call(context.Background(), "condenser_api", "get_config", []any{})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	var decoded struct {
		Pong bool `json:"pong"`
	}
	if err := json.Unmarshal(result, &decoded); err != nil || !decoded.Pong {
		t.Fatalf("bad result %s", result)
	}

	if badHits.Load() != 1 {
		t.Fatalf("bad node hit %d times", badHits.Load())
	}
	if transport.CurrentIndex() != 1 {
		t.Fatalf("sticky index=%d want 1", transport.CurrentIndex())
	}
	if transport.FailureCount(1) != 0 {
		t.Fatalf("winning node must have a zero failure counter")
	}
	if transport.FailureCount(0) != 1 {
		t.Fatalf("failed node counter=%d want 1", transport.FailureCount(0))
	}
}

// TestRPCErrorDoesNotFailover: a JSON-RPC error from node 0 is final; node 1
// is never contacted.
func TestRPCErrorDoesNotFailover(t *testing.T) {
	var rpcErrorHits atomic.Int64
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rpcErrorHits.Add(1)
		w.Write([]byte(`{"id":0,"jsonrpc":"2.0","error":{"code":10,"message":"bad request"}}`))
	}))
	defer first.Close()
	second, secondHits := okNode(t, `{"pong":true}`)

	transport, err := NewFailoverTransport(
		[]string{first.URL, second.URL}, time.Second, 1, FixedBackoff{})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	_, err = transport.Call(context.Background(), "condenser_api", "get_config", []any{})
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected RPCError, got %v", err)
	}
	if rpcErr.Code != 10 || rpcErr.Message != "bad request" {
		t.Fatalf("unexpected rpc error %+v", rpcErr)
	}
	if secondHits.Load() != 0 {
		t.Fatalf("second node was contacted %d times", secondHits.Load())
	}
	if transport.CurrentIndex() != 0 {
		t.Fatalf("rpc error must not advance the sticky index")
	}
}

func TestAllNodesFailed(t *testing.T) {
	first, _ := failingNode(t)
	second, _ := failingNode(t)

	transport, err := NewFailoverTransport(
		[]string{first.URL, second.URL}, time.Second, 1, FixedBackoff{})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	_, err = transport.Call(context.Background(), "condenser_api", "get_config", []any{})
	if !errors.Is(err, ErrAllNodesFailed) {
		t.Fatalf("expected ErrAllNodesFailed, got %v", err)
	}
}

// TestSuccessfulNodeBecomesStickyBelowThreshold: with threshold 3, one failure
// on node 0 stays below the threshold, and the success on node 1 still moves
// the sticky anchor to node 1.
func TestSuccessfulNodeBecomesStickyBelowThreshold(t *testing.T) {
	first, _ := failingNode(t)
	second, _ := okNode(t, `{}`)

	transport, err := NewFailoverTransport(
		[]string{first.URL, second.URL}, time.Second, 3, FixedBackoff{})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	if _, err := transport.Call(context.Background(), "condenser_api", "get_config", []any{}); err != nil {
		t.Fatalf("call: %v", err)
	}
	// Success on node 1 makes it sticky regardless of thresholds.
	if transport.CurrentIndex() != 1 {
		t.Fatalf("sticky index=%d want 1", transport.CurrentIndex())
	}
	if transport.FailureCount(0) != 1 {
		t.Fatalf("first node failures=%d want 1", transport.FailureCount(0))
	}
}

func TestSuccessResetsFailureCounter(t *testing.T) {
	var mode atomic.Int64
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mode.Load() == 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":0,"jsonrpc":"2.0","result":{}}`))
	}))
	defer flaky.Close()

	transport, err := NewFailoverTransport([]string{flaky.URL}, time.Second, 3, FixedBackoff{})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	if _, err := transport.Call(context.Background(), "condenser_api", "get_config", []any{}); err == nil {
		t.Fatalf("expected failure while node is down")
	}
	if transport.FailureCount(0) != 1 {
		t.Fatalf("failures=%d want 1", transport.FailureCount(0))
	}

	mode.Store(1)
	if _, err := transport.Call(context.Background(), "condenser_api", "get_config", []any{}); err != nil {
		t.Fatalf("call after recovery: %v", err)
	}
	if transport.FailureCount(0) != 0 {
		t.Fatalf("success must reset the failure counter")
	}
}

func TestCancelledContextStopsRetrying(t *testing.T) {
	first, _ := failingNode(t)
	second, _ := failingNode(t)

	transport, err := NewFailoverTransport(
		[]string{first.URL, second.URL}, time.Second, 1, FixedBackoff{Wait: 5 * time.Second})
	if err != nil {
		t.Fatalf("transport: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = transport.Call(ctx, "condenser_api", "get_config", []any{})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancellation did not interrupt backoff sleep (took %v)", elapsed)
	}
}
