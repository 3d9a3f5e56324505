package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
)

// rpcRequest is the fixed JSON-RPC envelope every node call posts. The id is
// pinned to 0 by the wire contract.
type rpcRequest struct {
	ID      int    `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  [3]any `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// nodeTransport posts JSON-RPC requests to a single node. The HTTP client is
// shared across the ring so every node observes the same timeout.
type nodeTransport struct {
	url    string
	client *http.Client
}

func newNodeTransport(url string, client *http.Client) *nodeTransport {
	return &nodeTransport{url: url, client: client}
}

func (t *nodeTransport) nodeURL() string { return t.url }

// call performs one request. It returns *RPCError when the node answered
// with an error payload, ErrTimeout when the deadline elapsed, and
// *TransportError or *SerializationError for everything else.
func (t *nodeTransport) call(ctx context.Context, api, method string, params any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  [3]any{api, method, params},
	})
	if err != nil {
		return nil, serializationErrorf("invalid request params: %v", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Node: t.url, Reason: err.Error(), Err: err}
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := t.client.Do(request)
	if err != nil {
		if isTimeoutError(err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Node: t.url, Reason: err.Error(), Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		if isTimeoutError(err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Node: t.url, Reason: err.Error(), Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &TransportError{Node: t.url, Reason: "HTTP " + response.Status}
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &TransportError{Node: t.url, Reason: "malformed response body: " + err.Error(), Err: err}
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	if decoded.Result == nil {
		return nil, &SerializationError{Reason: "missing JSON-RPC result field"}
	}
	return decoded.Result, nil
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
