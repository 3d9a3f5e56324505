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

// decodeCall extracts (api, method, params) from a posted JSON-RPC body.
func decodeCall(t *testing.T, r *http.Request) (string, string, json.RawMessage) {
	t.Helper()
	var request struct {
		Params [3]json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	var api, method string
	if err := json.Unmarshal(request.Params[0], &api); err != nil {
		t.Fatalf("decode api: %v", err)
	}
	if err := json.Unmarshal(request.Params[1], &method); err != nil {
		t.Fatalf("decode method: %v", err)
	}
	return api, method, request.Params[2]
}

func writeResult(w http.ResponseWriter, result string) {
	w.Write([]byte(`{"id":0,"jsonrpc":"2.0","result":` + result + `}`))
}

func writeRPCError(w http.ResponseWriter, code int, message string) {
	payload, _ := json.Marshal(map[string]any{
		"id": 0, "jsonrpc": "2.0",
		"error": map[string]any{"code": code, "message": message},
	})
	w.Write(payload)
}

const testDGPResult = `{
	"head_block_number": 42,
	"head_block_id": "0000002a11223344556677889900aabbccddeeff00112233445566778899aabb",
	"time": "2024-01-01T00:00:00",
	"last_irreversible_block_num": 41
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	options := DefaultOptions()
	options.Timeout = 2 * time.Second
	options.FailoverThreshold = 1
	options.Backoff = FixedBackoff{}
	return NewClient([]string{server.URL}, options)
}

func TestCreateTransactionDerivesTaPoSFields(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, method, _ := decodeCall(t, r)
		if method != "get_dynamic_global_properties" {
			t.Fatalf("unexpected method %s", method)
		}
		writeResult(w, testDGPResult)
	})

	tx, err := client.Broadcast.CreateTransaction(context.Background(), []Operation{
		&VoteOperation{Voter: "foo", Author: "bar", Permlink: "baz", Weight: 1},
	}, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if tx.RefBlockNum != 42 {
		t.Fatalf("ref_block_num=%d want 42", tx.RefBlockNum)
	}
	// Bytes 4..8 of the head block id, little-endian.
	if tx.RefBlockPrefix != 0x44332211 {
		t.Fatalf("ref_block_prefix=%x want 44332211", tx.RefBlockPrefix)
	}
	if tx.Expiration != "2024-01-01T00:01:00" {
		t.Fatalf("expiration=%s", tx.Expiration)
	}
}

func TestSendOperationsBuildsSignsAndBroadcasts(t *testing.T) {
	var broadcasted atomic.Int64
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, method, params := decodeCall(t, r)
		switch method {
		case "get_dynamic_global_properties":
			writeResult(w, testDGPResult)
		case "broadcast_transaction_synchronous":
			broadcasted.Add(1)
			var args []SignedTransaction
			if err := json.Unmarshal(params, &args); err != nil {
				t.Fatalf("decode broadcast params: %v", err)
			}
			if len(args) != 1 || len(args[0].Signatures) != 1 {
				t.Fatalf("expected one signed transaction, got %+v", args)
			}
			writeResult(w, `{"id":"abc","block_num":42,"trx_num":1,"expired":false}`)
		default:
			t.Fatalf("unexpected method %s", method)
		}
	})

	key, err := PrivateKeyFromWIF(testWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}
	amount, err := AssetFromString("1.000 HIVE")
	if err != nil {
		t.Fatalf("parse asset: %v", err)
	}

	confirmation, err := client.Broadcast.SendOperations(context.Background(), []Operation{
		&TransferOperation{From: "foo", To: "bar", Amount: amount, Memo: "test"},
	}, key)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if confirmation.BlockNum != 42 || confirmation.Expired {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}
	if broadcasted.Load() != 1 {
		t.Fatalf("broadcast called %d times", broadcasted.Load())
	}
}

// TestSendFallsBackToAsyncBroadcast: the synchronous endpoint fails at the
// transport level, the async endpoint accepts, and confirmation polling
// finds the transaction.
func TestSendFallsBackToAsyncBroadcast(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, method, _ := decodeCall(t, r)
		switch method {
		case "broadcast_transaction_synchronous":
			w.WriteHeader(http.StatusInternalServerError)
		case "broadcast_transaction":
			writeResult(w, `{}`)
		case "get_transaction":
			writeResult(w, `{"block_num":42,"transaction_num":7}`)
		default:
			t.Fatalf("unexpected method %s", method)
		}
	})

	tx := &SignedTransaction{
		RefBlockNum:    1,
		RefBlockPrefix: 2,
		Expiration:     "2024-01-01T00:00:00",
		Operations:     Operations{},
		Extensions:     []string{},
		Signatures:     []string{"1f00"},
	}

	confirmation, err := client.Broadcast.Send(context.Background(), tx)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if confirmation.BlockNum != 42 || confirmation.TrxNum != 7 {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}
	if confirmation.ID == "" {
		t.Fatalf("confirmation must carry the derived transaction id")
	}
}

// TestSendFallsBackOnMissingMethod: an RPC method-not-found answer routes to
// the async path; other RPC errors do not.
func TestSendFallsBackOnMissingMethod(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, method, _ := decodeCall(t, r)
		switch method {
		case "broadcast_transaction_synchronous":
			writeRPCError(w, -32601, "Assert Exception: Could not find method broadcast_transaction_synchronous")
		case "broadcast_transaction":
			writeResult(w, `{}`)
		case "get_transaction":
			writeResult(w, `{"block_num":9,"trx_num":0}`)
		default:
			t.Fatalf("unexpected method %s", method)
		}
	})

	tx := &SignedTransaction{
		Expiration: "2024-01-01T00:00:00",
		Operations: Operations{},
		Extensions: []string{},
	}
	confirmation, err := client.Broadcast.Send(context.Background(), tx)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if confirmation.BlockNum != 9 {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}
}

func TestSendDoesNotFallBackOnRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, method, _ := decodeCall(t, r)
		if method != "broadcast_transaction_synchronous" {
			t.Fatalf("unexpected method %s", method)
		}
		writeRPCError(w, 13, "insufficient funds")
	})

	tx := &SignedTransaction{
		Expiration: "2024-01-01T00:00:00",
		Operations: Operations{},
		Extensions: []string{},
	}
	_, err := client.Broadcast.Send(context.Background(), tx)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != 13 {
		t.Fatalf("expected the node's rejection, got %v", err)
	}
}
