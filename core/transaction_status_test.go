package core

import (
	"context"
	"net/http"
	"testing"
)

func TestFindTransactionUsesStatusAPI(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		api, method, _ := decodeCall(t, r)
		if api != "transaction_status_api" || method != "find_transaction" {
			t.Fatalf("unexpected call %s.%s", api, method)
		}
		writeResult(w, `{"status":"within_mempool"}`)
	})

	status, err := client.TransactionStatus.FindTransaction(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if status.Status != "within_mempool" {
		t.Fatalf("status=%s", status.Status)
	}
}

// TestFindTransactionFallsBackToCondenser: nodes without the plugin answer
// method-not-found; the condenser lookup synthesizes found_in_block.
func TestFindTransactionFallsBackToCondenser(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		api, method, _ := decodeCall(t, r)
		switch {
		case api == "transaction_status_api" && method == "find_transaction":
			writeRPCError(w, -32002, "Assert Exception: Could not find method find_transaction")
		case api == "condenser_api" && method == "get_transaction":
			writeResult(w, `{"transaction_id":"deadbeef","block_num":99}`)
		default:
			t.Fatalf("unexpected call %s.%s", api, method)
		}
	})

	status, err := client.TransactionStatus.FindTransaction(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if status.Status != StatusFoundInBlock {
		t.Fatalf("status=%s want %s", status.Status, StatusFoundInBlock)
	}
}

func TestFindTransactionFallbackReportsUnknown(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		api, method, _ := decodeCall(t, r)
		switch {
		case api == "transaction_status_api" && method == "find_transaction":
			writeRPCError(w, -32002, "Assert Exception: Could not find method find_transaction")
		case api == "condenser_api" && method == "get_transaction":
			writeRPCError(w, -32003, "Unknown Transaction")
		default:
			t.Fatalf("unexpected call %s.%s", api, method)
		}
	})

	status, err := client.TransactionStatus.FindTransaction(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if status.Status != StatusUnknown {
		t.Fatalf("status=%s want %s", status.Status, StatusUnknown)
	}
}
