package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOperationTupleRoundTrip(t *testing.T) {
	amount, err := AssetFromString("1.000 HIVE")
	if err != nil {
		t.Fatalf("parse asset: %v", err)
	}
	op := &TransferOperation{From: "alice", To: "bob", Amount: amount, Memo: "hello"}

	serialized, err := MarshalOperation(op)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	expected := `["transfer",{"from":"alice","to":"bob","amount":"1.000 HIVE","memo":"hello"}]`
	if string(serialized) != expected {
		t.Fatalf("tuple=%s", serialized)
	}

	decoded, err := UnmarshalOperation(serialized)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	transfer, ok := decoded.(*TransferOperation)
	if !ok {
		t.Fatalf("decoded wrong type %T", decoded)
	}
	if transfer.From != "alice" || transfer.To != "bob" || transfer.Memo != "hello" {
		t.Fatalf("round trip mismatch: %+v", transfer)
	}
}

func TestOperationUnknownNameRejected(t *testing.T) {
	if _, err := UnmarshalOperation([]byte(`["definitely_not_an_op",{}]`)); err == nil {
		t.Fatalf("expected unknown operation to fail")
	}
	if _, err := UnmarshalOperation([]byte(`["transfer"]`)); err == nil {
		t.Fatalf("expected 1-item tuple to fail")
	}
}

func TestOperationsListRoundTrip(t *testing.T) {
	ops := Operations{
		&VoteOperation{Voter: "foo", Author: "bar", Permlink: "baz", Weight: 10000},
		&CustomJSONOperation{
			RequiredAuths:        []string{},
			RequiredPostingAuths: []string{"foo"},
			ID:                   "follow",
			JSON:                 `["follow",{}]`,
		},
	}

	serialized, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Operations
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d operations", len(decoded))
	}
	if decoded[0].OperationName() != "vote" || decoded[1].OperationName() != "custom_json" {
		t.Fatalf("names %s, %s", decoded[0].OperationName(), decoded[1].OperationName())
	}
}

func TestUpdateProposalExtensionJSON(t *testing.T) {
	endDate := "2024-06-01T00:00:00"
	ext := UpdateProposalExtension{EndDate: &endDate}
	serialized, err := json.Marshal(ext)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded UpdateProposalExtension
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.EndDate == nil || *decoded.EndDate != endDate {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}

	var void UpdateProposalExtension
	if err := json.Unmarshal([]byte(`{"type":"void"}`), &void); err != nil {
		t.Fatalf("unmarshal void: %v", err)
	}
	if void.EndDate != nil {
		t.Fatalf("void extension carries a date")
	}
}

func TestCommentOptionsExtensionJSON(t *testing.T) {
	ext := CommentOptionsExtension{Beneficiaries: []BeneficiaryRoute{{Account: "dev", Weight: 1000}}}
	serialized, err := json.Marshal(ext)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded CommentOptionsExtension
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Beneficiaries) != 1 || decoded.Beneficiaries[0].Account != "dev" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestOperationIDTable(t *testing.T) {
	cases := map[string]uint32{
		"vote":                   0,
		"transfer":               2,
		"custom_json":            18,
		"witness_set_properties": 42,
		"recurrent_transfer":     49,
	}
	for name, want := range cases {
		id, ok := OperationID(name)
		if !ok || id != want {
			t.Fatalf("OperationID(%s)=(%d,%v) want %d", name, id, ok, want)
		}
	}
	if len(operationIDs) != 50 {
		t.Fatalf("operation table has %d entries, want 50", len(operationIDs))
	}
	if _, ok := OperationID("bogus"); ok {
		t.Fatalf("unknown name resolved")
	}
}

func TestPowOperationsRoundTripJSONButRefuseBinary(t *testing.T) {
	raw := []byte(`["pow",{"worker_account":"miner"}]`)
	op, err := UnmarshalOperation(raw)
	if err != nil {
		t.Fatalf("unmarshal pow: %v", err)
	}

	reencoded, err := MarshalOperation(op)
	if err != nil {
		t.Fatalf("marshal pow: %v", err)
	}
	if string(reencoded) != string(raw) {
		t.Fatalf("pow json round trip: %s", reencoded)
	}

	var otherErr *OtherError
	if _, err := SerializeOperation(op); !errors.As(err, &otherErr) {
		t.Fatalf("pow must refuse binary serialization with OtherError, got %v", err)
	}
	if _, err := SerializeOperation(&Pow2Operation{}); !errors.As(err, &otherErr) {
		t.Fatalf("pow2 must refuse binary serialization with OtherError, got %v", err)
	}
}
