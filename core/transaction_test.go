package core

import (
	"encoding/hex"
	"encoding/json"
	"testing"
)

func dhiveVectorTransaction() *Transaction {
	return &Transaction{
		RefBlockNum:    1234,
		RefBlockPrefix: 1122334455,
		Expiration:     "2017-07-15T16:51:19",
		Operations: Operations{
			&VoteOperation{Voter: "foo", Author: "bar", Permlink: "baz", Weight: 10000},
		},
		Extensions: []string{"long-pants"},
	}
}

// TestTransferOperationBytes pins the transfer encoding to the dhive test
// vector.
func TestTransferOperationBytes(t *testing.T) {
	amount, err := AssetFromString("1.000 STEEM")
	if err != nil {
		t.Fatalf("parse asset: %v", err)
	}
	op := &TransferOperation{
		From:   "foo",
		To:     "bar",
		Amount: amount,
		Memo:   "wedding present",
	}

	raw, err := SerializeOperation(op)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	expected := "0203666f6f03626172e80300000000000003535445454d00000f77656464696e672070726573656e74"
	if got := hex.EncodeToString(raw); got != expected {
		t.Fatalf("transfer bytes=%s want %s", got, expected)
	}
}

func TestTransactionBytes(t *testing.T) {
	raw, err := SerializeTransaction(dhiveVectorTransaction())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	expected := "d204f776e54207486a59010003666f6f036261720362617a1027010a6c6f6e672d70616e7473"
	if got := hex.EncodeToString(raw); got != expected {
		t.Fatalf("transaction bytes=%s want %s", got, expected)
	}
}

func TestTransactionDigestAndID(t *testing.T) {
	tx := dhiveVectorTransaction()

	digest, err := TransactionDigest(tx, ChainID{})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if got := hex.EncodeToString(digest[:]); got != "77342bdde45a4901a0a65a98e0806a292ccfeb8b9b048d1ca93af69434c866de" {
		t.Fatalf("digest=%s", got)
	}

	id, err := TransactionID(tx)
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	if id != "70a8b9bd8e4a1413eb807f030fa8e81f9c7bb615" {
		t.Fatalf("id=%s", id)
	}
}

// TestSignTransactionVector pins the full digest-and-sign path to the dhive
// test vector.
func TestSignTransactionVector(t *testing.T) {
	key, err := PrivateKeyFromWIF(testWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}

	signed, err := SignTransaction(dhiveVectorTransaction(), []*PrivateKey{key}, ChainID{})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if len(signed.Signatures) != 1 {
		t.Fatalf("expected one signature, got %d", len(signed.Signatures))
	}
	expected := "1f037a09c1110a8bd8757ad3081a11456d241feedd4366723bb9f9046cc6a1b21b26bf4b8372546bc2446c7498ff5742dce0143ff1fe13591eb8dd88b9a7fef2f2"
	if signed.Signatures[0] != expected {
		t.Fatalf("signature=%s want %s", signed.Signatures[0], expected)
	}
}

func TestSignTransactionMultipleKeys(t *testing.T) {
	first, err := PrivateKeyFromSeed("first")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := PrivateKeyFromSeed("second")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tx := dhiveVectorTransaction()
	signed, err := SignTransaction(tx, []*PrivateKey{first, second}, MainnetChainID())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if len(signed.Signatures) != 2 {
		t.Fatalf("expected two signatures, got %d", len(signed.Signatures))
	}

	digest, err := TransactionDigest(tx, MainnetChainID())
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	for i, owner := range []*PrivateKey{first, second} {
		sig, err := SignatureFromHex(signed.Signatures[i])
		if err != nil {
			t.Fatalf("parse signature %d: %v", i, err)
		}
		if !owner.PublicKey().Verify(digest, sig) {
			t.Fatalf("signature %d does not verify against its key", i)
		}
	}
}

// TestTransactionIDIgnoresSignatures: the id covers the unsigned form only.
func TestTransactionIDIgnoresSignatures(t *testing.T) {
	key, err := PrivateKeyFromWIF(testWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}
	tx := dhiveVectorTransaction()
	signed, err := SignTransaction(tx, []*PrivateKey{key}, MainnetChainID())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	unsigned := signed.Unsigned()
	id, err := TransactionID(&unsigned)
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	want, err := TransactionID(tx)
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	if id != want {
		t.Fatalf("id changed after signing: %s vs %s", id, want)
	}
}

func TestVoidExtensionsMustBeEmpty(t *testing.T) {
	op := &RecurrentTransferOperation{
		From:       "foo",
		To:         "bar",
		Amount:     HiveAsset(1000),
		Memo:       "m",
		Recurrence: 24,
		Executions: 2,
		Extensions: []json.RawMessage{json.RawMessage(`{}`)},
	}
	if _, err := SerializeOperation(op); err == nil {
		t.Fatalf("non-empty void extensions must fail")
	}
}
