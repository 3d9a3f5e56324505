package core

import "encoding/hex"

// Transaction is an unsigned transaction: TaPoS reference fields, a naive
// UTC expiration, the operation list and string extensions.
type Transaction struct {
	RefBlockNum    uint16     `json:"ref_block_num"`
	RefBlockPrefix uint32     `json:"ref_block_prefix"`
	Expiration     string     `json:"expiration"`
	Operations     Operations `json:"operations"`
	Extensions     []string   `json:"extensions"`
}

// SignedTransaction is a transaction plus its hex-encoded 65-byte
// signatures.
type SignedTransaction struct {
	RefBlockNum    uint16     `json:"ref_block_num"`
	RefBlockPrefix uint32     `json:"ref_block_prefix"`
	Expiration     string     `json:"expiration"`
	Operations     Operations `json:"operations"`
	Extensions     []string   `json:"extensions"`
	Signatures     []string   `json:"signatures"`
}

// Unsigned strips the signatures; the transaction id is computed over this
// form.
func (t SignedTransaction) Unsigned() Transaction {
	return Transaction{
		RefBlockNum:    t.RefBlockNum,
		RefBlockPrefix: t.RefBlockPrefix,
		Expiration:     t.Expiration,
		Operations:     t.Operations,
		Extensions:     t.Extensions,
	}
}

// TransactionConfirmation is the node's broadcast acknowledgement.
type TransactionConfirmation struct {
	ID       string `json:"id"`
	BlockNum uint32 `json:"block_num"`
	TrxNum   uint32 `json:"trx_num"`
	Expired  bool   `json:"expired"`
}

// TransactionStatus is the lifecycle state reported by
// transaction_status_api.
type TransactionStatus struct {
	Status string `json:"status"`
}

// SerializeTransaction produces the canonical wire bytes.
func SerializeTransaction(tx *Transaction) ([]byte, error) {
	var e encoder
	e.writeU16(tx.RefBlockNum)
	e.writeU32(tx.RefBlockPrefix)
	if err := e.writeDate(tx.Expiration); err != nil {
		return nil, err
	}
	e.writeVarint32(uint32(len(tx.Operations)))
	for _, op := range tx.Operations {
		if err := serializeOperationTo(&e, op); err != nil {
			return nil, err
		}
	}
	e.writeStringArray(tx.Extensions)
	return e.bytes(), nil
}

// TransactionDigest is the 32-byte value that gets signed:
// sha256(chain_id ‖ serialized transaction).
func TransactionDigest(tx *Transaction, chainID ChainID) ([32]byte, error) {
	raw, err := SerializeTransaction(tx)
	if err != nil {
		return [32]byte{}, err
	}
	payload := make([]byte, 0, len(chainID)+len(raw))
	payload = append(payload, chainID[:]...)
	payload = append(payload, raw...)
	return Sha256(payload), nil
}

// TransactionID renders the chain's transaction id: the first 20 bytes of
// sha256 over the unsigned wire form, as 40 hex chars.
func TransactionID(tx *Transaction) (string, error) {
	raw, err := SerializeTransaction(tx)
	if err != nil {
		return "", err
	}
	digest := Sha256(raw)
	return hex.EncodeToString(digest[:20]), nil
}

// SignTransaction signs the digest with every key in argument order and
// returns the signed form. Each key contributes exactly one signature.
func SignTransaction(tx *Transaction, keys []*PrivateKey, chainID ChainID) (*SignedTransaction, error) {
	digest, err := TransactionDigest(tx, chainID)
	if err != nil {
		return nil, err
	}

	signatures := make([]string, 0, len(keys))
	for _, key := range keys {
		sig, err := key.Sign(digest)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, sig.ToHex())
	}

	return &SignedTransaction{
		RefBlockNum:    tx.RefBlockNum,
		RefBlockPrefix: tx.RefBlockPrefix,
		Expiration:     tx.Expiration,
		Operations:     tx.Operations,
		Extensions:     tx.Extensions,
		Signatures:     signatures,
	}, nil
}
