package core

import "encoding/json"

// AccountAuth is one weighted account entry in an authority. Its JSON form is
// the two-element tuple the chain uses: ["name", weight].
type AccountAuth struct {
	Account string
	Weight  uint16
}

func (a AccountAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Account, a.Weight})
}

func (a *AccountAuth) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return &SerializationError{Reason: "account auth must be a 2-item array"}
	}
	if err := json.Unmarshal(pair[0], &a.Account); err != nil {
		return &SerializationError{Reason: "account auth name must be a string"}
	}
	if err := json.Unmarshal(pair[1], &a.Weight); err != nil {
		return &SerializationError{Reason: "account auth weight must be a u16"}
	}
	return nil
}

// KeyAuth is one weighted public-key entry in an authority, JSON-encoded as
// ["STM…", weight].
type KeyAuth struct {
	Key    string
	Weight uint16
}

func (a KeyAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Key, a.Weight})
}

func (a *KeyAuth) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return &SerializationError{Reason: "key auth must be a 2-item array"}
	}
	if err := json.Unmarshal(pair[0], &a.Key); err != nil {
		return &SerializationError{Reason: "key auth key must be a string"}
	}
	if err := json.Unmarshal(pair[1], &a.Weight); err != nil {
		return &SerializationError{Reason: "key auth weight must be a u16"}
	}
	return nil
}

// Authority is a weighted multi-sig policy: a signature set satisfies it
// when the weights of the keys present sum to at least the threshold.
type Authority struct {
	WeightThreshold uint32        `json:"weight_threshold"`
	AccountAuths    []AccountAuth `json:"account_auths"`
	KeyAuths        []KeyAuth     `json:"key_auths"`
}

// KeyWeight returns the weight assigned to key, or zero when absent.
func (a Authority) KeyWeight(key string) uint16 {
	for _, auth := range a.KeyAuths {
		if auth.Key == key {
			return auth.Weight
		}
	}
	return 0
}

// SatisfiedBy reports whether the given key set meets the threshold.
func (a Authority) SatisfiedBy(keys []string) bool {
	var total uint32
	for _, key := range keys {
		total += uint32(a.KeyWeight(key))
	}
	return total >= a.WeightThreshold
}
