package ast

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is the 4-byte identifier of an externally callable member: the
// first 4 bytes of the Keccak-256 hash of the canonical UTF-8 signature.
// `transfer(address,uint256)` hashes to 0xa9059cbb.
type Selector [4]byte

// SelectorFromSignature computes the selector of a canonical signature.
func SelectorFromSignature(signature string) Selector {
	var s Selector
	copy(s[:], keccak256([]byte(signature))[:4])
	return s
}

// Hex renders the selector as 0x-prefixed hex.
func (s Selector) Hex() string {
	return hexutil.Encode(s[:])
}

// EventTopic is the 32-byte log topic of a non-anonymous event: the full
// Keccak-256 hash of its canonical signature.
type EventTopic [32]byte

// EventTopicFromSignature computes the log topic of an event signature.
func EventTopicFromSignature(signature string) EventTopic {
	var t EventTopic
	copy(t[:], keccak256([]byte(signature)))
	return t
}

// Hex renders the topic as 0x-prefixed hex.
func (t EventTopic) Hex() string {
	return hexutil.Encode(t[:])
}

func keccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}
