package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds "<prefix>:<sha256 hex>" over the JSON encoding of parts.
// Conversion keys hash the input hash together with the resolver options,
// so changing the strategy or a limit never reuses an old result.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data. The pipeline hashes the BPSEQ
// rendering of the input structure.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
