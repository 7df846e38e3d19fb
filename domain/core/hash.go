package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetFingerprint is a deterministic hash over a dataset's metric names
// and row count. Column order does not affect the fingerprint.
type DatasetFingerprint Hash

func (f DatasetFingerprint) String() string { return Hash(f).String() }

// ComputeDatasetFingerprint hashes sorted metric keys plus the row count.
func ComputeDatasetFingerprint(metrics []MetricKey, rowCount int) DatasetFingerprint {
	keys := make([]string, 0, len(metrics))
	for _, m := range metrics {
		keys = append(keys, m.String())
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString("|")
	}
	data.WriteString(strconv.Itoa(rowCount))

	return DatasetFingerprint(NewHash([]byte(data.String())))
}
