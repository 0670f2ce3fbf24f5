// Package learn turns metric snapshots into persisted patterns. A
// stateless detector evaluates threshold rules against each snapshot and
// emits candidates; the store deduplicates candidates by content id,
// accrues confidence on repeat detections, and flushes the population to
// disk with an atomic file replace.
package learn

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// PatternType names the condition class a pattern records.
type PatternType string

const (
	PatternHighCPU     PatternType = "high_cpu"
	PatternHighMemory  PatternType = "high_memory"
	PatternHighNetwork PatternType = "high_network"
)

// Pattern is a learned detection record as it is persisted. Timestamps
// are epoch seconds to keep the file format language-neutral.
type Pattern struct {
	ID         string         `json:"id"`
	Type       PatternType    `json:"pattern_type"`
	Data       map[string]any `json:"data"`
	CreatedAt  float64        `json:"created_at"`
	UpdatedAt  float64        `json:"updated_at"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}

// Candidate is a single detection produced by Detect, not yet merged
// into the store.
type Candidate struct {
	Type       PatternType
	Data       map[string]any
	Confidence float64
	Metadata   map[string]any
	ObservedAt float64
}

// PatternID derives the stable identifier for a pattern: the type name
// plus a short content hash of the triggering data. Re-detecting the
// same condition always yields the same id, so repeats merge instead of
// piling up as duplicates.
func PatternID(ptype PatternType, data map[string]any) string {
	canon, err := json.Marshal(data)
	if err != nil {
		canon = []byte(fmt.Sprintf("%v", data))
	}
	sum := sha256.Sum256([]byte(string(ptype) + ":" + string(canon)))
	return fmt.Sprintf("%s_%x", ptype, sum[:4])
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
