package domain

import "time"

// GenerationRecord is the persisted result of one generator invocation, used
// by the executor to skip re-execution when the declared input set is
// unchanged.
type GenerationRecord struct {
	TaskName   string    `json:"task_name,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
