package model

// Operation names a corpus operation a job can run.
type Operation string

const (
	OpChunk      Operation = "chunk"
	OpSpeaker    Operation = "speaker"
	OpCombine    Operation = "combine"
	OpConfidence Operation = "confidence"
	OpOrgs       Operation = "orgs"
	OpSentiment  Operation = "sentiment"
	OpCategorize Operation = "categorize"
	OpPlot       Operation = "plot"
)

// Operations lists every supported operation in pipeline order.
var Operations = []Operation{
	OpChunk, OpSpeaker, OpCombine, OpConfidence, OpOrgs, OpSentiment, OpCategorize, OpPlot,
}

// JobParams carries the arguments of every operation; each operation reads the
// fields it needs.
type JobParams struct {
	Source      string   `json:"source,omitempty"`      // chunk: compressed JSON-lines file
	ChunkSize   int      `json:"chunkSize,omitempty"`   // chunk: rows per output file
	OutputName  string   `json:"outputName,omitempty"`  // chunk: output file prefix
	Speaker     string   `json:"speaker,omitempty"`     // speaker, combine
	Year        string   `json:"year,omitempty"`        // speaker
	Compression string   `json:"compression,omitempty"` // speaker: output scheme, default bz2
	Input       string   `json:"input,omitempty"`       // confidence, orgs, sentiment, categorize, plot
	Output      string   `json:"output,omitempty"`      // confidence, orgs, sentiment, categorize, plot
	Cutoff      *float64 `json:"cutoff,omitempty"`      // confidence
	Model       string   `json:"model,omitempty"`       // orgs: entity model id
	Negative    *float64 `json:"negative,omitempty"`    // categorize
	Positive    *float64 `json:"positive,omitempty"`    // categorize
	Org         string   `json:"org,omitempty"`         // plot
	Timing      bool     `json:"timing,omitempty"`      // log elapsed wall-clock time
}

// JobSpec is the payload for POST /api/v1/jobs and the unit the runner executes.
type JobSpec struct {
	Operation Operation `json:"operation" validate:"required,oneof=chunk speaker combine confidence orgs sentiment categorize plot"`
	Params    JobParams `json:"params"`
	Timeout   string    `json:"timeout,omitempty"` // e.g. "30m"
}
