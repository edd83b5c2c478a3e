package run

import (
	"gomwu/domain/core"
	"gomwu/domain/stats"
)

// ArtifactKind names an output file type
type ArtifactKind string

const (
	ArtifactResultsWorkbook ArtifactKind = "results_workbook"
	ArtifactPlot            ArtifactKind = "plot"
	ArtifactHTMLReport      ArtifactKind = "html_report"
)

// Artifact is one file written by a run
type Artifact struct {
	Kind ArtifactKind `json:"kind"`
	Path string       `json:"path"`
}

// Manifest records what a run read, what it computed and what it wrote
type Manifest struct {
	RunID       core.RunID     `json:"run_id"`
	Stamp       string         `json:"stamp"` // YYYYMMDD_HHMMSS used in file names
	Fingerprint RunFingerprint `json:"fingerprint"`
	Summary     stats.Summary  `json:"summary"`
	Artifacts   []Artifact     `json:"artifacts"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewManifest starts a manifest for a run created at the given time
func NewManifest(runID core.RunID, createdAt core.Timestamp, fingerprint RunFingerprint) *Manifest {
	return &Manifest{
		RunID:       runID,
		Stamp:       createdAt.RunStamp(),
		Fingerprint: fingerprint,
		CreatedAt:   createdAt,
	}
}

// AddArtifact appends an output file
func (m *Manifest) AddArtifact(kind ArtifactKind, path string) {
	m.Artifacts = append(m.Artifacts, Artifact{Kind: kind, Path: path})
}

// ArtifactPath returns the path of the first artifact of the given kind
func (m *Manifest) ArtifactPath(kind ArtifactKind) (string, bool) {
	for _, a := range m.Artifacts {
		if a.Kind == kind {
			return a.Path, true
		}
	}
	return "", false
}
