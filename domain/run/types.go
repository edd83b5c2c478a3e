package run

import (
	"fmt"

	"gomwu/domain/core"
)

// Settings are the resolved parameters a run was executed with
type Settings struct {
	InputPath        string `json:"input_path"`
	Sheet            string `json:"sheet,omitempty"`
	GroupColumn      string `json:"group_column"`
	ValueColumn      string `json:"value_column"`
	Group1Name       string `json:"group1_name"`
	Group2Name       string `json:"group2_name"`
	Method           string `json:"method"`
	EffectSizeMethod string `json:"effect_size_method"`
	UseContinuity    bool   `json:"use_continuity"`
	OutputPrefix     string `json:"output_prefix"`
}

// RunFingerprint identifies a run by its input bytes and settings, so two
// runs over the same file with the same settings share a fingerprint
type RunFingerprint struct {
	InputHash   core.Hash `json:"input_hash"`
	Settings    Settings  `json:"settings"`
	Fingerprint core.Hash `json:"fingerprint"`
}

// NewRunFingerprint creates a fingerprint from the input hash and settings
func NewRunFingerprint(inputHash core.Hash, settings Settings) RunFingerprint {
	return RunFingerprint{
		InputHash:   inputHash,
		Settings:    settings,
		Fingerprint: computeRunFingerprint(inputHash, settings),
	}
}

// computeRunFingerprint excludes InputPath: the bytes matter, not where they live
func computeRunFingerprint(inputHash core.Hash, s Settings) core.Hash {
	data := fmt.Sprintf("input:%s|sheet:%s|group_col:%s|value_col:%s|g1:%s|g2:%s|method:%s|effect:%s|cc:%t",
		inputHash, s.Sheet, s.GroupColumn, s.ValueColumn, s.Group1Name, s.Group2Name,
		s.Method, s.EffectSizeMethod, s.UseContinuity)
	return core.NewHash([]byte(data))
}
