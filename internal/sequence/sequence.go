// Package sequence implements the scripted machine sequencer: an ordered
// list of operations consumed one step at a time, each followed by a delay,
// the way a single-shot re-arming timer drives it in the control room UI.
package sequence

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Op is a sequence operation name.
type Op string

const (
	OpSetEnergy   Op = "set_energy"
	OpSetBeamType Op = "set_beam_type"
	OpInjectBeam  Op = "inject_beam"
	OpRampEnergy  Op = "ramp_energy"
	OpWait        Op = "wait"
	OpExtractBeam Op = "extract_beam"
)

// Step is one sequence entry: an operation and its integer value. The
// value's meaning depends on the op (GeV for energy ops, a particle count
// for inject, milliseconds for wait, a species index for set_beam_type).
type Step struct {
	Op    Op  `yaml:"op"`
	Value int `yaml:"value"`
}

// Sequence is a named, ordered list of steps.
type Sequence struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Load reads a sequence from a YAML file.
func Load(path string) (*Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}

	for i := range seq.Steps {
		seq.Steps[i].Op = Normalize(seq.Steps[i].Op)
	}
	return &seq, nil
}

// Normalize folds the control-room display spellings ("Set Energy",
// "Inject Beam") onto the canonical snake_case names. Unrecognized ops pass
// through unchanged; the runner reports and skips them.
func Normalize(op Op) Op {
	folded := strings.ToLower(strings.TrimSpace(string(op)))
	folded = strings.ReplaceAll(folded, " ", "_")
	return Op(folded)
}
