package preset

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging/stage"
)

// StageSpec is one stage entry in a preset file. Params carries the
// stage-specific parameters as parsed from YAML; stage parameters are flat
// scalar maps, decoded into typed structs by Build.
type StageSpec struct {
	Type   string                 `yaml:"type"`
	Params map[string]interface{} `yaml:"params"`
}

// Preset is a named sequence of pipeline stages.
type Preset struct {
	Name   string      `yaml:"name"`
	Stages []StageSpec `yaml:"stages"`
}

// Load reads and parses a preset YAML file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return Parse(data)
}

// Parse parses preset YAML. A preset with no stages is rejected.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	if len(p.Stages) == 0 {
		return nil, fmt.Errorf("preset contains no stages")
	}
	return &p, nil
}

// Build instantiates the pipeline stages described by the preset, in file
// order. An unknown stage type or invalid parameters fail the whole build.
func (p *Preset) Build() ([]imaging.Stage, error) {
	stages := make([]imaging.Stage, 0, len(p.Stages))
	for i, spec := range p.Stages {
		s, err := buildStage(spec)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, spec.Type, err)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

type recolorParams struct {
	Target      string   `mapstructure:"target"`
	Replacement string   `mapstructure:"replacement"`
	Tolerance   *float64 `mapstructure:"tolerance"`
}

type blurParams struct {
	Sigma float64 `mapstructure:"sigma"`
}

func buildStage(spec StageSpec) (imaging.Stage, error) {
	switch spec.Type {
	case "recolor":
		var params recolorParams
		if err := mapstructure.Decode(spec.Params, &params); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		if params.Target == "" || params.Replacement == "" {
			return nil, fmt.Errorf("recolor requires target and replacement colors")
		}
		target, err := imaging.ParseHex(params.Target)
		if err != nil {
			return nil, err
		}
		replacement, err := imaging.ParseHex(params.Replacement)
		if err != nil {
			return nil, err
		}
		tolerance := imaging.DefaultTolerance
		if params.Tolerance != nil {
			tolerance = *params.Tolerance
		}
		return &stage.RecolorStage{Request: imaging.ReplaceRequest{
			Target:      target,
			Replacement: replacement,
			Tolerance:   tolerance,
		}}, nil

	case "greyscale":
		return &stage.GreyscaleStage{}, nil

	case "blur":
		var params blurParams
		if err := mapstructure.Decode(spec.Params, &params); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		if params.Sigma <= 0 {
			return nil, fmt.Errorf("blur requires a positive sigma")
		}
		return &stage.GaussianBlurStage{Sigma: params.Sigma}, nil

	case "resample":
		return &stage.ResampleStage{}, nil

	default:
		return nil, fmt.Errorf("unknown stage type %q", spec.Type)
	}
}
