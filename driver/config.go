// Package driver runs the resp engine over a batch of RESP files and
// station/channel patterns, the way a command-line front end or a batch
// job would: load a request, fan the matched files out across a worker
// pool, and collect evaluated Response values keyed by channel.
package driver

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/iris-edu/evalresp/resp"
)

// RequestConfig is the on-disk (YAML) shape of a driver.Request. Time and
// unit fields are plain strings here; LoadConfig parses and validates them
// into the stricter Request type.
type RequestConfig struct {
	// Patterns is a list of "NET.STA.LOC.CHA" glob patterns (evalresp-style
	// '*'/'?' wildcards), e.g. "IU.ANMO.00.BH?".
	Patterns []string `yaml:"patterns" validate:"required,min=1,dive,required"`

	// Files lists the RESP input paths to scan; at least one is required.
	Files []string `yaml:"files" validate:"required,min=1,dive,required"`

	// EffectiveTime, RFC 3339 formatted, keeps only the channel epochs whose
	// interval contains it. Empty applies no time filter: every epoch of a
	// matching channel is evaluated.
	EffectiveTime string `yaml:"effective_time"`

	// Freqs is the list of frequencies, in Hz, to evaluate at. All entries
	// must be non-negative; +Inf is not rejected.
	Freqs []float64 `yaml:"freqs" validate:"required,min=1,dive,gte=0"`

	// Unit is one of "displacement", "velocity", "acceleration", or
	// "default".
	Unit string `yaml:"unit" validate:"required,oneof=displacement velocity acceleration default"`

	StartStage int `yaml:"start_stage" validate:"gte=0"`
	StopStage  int `yaml:"stop_stage" validate:"gte=0"`

	UseEstimatedDelay   bool    `yaml:"use_estimated_delay"`
	UseTotalSensitivity bool    `yaml:"use_total_sensitivity"`
	PolynomialEvalPoint float64 `yaml:"polynomial_eval_point"`
	Tension             float64 `yaml:"tension" validate:"gte=0"`

	// Jobs bounds the worker-pool size; zero means runtime.NumCPU().
	Jobs uint `yaml:"jobs"`
}

var unitTokens = map[string]resp.Unit{
	"displacement": resp.UnitDisplacement,
	"velocity":     resp.UnitVelocity,
	"acceleration": resp.UnitAcceleration,
	"default":      resp.UnitDefault,
}

// LoadConfig reads and validates a YAML request file at path, returning a
// Request ready for Run.
func LoadConfig(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request config %s: %w", path, err)
	}

	var cfg RequestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing request config %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid request config %s: %w", path, err)
	}

	req := &Request{
		Patterns:            cfg.Patterns,
		Files:               cfg.Files,
		Freqs:               cfg.Freqs,
		OutputUnit:          unitTokens[cfg.Unit],
		StartStage:          cfg.StartStage,
		StopStage:           cfg.StopStage,
		UseEstimatedDelay:   cfg.UseEstimatedDelay,
		UseTotalSensitivity: cfg.UseTotalSensitivity,
		PolynomialEvalPoint: cfg.PolynomialEvalPoint,
		Tension:             cfg.Tension,
		Jobs:                cfg.Jobs,
	}

	if cfg.EffectiveTime != "" {
		t, err := time.Parse(time.RFC3339, cfg.EffectiveTime)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_time %q: %w", cfg.EffectiveTime, err)
		}
		req.EffectiveTime = t
	}

	return req, nil
}
