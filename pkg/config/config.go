// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultModel          = "o3"
	DefaultPromptDir      = "prompts"
	DefaultLogFile        = "mdbatch.log"
	DefaultAPIKeyEnv      = "OPENAI_API_KEY"
	DefaultBaseURLEnv     = "OPENAI_BASE_URL"
	DefaultTimeoutSeconds = 120

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// ErrInvalidConfig is returned for any configuration that cannot start a run
var ErrInvalidConfig = errors.New("invalid config")

// 📦 FileConfig is the on-disk and environment shape of the settings. Zero
// values mean "not set" so layers can be merged.
type FileConfig struct {
	Model          string   `json:"model,omitempty" yaml:"model,omitempty" hcl:"model,optional" koanf:"model"`
	MaxTokens      int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" hcl:"max_tokens,optional" koanf:"max_tokens"`
	PromptDir      string   `json:"prompt_dir,omitempty" yaml:"prompt_dir,omitempty" hcl:"prompt_dir,optional" koanf:"prompt_dir"`
	LogFile        string   `json:"log_file,omitempty" yaml:"log_file,omitempty" hcl:"log_file,optional" koanf:"log_file"`
	Inplace        *bool    `json:"inplace,omitempty" yaml:"inplace,omitempty" hcl:"inplace,optional" koanf:"inplace"`
	BaseURL        string   `json:"base_url,omitempty" yaml:"base_url,omitempty" hcl:"base_url,optional" koanf:"base_url"`
	APIKeyEnv      string   `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty" hcl:"api_key_env,optional" koanf:"api_key_env"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" hcl:"timeout_seconds,optional" koanf:"timeout_seconds"`
	Temperature    *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" hcl:"temperature,optional" koanf:"temperature"` // only sent when set

	location string
}

// Location returns the file the config was read from, if any.
func (c FileConfig) Location() string {
	return c.location
}

// 🎛️ Flags holds what the command line set. Changed reports which flags the
// user passed explicitly so unset flags do not shadow file or env values.
type Flags struct {
	Root        string
	Prompts     []string
	Model       string
	MaxTokens   int
	Temperature float64 // applies only when the temp flag changed
	Inplace     bool
	LogFile     string
	DryRun      bool
	Verbose     bool
	Changed     func(name string) bool
}

func (f Flags) changed(name string) bool {
	return f.Changed != nil && f.Changed(name)
}

// 🎯 RunConfig is the validated, immutable configuration of one run
type RunConfig struct {
	root        string
	promptPaths []string
	promptDir   string
	model       string
	maxTokens   int
	inplace     bool
	logFile     string
	dryRun      bool
	verbose     bool
	baseURL     string
	apiKeyEnv   string
	timeout     int
	temperature *float64
}

func (c *RunConfig) Root() string { return c.root }
func (c *RunConfig) PromptPaths() []string { return append([]string(nil), c.promptPaths...) }
func (c *RunConfig) PromptDir() string { return c.promptDir }
func (c *RunConfig) Model() string { return c.model }
func (c *RunConfig) MaxTokens() int { return c.maxTokens }
func (c *RunConfig) Inplace() bool { return c.inplace }
func (c *RunConfig) LogFile() string { return c.logFile }
func (c *RunConfig) DryRun() bool { return c.dryRun }
func (c *RunConfig) Verbose() bool { return c.verbose }
func (c *RunConfig) BaseURL() string { return c.baseURL }
func (c *RunConfig) APIKeyEnv() string { return c.apiKeyEnv }
func (c *RunConfig) TimeoutSeconds() int { return c.timeout }

// Temperature returns the sampling temperature, or nil to leave the service
// default in place.
func (c *RunConfig) Temperature() *float32 {
	if c.temperature == nil {
		return nil
	}
	t := float32(*c.temperature)
	return &t
}

// 🏗️ Build merges defaults, file, and flags into a RunConfig and validates
// it. Environment values must already be folded into file (see ApplyEnv).
func Build(ctx context.Context, file FileConfig, flags Flags) (*RunConfig, error) {
	logger := zerolog.Ctx(ctx)

	cfg := &RunConfig{
		root:      flags.Root,
		promptDir: DefaultPromptDir,
		model:     DefaultModel,
		inplace:   true,
		logFile:   DefaultLogFile,
		dryRun:    flags.DryRun,
		verbose:   flags.Verbose,
		apiKeyEnv: DefaultAPIKeyEnv,
		timeout:   DefaultTimeoutSeconds,
	}

	// file and env layer
	if file.Model != "" {
		cfg.model = file.Model
	}
	if file.MaxTokens != 0 {
		cfg.maxTokens = file.MaxTokens
	}
	if file.PromptDir != "" {
		cfg.promptDir = file.PromptDir
	}
	if file.LogFile != "" {
		cfg.logFile = file.LogFile
	}
	if file.Inplace != nil {
		cfg.inplace = *file.Inplace
	}
	if file.BaseURL != "" {
		cfg.baseURL = file.BaseURL
	}
	if file.APIKeyEnv != "" {
		cfg.apiKeyEnv = file.APIKeyEnv
	}
	if file.TimeoutSeconds != 0 {
		cfg.timeout = file.TimeoutSeconds
	}
	if file.Temperature != nil {
		t := *file.Temperature
		cfg.temperature = &t
	}

	// flag layer
	if flags.changed("model") {
		cfg.model = flags.Model
	}
	if flags.changed("max-tokens") {
		cfg.maxTokens = flags.MaxTokens
	}
	if flags.changed("inplace") || flags.changed("no-inplace") {
		cfg.inplace = flags.Inplace
	}
	if flags.changed("temp") {
		t := flags.Temperature
		cfg.temperature = &t
	}
	if flags.changed("log-file") {
		cfg.logFile = flags.LogFile
	}
	cfg.promptPaths = append([]string(nil), flags.Prompts...)

	if cfg.baseURL == "" {
		cfg.baseURL = os.Getenv(DefaultBaseURLEnv)
	}

	abs, err := filepath.Abs(cfg.logFile)
	if err != nil {
		return nil, errors.Errorf("%w: resolving log file %q: %w", ErrInvalidConfig, cfg.logFile, err)
	}
	cfg.logFile = abs

	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", cfg.root).
		Str("model", cfg.model).
		Int("max_tokens", cfg.maxTokens).
		Bool("inplace", cfg.inplace).
		Str("log_file", cfg.logFile).
		Bool("dry_run", cfg.dryRun).
		Msg("resolved run config")

	return cfg, nil
}

// ✅ Validate checks a run config before any document is read
func Validate(ctx context.Context, cfg *RunConfig) error {
	if cfg.root == "" {
		return errors.Errorf("%w: folder is required", ErrInvalidConfig)
	}

	info, err := os.Stat(cfg.root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: folder %q does not exist", ErrInvalidConfig, cfg.root)
		}
		return errors.Errorf("%w: checking folder %q: %w", ErrInvalidConfig, cfg.root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %q is not a directory", ErrInvalidConfig, cfg.root)
	}

	if cfg.model == "" {
		return errors.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if cfg.maxTokens < 0 {
		return errors.Errorf("%w: max tokens must not be negative, got %d", ErrInvalidConfig, cfg.maxTokens)
	}
	if cfg.temperature != nil && (*cfg.temperature < MinTemperature || *cfg.temperature > MaxTemperature) {
		return errors.Errorf("%w: temperature must be between %g and %g, got %g", ErrInvalidConfig, MinTemperature, MaxTemperature, *cfg.temperature)
	}
	if cfg.timeout <= 0 {
		return errors.Errorf("%w: timeout must be positive, got %d", ErrInvalidConfig, cfg.timeout)
	}

	return nil
}
