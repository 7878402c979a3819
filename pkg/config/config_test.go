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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

func TestBuild(t *testing.T) {
	root := t.TempDir()
	t.Setenv(DefaultBaseURLEnv, "")

	tests := []struct {
		name  string
		file  FileConfig
		flags Flags
		check func(t *testing.T, cfg *RunConfig)
	}{
		{
			name:  "defaults",
			flags: Flags{Root: root},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, root, cfg.Root())
				assert.Equal(t, DefaultModel, cfg.Model())
				assert.Equal(t, 0, cfg.MaxTokens(), "token cap is unset by default")
				assert.True(t, cfg.Inplace(), "in place is the default mode")
				assert.Equal(t, DefaultPromptDir, cfg.PromptDir())
				assert.True(t, filepath.IsAbs(cfg.LogFile()), "log file should be absolute")
				assert.Equal(t, DefaultLogFile, filepath.Base(cfg.LogFile()))
				assert.Equal(t, DefaultAPIKeyEnv, cfg.APIKeyEnv())
				assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds())
				assert.Empty(t, cfg.PromptPaths())
				assert.Nil(t, cfg.Temperature(), "temperature is unset by default")
			},
		},
		{
			name: "file_values_apply",
			file: FileConfig{
				Model:          "gpt-4o",
				MaxTokens:      500,
				PromptDir:      "instructions",
				LogFile:        "audit.log",
				Inplace:        boolPtr(false),
				BaseURL:        "http://localhost:8080/v1",
				APIKeyEnv:      "MY_KEY",
				TimeoutSeconds: 30,
			},
			flags: Flags{Root: root},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, "gpt-4o", cfg.Model())
				assert.Equal(t, 500, cfg.MaxTokens())
				assert.Equal(t, "instructions", cfg.PromptDir())
				assert.Equal(t, "audit.log", filepath.Base(cfg.LogFile()))
				assert.False(t, cfg.Inplace())
				assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL())
				assert.Equal(t, "MY_KEY", cfg.APIKeyEnv())
				assert.Equal(t, 30, cfg.TimeoutSeconds())
			},
		},
		{
			name: "changed_flags_win_over_file",
			file: FileConfig{Model: "gpt-4o", MaxTokens: 500, Inplace: boolPtr(false), LogFile: "file.log"},
			flags: Flags{
				Root:      root,
				Model:     "o3-mini",
				MaxTokens: 42,
				Inplace:   true,
				LogFile:   "flag.log",
				Changed:   changedSet("model", "max-tokens", "inplace", "log-file"),
			},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, "o3-mini", cfg.Model())
				assert.Equal(t, 42, cfg.MaxTokens())
				assert.True(t, cfg.Inplace())
				assert.Equal(t, "flag.log", filepath.Base(cfg.LogFile()))
			},
		},
		{
			name: "unchanged_flags_do_not_shadow_file",
			file: FileConfig{Model: "gpt-4o"},
			flags: Flags{
				Root:    root,
				Model:   DefaultModel,
				Changed: changedSet(),
			},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, "gpt-4o", cfg.Model())
			},
		},
		{
			name:  "file_temperature",
			file:  FileConfig{Temperature: floatPtr(0.5)},
			flags: Flags{Root: root},
			check: func(t *testing.T, cfg *RunConfig) {
				require.NotNil(t, cfg.Temperature())
				assert.InDelta(t, 0.5, *cfg.Temperature(), 1e-6)
			},
		},
		{
			name: "temp_flag_wins_even_at_zero",
			file: FileConfig{Temperature: floatPtr(0.5)},
			flags: Flags{
				Root:        root,
				Temperature: 0,
				Changed:     changedSet("temp"),
			},
			check: func(t *testing.T, cfg *RunConfig) {
				require.NotNil(t, cfg.Temperature())
				assert.Zero(t, *cfg.Temperature())
			},
		},
		{
			name:  "unchanged_temp_flag_is_ignored",
			flags: Flags{Root: root, Temperature: 1.5, Changed: changedSet()},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Nil(t, cfg.Temperature())
			},
		},
		{
			name: "no_inplace_flag",
			flags: Flags{
				Root:    root,
				Inplace: false,
				Changed: changedSet("no-inplace"),
			},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.False(t, cfg.Inplace())
			},
		},
		{
			name:  "prompts_keep_order",
			flags: Flags{Root: root, Prompts: []string{"b.txt", "a.txt"}, DryRun: true, Verbose: true},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, []string{"b.txt", "a.txt"}, cfg.PromptPaths())
				assert.True(t, cfg.DryRun())
				assert.True(t, cfg.Verbose())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Build(testContext(), tt.file, tt.flags)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestBuildBaseURLFromEnvironment(t *testing.T) {
	t.Setenv(DefaultBaseURLEnv, "http://proxy.local/v1")

	cfg, err := Build(testContext(), FileConfig{}, Flags{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.local/v1", cfg.BaseURL())
}

func TestBuildPromptPathsAreCopied(t *testing.T) {
	prompts := []string{"a.txt"}
	cfg, err := Build(testContext(), FileConfig{}, Flags{Root: t.TempDir(), Prompts: prompts})
	require.NoError(t, err)

	prompts[0] = "changed.txt"
	got := cfg.PromptPaths()
	got[0] = "mutated.txt"
	assert.Equal(t, []string{"a.txt"}, cfg.PromptPaths(), "run config should not share slices")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name        string
		file        FileConfig
		flags       Flags
		errContains string
	}{
		{
			name:        "missing_root",
			flags:       Flags{},
			errContains: "folder is required",
		},
		{
			name:        "root_does_not_exist",
			flags:       Flags{Root: filepath.Join(dir, "nope")},
			errContains: "does not exist",
		},
		{
			name:        "root_is_file",
			flags:       Flags{Root: file},
			errContains: "is not a directory",
		},
		{
			name:        "negative_max_tokens",
			flags:       Flags{Root: dir, MaxTokens: -1, Changed: changedSet("max-tokens")},
			errContains: "max tokens must not be negative",
		},
		{
			name:        "empty_model_flag",
			flags:       Flags{Root: dir, Model: "", Changed: changedSet("model")},
			errContains: "model is required",
		},
		{
			name:        "temperature_too_high",
			flags:       Flags{Root: dir, Temperature: 2.5, Changed: changedSet("temp")},
			errContains: "temperature must be between 0 and 2",
		},
		{
			name:        "negative_temperature",
			file:        FileConfig{Temperature: floatPtr(-0.1)},
			flags:       Flags{Root: dir},
			errContains: "temperature must be between",
		},
		{
			name:        "negative_timeout",
			file:        FileConfig{TimeoutSeconds: -5},
			flags:       Flags{Root: dir},
			errContains: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(testContext(), tt.file, tt.flags)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should be ErrInvalidConfig: %v", err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
