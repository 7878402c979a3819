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
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix marks environment variables that override config file values
const EnvPrefix = "MDBATCH_"

// ErrMissingAPIKey is returned when no API key is set in the environment or .env
var ErrMissingAPIKey = errors.New("missing api key")

// 🌱 ApplyEnv overlays MDBATCH_* variables onto cfg. MDBATCH_MAX_TOKENS maps to
// max_tokens and so on; unknown keys and empty values are ignored.
func ApplyEnv(ctx context.Context, cfg FileConfig) (FileConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		// empty values count as unset
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil); err != nil {
		return FileConfig{}, errors.Errorf("loading environment: %w", err)
	}

	if len(k.Keys()) == 0 {
		return cfg, nil
	}

	out := cfg
	if err := k.Unmarshal("", &out); err != nil {
		return FileConfig{}, errors.Errorf("%w: decoding %s variables: %w", ErrInvalidConfig, EnvPrefix, err)
	}
	out.location = cfg.location

	zerolog.Ctx(ctx).Debug().Strs("keys", k.Keys()).Msg("applied environment overrides")
	return out, nil
}

// 🔑 LoadDotEnv loads .env files from the given directories into the process
// environment. Variables already set win; missing files and entries that are
// not directories are skipped, leaving folder validation to Build.
func LoadDotEnv(ctx context.Context, dirs ...string) error {
	logger := zerolog.Ctx(ctx)
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Debug().Str("dir", dir).Msg("skipping .env lookup")
			continue
		}
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Errorf("checking %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Errorf("loading %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("loaded .env")
	}
	return nil
}

// APIKey returns the value of the configured key variable.
func (c *RunConfig) APIKey() (string, error) {
	v := strings.TrimSpace(os.Getenv(c.apiKeyEnv))
	if v == "" {
		return "", errors.Errorf("%w: set %s in the environment or a .env file", ErrMissingAPIKey, c.apiKeyEnv)
	}
	return v, nil
}
