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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultNames are the config file names Discover looks for, in order
var DefaultNames = []string{".mdbatch.yaml", ".mdbatch.yml", ".mdbatch.json", ".mdbatch.hcl"}

// LoadFile loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON (comments and trailing commas allowed)
// - .yaml or .yml for YAML
// - .hcl for HCL
func LoadFile(ctx context.Context, path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		cfg, err = loadJSON(data)
	case ".yaml", ".yml":
		cfg, err = loadYAML(data)
	case ".hcl":
		cfg, err = loadHCL(data, path)
	default:
		return FileConfig{}, errors.Errorf("%w: unsupported file extension %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return FileConfig{}, errors.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	cfg.location = path
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded config file")
	return cfg, nil
}

// 🔍 Discover loads the first of DefaultNames found in dir. A missing file is
// not an error and yields an empty FileConfig.
func Discover(ctx context.Context, dir string) (FileConfig, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return FileConfig{}, errors.Errorf("checking config file %q: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return LoadFile(ctx, path)
	}
	return FileConfig{}, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (FileConfig, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return FileConfig{}, errors.Errorf("parsing JSON: %w", err)
	}

	var cfg FileConfig
	decoder := json.NewDecoder(bytes.NewReader(std))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return FileConfig{}, errors.Errorf("parsing JSON: %w", err)
	}
	return cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (FileConfig, error) {
	var cfg FileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return FileConfig{}, errors.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return FileConfig{}, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_model": cty.StringVal(DefaultModel),
		},
	}

	var cfg FileConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return FileConfig{}, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return cfg, nil
}
