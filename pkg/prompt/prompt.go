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

// Package prompt resolves and loads the ordered instruction chain applied to
// every document.
package prompt

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPattern selects prompt files inside the prompt directory
const DefaultPattern = "*.txt"

var (
	// ErrNoPrompts is returned when no instruction was given and the default
	// directory holds none.
	ErrNoPrompts = errors.New("no prompts found")
	// ErrPromptNotFound is returned when an explicit prompt path does not exist.
	ErrPromptNotFound = errors.New("prompt file not found")
)

// 📜 Instruction is one step of the chain
type Instruction struct {
	Name string // Base name of the source file, used for audit labels
	Path string // Absolute path of the source file
	Text string // Instruction text, sent verbatim
}

// IsEmpty reports whether a resolved prompt set has nothing to apply.
func IsEmpty(paths []string) bool {
	return len(paths) == 0
}

// 🎯 Resolve returns the prompt files to use, in application order. Explicit
// paths are kept in the given order and must all exist. Without explicit
// paths, every file in dir matching DefaultPattern is used in lexicographic
// order.
func Resolve(ctx context.Context, explicit []string, dir string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(explicit) > 0 {
		out := make([]string, 0, len(explicit))
		for _, p := range explicit {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, errors.Errorf("resolving prompt %s: %w", p, err)
			}
			info, err := os.Stat(abs)
			if err != nil {
				return nil, errors.Errorf("%w: %s", ErrPromptNotFound, p)
			}
			if info.IsDir() {
				return nil, errors.Errorf("%w: %s is a directory", ErrPromptNotFound, p)
			}
			out = append(out, abs)
		}
		return out, nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving prompt directory %s: %w", dir, err)
	}

	logger.Debug().Str("dir", absDir).Str("pattern", DefaultPattern).Msg("searching default prompt directory")

	var matches []string
	if info, statErr := os.Stat(absDir); statErr == nil && info.IsDir() {
		matches, err = doublestar.Glob(os.DirFS(absDir), DefaultPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %s: %w", absDir, err)
		}
	}

	if IsEmpty(matches) {
		return nil, errors.Errorf("%w in %s (pattern %s)", ErrNoPrompts, absDir, DefaultPattern)
	}

	slices.Sort(matches)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(absDir, filepath.FromSlash(m)))
	}
	return out, nil
}

// 📥 Load reads every prompt file once, preserving order.
func Load(ctx context.Context, paths []string) ([]Instruction, error) {
	logger := zerolog.Ctx(ctx)

	out := make([]Instruction, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Errorf("reading prompt %s: %w", p, err)
		}
		logger.Debug().Str("prompt", p).Int("bytes", len(data)).Msg("loaded prompt")
		out = append(out, Instruction{
			Name: filepath.Base(p),
			Path: p,
			Text: string(data),
		})
	}
	return out, nil
}

// Describe names the prompt files without reading them. Text is left empty.
func Describe(paths []string) []Instruction {
	out := make([]Instruction, 0, len(paths))
	for _, p := range paths {
		out = append(out, Instruction{Name: filepath.Base(p), Path: p})
	}
	return out
}
