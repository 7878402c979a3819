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

// Package source discovers the Markdown documents a run operates on.
package source

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DocumentPattern selects the documents under a root
const DocumentPattern = "**/*.md"

// hiddenMarker prefixes hidden files and directories
const hiddenMarker = "."

// errStop ends a walk early when the consumer stops iterating
var errStop = errors.New("stop enumeration")

// 📄 Document is a file eligible for transformation
type Document struct {
	Path string // Absolute path on disk
	Rel  string // Slash-separated path relative to the run root
}

// IsHidden reports whether any segment of the slash-separated relative path
// starts with the hidden marker.
func IsHidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, hiddenMarker) && seg != "." {
			return true
		}
	}
	return false
}

// 🔍 Enumerate yields the documents under root in walk order, which is stable
// for an unchanged tree. The sequence is lazy and walks the tree again on
// every iteration.
func Enumerate(ctx context.Context, root string) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			yield(Document{}, errors.Errorf("resolving root %s: %w", root, err))
			return
		}

		logger := zerolog.Ctx(ctx)
		logger.Debug().Str("root", abs).Str("pattern", DocumentPattern).Msg("enumerating documents")

		walkErr := doublestar.GlobWalk(os.DirFS(abs), DocumentPattern, func(rel string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if IsHidden(rel) {
				logger.Debug().Str("path", rel).Msg("skipping hidden path")
				return nil
			}
			doc := Document{
				Path: filepath.Join(abs, filepath.FromSlash(rel)),
				Rel:  path.Clean(rel),
			}
			if !yield(doc, nil) {
				return errStop
			}
			return nil
		}, doublestar.WithFilesOnly())

		if walkErr != nil && !errors.Is(walkErr, errStop) {
			yield(Document{}, errors.Errorf("walking %s: %w", abs, walkErr))
		}
	}
}

// Collect drains Enumerate into a slice sorted by relative path, stopping at
// the first error.
func Collect(ctx context.Context, root string) ([]Document, error) {
	var docs []Document
	for doc, err := range Enumerate(ctx, root) {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	slices.SortFunc(docs, func(a, b Document) int {
		return strings.Compare(a.Rel, b.Rel)
	})
	return docs, nil
}
