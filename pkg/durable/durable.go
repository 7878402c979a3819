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

// Package durable writes transformation results to disk: whole-file atomic
// replacement of documents and an append-only audit log.
package durable

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

var (
	// ErrLogUnwritable is returned when the audit log cannot be opened or written.
	ErrLogUnwritable = errors.New("cannot write to log file")
	// ErrReplaceFailed is returned when a document cannot be replaced.
	ErrReplaceFailed = errors.New("cannot replace file")
)

// 💾 Writer is the sink for step results. Sinks are chosen per run by the
// orchestrator: Replace for in-place mode, Append for audit mode.
type Writer interface {
	Replace(ctx context.Context, path string, text string) error
	Append(ctx context.Context, logPath string, record Record) error
	CheckWritable(ctx context.Context, logPath string) error
}

// 🗂️ FileWriter implements Writer on the local filesystem
type FileWriter struct{}

// 🏭 NewFileWriter creates a new filesystem writer
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

var _ Writer = (*FileWriter)(nil)

// Replace writes text as the complete new content of path. Readers observe
// either the old content or the new content, never a mix.
func (w *FileWriter) Replace(ctx context.Context, path string, text string) error {
	return Replace(ctx, path, text)
}

// Append adds one record to the audit log at logPath.
func (w *FileWriter) Append(ctx context.Context, logPath string, record Record) error {
	return Append(ctx, logPath, record)
}

// CheckWritable verifies the audit log at logPath can be appended to.
func (w *FileWriter) CheckWritable(ctx context.Context, logPath string) error {
	return CheckWritable(ctx, logPath)
}

// 🔒 Replace atomically replaces path with text, creating parent directories
func Replace(ctx context.Context, path string, text string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("bytes", len(text)).Msg("replacing file")

	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return errors.Errorf("%w %s: creating parent directories: %w", ErrReplaceFailed, path, err)
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	// temp file in the same directory, fsync, rename
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return errors.Errorf("%w %s: %w", ErrReplaceFailed, path, err)
	}

	// atomic.WriteFile keeps the mode of an existing file but not of a new one
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return errors.Errorf("%w %s: setting permissions: %w", ErrReplaceFailed, path, err)
		}
	}

	return nil
}

// CheckWritable verifies that logPath can be opened for appending. The file
// is created if missing and left otherwise untouched.
func CheckWritable(ctx context.Context, logPath string) error {
	f, err := openLog(logPath)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("%w %s: %w", ErrLogUnwritable, logPath, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", logPath).Msg("log file is writable")
	return nil
}

func openLog(logPath string) (*os.File, error) {
	if info, err := os.Stat(logPath); err == nil && info.IsDir() {
		return nil, errors.Errorf("%w %s: is a directory", ErrLogUnwritable, logPath)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerms)
	if err != nil {
		return nil, errors.Errorf("%w %s: %w", ErrLogUnwritable, logPath, err)
	}
	return f, nil
}
