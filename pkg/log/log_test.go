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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_steps",
			op: func(t *testing.T, logger *Logger) {
				logger.LogStep(context.Background(), Step{Document: "a.md", Prompt: "p1.txt", Index: 1, Total: 2})
				logger.LogStep(context.Background(), Step{Document: "a.md", Prompt: "p2.txt", Index: 2, Total: 2})
			},
			wantLogs: []string{
				"a.md: pass 1/2",
				"a.md: pass 2/2",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Successf("done %d", 2)
			},
			wantLogs: []string{
				"ℹ️  info test",
				"✅ done 2",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("transforming documents")
			},
			wantLogs: []string{
				"mdbatch • transforming documents",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLogStepCountsEditsAtDebug(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var records bytes.Buffer
	zlog := zerolog.New(&records).Level(zerolog.DebugLevel)
	logger := New(io.Discard, zlog)

	logger.LogStep(context.Background(), Step{
		Document: "a.md",
		Prompt:   "p1.txt",
		Index:    1,
		Total:    1,
		Before:   "hello world",
		After:    "hello brave world",
	})

	assert.Contains(t, records.String(), `"edits":1`)
	assert.Contains(t, records.String(), `"document":"a.md"`)
}

func TestCountEdits(t *testing.T) {
	dmp := diffmatchpatch.New()
	assert.Equal(t, 0, countEdits(dmp.DiffMain("same", "same", false)))
	assert.Equal(t, 2, countEdits(dmp.DiffMain("abc", "xyz", false)))
}

func TestPreview(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	defer func() {
		color.NoColor = false
		pterm.EnableStyling()
	}()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	require.NoError(t, logger.Preview(context.Background(), []string{"a.md", "sub/b.md"}, 2))

	out := buf.String()
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "sub/b.md")
	assert.Contains(t, out, "Prompt count: 2")
}

func TestPreviewNoDocuments(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	require.NoError(t, logger.Preview(context.Background(), nil, 3))
	assert.Contains(t, buf.String(), "Prompt count: 3")
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "a missing logger falls back to a silent one")
	assert.NotPanics(t, func() { fallback.Info("dropped") })
}
