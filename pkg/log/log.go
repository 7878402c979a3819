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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎯 Step describes one instruction applied to one document
type Step struct {
	Document string // Document path relative to the run root
	Prompt   string // Instruction name
	Index    int    // 1-based position in the chain
	Total    int    // Chain length
	Before   string // Input text, only used for debug edit counts
	After    string // Output text, only used for debug edit counts
}

// 🎯 Logger pairs human console output with structured zerolog records
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing human output to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a silent one when ctx
// carries none
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return New(io.Discard, zerolog.Nop())
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatStep formats a step notice for display
func formatStep(s Step) string {
	return fmt.Sprintf("%s: pass %s",
		color.New(color.FgCyan).Sprint(s.Document),
		color.New(color.Bold).Sprintf("%d/%d", s.Index, s.Total))
}

// 📝 LogStep prints a progress line for one step
func (l *Logger) LogStep(ctx context.Context, s Step) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatStep(s))

	ev := l.zlog.Debug()
	if ev.Enabled() {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(s.Before, s.After, false)
		ev = ev.Int("edits", countEdits(diffs))
	}
	ev.Str("document", s.Document).
		Str("prompt", s.Prompt).
		Int("pass", s.Index).
		Int("total", s.Total).
		Msg("step complete")
}

// countEdits counts the inserted and deleted segments of a diff
func countEdits(diffs []diffmatchpatch.Diff) int {
	n := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			n++
		}
	}
	return n
}

// 📋 Preview lists the documents a run would touch and the chain length
func (l *Logger) Preview(ctx context.Context, documents []string, promptCount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pterm.Fprintln(l.console, pterm.Bold.Sprint("Documents:"))

	if len(documents) > 0 {
		items := make([]pterm.BulletListItem, 0, len(documents))
		for _, d := range documents {
			items = append(items, pterm.BulletListItem{Level: 0, Text: d})
		}
		list, err := pterm.DefaultBulletList.WithItems(items).Srender()
		if err != nil {
			return err
		}
		pterm.Fprint(l.console, list)
	}

	pterm.Fprintln(l.console, fmt.Sprintf("Prompt count: %d", promptCount))

	l.zlog.Info().
		Int("documents", len(documents)).
		Int("prompts", promptCount).
		Msg("preview")
	return nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("mdbatch")
	fmt.Fprintf(l.console, "%s %s\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
