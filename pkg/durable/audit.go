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

package durable

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// recordSeparator closes every audit record
const recordSeparator = "\n---\n"

// 📝 Record is one audit log entry: the output of one instruction applied to
// one document.
type Record struct {
	Document    string // Document path relative to the run root
	Instruction string // Instruction name
	Text        string // Produced text
}

// Format renders the record exactly as it is stored in the log:
//
//	=== <document> | prompt: <instruction> ===
//	<text, trailing newlines collapsed to one>
//
//	---
func (r Record) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s | prompt: %s ===\n", r.Document, r.Instruction)
	sb.WriteString(strings.TrimRight(r.Text, "\n"))
	sb.WriteString("\n")
	sb.WriteString(recordSeparator)
	return sb.String()
}

// 📒 Append writes record to the end of logPath. The file is opened, written
// and closed per call; prior records are never touched.
func Append(ctx context.Context, logPath string, record Record) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("log", logPath).
		Str("document", record.Document).
		Str("prompt", record.Instruction).
		Msg("appending audit record")

	f, err := openLog(logPath)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(record.Format()); err != nil {
		f.Close()
		return errors.Errorf("%w %s: %w", ErrLogUnwritable, logPath, err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("%w %s: %w", ErrLogUnwritable, logPath, err)
	}

	return nil
}
