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

package operation

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/mdbatch/pkg/durable"
	"github.com/walteh/mdbatch/pkg/log"
	"github.com/walteh/mdbatch/pkg/prompt"
	"github.com/walteh/mdbatch/pkg/remote"
	"github.com/walteh/mdbatch/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for mdbatch runs
type Operator interface {
	// Run processes every document of the run root, or previews them
	Run(ctx context.Context) (Summary, error)
}

// 🔧 Config is the part of the run configuration the orchestrator reads
type Config interface {
	Root() string
	PromptDir() string
	Model() string
	MaxTokens() int
	Temperature() *float32
	Inplace() bool
	LogFile() string
	DryRun() bool
	Verbose() bool
}

// 🤖 Transformer applies one instruction to one text
type Transformer interface {
	Apply(ctx context.Context, req remote.Request) (string, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	Config       Config
	Instructions []prompt.Instruction
	// Transformer may be nil for preview runs
	Transformer Transformer
	Writer      durable.Writer
}

// 📊 Summary counts what a run did
type Summary struct {
	Documents int
	Steps     int
	Preview   bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Writer == nil {
		return nil, errors.Errorf("writer is required")
	}
	if opts.Transformer == nil && !opts.Config.DryRun() {
		return nil, errors.Errorf("transformer is required")
	}
	return &operator{
		config:       opts.Config,
		instructions: append([]prompt.Instruction(nil), opts.Instructions...),
		transformer:  opts.Transformer,
		writer:       opts.Writer,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config       Config
	instructions []prompt.Instruction
	transformer  Transformer
	writer       durable.Writer
}

// 🚀 Run processes documents one at a time, steps in order. The first error
// aborts the run; completed steps are not rolled back. Console output goes to
// the logger carried by ctx (see log.NewContext).
func (o *operator) Run(ctx context.Context) (Summary, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	if len(o.instructions) == 0 {
		return Summary{}, errors.Errorf("%w: no instructions supplied (default directory %s)", prompt.ErrNoPrompts, o.config.PromptDir())
	}

	docs, err := source.Collect(ctx, o.config.Root())
	if err != nil {
		return Summary{}, errors.Errorf("listing documents: %w", err)
	}

	if o.config.DryRun() {
		rels := make([]string, 0, len(docs))
		for _, d := range docs {
			rels = append(rels, d.Rel)
		}
		if err := console.Preview(ctx, rels, len(o.instructions)); err != nil {
			return Summary{}, errors.Errorf("rendering preview: %w", err)
		}
		return Summary{Documents: len(docs), Preview: true}, nil
	}

	if !o.config.Inplace() {
		if err := o.writer.CheckWritable(ctx, o.config.LogFile()); err != nil {
			return Summary{}, err
		}
	}

	logger.Debug().
		Int("documents", len(docs)).
		Int("prompts", len(o.instructions)).
		Bool("inplace", o.config.Inplace()).
		Msg("starting run")

	summary := Summary{}
	for _, doc := range docs {
		steps, err := o.processDocument(ctx, console, doc)
		summary.Steps += steps
		if err != nil {
			return summary, err
		}
		summary.Documents++
	}

	return summary, nil
}

// processDocument applies the whole chain to one document and returns how
// many steps completed.
func (o *operator) processDocument(ctx context.Context, console *log.Logger, doc source.Document) (int, error) {
	logger := zerolog.Ctx(ctx).With().Str("document", doc.Rel).Logger()

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", doc.Rel, err)
	}

	current := string(data)
	total := len(o.instructions)

	for i, ins := range o.instructions {
		if err := ctx.Err(); err != nil {
			return i, errors.Errorf("processing %s: %w", doc.Rel, err)
		}

		out, err := o.transformer.Apply(ctx, remote.Request{
			Instruction: ins.Text,
			Text:        current,
			Model:       o.config.Model(),
			MaxTokens:   o.config.MaxTokens(),
			Temperature: o.config.Temperature(),
		})
		if err != nil {
			return i, errors.Errorf("applying %s to %s: %w", ins.Name, doc.Rel, err)
		}

		if err := o.persist(ctx, doc, ins, out); err != nil {
			return i, err
		}

		if o.config.Verbose() {
			console.LogStep(ctx, log.Step{
				Document: doc.Rel,
				Prompt:   ins.Name,
				Index:    i + 1,
				Total:    total,
				Before:   current,
				After:    out,
			})
		}

		logger.Debug().Str("prompt", ins.Name).Int("pass", i+1).Msg("step persisted")
		current = out
	}

	return total, nil
}

// persist writes one step result to the sink chosen for the run
func (o *operator) persist(ctx context.Context, doc source.Document, ins prompt.Instruction, text string) error {
	if o.config.Inplace() {
		if err := o.writer.Replace(ctx, doc.Path, text); err != nil {
			return errors.Errorf("writing %s: %w", doc.Rel, err)
		}
		return nil
	}

	if err := o.writer.Append(ctx, o.config.LogFile(), durable.Record{
		Document:    doc.Rel,
		Instruction: ins.Name,
		Text:        text,
	}); err != nil {
		return errors.Errorf("logging %s: %w", doc.Rel, err)
	}
	return nil
}
