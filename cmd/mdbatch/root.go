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

package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mdbatch/cmd/mdbatch/commands"
	"github.com/walteh/mdbatch/cmd/mdbatch/opts"
	"github.com/walteh/mdbatch/pkg/config"
	"github.com/walteh/mdbatch/pkg/durable"
	"github.com/walteh/mdbatch/pkg/log"
	"github.com/walteh/mdbatch/pkg/operation"
	"github.com/walteh/mdbatch/pkg/prompt"
	"github.com/walteh/mdbatch/pkg/remote"
	"github.com/walteh/mdbatch/pkg/remote/openai"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the mdbatch command with its subcommands
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "mdbatch [flags] <folder>",
		Short: "Apply an ordered chain of prompts to every markdown file in a folder",
		Long: `mdbatch sends every non-hidden *.md file under <folder> through each prompt
in order. Each prompt's output becomes the next prompt's input.

By default results replace the documents in place after every step. With
--no-inplace the documents are left alone and every step is appended to the
log file instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, o.Debug)
			return run(ctx, o, args[0], cmd.Flags().Changed, stdout)
		},
	}

	addRootFlags(cmd, o)
	cmd.AddCommand(commands.NewVersionCmd())

	return cmd
}

// addRootFlags adds the run flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .mdbatch.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")

	flags := cmd.Flags()
	flags.StringArrayVarP(&o.Prompts, "prompts", "p", nil, "prompt file, repeatable, applied in the given order (default: prompts/*.txt)")
	flags.StringVar(&o.Model, "model", config.DefaultModel, "model name")
	flags.IntVar(&o.MaxTokens, "max-tokens", 0, "maximum completion tokens (0 leaves the service default)")
	flags.Float64Var(&o.Temperature, "temp", 0, "sampling temperature (default: service default)")
	flags.BoolVar(&o.Inplace, "inplace", true, "replace documents with each step's output")
	flags.BoolVar(&o.NoInplace, "no-inplace", false, "leave documents untouched and append every step to the log file")
	flags.StringVar(&o.LogFile, "log-file", config.DefaultLogFile, "audit log path, used with --no-inplace")
	flags.BoolVar(&o.DryRun, "dry-run", false, "list the documents and prompt count without calling the service")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "print a line per completed step")

	cmd.MarkFlagsMutuallyExclusive("inplace", "no-inplace")
}

// setupLogging attaches a zerolog logger to ctx
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// run resolves configuration and prompts, then hands the run to the operator
func run(ctx context.Context, o *opts.RootOpts, root string, changed func(string) bool, stdout io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	if err := config.LoadDotEnv(ctx, cwd, root); err != nil {
		return err
	}

	var file config.FileConfig
	if o.ConfigFile != "" {
		file, err = config.LoadFile(ctx, o.ConfigFile)
	} else {
		file, err = config.Discover(ctx, cwd)
	}
	if err != nil {
		return err
	}

	file, err = config.ApplyEnv(ctx, file)
	if err != nil {
		return err
	}

	runCfg, err := config.Build(ctx, file, config.Flags{
		Root:        root,
		Prompts:     o.Prompts,
		Model:       o.Model,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
		Inplace:     o.InplaceMode(),
		LogFile:     o.LogFile,
		DryRun:      o.DryRun,
		Verbose:     o.Verbose,
		Changed:     changed,
	})
	if err != nil {
		return err
	}

	paths, err := prompt.Resolve(ctx, runCfg.PromptPaths(), runCfg.PromptDir())
	if err != nil {
		return err
	}

	// preview only names the prompts
	var instructions []prompt.Instruction
	if runCfg.DryRun() {
		instructions = prompt.Describe(paths)
	} else {
		instructions, err = prompt.Load(ctx, paths)
		if err != nil {
			return err
		}
	}

	console := log.New(stdout, *zerolog.Ctx(ctx))
	ctx = log.NewContext(ctx, console)

	if runCfg.Verbose() {
		printBanner(console, runCfg, instructions)
	}

	var transformer operation.Transformer
	if !runCfg.DryRun() {
		key, err := runCfg.APIKey()
		if err != nil {
			return err
		}
		completer, err := openai.New(openai.Options{
			APIKey:  key,
			BaseURL: runCfg.BaseURL(),
			Timeout: time.Duration(runCfg.TimeoutSeconds()) * time.Second,
		})
		if err != nil {
			return errors.Errorf("creating completion client: %w", err)
		}
		transformer = remote.NewClient(completer)
	}

	op, err := operation.New(operation.Options{
		Config:       runCfg,
		Instructions: instructions,
		Transformer:  transformer,
		Writer:       durable.NewFileWriter(),
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	summary, err := op.Run(ctx)
	if err != nil {
		return err
	}

	if runCfg.Verbose() && !summary.Preview {
		console.Successf("processed %d documents in %d steps", summary.Documents, summary.Steps)
	}

	return nil
}

// printBanner echoes the resolved run settings
func printBanner(console *log.Logger, cfg *config.RunConfig, instructions []prompt.Instruction) {
	names := make([]string, 0, len(instructions))
	for _, in := range instructions {
		names = append(names, in.Name)
	}

	temperature := "default"
	if t := cfg.Temperature(); t != nil {
		temperature = strconv.FormatFloat(float64(*t), 'g', -1, 32)
	}

	console.Header("transforming documents")
	console.Infof("Folder: %s", cfg.Root())
	console.Infof("Prompts: %s", strings.Join(names, ", "))
	console.Infof("Model: %s Temperature: %s", cfg.Model(), temperature)
}
