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

// Package openai adapts an OpenAI-compatible chat completion API to the
// remote.Completer boundary.
package openai

import (
	"context"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/walteh/mdbatch/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

const defaultTimeout = 120 * time.Second

var (
	// ErrMissingAPIKey is returned when no API key was configured
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrEmptyResponse is returned when the service answered without a choice
	ErrEmptyResponse = errors.New("empty response")
)

// 🔧 Options configures the adapter
type Options struct {
	APIKey  string
	BaseURL string        // Empty keeps the library default
	Timeout time.Duration // Per-request HTTP timeout; 0 uses the default
}

// 🤖 Completer sends chat completions through go-openai
type Completer struct {
	client *goopenai.Client
}

var _ remote.Completer = (*Completer)(nil)

// 🏭 New creates a new OpenAI completer
func New(opts Options) (*Completer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Completer{client: goopenai.NewClientWithConfig(cfg)}, nil
}

// Complete sends one chat completion request and returns the first choice.
func (c *Completer) Complete(ctx context.Context, req remote.CompletionRequest) (string, error) {
	logger := zerolog.Ctx(ctx)

	creq := goopenai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: make([]goopenai.ChatCompletionMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		creq.Messages = append(creq.Messages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	// omitted from the payload when zero
	creq.MaxCompletionTokens = req.MaxTokens
	if req.Temperature != nil {
		creq.Temperature = wireTemperature(*req.Temperature)
	}

	logger.Debug().
		Str("model", req.Model).
		Int("messages", len(creq.Messages)).
		Int("max_tokens", req.MaxTokens).
		Bool("temperature_set", req.Temperature != nil).
		Msg("sending chat completion")

	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", classify(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.Errorf("%w from model %s", ErrEmptyResponse, req.Model)
	}

	return resp.Choices[0].Message.Content, nil
}

// classify maps library errors onto the remote failure set. Errors caused by
// the caller's own context are returned untouched.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return statusFailure(apiErr.HTTPStatusCode, err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return statusFailure(reqErr.HTTPStatusCode, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return remote.ConnectionFailed(err)
	}

	return err
}

// wireTemperature maps an explicit temperature onto the library field, which
// drops a literal zero from the payload.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func statusFailure(code int, err error) *remote.Failure {
	if code == http.StatusTooManyRequests {
		return remote.RateLimited(err)
	}
	return remote.StatusFailed(code, err)
}
