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

// Package remote applies one instruction to one document through a chat
// completion service, retrying transient failures.
package remote

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

const (
	// DefaultAttempts is the total number of tries, the first included
	DefaultAttempts = 4
	// DefaultBackoffBase is the wait after the first failed attempt; it doubles each time
	DefaultBackoffBase = time.Second
)

// ErrRetriesExhausted wraps the last retriable failure once every attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// 💬 Message is one role-tagged chat message
type Message struct {
	Role    string
	Content string
}

// 📨 CompletionRequest is what a Completer sends to the service
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int      // 0 leaves the service default in place
	Temperature *float32 // nil leaves the service default in place
}

// 🔌 Completer is the service boundary. Implementations report failures the
// retry loop should look at as *Failure.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// 🎯 Request is one instruction application
type Request struct {
	Instruction string
	Text        string
	Model       string
	MaxTokens   int
	Temperature *float32
}

// Sleeper waits d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// 🔁 Policy bounds the retry loop
type Policy struct {
	Attempts    int
	BackoffBase time.Duration
}

// DefaultPolicy returns 4 attempts with waits of 1s, 2s and 4s.
func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, BackoffBase: DefaultBackoffBase}
}

// Backoff returns the wait after the failed attempt with zero-based index n.
func (p Policy) Backoff(n int) time.Duration {
	return p.BackoffBase << n
}

// 🛰️ Client wraps a Completer with the retry policy
type Client struct {
	completer Completer
	policy    Policy
	sleep     Sleeper
}

// Option configures a Client
type Option func(*Client)

// WithPolicy overrides the retry policy.
func WithPolicy(p Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithSleeper overrides how the client waits between attempts.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		c.sleep = s
	}
}

// 🏭 NewClient creates a new retrying client
func NewClient(completer Completer, opts ...Option) *Client {
	c := &Client{
		completer: completer,
		policy:    DefaultPolicy(),
		sleep:     sleepWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy.Attempts < 1 {
		c.policy.Attempts = 1
	}
	return c
}

// BuildRequest turns an instruction application into the two-message exchange.
func BuildRequest(req Request) CompletionRequest {
	return CompletionRequest{
		Model: req.Model,
		Messages: []Message{
			{Role: RoleSystem, Content: req.Instruction},
			{Role: RoleUser, Content: req.Text},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}

// 🚀 Apply sends req and returns the first successful response verbatim.
// Retriable failures are retried with exponential backoff; anything else is
// returned on first occurrence.
func (c *Client) Apply(ctx context.Context, req Request) (string, error) {
	logger := zerolog.Ctx(ctx)
	creq := BuildRequest(req)

	var last error
	for attempt := 0; attempt < c.policy.Attempts; attempt++ {
		out, err := c.completer.Complete(ctx, creq)
		if err == nil {
			if attempt > 0 {
				logger.Debug().Int("attempt", attempt+1).Msg("remote call recovered")
			}
			return out, nil
		}

		if !IsRetriable(err) {
			return "", errors.Errorf("remote call: %w", err)
		}
		last = err

		if attempt+1 >= c.policy.Attempts {
			break
		}

		wait := c.policy.Backoff(attempt)
		logger.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", c.policy.Attempts).
			Dur("wait", wait).
			Msg("retriable remote failure")

		if err := c.sleep(ctx, wait); err != nil {
			return "", errors.Errorf("waiting to retry: %w", err)
		}
	}

	return "", errors.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, c.policy.Attempts, last)
}

// sleepWithContext waits d unless ctx ends first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
