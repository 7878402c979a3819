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

package remote

import (
	"fmt"
	"net/http"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind tags a classified remote failure
type Kind int

const (
	KindRateLimited Kind = iota + 1 // Service asked us to slow down
	KindConnection                  // Service could not be reached
	KindStatus                      // Service answered with an error status
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// retriableStatus lists the status codes worth another attempt
var retriableStatus = map[int]bool{
	http.StatusTooManyRequests: true,
	http.StatusBadGateway:      true,
}

// ⚠️ Failure is the closed set of errors a Completer reports for the retry
// loop. Code is only meaningful for KindStatus.
type Failure struct {
	Kind Kind
	Code int
	Err  error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindStatus:
		return fmt.Sprintf("remote status %d: %v", f.Code, f.Err)
	default:
		return fmt.Sprintf("remote %s: %v", f.Kind, f.Err)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retriable reports whether another attempt may succeed.
func (f *Failure) Retriable() bool {
	switch f.Kind {
	case KindRateLimited, KindConnection:
		return true
	case KindStatus:
		return retriableStatus[f.Code]
	default:
		return false
	}
}

// RateLimited builds a rate-limit failure.
func RateLimited(err error) *Failure {
	return &Failure{Kind: KindRateLimited, Code: http.StatusTooManyRequests, Err: err}
}

// ConnectionFailed builds a connectivity failure.
func ConnectionFailed(err error) *Failure {
	return &Failure{Kind: KindConnection, Err: err}
}

// StatusFailed builds a status failure carrying code.
func StatusFailed(code int, err error) *Failure {
	return &Failure{Kind: KindStatus, Code: code, Err: err}
}

// IsRetriable reports whether err carries a retriable Failure.
func IsRetriable(err error) bool {
	var f *Failure
	if errors.As(err, &f) {
		return f.Retriable()
	}
	return false
}
