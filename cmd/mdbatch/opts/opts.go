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

package opts

// RootOpts holds the values bound to the root command's flags
type RootOpts struct {
	ConfigFile  string
	Debug       bool
	Prompts     []string
	Model       string
	MaxTokens   int
	Temperature float64
	Inplace     bool
	NoInplace   bool
	LogFile     string
	DryRun      bool
	Verbose     bool
}

// InplaceMode reports whether results replace the documents. --no-inplace
// wins over --inplace.
func (o *RootOpts) InplaceMode() bool {
	return o.Inplace && !o.NoInplace
}
