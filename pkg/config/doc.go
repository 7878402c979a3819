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

/*
Package config manages configuration loading and validation for mdbatch.

	          +-------------+
	          |  RunConfig  |
	          | (immutable) |
	          +------+------+
	                 |
	  defaults < file < env < flags
	                 |
	   +------+------+------+
	   |      |      |      |
	 YAML   JSON    HCL   MDBATCH_*

🎯 Purpose:
- Reads an optional .mdbatch.{yaml,yml,json,hcl} file
- Overlays MDBATCH_ environment variables through koanf
- Loads .env so the API key can live next to the documents
- Produces one validated RunConfig before any document is touched

🔍 Example:

	file, err := config.Discover(ctx, ".")
	if err != nil {
		return err
	}
	file, err = config.ApplyEnv(ctx, file)
	if err != nil {
		return err
	}
	run, err := config.Build(ctx, file, flags)
	if err != nil {
		return err
	}
*/
package config
