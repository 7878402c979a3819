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
Package operation runs the instruction chain over every document of a run.

	+-------------+      +-------------+      +-------------+
	|   source    | ---> |  operation  | ---> |   durable   |
	| (documents) |      | (chaining)  |      | (sinks)     |
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     |   remote    |
	                     | (transform) |
	                     +-------------+

🎯 Purpose:
- Enumerates the documents under the run root
- Applies each instruction in order, feeding every output into the next step
- Persists after every step: replace in place, or append to the audit log
- Previews a run without reading documents or calling the service

🔄 Flow per document:
1. Read the original text once
2. For each instruction: transform, persist, carry the output forward
3. Move to the next document; the first failure aborts the run

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:       runCfg,
		Instructions: instructions,
		Transformer:  remote.NewClient(completer),
		Writer:       durable.NewFileWriter(),
	})
	if err != nil {
		return err
	}
	ctx = log.NewContext(ctx, log.New(os.Stdout, logger))
	summary, err := op.Run(ctx)
*/
package operation
