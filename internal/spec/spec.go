// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package spec provides access to the end-to-end scenarios named in the
// package design, so they can be exercised as table-driven tests without
// duplicating the literal markdown/HTML strings across test files.
package spec

import (
	_ "embed"
	"encoding/json"
)

// Example is a single named markdown-to-HTML scenario.
type Example struct {
	Markdown string
	HTML     string
	Example  int
	Section  string
}

//go:embed examples.json
var exampleData []byte

// Load returns the end-to-end scenarios.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(exampleData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
