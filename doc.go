// Copyright 2023 Ross Light
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

// Package markdown tokenizes and parses a pragmatic Markdown dialect into a
// tree of document nodes.
//
// The package is organized as a two-stage pipeline:
//
//   - [Tokenize] performs context-sensitive lexing of the source string into
//     a flat stream of [Token] values.
//   - [ParseTokens] (or [Parse], which combines both stages) consumes that
//     stream and produces a tree of [Node] values rooted at the document.
//
// Rendering the resulting tree to HTML is provided by [HTMLRenderer] as a
// concrete, but replaceable, implementation of the node-to-HTML mapping
// described in its documentation.
//
// This is not a CommonMark or GFM implementation: it trades strict spec
// compliance for a smaller, more predictable grammar geared at the needs of
// a single static-site body of prose, matching the dialect described by its
// design document rather than any external spec.
package markdown
