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

package markdown

// FootnoteMatcher is implemented by anything that can be checked for the
// presence of a footnote definition.
type FootnoteMatcher interface {
	MatchFootnote(ref string) bool
}

// FootnoteDefinition is the data of a "[^ref]:" footnote definition: the
// literal body text that followed the marker on its line.
type FootnoteDefinition struct {
	Body string
}

// FootnoteMap is a mapping of footnote reference labels to their
// definitions. Footnote tokens have no dedicated tree node (the tree
// builder folds every FootnoteRef/FootnoteDef into plain text), so
// FootnoteMap is built directly from the token stream, the same stage a
// consumer would use to resolve "[^ref]" citations against their
// definitions before or alongside tree building.
type FootnoteMap map[string]FootnoteDefinition

// MatchFootnote reports whether ref has a definition in the map.
func (m FootnoteMap) MatchFootnote(ref string) bool {
	_, ok := m[ref]
	return ok
}

// Extract scans tokens for FootnoteDef markers and adds their definitions
// to the map. A definition's body is the literal text of the tokens
// between the marker and the next Newline or EOF. In case of conflicts,
// Extract keeps the first definition in source order and ignores later
// ones.
func (m FootnoteMap) Extract(tokens []Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != FootnoteDefKind {
			continue
		}
		if _, exists := m[tok.Ref]; tok.Ref == "" || exists {
			continue
		}
		end := i + 1
		for end < len(tokens) && tokens[end].Kind != NewlineKind && tokens[end].Kind != EOFKind {
			end++
		}
		m[tok.Ref] = FootnoteDefinition{Body: literalOfRange(tokens[i+1 : end])}
	}
}
