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

import "golang.org/x/net/html/atom"

// TokenKind is an enumeration of the tagged variants a [Token] can hold.
type TokenKind uint16

const (
	TextKind TokenKind = 1 + iota
	NewlineKind
	LineBreakKind
	EscapeKind

	HeadingKind

	SingleAsteriskKind
	DoubleAsteriskKind
	TripleAsteriskKind

	SingleGraveKind
	TripleGraveKind

	SingleUnderscoreKind
	DoubleTildeKind

	TripleHyphenKind
	TripleEqualsKind
	TripleUnderscoreKind

	UListItemKind
	OListItemKind
	BlockQuoteKind

	HTMLOpenTagKind
	HTMLCloseTagKind
	ScriptTagKind

	LinkStartKind
	ImageStartKind
	LinkIntersticeKind
	LinkURIKind
	LinkEndKind

	FootnoteRefKind
	FootnoteDefKind

	EOFKind
)

// Token is a single tagged lexical unit produced by [Tokenize]. Every token
// carries the [Span] of source bytes it was produced from; variant-specific
// payload fields are only meaningful for the kinds documented beside them.
//
// Invariant T1: tokens produced by a single [Tokenize] call are
// non-overlapping and appear in increasing source order.
//
// Delimiter-shaped runs (asterisk/grave/underscore) are produced with a
// delimiter kind wherever they occur, including inside words; the only
// context checks are the line-start ones that turn "* " into a list marker
// and a lone "___" line into TripleUnderscoreKind. The tree builder folds a
// delimiter that finds no closing partner back into text.
type Token struct {
	Kind TokenKind
	Span Span

	// Text is the payload of TextKind.
	Text string

	// Char is the escaped character of EscapeKind.
	Char rune

	// Level is the heading level (1-6) of HeadingKind, the indent column of
	// UListItemKind/OListItemKind, or the run length of BlockQuoteKind.
	Level int

	// Lang is the optional fence language of SingleGraveKind/TripleGraveKind.
	Lang string

	// TagName/Atom/Attrs/SelfClosing are the payload of HTMLOpenTagKind,
	// HTMLCloseTagKind and ScriptTagKind. Atom is the zero value when
	// TagName does not name one of the well-known HTML elements (the
	// open-ended "other" case described in the design notes).
	TagName     string
	TagAtom     atom.Atom
	Attrs       *Attrs
	SelfClosing bool

	// Body is the raw text between <script ...> and </script> for
	// ScriptTagKind.
	Body string

	// URI is the payload of LinkURIKind.
	URI string

	// Ref is the footnote label of FootnoteRefKind/FootnoteDefKind.
	Ref string
}

// TokenHint names the kinds of context that can tell apart scratch-buffer
// content which would otherwise classify to more than one [TokenKind].
// [Tokenize] does not consult it: its per-character handlers pick the
// token kind directly from their own lookback and lookahead checks.
type TokenHint struct {
	kind tokenHintKind

	// indent is the payload of hintUListStart/hintOListStart.
	indent int
	// level is the payload of hintBQuote.
	level int
}

type tokenHintKind uint8

const (
	hintNone tokenHintKind = iota
	hintLinkStart
	hintLinkEnd
	hintUListStart
	hintOListStart
	hintBQuote
	hintInlineBreak
	hintRef
	hintRefLink
)
