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

import (
	"sort"
	"strconv"
)

// Span is a half-open byte range [Start, End) into a source string.
type Span struct {
	Start int
	End   int
}

// NullSpan returns the span used for nodes and tokens with no meaningful
// source position.
func NullSpan() Span {
	return Span{Start: -1, End: -1}
}

// IsValid reports whether the span refers to an actual range in the source.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return s.End - s.Start
}

// slice returns the substring of source that the span covers.
func (s Span) slice(source string) string {
	if !s.IsValid() {
		return ""
	}
	return source[s.Start:s.End]
}

// LineCol is a 0-indexed line/column range, used to report diagnostics and
// to resolve a [Span] to a human-readable position.
type LineCol struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String formats the position the way [ParseError.Error] does:
// "<line>:<col>-<line>:<col>".
func (lc LineCol) String() string {
	return strconv.Itoa(lc.StartLine) + ":" + strconv.Itoa(lc.StartCol) +
		"-" + strconv.Itoa(lc.EndLine) + ":" + strconv.Itoa(lc.EndCol)
}

// line records where a single source line starts and how long its content
// is; its trailing newline, if any, sits at offset start+length and is
// resolved to this line.
type line struct {
	start  int // byte offset of the first byte of the line
	length int // length of the line's content, not counting the newline
}

// SpanMap precomputes line/column lookup tables for a source string so that
// any byte offset can be resolved to a [LineCol] pair for diagnostics.
//
// A SpanMap is built once per parse ([NewSpanMap]) and is read-only
// afterward; it may be freely shared with diagnostics consumers, including
// across goroutines.
type SpanMap struct {
	lines []line
}

// NewSpanMap scans source and records, for each line, its byte range
// (excluding the trailing newline) so that offsets can later be resolved in
// O(log lines).
func NewSpanMap(source string) *SpanMap {
	sm := &SpanMap{}
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			sm.lines = append(sm.lines, line{start: start, length: i - start})
			start = i + 1
		}
	}
	// Final (possibly empty) line with no trailing newline.
	sm.lines = append(sm.lines, line{start: start, length: len(source) - start})
	return sm
}

// lineAt returns the index of the line containing offset, or -1 if offset is
// before the first line or past the end of the source.
func (sm *SpanMap) lineAt(offset int) int {
	if offset < 0 {
		return -1
	}
	i := sort.Search(len(sm.lines), func(i int) bool {
		return sm.lines[i].start+sm.lines[i].length >= offset
	})
	if i >= len(sm.lines) {
		return -1
	}
	return i
}

// Lookup resolves span to a [LineCol] pair, or reports ok == false if
// span.Start could not be resolved (for example, because it is negative or
// past the end of the source the map was built from).
//
// If span.End cannot be resolved, it is clamped to the last known line. A
// single-line span collapses its end column to
// start column + (span length - 1), matching the pragmatic handling
// described for diagnostics in the package design.
func (sm *SpanMap) Lookup(span Span) (lc LineCol, ok bool) {
	startIdx := sm.lineAt(span.Start)
	if startIdx < 0 {
		return LineCol{}, false
	}
	startLine := sm.lines[startIdx]
	lc.StartLine = startIdx
	lc.StartCol = span.Start - startLine.start

	endOffset := span.End - 1
	if endOffset < span.Start {
		endOffset = span.Start
	}
	endIdx := sm.lineAt(endOffset)
	if endIdx < 0 {
		endIdx = len(sm.lines) - 1
		endLine := sm.lines[endIdx]
		lc.EndLine = endIdx
		lc.EndCol = endLine.length
		return lc, true
	}
	if endIdx == startIdx {
		lc.EndLine = startIdx
		length := span.Len()
		if length <= 0 {
			length = 1
		}
		lc.EndCol = lc.StartCol + length - 1
		return lc, true
	}
	endLine := sm.lines[endIdx]
	lc.EndLine = endIdx
	lc.EndCol = endOffset - endLine.start
	return lc, true
}
