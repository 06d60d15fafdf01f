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
	"strings"
	"testing"
)

// Property P3: emphasis markers resolve symmetrically for the
// disambiguation cases named in the triple-asterisk Open Question.
func TestParseEmphasis(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   NodeKind
	}{
		{"Bold", "**a**", BoldKind},
		{"Italic", "*a*", ItalicKind},
		{"BoldItalicSimultaneousClose", "***a***", BoldKind},
		{"ItalicClosesFirst", "***a*b**", BoldKind},
		{"BoldClosesFirst", "***a**b*", ItalicKind},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			nodes, err := Parse(test.source)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			// Without a blank line the inline run is not wrapped in a
			// Paragraph.
			if len(nodes) == 0 {
				t.Fatalf("Parse(%q): no nodes", test.source)
			}
			if got := nodes[0].Kind; got != test.kind {
				t.Errorf("Parse(%q): first node kind = %v; want %v", test.source, got, test.kind)
			}
		})
	}
}

func TestParseBoldItalicNoClosingFallsBack(t *testing.T) {
	nodes, err := Parse("***unterminated")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if len(nodes) == 0 {
		t.Fatalf("no nodes")
	}
	outer := nodes[0]
	if outer.Kind != BoldKind {
		t.Fatalf("outer kind = %v; want BoldKind (preserved fallback)", outer.Kind)
	}
	if len(outer.Children) == 0 || outer.Children[0].Kind != ItalicKind {
		t.Fatalf("outer.Children[0] = %+v; want ItalicKind", outer.Children)
	}
}

func TestParseUnorderedListItemsAreDiv(t *testing.T) {
	nodes, err := Parse("- a\n- b\n")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	var list *Node
	for _, n := range nodes {
		if n.Kind == UListKind {
			list = n
		}
	}
	if list == nil {
		t.Fatalf("no UList node found in %+v", nodes)
	}
	if len(list.Children) != 2 {
		t.Fatalf("len(list.Children) = %d; want 2", len(list.Children))
	}
	for i, item := range list.Children {
		if item.Kind != DivKind {
			t.Errorf("item %d kind = %v; want DivKind", i, item.Kind)
		}
	}
}

func TestParseNestedList(t *testing.T) {
	nodes, err := Parse("- a\n - b\n- c\n")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	var list *Node
	for _, n := range nodes {
		if n.Kind == UListKind {
			list = n
		}
	}
	if list == nil {
		t.Fatalf("no UList node found")
	}
	if len(list.Children) != 2 {
		t.Fatalf("len(top-level items) = %d; want 2 (nested item folded into first)", len(list.Children))
	}
	first := list.Children[0]
	var foundNested bool
	for _, c := range first.Children {
		if c.Kind == UListKind {
			foundNested = true
		}
	}
	if !foundNested {
		t.Errorf("first item children = %+v; want a nested UListKind", first.Children)
	}
}

func TestParseQuoteItemsAreParagraph(t *testing.T) {
	nodes, err := Parse("> a\n> b\n")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	var quote *Node
	for _, n := range nodes {
		if n.Kind == QuoteKind {
			quote = n
		}
	}
	if quote == nil {
		t.Fatalf("no Quote node found in %+v", nodes)
	}
	for i, item := range quote.Children {
		if item.Kind != ParagraphKind {
			t.Errorf("quote item %d kind = %v; want ParagraphKind", i, item.Kind)
		}
	}
}

func TestParseBlankLineInfersParagraphs(t *testing.T) {
	nodes, err := Parse("one\n\ntwo\n\n")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	var paragraphs int
	for _, n := range nodes {
		if n.Kind == ParagraphKind {
			paragraphs++
		}
	}
	if paragraphs != 2 {
		t.Errorf("paragraph count = %d; want 2", paragraphs)
	}
}

func TestParseCodeBodyNotRecursivelyParsed(t *testing.T) {
	nodes, err := Parse("`**not bold**`")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if len(nodes) == 0 {
		t.Fatalf("no nodes")
	}
	code := nodes[0]
	if code.Kind != CodeKind {
		t.Fatalf("first child kind = %v; want CodeKind", code.Kind)
	}
	if len(code.Children) != 1 || code.Children[0].Kind != TextNodeKind {
		t.Fatalf("code.Children = %+v; want single literal Text child", code.Children)
	}
	if code.Children[0].Text != "**not bold**" {
		t.Errorf("code literal = %q; want %q", code.Children[0].Text, "**not bold**")
	}
}

func TestParseUnclosedHTMLTagError(t *testing.T) {
	_, err := Parse("<div>unclosed")
	if err == nil {
		t.Fatal("Parse: err = nil; want UnclosedHTMLTag error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T; want *ParseError", err)
	}
	if pe.Kind != UnclosedHTMLTag {
		t.Errorf("ParseError.Kind = %v; want UnclosedHTMLTag", pe.Kind)
	}
}

func TestParseUnderlineTag(t *testing.T) {
	nodes, err := Parse("<u>hi</u>")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	var found bool
	for _, n := range nodes {
		var visit func(*Node)
		visit = func(node *Node) {
			if node.Kind == UnderlineKind {
				found = true
			}
			for _, c := range node.Children {
				visit(c)
			}
		}
		visit(n)
	}
	if !found {
		t.Errorf("Parse(%q): no UnderlineKind node found in %+v", "<u>hi</u>", nodes)
	}
}

func TestParseBoundedRecursionDepth(t *testing.T) {
	src := strings.Repeat("<div>", maxTreeDepth+4) + "a" + strings.Repeat("</div>", maxTreeDepth+4)
	nodes, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: unexpected error (should degrade, not fail): %v", err)
	}
	if len(nodes) == 0 {
		t.Error("Parse: no nodes returned for deeply nested source")
	}
}

func TestParseFootnoteDegradesToText(t *testing.T) {
	nodes, err := Parse("see[^1]\n\n[^1]: a note\n")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if len(nodes) == 0 {
		t.Fatal("Parse: no nodes returned")
	}
	if p := nodes[0]; p.Kind != ParagraphKind || len(p.Children) != 1 ||
		p.Children[0].Kind != TextNodeKind || p.Children[0].Text != "see[^1]" {
		t.Errorf("nodes[0] = %+v; want Paragraph holding the literal Text %q", p, "see[^1]")
	}
}
