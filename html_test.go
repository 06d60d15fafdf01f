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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wscpublish/markdown/internal/normhtml"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"PlainText", "hello world", "hello world"},
		{"Bold", "**a**", "<strong>a</strong>"},
		{"Italic", "*a*", "<em>a</em>"},
		{"Strikethrough", "~~a~~", "<s>a</s>"},
		{"Code", "`a`", "<code>a</code>"},
		{"HorizontalRule", "---", "<hr>"},
		{"Underline", "<u>a</u>", "<u>a</u>"},
		{"Heading", "## Two", "<h2>Two</h2>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			nodes, err := Parse(test.source)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			buf := new(bytes.Buffer)
			if err := RenderHTML(buf, nodes); err != nil {
				t.Fatal("RenderHTML:", err)
			}
			got := string(normhtml.NormalizeHTML(buf.Bytes()))
			want := string(normhtml.NormalizeHTML([]byte(test.want)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Input: %q\nOutput (-want +got):\n%s", test.source, diff)
			}
		})
	}
}

func TestHTMLRendererIgnoreRaw(t *testing.T) {
	nodes, err := Parse("<div>x</div>\n\nplain")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	buf := new(bytes.Buffer)
	r := &HTMLRenderer{IgnoreRaw: true}
	if err := r.Render(buf, nodes); err != nil {
		t.Fatal("Render:", err)
	}
	got := string(normhtml.NormalizeHTML(buf.Bytes()))
	want := string(normhtml.NormalizeHTML([]byte("plain")))
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Output (-want +got):\n%s", diff)
	}
}

func TestHTMLRendererFilterTag(t *testing.T) {
	nodes, err := Parse("<script>alert(1)</script>")
	if err != nil {
		t.Fatal("Parse:", err)
	}
	buf := new(bytes.Buffer)
	r := &HTMLRenderer{FilterTag: func(tag string) bool { return tag == "script" }}
	if err := r.Render(buf, nodes); err != nil {
		t.Fatal("Render:", err)
	}
	got := buf.String()
	if !bytes.Contains([]byte(got), []byte("&lt;script>")) {
		t.Errorf("Render() = %q; want filtered opening bracket for <script>", got)
	}
}

// Property P5: render_html(parse(s)) is deterministic given s.
func TestRenderHTMLDeterministic(t *testing.T) {
	sources := []string{
		"# Title\n\nSome **bold** and *italic* text with a [link](http://example.com).",
		"- a\n- b\n - c\n",
		"> quote\n>> nested",
		"```go\nfunc main() {}\n```",
	}
	for _, src := range sources {
		nodes, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		first := new(bytes.Buffer)
		if err := RenderHTML(first, nodes); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			again := new(bytes.Buffer)
			if err := RenderHTML(again, nodes); err != nil {
				t.Fatal(err)
			}
			if again.String() != first.String() {
				t.Errorf("RenderHTML(%q) not deterministic across repeated calls", src)
			}
		}
	}
}
