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
	"fmt"
	"html"
	"io"
)

// An HTMLRenderer converts a parsed document tree into HTML, following the
// node -> HTML mapping: headings become hN, emphasis variants become
// strong/em/s/u, lists become ul/ol with li per item, quotes become
// blockquote with one p per level, and so on.
//
// # Security considerations
//
// This dialect permits raw HTML and script bodies, which can introduce
// Cross-Site Scripting vulnerabilities when rendering untrusted input.
// Callers with untrusted input should do one of:
//
//   - Pass the result through an HTML sanitizer.
//   - Set IgnoreRaw, which drops CustomHtml and CustomScript nodes
//     entirely. This is the only option that eliminates raw HTML from the
//     output, at the cost of silently omitting that content.
//   - Set FilterTag to escape the opening angle bracket of specific tags
//     while still emitting their text. This does not prevent HTML parse
//     errors on its own; combine with sanitization for untrusted input.
type HTMLRenderer struct {
	// IgnoreRaw, if true, drops CustomHtml and CustomScript nodes instead
	// of rendering them.
	IgnoreRaw bool

	// FilterTag reports whether the given tag name should have its leading
	// angle bracket escaped rather than rendered as a real element. Nil
	// means no filtering.
	FilterTag func(tagName string) bool
}

// RenderHTML writes nodes to w as HTML using the default [HTMLRenderer]
// options. It returns the first write error encountered, if any.
func RenderHTML(w io.Writer, nodes []*Node) error {
	return (&HTMLRenderer{}).Render(w, nodes)
}

// Render writes nodes to w as HTML.
func (r *HTMLRenderer) Render(w io.Writer, nodes []*Node) error {
	buf := r.AppendNodes(nil, nodes)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// AppendNodes appends the rendered HTML of nodes to dst and returns the
// resulting slice.
func (r *HTMLRenderer) AppendNodes(dst []byte, nodes []*Node) []byte {
	for _, n := range nodes {
		dst = r.appendNode(dst, n)
	}
	return dst
}

func (r *HTMLRenderer) appendNode(dst []byte, n *Node) []byte {
	if n == nil {
		return dst
	}
	switch n.Kind {
	case TextNodeKind:
		return append(dst, html.EscapeString(n.Text)...)
	case InlineLineBreakKind:
		return append(dst, "<br>"...)
	case BoldKind:
		return r.wrap(dst, "strong", n)
	case ItalicKind:
		return r.wrap(dst, "em", n)
	case StrikethroughKind:
		return r.wrap(dst, "s", n)
	case UnderlineKind:
		return r.wrap(dst, "u", n)
	case CodeKind:
		return r.wrap(dst, "code", n)
	case LinkKind:
		dst = append(dst, "<a href=\""...)
		if n.URI != nil {
			dst = append(dst, html.EscapeString(*n.URI)...)
		}
		dst = append(dst, "\">"...)
		dst = r.AppendNodes(dst, n.Children)
		return append(dst, "</a>"...)
	case ImageKind:
		dst = append(dst, "<img alt=\""...)
		dst = append(dst, html.EscapeString(n.AltText)...)
		return append(dst, "\">"...)
	case ParagraphKind:
		return r.wrap(dst, "p", n)
	case HeadingNodeKind:
		tag := fmt.Sprintf("h%d", clampHeadingLevel(n.Level))
		return r.wrap(dst, tag, n)
	case HorizontalRuleKind:
		return append(dst, "<hr>"...)
	case LineBreakKind:
		return append(dst, "<br>"...)
	case DivKind:
		return r.wrap(dst, "div", n)
	case MultilineCodeKind:
		dst = append(dst, "<pre><code"...)
		if n.Lang != "" {
			dst = append(dst, " class=\"lang-"...)
			dst = append(dst, html.EscapeString(n.Lang)...)
			dst = append(dst, '"')
		}
		dst = append(dst, '>')
		dst = r.AppendNodes(dst, n.Children)
		return append(dst, "</code></pre>"...)
	case UListKind:
		return r.wrapList(dst, "ul", n)
	case OListKind:
		return r.wrapList(dst, "ol", n)
	case QuoteKind:
		dst = append(dst, "<blockquote>"...)
		for _, item := range n.Children {
			dst = r.appendNode(dst, item)
		}
		return append(dst, "</blockquote>"...)
	case CustomHTMLKind:
		return r.appendCustomHTML(dst, n)
	case CustomScriptKind:
		return r.appendCustomScript(dst, n)
	default:
		return dst
	}
}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func (r *HTMLRenderer) wrap(dst []byte, tag string, n *Node) []byte {
	dst = append(dst, '<')
	dst = append(dst, tag...)
	dst = append(dst, '>')
	dst = r.AppendNodes(dst, n.Children)
	dst = append(dst, "</"...)
	dst = append(dst, tag...)
	return append(dst, '>')
}

// wrapList renders a UList/OList: each item, whatever its own Node kind,
// becomes an <li> containing that item's children directly - there is no
// distinct list-item element in the render table.
func (r *HTMLRenderer) wrapList(dst []byte, tag string, n *Node) []byte {
	dst = append(dst, '<')
	dst = append(dst, tag...)
	dst = append(dst, '>')
	for _, item := range n.Children {
		dst = append(dst, "<li>"...)
		dst = r.AppendNodes(dst, item.Children)
		dst = append(dst, "</li>"...)
	}
	dst = append(dst, "</"...)
	dst = append(dst, tag...)
	return append(dst, '>')
}

func (r *HTMLRenderer) appendCustomHTML(dst []byte, n *Node) []byte {
	if r.IgnoreRaw {
		return dst
	}
	filtered := r.FilterTag != nil && r.FilterTag(n.TagName)
	dst = r.openRawTag(dst, n, filtered)
	if n.SelfClosing {
		return dst
	}
	dst = r.AppendNodes(dst, n.Children)
	if filtered {
		dst = append(dst, "&lt;/"...)
	} else {
		dst = append(dst, "</"...)
	}
	dst = append(dst, n.TagName...)
	return append(dst, '>')
}

func (r *HTMLRenderer) appendCustomScript(dst []byte, n *Node) []byte {
	if r.IgnoreRaw {
		return dst
	}
	filtered := r.FilterTag != nil && r.FilterTag("script")
	dst = r.openRawTag(dst, n, filtered)
	dst = append(dst, n.Body...)
	if filtered {
		dst = append(dst, "&lt;/script>"...)
	} else {
		dst = append(dst, "</script>"...)
	}
	return dst
}

func (r *HTMLRenderer) openRawTag(dst []byte, n *Node, filtered bool) []byte {
	if filtered {
		dst = append(dst, "&lt;"...)
	} else {
		dst = append(dst, '<')
	}
	dst = append(dst, n.TagName...)
	if n.Attrs != nil {
		for _, a := range n.Attrs.All() {
			dst = append(dst, ' ')
			dst = append(dst, a.Name...)
			if a.Value != nil {
				dst = append(dst, "=\""...)
				dst = append(dst, html.EscapeString(*a.Value)...)
				dst = append(dst, '"')
			}
		}
	}
	if n.SelfClosing {
		return append(dst, "/>"...)
	}
	return append(dst, '>')
}
