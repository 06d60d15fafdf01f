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

// Attr is a single HTML attribute as captured by the tokenizer's tag scanner.
// Value is nil for a value-less attribute (e.g. the bare "disabled" in
// "<input disabled>").
type Attr struct {
	Name  string
	Value *string
}

// Attrs is an ordered mapping from attribute name to optional value,
// preserving the order attributes appeared in the source. It backs both
// [Token]'s HtmlOpenTag/ScriptTag payload and [Node]'s CustomHtml/
// CustomScript attributes (invariant N3).
type Attrs struct {
	list []Attr
}

// NewAttrs returns an empty, ready-to-use Attrs.
func NewAttrs() *Attrs {
	return &Attrs{}
}

// Set appends name=value to the ordered list, or updates it in place if
// name was already set.
func (a *Attrs) Set(name string, value *string) {
	for i := range a.list {
		if a.list[i].Name == name {
			a.list[i].Value = value
			return
		}
	}
	a.list = append(a.list, Attr{Name: name, Value: value})
}

// Get returns the value associated with name and whether it was present.
// A present value-less attribute returns (nil, true).
func (a *Attrs) Get(name string) (*string, bool) {
	if a == nil {
		return nil, false
	}
	for _, attr := range a.list {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.list)
}

// At returns the i'th attribute in source order.
func (a *Attrs) At(i int) Attr {
	return a.list[i]
}

// All returns the attributes in source order. The caller must not modify
// the returned slice.
func (a *Attrs) All() []Attr {
	if a == nil {
		return nil
	}
	return a.list
}
