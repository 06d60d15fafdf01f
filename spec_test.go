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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wscpublish/markdown/internal/normhtml"
	"github.com/wscpublish/markdown/internal/spec"
)

func TestSpec(t *testing.T) {
	examples, err := spec.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, ex := range examples {
		t.Run(fmt.Sprintf("Example%d", ex.Example), func(t *testing.T) {
			nodes, err := Parse(ex.Markdown)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			buf := new(bytes.Buffer)
			if err := RenderHTML(buf, nodes); err != nil {
				t.Fatal("RenderHTML:", err)
			}
			got := string(normhtml.NormalizeHTML(buf.Bytes()))
			want := string(normhtml.NormalizeHTML([]byte(ex.HTML)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", ex.Markdown, diff)
			}
		})
	}
}
