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

import "strconv"

func (k TokenKind) String() string {
	switch k {
	case TextKind:
		return "TextKind"
	case NewlineKind:
		return "NewlineKind"
	case LineBreakKind:
		return "LineBreakKind"
	case EscapeKind:
		return "EscapeKind"
	case HeadingKind:
		return "HeadingKind"
	case SingleAsteriskKind:
		return "SingleAsteriskKind"
	case DoubleAsteriskKind:
		return "DoubleAsteriskKind"
	case TripleAsteriskKind:
		return "TripleAsteriskKind"
	case SingleGraveKind:
		return "SingleGraveKind"
	case TripleGraveKind:
		return "TripleGraveKind"
	case SingleUnderscoreKind:
		return "SingleUnderscoreKind"
	case DoubleTildeKind:
		return "DoubleTildeKind"
	case TripleHyphenKind:
		return "TripleHyphenKind"
	case TripleEqualsKind:
		return "TripleEqualsKind"
	case TripleUnderscoreKind:
		return "TripleUnderscoreKind"
	case UListItemKind:
		return "UListItemKind"
	case OListItemKind:
		return "OListItemKind"
	case BlockQuoteKind:
		return "BlockQuoteKind"
	case HTMLOpenTagKind:
		return "HTMLOpenTagKind"
	case HTMLCloseTagKind:
		return "HTMLCloseTagKind"
	case ScriptTagKind:
		return "ScriptTagKind"
	case LinkStartKind:
		return "LinkStartKind"
	case ImageStartKind:
		return "ImageStartKind"
	case LinkIntersticeKind:
		return "LinkIntersticeKind"
	case LinkURIKind:
		return "LinkURIKind"
	case LinkEndKind:
		return "LinkEndKind"
	case FootnoteRefKind:
		return "FootnoteRefKind"
	case FootnoteDefKind:
		return "FootnoteDefKind"
	case EOFKind:
		return "EOFKind"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}
