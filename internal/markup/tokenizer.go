package markup

import "strings"

// Tokenize scans the input left to right in a single pass and returns
// the ordered token stream. It is total: every input string produces a
// valid stream, malformed syntax degrades to plain text. Offsets are
// byte offsets; adjacent plain text is coalesced into one token, so
// marker-free input yields exactly one TokenText.
func Tokenize(input string) []Token {
	if input == "" {
		return nil
	}
	t := &tokenizer{input: input, sepPos: -1, endPos: -1}
	t.run()
	return t.tokens
}

// tokenizer holds the single-pass scan state.
type tokenizer struct {
	input  string
	tokens []Token

	text      strings.Builder // pending plain-text value (escapes resolved)
	textStart int             // source offset where the pending text began

	// Validated link shape currently being scanned. While sepPos is
	// set, the scanner is inside the display region and "[" is literal;
	// reaching sepPos emits the separator, the raw url text, and the
	// closing token in one step. -1 when no link is pending.
	sepPos int
	endPos int
}

func (t *tokenizer) run() {
	n := len(t.input)
	i := 0
	for i < n {
		if i == t.sepPos {
			t.flush(i)
			t.emit(Token{Type: TokenLinkSeparator, Value: "](", Pos: i, Len: 2})
			urlStart := t.sepPos + 2
			if urlStart < t.endPos {
				t.emit(Token{
					Type:  TokenText,
					Value: t.input[urlStart:t.endPos],
					Pos:   urlStart,
					Len:   t.endPos - urlStart,
				})
			}
			t.emit(Token{Type: TokenLinkEnd, Value: ")", Pos: t.endPos, Len: 1})
			i = t.endPos + 1
			t.sepPos, t.endPos = -1, -1
			continue
		}

		b := t.input[i]
		switch b {
		case '\\':
			if i+1 < n && isEscapable(t.input[i+1]) {
				t.appendByte(t.input[i+1], i)
				// The span grows by two bytes but the value by one;
				// flush length is derived from source offsets, so the
				// escape stays covered.
				i += 2
			} else {
				t.appendByte('\\', i)
				i++
			}

		case '*', '_':
			run := t.runLength(i, b)
			t.flush(i)
			for run >= 3 {
				t.emitMarker(MarkerBoldItalic, strings.Repeat(string(b), 3), i)
				i += 3
				run -= 3
			}
			if run == 2 {
				t.emitMarker(MarkerBold, strings.Repeat(string(b), 2), i)
				i += 2
			} else if run == 1 {
				t.emitMarker(MarkerItalic, string(b), i)
				i++
			}

		case '~':
			run := t.runLength(i, b)
			t.flush(i)
			for run >= 2 {
				t.emitMarker(MarkerStrikethrough, "~~", i)
				i += 2
				run -= 2
			}
			if run == 1 {
				t.emitMarker(MarkerSubscript, "~", i)
				i++
			}

		case '+', '=':
			run := t.runLength(i, b)
			if run < 2 {
				// A lone "+" or "=" is plain text; only pairs form markers.
				t.appendByte(b, i)
				i++
				break
			}
			kind := MarkerUnderline
			if b == '=' {
				kind = MarkerHighlight
			}
			t.flush(i)
			for run >= 2 {
				t.emitMarker(kind, strings.Repeat(string(b), 2), i)
				i += 2
				run -= 2
			}
			if run == 1 {
				t.appendByte(b, i)
				i++
			}

		case '`':
			t.flush(i)
			t.emitMarker(MarkerCode, "`", i)
			i++

		case '^':
			t.flush(i)
			t.emitMarker(MarkerSuperscript, "^", i)
			i++

		case '[':
			if t.sepPos >= 0 {
				// No nested links inside a display region.
				t.appendByte(b, i)
				i++
				break
			}
			sep, end, ok := scanLink(t.input, i)
			if !ok {
				t.appendByte(b, i)
				i++
				break
			}
			t.flush(i)
			t.emit(Token{Type: TokenLinkStart, Value: "[", Pos: i, Len: 1})
			t.sepPos, t.endPos = sep, end
			i++

		case '{':
			end, ok := scanPlaceholder(t.input, i)
			if !ok {
				t.appendByte(b, i)
				i++
				break
			}
			t.flush(i)
			t.emit(Token{
				Type:  TokenPlaceholder,
				Value: t.input[i+1 : end],
				Pos:   i,
				Len:   end - i + 1,
			})
			i = end + 1

		default:
			t.appendByte(b, i)
			i++
		}
	}
	t.flush(n)
}

// runLength counts consecutive occurrences of b starting at i.
func (t *tokenizer) runLength(i int, b byte) int {
	run := 0
	for i+run < len(t.input) && t.input[i+run] == b {
		run++
	}
	return run
}

// appendByte accumulates one plain-text byte. Multi-byte runes arrive
// byte by byte and are preserved verbatim; only ASCII syntax characters
// are ever special-cased, so rune boundaries are never split.
func (t *tokenizer) appendByte(b byte, at int) {
	if t.text.Len() == 0 {
		t.textStart = at
	}
	t.text.WriteByte(b)
}

// flush emits the pending plain text as one coalesced token whose
// source span ends at upto.
func (t *tokenizer) flush(upto int) {
	if t.text.Len() == 0 {
		return
	}
	t.emit(Token{
		Type:  TokenText,
		Value: t.text.String(),
		Pos:   t.textStart,
		Len:   upto - t.textStart,
	})
	t.text.Reset()
}

func (t *tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) emitMarker(kind MarkerKind, literal string, at int) {
	t.emit(Token{Type: TokenMarker, Kind: kind, Value: literal, Pos: at, Len: len(literal)})
}

// scanLink validates the full "[display](url)" shape starting at the
// "[" at start. The first unescaped "]" must be immediately followed by
// "(", and a later unescaped ")" must exist. Returns the byte offsets
// of the separator and the closing paren.
func scanLink(input string, start int) (sep, end int, ok bool) {
	n := len(input)
	for j := start + 1; j < n; j++ {
		switch input[j] {
		case '\\':
			j++
		case ']':
			if j+1 >= n || input[j+1] != '(' {
				return 0, 0, false
			}
			for k := j + 2; k < n; k++ {
				switch input[k] {
				case '\\':
					k++
				case ')':
					return j, k, true
				}
			}
			return 0, 0, false
		}
	}
	return 0, 0, false
}

// scanPlaceholder validates "{key}" starting at the "{" at start. The
// key must be non-empty and match [A-Za-z0-9_]+. Returns the offset of
// the closing brace.
func scanPlaceholder(input string, start int) (end int, ok bool) {
	j := start + 1
	for j < len(input) && isWordByte(input[j]) {
		j++
	}
	if j > start+1 && j < len(input) && input[j] == '}' {
		return j, true
	}
	return 0, false
}

// isEscapable reports whether b may follow a backslash to produce a
// literal character.
func isEscapable(b byte) bool {
	switch b {
	case '*', '_', '~', '`', '^', '+', '=', '[', ']', '(', ')', '{', '}', '\\':
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
