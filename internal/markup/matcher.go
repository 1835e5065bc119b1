package markup

// DefaultMaxDepth is the number of simultaneously open formatting
// scopes allowed before additional pairs degrade to literal text.
const DefaultMaxDepth = 2

// matches records which marker tokens form genuine pairs, keyed by
// token index within one region. Matches are transient and scoped to a
// single parse call.
type matches struct {
	openToClose map[int]int
	closeToOpen map[int]int
}

func (m *matches) closerOf(open int) (int, bool) {
	c, ok := m.openToClose[open]
	return c, ok
}

func (m *matches) openerOf(close int) (int, bool) {
	o, ok := m.closeToOpen[close]
	return o, ok
}

func (m *matches) pair(open, close int) {
	m.openToClose[open] = close
	m.closeToOpen[close] = open
}

func (m *matches) unpair(open, close int) {
	delete(m.openToClose, open)
	delete(m.closeToOpen, close)
}

// matchPairs resolves which marker tokens are genuinely paired within
// the given region. For each kind independently, the first occurrence
// opens and the next same-kind occurrence closes the top of that kind's
// stack. Unmatched markers are rewritten to plain text holding their
// literal form. A second pass enforces maxDepth globally across all
// kinds: a pair whose opening would exceed the limit is demoted rather
// than applied.
//
// The returned slice is a copy; the caller's tokens are not mutated.
func matchPairs(tokens []Token, maxDepth int) ([]Token, *matches) {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	m := &matches{
		openToClose: make(map[int]int),
		closeToOpen: make(map[int]int),
	}

	stacks := make(map[MarkerKind][]int)
	for i, tok := range out {
		if tok.Type != TokenMarker {
			continue
		}
		if open := stacks[tok.Kind]; len(open) > 0 {
			top := open[len(open)-1]
			stacks[tok.Kind] = open[:len(open)-1]
			m.pair(top, i)
		} else {
			stacks[tok.Kind] = append(stacks[tok.Kind], i)
		}
	}

	// Leftover openers never found a closer.
	for _, open := range stacks {
		for _, i := range open {
			demote(out, i)
		}
	}

	// Depth pass: count open scopes in stream order. Pairs opening past
	// the limit are demoted wholesale so shallower scopes still apply.
	depth := 0
	for i := range out {
		if c, ok := m.closerOf(i); ok {
			if depth+1 > maxDepth {
				m.unpair(i, c)
				demote(out, i)
				demote(out, c)
				continue
			}
			depth++
		} else if _, ok := m.openerOf(i); ok {
			if depth > 0 {
				depth--
			}
		}
	}

	return out, m
}

// demote rewrites the marker at index i into plain text holding its
// literal form. Position and length are unchanged.
func demote(tokens []Token, i int) {
	tokens[i] = Token{
		Type:  TokenText,
		Value: tokens[i].Value,
		Pos:   tokens[i].Pos,
		Len:   tokens[i].Len,
	}
}
