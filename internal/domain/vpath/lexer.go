package vpath

type segmentKind int

const (
	literalSegment segmentKind = iota
	tokenSegment
)

type segment struct {
	kind segmentKind
	text string
}

// lex splits a virtual path into an optional leading token segment and the
// literal remainder. A token is only recognized at offset 0 and only when it
// is closed by "]"; an unclosed bracket makes the whole input literal.
func lex(p string) []segment {
	state := literalSegment
	for i := 0; i < len(p); i++ {
		switch state {
		case literalSegment:
			if i == 0 && p[i] == '[' {
				state = tokenSegment
				continue
			}
			return []segment{{kind: literalSegment, text: p}}
		case tokenSegment:
			if p[i] == ']' {
				segs := []segment{{kind: tokenSegment, text: p[1:i]}}
				if rest := p[i+1:]; rest != "" {
					segs = append(segs, segment{kind: literalSegment, text: rest})
				}
				return segs
			}
		}
	}
	if p == "" {
		return nil
	}
	return []segment{{kind: literalSegment, text: p}}
}

// leadingToken returns the token name at the start of p and the literal
// remainder.
func leadingToken(p string) (name, rest string, ok bool) {
	segs := lex(p)
	if len(segs) == 0 || segs[0].kind != tokenSegment {
		return "", "", false
	}
	if len(segs) > 1 {
		rest = segs[1].text
	}
	return segs[0].text, rest, true
}
