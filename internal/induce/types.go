package induce

// TokenizedHost is the hierarchical token form of one observed hostname.
// Levels are ordered left to right (most specific label first), each level
// holding its lexical tokens in original order.
type TokenizedHost struct {
	Host   string
	Levels [][]string
}

// FirstToken returns the leading lexical token of the leftmost level.
func (t *TokenizedHost) FirstToken() string {
	if len(t.Levels) == 0 || len(t.Levels[0]) == 0 {
		return ""
	}
	return t.Levels[0][0]
}

// DNSAlphabet is the character set valid in observed hostnames and in the
// prefix index.
const DNSAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789._-"
