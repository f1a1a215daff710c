// Package lines classifies the physical lines of Python source as
// blank, code, or comment.
//
// Classification works on the lexical token stream rather than the raw
// text or the statement tree: comments are invisible to statements, and
// quoting rules make raw text unreliable. String literals are resolved
// in a second pass because a bare triple-quoted string doubles as a
// block comment.
package lines

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/pyloc/internal/pysrc"
	"github.com/Sumatoshi-tech/pyloc/pkg/textutil"
)

// Token kinds with special classification rules.
const (
	kindModule  = "module"
	kindComment = "comment"
	kindString  = "string"
)

// Triple-quote delimiters recognized by the block-comment heuristic.
const (
	tripleSingle = "'''"
	tripleDouble = `"""`
)

// whitespaceCutset is stripped from a line before the delimiter check.
const whitespaceCutset = " \t\r\n"

// Counts holds the line classification of one file.
type Counts struct {
	// Total is the number of physical lines, counting a trailing line
	// without a terminator.
	Total int

	// Nonblank is the number of lines carrying at least one token.
	Nonblank int

	// Commented is the number of lines covered by an inline comment or
	// a block comment.
	Commented int
}

// Classifier counts and classifies lines of Python source files.
type Classifier struct {
	parser *pysrc.Parser
}

// NewClassifier creates a Classifier backed by the given parser.
func NewClassifier(parser *pysrc.Parser) *Classifier {
	return &Classifier{parser: parser}
}

// Count classifies every physical line of the source. Source that
// cannot be lexed fails with an error wrapping pysrc.ErrSyntax.
func (c *Classifier) Count(ctx context.Context, source []byte) (Counts, error) {
	total := textutil.CountLines(source)

	tree, err := c.parser.Parse(ctx, source)
	if err != nil {
		return Counts{}, fmt.Errorf("count lines: %w", err)
	}

	defer tree.Close()

	state := newClassification()
	state.classifyTokens(tree.Root())
	state.resolveStrings(source)

	return Counts{
		Total:    total,
		Nonblank: len(state.nonblank),
		Commented: len(union(
			state.inlineComment,
			state.blockComment,
		)),
	}, nil
}

// classification accumulates the three line sets during one file scan.
// Line numbers are 1-based. nonblank is always a superset of the two
// comment sets.
type classification struct {
	nonblank      map[int]struct{}
	inlineComment map[int]struct{}
	blockComment  map[int]struct{}
	stringTokens  []sitter.Node
}

func newClassification() *classification {
	return &classification{
		nonblank:      make(map[int]struct{}),
		inlineComment: make(map[int]struct{}),
		blockComment:  make(map[int]struct{}),
	}
}

// classifyTokens walks the syntax tree and classifies every definite
// token. String literals are collected for the deferred second pass:
// at this point a string is ambiguous between data and block comment.
func (s *classification) classifyTokens(n sitter.Node) {
	switch {
	case n.Type() == kindComment:
		markSpan(s.inlineComment, n)
		markSpan(s.nonblank, n)
	case n.Type() == kindString:
		// Whole literal is one token; do not descend into its parts.
		s.stringTokens = append(s.stringTokens, n)
	case n.ChildCount() == 0:
		// A childless module is an all-blank file, not a token.
		if n.Type() != kindModule {
			markSpan(s.nonblank, n)
		}
	default:
		for idx := range n.ChildCount() {
			s.classifyTokens(n.Child(idx))
		}
	}
}

// resolveStrings applies the block-comment heuristic to the deferred
// string tokens. A string whose starting line, stripped of whitespace,
// both begins and ends with the same triple-quote delimiter stands
// alone on its line and is treated as a block comment: every line it
// spans that is not already nonblank joins the nonblank and
// block-comment sets. Any other string contributes nothing; its lines
// are nonblank only through the non-string tokens around it.
func (s *classification) resolveStrings(source []byte) {
	for _, token := range s.stringTokens {
		startLine := int(token.StartPoint().Row) + 1
		endLine := int(token.EndPoint().Row) + 1

		if !isBareTripleQuoted(string(textutil.Line(source, startLine-1))) {
			continue
		}

		for lineno := startLine; lineno <= endLine; lineno++ {
			if _, seen := s.nonblank[lineno]; seen {
				continue
			}

			s.blockComment[lineno] = struct{}{}
			s.nonblank[lineno] = struct{}{}
		}
	}
}

// isBareTripleQuoted reports whether the line, with all whitespace
// removed, both starts and ends with the same triple-quote delimiter.
// This is a textual heuristic: a lone `'''` line satisfies it, and a
// prefixed literal (f-string, raw string) never does.
func isBareTripleQuoted(line string) bool {
	stripped := stripWhitespace(line)

	if strings.HasPrefix(stripped, tripleSingle) && strings.HasSuffix(stripped, tripleSingle) {
		return true
	}

	return strings.HasPrefix(stripped, tripleDouble) && strings.HasSuffix(stripped, tripleDouble)
}

// stripWhitespace removes every whitespace character, not just the ends.
func stripWhitespace(line string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(whitespaceCutset, r) {
			return -1
		}

		return r
	}, line)
}

// markSpan adds every physical line spanned by the token to the set.
func markSpan(set map[int]struct{}, n sitter.Node) {
	start := int(n.StartPoint().Row) + 1
	end := int(n.EndPoint().Row) + 1

	for lineno := start; lineno <= end; lineno++ {
		set[lineno] = struct{}{}
	}
}

// union returns the union of the two line sets.
func union(a, b map[int]struct{}) map[int]struct{} {
	merged := make(map[int]struct{}, len(a)+len(b))

	for lineno := range a {
		merged[lineno] = struct{}{}
	}

	for lineno := range b {
		merged[lineno] = struct{}{}
	}

	return merged
}
