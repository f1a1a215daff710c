// Package pysrc wraps the tree-sitter Python grammar behind a small
// parsing API shared by the statement and line analyzers.
package pysrc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser operations.
var (
	// ErrSyntax indicates the source does not conform to the Python grammar.
	ErrSyntax = errors.New("source has syntax errors")

	errNoRootNode = errors.New("parser: no root node")
	errPoolType   = errors.New("parser: pool returned unexpected type")
)

// Parser parses Python source into concrete syntax trees. Underlying
// tree-sitter parsers are pooled so repeated per-file parses do not
// reallocate parser state.
type Parser struct {
	language *sitter.Language
	pool     sync.Pool
}

// NewParser creates a Parser configured for the Python grammar.
func NewParser() *Parser {
	lang := sitter.NewLanguage(python.GetLanguage())

	return &Parser{
		language: lang,
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Parse parses the given source and returns the syntax tree.
// Sources containing ERROR or MISSING nodes fail with ErrSyntax; the
// analyzers never see a partially recovered tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	root := tree.RootNode()
	if root.IsNull() {
		tree.Close()

		return nil, errNoRootNode
	}

	if root.HasError() {
		tree.Close()

		return nil, ErrSyntax
	}

	return &Tree{tree: tree, source: source}, nil
}

// Tree is one parsed file. It owns the underlying tree-sitter tree;
// Close must be called once the nodes are no longer needed.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Root returns the module node of the parsed file.
func (t *Tree) Root() sitter.Node {
	return t.tree.RootNode()
}

// Text returns the source text covered by the given node.
func (t *Tree) Text(n sitter.Node) string {
	return string(t.source[n.StartByte():n.EndByte()])
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}
