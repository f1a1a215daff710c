// Package statements counts effective statements in Python source.
//
// The counter walks the syntax tree statement-wise: containers are
// entered, simple statements terminate the walk, and bodies of
// definitions whose name matches an exclusion pattern are skipped.
package statements

import (
	"context"
	"fmt"
	"regexp"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/pyloc/internal/pysrc"
)

// Node kinds of the Python grammar handled by the walk.
const (
	kindModule       = "module"
	kindComment      = "comment"
	kindDecorated    = "decorated_definition"
	kindFunctionDef  = "function_definition"
	kindClassDef     = "class_definition"
	kindIf           = "if_statement"
	kindElifClause   = "elif_clause"
	kindElseClause   = "else_clause"
	kindFor          = "for_statement"
	kindWhile        = "while_statement"
	kindWith         = "with_statement"
	kindTry          = "try_statement"
	kindExceptClause = "except_clause"
	kindFinally      = "finally_clause"
	kindExprStmt     = "expression_statement"
	kindBlock        = "block"
)

// simpleStatementKinds are the statement kinds that count as one
// statement each and have no statement children.
var simpleStatementKinds = map[string]struct{}{
	"return_statement":        {},
	"delete_statement":        {},
	"raise_statement":         {},
	"assert_statement":        {},
	"import_statement":        {},
	"import_from_statement":   {},
	"future_import_statement": {},
	"global_statement":        {},
	"nonlocal_statement":      {},
	"pass_statement":          {},
	"break_statement":         {},
	"continue_statement":      {},
	"exec_statement":          {},
	"print_statement":         {},
}

// effectfulExpressionKinds are the expression kinds that give a bare
// expression statement an executable effect. Any other bare expression
// (a standalone literal or name) contributes zero statements.
var effectfulExpressionKinds = map[string]struct{}{
	"call":                 {},
	"await":                {},
	"yield":                {},
	"assignment":           {},
	"augmented_assignment": {},
}

// Counter counts statements in Python source files.
type Counter struct {
	parser *pysrc.Parser
}

// NewCounter creates a Counter backed by the given parser.
func NewCounter(parser *pysrc.Parser) *Counter {
	return &Counter{parser: parser}
}

// Count parses the source and returns its statement count. Definitions
// whose declared name matches one of excludeNames contribute their own
// declaration statement but none of their body.
//
// Unparsable source fails with an error wrapping pysrc.ErrSyntax.
func (c *Counter) Count(ctx context.Context, source []byte, excludeNames []*regexp.Regexp) (int, error) {
	tree, err := c.parser.Parse(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}

	defer tree.Close()

	walk := &walker{tree: tree, excludeNames: excludeNames}

	return walk.visitStatement(tree.Root()), nil
}

// walker holds the per-call traversal state.
type walker struct {
	tree         *pysrc.Tree
	excludeNames []*regexp.Regexp
}

// visitStatement returns the statement count contributed by n and its
// reachable children. The kind switch is total over the supported
// grammar: an unlisted statement kind means the grammar version has
// drifted past this walk, which must fail loudly rather than miscount.
//
// TODO: handle match_statement and except_group_clause (3.10+/3.11+
// syntax) once the walk supports them; they currently trip the
// unrecognized-kind panics here and in visitTry.
func (w *walker) visitStatement(n sitter.Node) int {
	kind := n.Type()
	if _, ok := simpleStatementKinds[kind]; ok {
		return 1
	}

	switch kind {
	case kindComment:
		return 0
	case kindModule:
		return w.visitBody(n)
	case kindDecorated:
		return w.visitStatement(n.ChildByFieldName("definition"))
	case kindFunctionDef, kindClassDef:
		return w.visitDefinition(n)
	case kindIf:
		return w.visitIf(n)
	case kindFor, kindWhile:
		return w.visitLoop(n)
	case kindWith:
		return 1 + w.visitBlock(n.ChildByFieldName("body"))
	case kindTry:
		return w.visitTry(n)
	case kindExprStmt:
		return w.visitExpressionStatement(n)
	default:
		panic(fmt.Sprintf("statements: unrecognized statement kind %q", kind))
	}
}

// visitDefinition counts a function or class definition. The declaration
// itself always counts; the body is skipped when the declared name
// matches an exclusion pattern.
func (w *walker) visitDefinition(n sitter.Node) int {
	name := w.tree.Text(n.ChildByFieldName("name"))
	if w.isExcluded(name) {
		return 1
	}

	return 1 + w.visitBlock(n.ChildByFieldName("body"))
}

// visitIf counts an if statement, its consequence, and every elif/else
// clause. Each elif counts as one statement of its own.
func (w *walker) visitIf(n sitter.Node) int {
	count := 1 + w.visitBlock(n.ChildByFieldName("consequence"))

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case kindElifClause:
			count += 1 + w.visitBlock(child.ChildByFieldName("consequence"))
		case kindElseClause:
			count += w.visitBlock(child.ChildByFieldName("body"))
		}
	}

	return count
}

// visitLoop counts a for/while statement, its body, and its else clause.
func (w *walker) visitLoop(n sitter.Node) int {
	count := 1 + w.visitBlock(n.ChildByFieldName("body"))

	alt := n.ChildByFieldName("alternative")
	if !alt.IsNull() {
		count += w.visitBlock(alt.ChildByFieldName("body"))
	}

	return count
}

// visitTry counts a try statement, its main body, each except clause
// (one statement each plus its body), the else body, and the finally
// body. The clause switch is total for the same reason visitStatement's
// is: an unhandled clause kind must not silently drop its body.
func (w *walker) visitTry(n sitter.Node) int {
	count := 1 + w.visitBlock(n.ChildByFieldName("body"))

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case kindExceptClause:
			count += 1 + w.visitBlock(clauseBlock(child))
		case kindElseClause:
			count += w.visitBlock(child.ChildByFieldName("body"))
		case kindFinally:
			count += w.visitBlock(clauseBlock(child))
		case kindBlock, kindComment:
			// Main body counted above; comments are free.
		default:
			panic(fmt.Sprintf("statements: unrecognized try clause kind %q", child.Type()))
		}
	}

	return count
}

// visitExpressionStatement counts a bare expression statement: one when
// the expression carries an executable effect, zero otherwise.
func (w *walker) visitExpressionStatement(n sitter.Node) int {
	if n.NamedChildCount() == 0 {
		return 0
	}

	if _, ok := effectfulExpressionKinds[n.NamedChild(0).Type()]; ok {
		return 1
	}

	return 0
}

// visitBody sums the statement counts of the named children of a
// container node.
func (w *walker) visitBody(n sitter.Node) int {
	count := 0

	for idx := range n.NamedChildCount() {
		count += w.visitStatement(n.NamedChild(idx))
	}

	return count
}

// visitBlock sums the statements of a block node. A null block (empty
// suite) contributes zero.
func (w *walker) visitBlock(block sitter.Node) int {
	if block.IsNull() {
		return 0
	}

	return w.visitBody(block)
}

// isExcluded reports whether the name matches any exclusion pattern.
// Patterns are tested in order, short-circuiting on the first match.
func (w *walker) isExcluded(name string) bool {
	for _, pattern := range w.excludeNames {
		if pattern.MatchString(name) {
			return true
		}
	}

	return false
}

// clauseBlock returns the block child of an except/finally clause, or a
// null node when the clause has no block.
func clauseBlock(clause sitter.Node) sitter.Node {
	for idx := range clause.NamedChildCount() {
		child := clause.NamedChild(idx)
		if child.Type() == kindBlock {
			return child
		}
	}

	return sitter.Node{}
}
