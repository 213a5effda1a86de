// Package adapter contains infrastructure adapters for the mistype CLI.
package adapter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "github.com/mouse-blink/mistype/internal/model"
)

// ErrInvalidSyntax reports that a source file could not be parsed cleanly.
// Such files are skipped rather than mutated on a broken tree.
var ErrInvalidSyntax = errors.New("source contains syntax errors")

// EntityFilter decides whether annotations belonging to the named entity
// (a qualified class/function name) may be mutated. A nil filter admits
// everything. The policy behind the predicate is owned by the caller.
type EntityFilter func(entity string) bool

// PythonFileAdapter encapsulates Python-specific parsing and annotation
// discovery so the domain layer can focus on mutation rules while the
// concrete syntax tree library stays behind one narrow seam.
type PythonFileAdapter interface {
	// AnnotationSites parses content and returns every mutable annotation
	// site in a single pre-order, textual left-to-right traversal.
	AnnotationSites(content []byte, filter EntityFilter) ([]m.AnnotationSite, error)
}

// TreeSitterFileAdapter implements PythonFileAdapter on top of the
// tree-sitter Python grammar. A fresh parser is created per call, so the
// adapter is safe for concurrent use.
type TreeSitterFileAdapter struct{}

// NewTreeSitterFileAdapter constructs a TreeSitterFileAdapter.
func NewTreeSitterFileAdapter() *TreeSitterFileAdapter {
	return &TreeSitterFileAdapter{}
}

// AnnotationSites parses Python source and collects annotation sites from
// parameters, return types and annotated assignments, including those in
// nested functions and methods.
func (a *TreeSitterFileAdapter) AnnotationSites(content []byte, filter EntityFilter) ([]m.AnnotationSite, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse python source: %w", err)
	}

	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("parser returned no root node")
	}

	if root.HasError() {
		return nil, ErrInvalidSyntax
	}

	var sites []m.AnnotationSite

	a.walk(root, content, "", filter, &sites)

	return sites, nil
}

// walk visits nodes pre-order. Function and class nodes qualify the entity
// name and consult the filter before any of their annotations are yielded;
// skipping an entity skips everything nested inside it.
func (a *TreeSitterFileAdapter) walk(n *sitter.Node, content []byte, entity string, filter EntityFilter, sites *[]m.AnnotationSite) {
	switch n.Type() {
	case "function_definition":
		qualified := qualify(entity, fieldText(n, "name", content))
		if filter != nil && !filter(qualified) {
			return
		}

		a.collectParameters(n, content, qualified, sites)
		a.collectReturn(n, content, qualified, sites)

		if body := n.ChildByFieldName("body"); body != nil {
			a.walk(body, content, qualified, filter, sites)
		}

		return
	case "class_definition":
		qualified := qualify(entity, fieldText(n, "name", content))
		if filter != nil && !filter(qualified) {
			return
		}

		if body := n.ChildByFieldName("body"); body != nil {
			a.walk(body, content, qualified, filter, sites)
		}

		return
	case "assignment":
		a.collectAssignment(n, content, entity, sites)

		return
	case "string":
		// Annotations quoted inside string literals are never sites.
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		a.walk(n.Child(i), content, entity, filter, sites)
	}
}

func (a *TreeSitterFileAdapter) collectParameters(fn *sitter.Node, content []byte, entity string, sites *[]m.AnnotationSite) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}

	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)

		switch p.Type() {
		case "typed_parameter":
			// Shape: <pattern> ":" <type>.
			typeNode := p.ChildByFieldName("type")
			if typeNode == nil || p.ChildCount() == 0 {
				continue
			}

			nameNode := p.Child(0)
			*sites = append(*sites, newSite(m.SiteParameter, entity, content, typeNode, int(nameNode.EndByte()), true))
		case "typed_default_parameter":
			typeNode := p.ChildByFieldName("type")
			nameNode := p.ChildByFieldName("name")

			if typeNode == nil || nameNode == nil {
				continue
			}

			*sites = append(*sites, newSite(m.SiteParameter, entity, content, typeNode, int(nameNode.EndByte()), true))
		}
	}
}

func (a *TreeSitterFileAdapter) collectReturn(fn *sitter.Node, content []byte, entity string, sites *[]m.AnnotationSite) {
	returnType := fn.ChildByFieldName("return_type")
	if returnType == nil {
		return
	}

	// Removing a return annotation must also remove the "->" arrow, so the
	// removal span starts right after the parameter list.
	removeFrom := int(returnType.StartByte())
	if params := fn.ChildByFieldName("parameters"); params != nil {
		removeFrom = int(params.EndByte())
	}

	*sites = append(*sites, newSite(m.SiteReturn, entity, content, returnType, removeFrom, true))
}

func (a *TreeSitterFileAdapter) collectAssignment(n *sitter.Node, content []byte, entity string, sites *[]m.AnnotationSite) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return
	}

	left := n.ChildByFieldName("left")
	if left == nil {
		return
	}

	// "x: int" without a value cannot lose its annotation, a bare "x" is not
	// a statement that preserves the binding.
	removable := n.ChildByFieldName("right") != nil

	*sites = append(*sites, newSite(m.SiteVariable, entity, content, typeNode, int(left.EndByte()), removable))
}

func newSite(kind m.SiteKind, entity string, content []byte, typeNode *sitter.Node, removeFrom int, removable bool) m.AnnotationSite {
	start, end := int(typeNode.StartByte()), int(typeNode.EndByte())
	text := string(content[start:end])

	site := m.AnnotationSite{
		Kind:       kind,
		Entity:     entity,
		Line:       int(typeNode.StartPoint().Row) + 1,
		Span:       m.Span{Start: start, End: end},
		RemoveSpan: m.Span{Start: removeFrom, End: end},
		Removable:  removable,
		Text:       text,
	}

	// Only shapes that round-trip to the exact original token sequence are
	// eligible for replacement; everything else stays unsupported.
	if shape, err := m.ParseShape(text); err == nil && shape.String() == text {
		site.Shape = shape
	}

	return site
}

func fieldText(n *sitter.Node, field string, content []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}

	return string(content[child.StartByte():child.EndByte()])
}

func qualify(entity, name string) string {
	if entity == "" {
		return name
	}

	return entity + "." + name
}

// Compile-time interface compliance check.
var _ PythonFileAdapter = (*TreeSitterFileAdapter)(nil)
