package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// directivePrefix marks a type declaration for derivation. Arguments
// follow separated by spaces: "logic", "integer", "newtype", "enum".
const directivePrefix = "//atomkit:atom"

// generatedHeader identifies files atomgen wrote earlier; they are skipped
// when re-parsing a package.
const generatedHeader = "// Code generated by atomgen. DO NOT EDIT."

// Package is the parsed view of one Go package directory: the declared
// types, the constants grouped by their declared type, and the derivation
// directives found in doc comments.
type Package struct {
	Name string
	Dir  string

	fset  *token.FileSet
	types map[string]*typeDecl

	// constsByType holds constant names in declaration order, keyed by
	// the constants' declared type name.
	constsByType map[string][]string

	// Directives are the derivation requests found in source, in file
	// then declaration order.
	Directives []Request
}

type typeDecl struct {
	spec  *ast.TypeSpec
	pos   token.Position
	alias bool
}

// ParsePackage parses all non-test, non-generated Go files in dir.
func ParsePackage(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading package directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	p := &Package{
		Dir:          dir,
		fset:         token.NewFileSet(),
		types:        make(map[string]*typeDecl),
		constsByType: make(map[string][]string),
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		file, err := parser.ParseFile(p.fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if isGenerated(file) {
			continue
		}
		if p.Name == "" {
			p.Name = file.Name.Name
		} else if p.Name != file.Name.Name {
			return nil, fmt.Errorf("%s: multiple packages in %s (%s and %s)", name, dir, p.Name, file.Name.Name)
		}
		p.collect(file)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("no parseable Go files in %s", dir)
	}
	return p, nil
}

func isGenerated(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.End() >= file.Package {
			break
		}
		for _, c := range group.List {
			if strings.HasPrefix(c.Text, generatedHeader) {
				return true
			}
		}
	}
	return false
}

func (p *Package) collect(file *ast.File) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gd.Tok {
		case token.TYPE:
			p.collectTypes(gd)
		case token.CONST:
			p.collectConsts(gd)
		}
	}
}

func (p *Package) collectTypes(gd *ast.GenDecl) {
	for _, spec := range gd.Specs {
		ts := spec.(*ast.TypeSpec)
		p.types[ts.Name.Name] = &typeDecl{
			spec:  ts,
			pos:   p.fset.Position(ts.Pos()),
			alias: ts.Assign.IsValid(),
		}

		doc := ts.Doc
		if doc == nil && len(gd.Specs) == 1 {
			doc = gd.Doc
		}
		if req, ok := p.parseDirective(doc, ts); ok {
			p.Directives = append(p.Directives, req)
		}
	}
}

// parseDirective scans a doc comment for the //atomkit:atom marker.
func (p *Package) parseDirective(doc *ast.CommentGroup, ts *ast.TypeSpec) (Request, bool) {
	if doc == nil {
		return Request{}, false
	}
	for _, c := range doc.List {
		if c.Text != directivePrefix && !strings.HasPrefix(c.Text, directivePrefix+" ") {
			continue
		}
		req := Request{
			TypeName: ts.Name.Name,
			Pos:      p.fset.Position(c.Pos()),
		}
		for _, arg := range strings.Fields(strings.TrimPrefix(c.Text, directivePrefix)) {
			switch arg {
			case string(CapLogic):
				req.Caps = append(req.Caps, CapLogic)
			case string(CapInteger):
				req.Caps = append(req.Caps, CapInteger)
			case "newtype", "enum":
				req.ForceShape = arg
			default:
				// Unknown arguments are kept as capabilities so they fail
				// validation loudly instead of being ignored.
				req.Caps = append(req.Caps, Capability(arg))
			}
		}
		return req, true
	}
	return Request{}, false
}

// collectConsts groups constant names by their declared type, carrying the
// type across iota continuations within a block.
func (p *Package) collectConsts(gd *ast.GenDecl) {
	carry := ""
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		switch {
		case vs.Type != nil:
			if id, ok := vs.Type.(*ast.Ident); ok {
				carry = id.Name
			} else {
				carry = ""
			}
		case len(vs.Values) > 0:
			// Explicit untyped values break the carried type.
			carry = ""
		}
		if carry == "" {
			continue
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			p.constsByType[carry] = append(p.constsByType[carry], name.Name)
		}
	}
}

// Type returns the declaration of a named type, if present.
func (p *Package) Type(name string) (*typeDecl, bool) {
	t, ok := p.types[name]
	return t, ok
}

// Constants returns the names of the constants declared with the given
// type, in declaration order.
func (p *Package) Constants(typeName string) []string {
	return p.constsByType[typeName]
}
