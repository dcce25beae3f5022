package outline

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// universalTable drives declaration extraction for languages where a flat
// signature string is enough. Node kinds differ per grammar but the shapes
// are close enough to share one walk.
type universalTable struct {
	funcKinds   map[string]bool
	classKinds  map[string]bool
	methodKinds map[string]bool
}

var universalTables = map[string]universalTable{
	"go": {
		funcKinds: map[string]bool{
			"function_declaration": true,
			"method_declaration":   true,
		},
		classKinds: map[string]bool{
			"type_declaration": true,
		},
		methodKinds: map[string]bool{},
	},
	"java": {
		funcKinds: map[string]bool{},
		classKinds: map[string]bool{
			"class_declaration":      true,
			"interface_declaration":  true,
			"enum_declaration":       true,
			"record_declaration":     true,
			"annotation_declaration": true,
		},
		methodKinds: map[string]bool{
			"method_declaration":      true,
			"constructor_declaration": true,
		},
	},
	"javascript": {
		funcKinds: map[string]bool{
			"function_declaration":           true,
			"generator_function_declaration": true,
		},
		classKinds: map[string]bool{
			"class_declaration": true,
		},
		methodKinds: map[string]bool{
			"method_definition": true,
		},
	},
	"rust": {
		funcKinds: map[string]bool{
			"function_item": true,
		},
		classKinds: map[string]bool{
			"struct_item": true,
			"enum_item":   true,
			"trait_item":  true,
			"impl_item":   true,
		},
		methodKinds: map[string]bool{
			"function_item": true,
		},
	},
	"typescript": typescriptTable,
	"tsx":        typescriptTable,
}

var typescriptTable = universalTable{
	funcKinds: map[string]bool{
		"function_declaration":           true,
		"generator_function_declaration": true,
	},
	classKinds: map[string]bool{
		"class_declaration":     true,
		"interface_declaration": true,
		"enum_declaration":      true,
	},
	methodKinds: map[string]bool{
		"method_definition":         true,
		"method_signature":          true,
		"abstract_method_signature": true,
	},
}

type universalExtractor struct {
	table universalTable
}

func (e *universalExtractor) extract(root *sitter.Node, source []byte) []Symbol {
	var symbols []Symbol
	e.walkTopLevel(root, source, &symbols)
	return symbols
}

// walkTopLevel descends through transparent wrappers (export statements,
// Rust visibility blocks) looking for declarations. Function bodies are
// never entered.
func (e *universalExtractor) walkTopLevel(node *sitter.Node, source []byte, out *[]Symbol) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		kind := child.Kind()
		switch {
		case e.table.funcKinds[kind]:
			*out = append(*out, Symbol{Function: e.extractFunction(child, source, false)})
		case e.table.classKinds[kind]:
			if cls := e.extractClass(child, source); cls != nil {
				*out = append(*out, Symbol{Class: cls})
			}
		case kind == "export_statement" || kind == "declaration_list" || kind == "mod_item":
			e.walkTopLevel(child, source, out)
		}
	}
}

func (e *universalExtractor) extractFunction(node *sitter.Node, source []byte, isMethod bool) *Function {
	fn := &Function{
		Name:      e.declarationName(node, source),
		Signature: signatureText(node, source),
		Doc:       precedingComment(node, source),
		IsMethod:  isMethod,
		Line:      nodeLine(node),
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "async" {
			fn.Async = true
			break
		}
	}
	return fn
}

func (e *universalExtractor) extractClass(node *sitter.Node, source []byte) *Class {
	target := node

	// Go wraps the named type inside a type_spec; only struct and interface
	// types outline as classes, aliases and simple types are skipped.
	if node.Kind() == "type_declaration" {
		spec := namedChildOfKind(node, "type_spec")
		if spec == nil {
			return nil
		}
		typ := spec.ChildByFieldName("type")
		if typ == nil || (typ.Kind() != "struct_type" && typ.Kind() != "interface_type") {
			return nil
		}
		return &Class{
			Name: nodeText(spec.ChildByFieldName("name"), source),
			Doc:  precedingComment(node, source),
			Line: nodeLine(node),
		}
	}

	cls := &Class{
		Name: e.declarationName(target, source),
		Doc:  precedingComment(node, source),
		Line: nodeLine(node),
	}

	// Rust impl blocks outline under the implemented type's name.
	if target.Kind() == "impl_item" {
		if typ := target.ChildByFieldName("type"); typ != nil {
			cls.Name = nodeText(typ, source)
		}
		if trait := target.ChildByFieldName("trait"); trait != nil {
			cls.Bases = append(cls.Bases, nodeText(trait, source))
		}
	}
	if heritage := namedChildOfKind(target, "class_heritage"); heritage != nil {
		cls.Bases = append(cls.Bases, heritageBases(heritage, source)...)
	}
	if super := target.ChildByFieldName("superclass"); super != nil {
		cls.Bases = append(cls.Bases, strings.TrimSpace(strings.TrimPrefix(nodeText(super, source), "extends")))
	}

	if body := target.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			member := body.Child(i)
			switch {
			case e.table.methodKinds[member.Kind()]:
				cls.Methods = append(cls.Methods, *e.extractFunction(member, source, true))
			case e.table.classKinds[member.Kind()]:
				if nested := e.extractClass(member, source); nested != nil {
					cls.Nested = append(cls.Nested, *nested)
				}
			}
		}
	}
	return cls
}

func (e *universalExtractor) declarationName(node *sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return nodeText(name, source)
	}
	return "<anonymous>"
}

// signatureText renders a declaration's header: everything before the body,
// collapsed to a single line.
func signatureText(node *sitter.Node, source []byte) string {
	end := node.EndByte()
	if body := node.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	sig := string(source[node.StartByte():end])
	sig = strings.TrimRight(sig, " \t{;")
	return strings.Join(strings.Fields(sig), " ")
}

// heritageBases pulls the type names out of an extends/implements clause,
// dropping keywords and punctuation.
func heritageBases(heritage *sitter.Node, source []byte) []string {
	var bases []string
	for _, field := range strings.FieldsFunc(nodeText(heritage, source), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	}) {
		if field == "extends" || field == "implements" {
			continue
		}
		bases = append(bases, field)
	}
	return bases
}

// precedingComment collects the comment block directly above a declaration,
// comment markers stripped. A blank line between comment and declaration
// detaches the comment.
func precedingComment(node *sitter.Node, source []byte) string {
	var lines []string
	wantRow := node.StartPosition().Row
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		kind := prev.Kind()
		if kind != "comment" && kind != "line_comment" && kind != "block_comment" {
			break
		}
		if prev.EndPosition().Row+1 < wantRow {
			break
		}
		wantRow = prev.StartPosition().Row
		text := nodeText(prev, source)
		text = strings.TrimPrefix(text, "//")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
		lines = append([]string{strings.TrimSpace(text)}, lines...)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

func namedChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}
