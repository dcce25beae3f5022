package outline

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pythonExtractor walks top-level declarations of a Python module. Methods
// and nested classes are collected recursively; anything defined inside a
// function body is ignored.
type pythonExtractor struct{}

func (e *pythonExtractor) extract(root *sitter.Node, source []byte) []Symbol {
	var symbols []Symbol
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if sym, ok := e.extractDeclaration(child, source, false); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// extractDeclaration handles function_definition, class_definition and
// decorated_definition nodes. Other node kinds are skipped.
func (e *pythonExtractor) extractDeclaration(node *sitter.Node, source []byte, isMethod bool) (Symbol, bool) {
	var decorators []string
	target := node
	if node.Kind() == "decorated_definition" {
		decorators = e.extractDecorators(node, source)
		target = node.ChildByFieldName("definition")
		if target == nil {
			return Symbol{Err: "decorated definition without body", ErrLine: nodeLine(node)}, true
		}
	}

	switch target.Kind() {
	case "function_definition":
		fn, err := e.extractFunction(target, source, isMethod)
		if err != nil {
			return Symbol{Err: err.Error(), ErrLine: nodeLine(target)}, true
		}
		fn.Decorators = decorators
		return Symbol{Function: fn}, true
	case "class_definition":
		cls, err := e.extractClass(target, source)
		if err != nil {
			return Symbol{Err: err.Error(), ErrLine: nodeLine(target)}, true
		}
		cls.Decorators = decorators
		return Symbol{Class: cls}, true
	}
	return Symbol{}, false
}

func (e *pythonExtractor) extractFunction(node *sitter.Node, source []byte, isMethod bool) (*Function, error) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return nil, fmt.Errorf("function without name at line %d", nodeLine(node))
	}

	fn := &Function{
		Name:     nodeText(name, source),
		IsMethod: isMethod,
		Line:     nodeLine(node),
		Doc:      e.extractDocstring(node.ChildByFieldName("body"), source),
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "async" {
			fn.Async = true
			break
		}
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = renderExpr(ret, source)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = e.extractParams(params, source)
	}
	return fn, nil
}

func (e *pythonExtractor) extractParams(params *sitter.Node, source []byte) []Param {
	var out []Param
	keywordOnly := false

	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, Param{Name: nodeText(child, source), Kind: paramKind(keywordOnly)})
		case "typed_parameter":
			p := Param{Kind: paramKind(keywordOnly)}
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "identifier" {
					p.Name = nodeText(sub, source)
					break
				}
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Annotation = renderExpr(typ, source)
			}
			out = append(out, p)
		case "default_parameter":
			out = append(out, Param{
				Name:    nodeText(child.ChildByFieldName("name"), source),
				Default: renderExpr(child.ChildByFieldName("value"), source),
				Kind:    paramKind(keywordOnly),
			})
		case "typed_default_parameter":
			out = append(out, Param{
				Name:       nodeText(child.ChildByFieldName("name"), source),
				Annotation: renderExpr(child.ChildByFieldName("type"), source),
				Default:    renderExpr(child.ChildByFieldName("value"), source),
				Kind:       paramKind(keywordOnly),
			})
		case "list_splat_pattern":
			name := strings.TrimPrefix(nodeText(child, source), "*")
			out = append(out, Param{Name: name, Kind: ParamVarArg})
			keywordOnly = true
		case "dictionary_splat_pattern":
			name := strings.TrimPrefix(nodeText(child, source), "**")
			out = append(out, Param{Name: name, Kind: ParamKwArg})
		case "keyword_separator":
			keywordOnly = true
		case "positional_separator":
			// "/" marker carries no name of its own
		}
	}
	return out
}

func paramKind(keywordOnly bool) ParamKind {
	if keywordOnly {
		return ParamKeywordOnly
	}
	return ParamPositional
}

func (e *pythonExtractor) extractClass(node *sitter.Node, source []byte) (*Class, error) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return nil, fmt.Errorf("class without name at line %d", nodeLine(node))
	}

	cls := &Class{
		Name: nodeText(name, source),
		Line: nodeLine(node),
	}
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.ChildCount(); i++ {
			arg := supers.Child(i)
			switch arg.Kind() {
			case "(", ")", ",", "comment":
				continue
			}
			cls.Bases = append(cls.Bases, renderExpr(arg, source))
		}
	}

	body := node.ChildByFieldName("body")
	cls.Doc = e.extractDocstring(body, source)
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			sym, ok := e.extractDeclaration(child, source, true)
			if !ok {
				continue
			}
			switch {
			case sym.Function != nil:
				cls.Methods = append(cls.Methods, *sym.Function)
			case sym.Class != nil:
				cls.Nested = append(cls.Nested, *sym.Class)
			case sym.Err != "":
				cls.Methods = append(cls.Methods, Function{
					Name: "<error>", Line: sym.ErrLine, Err: sym.Err, IsMethod: true,
				})
			}
		}
	}
	return cls, nil
}

func (e *pythonExtractor) extractDecorators(decorated *sitter.Node, source []byte) []string {
	var out []string
	for i := uint(0); i < decorated.ChildCount(); i++ {
		child := decorated.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		// skip the "@" token, render the expression after it
		for j := uint(0); j < child.ChildCount(); j++ {
			sub := child.Child(j)
			if sub.Kind() == "@" {
				continue
			}
			out = append(out, renderExpr(sub, source))
			break
		}
	}
	return out
}

// extractDocstring reads the leading string literal of a block, decoding
// only its string_content pieces so quotes and prefixes are dropped.
func (e *pythonExtractor) extractDocstring(body *sitter.Node, source []byte) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str.Kind() != "string" {
		return ""
	}
	var parts []string
	for i := uint(0); i < str.ChildCount(); i++ {
		child := str.Child(i)
		if child.Kind() == "string_content" {
			parts = append(parts, nodeText(child, source))
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// renderExpr formats annotation, default and decorator expressions. Simple
// expressions reproduce their source text; anything structurally rich is
// collapsed to a stable placeholder so outlines stay readable.
func renderExpr(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "identifier", "attribute", "string", "concatenated_string",
		"integer", "float", "true", "false", "none",
		"subscript", "list", "tuple", "call", "unary_operator", "type":
		return nodeText(node, source)
	default:
		return "<complex_expression>"
	}
}
