package outline

import (
	"fmt"
	"strings"
)

const (
	docLinesTop    = 3
	docLinesMethod = 2
	nestedDocChars = 100
)

// FormatOutline renders a file outline as plain text blocks. Declarations
// appear in source order; docstrings are truncated so the outline stays a
// summary rather than a second copy of the file.
func FormatOutline(out *FileOutline) string {
	if out.ParseErr != "" {
		return fmt.Sprintf("\nERROR: %s", out.ParseErr)
	}
	if len(out.Symbols) == 0 {
		return "No declarations found."
	}

	var b strings.Builder
	for _, sym := range out.Symbols {
		switch {
		case sym.Err != "":
			fmt.Fprintf(&b, "\nERROR: %s\n", sym.Err)
		case sym.Class != nil:
			writeClass(&b, sym.Class, "")
		case sym.Function != nil:
			writeFunction(&b, sym.Function, "", docLinesTop)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeClass(b *strings.Builder, cls *Class, indent string) {
	line := fmt.Sprintf("\n%sCLASS: %s", indent, cls.Name)
	if len(cls.Bases) > 0 {
		line += fmt.Sprintf("(%s)", strings.Join(cls.Bases, ", "))
	}
	b.WriteString(line + "\n")

	if len(cls.Decorators) > 0 {
		fmt.Fprintf(b, "%s  DECORATORS: %s\n", indent, strings.Join(cls.Decorators, ", "))
	}
	writeDocstring(b, cls.Doc, indent+"  ", docLinesTop)

	for i := range cls.Methods {
		writeFunction(b, &cls.Methods[i], indent+"  ", docLinesMethod)
	}
	for i := range cls.Nested {
		nested := &cls.Nested[i]
		fmt.Fprintf(b, "\n%s  NESTED CLASS: %s\n", indent, nested.Name)
		if nested.Doc != "" {
			doc := nested.Doc
			if len(doc) > nestedDocChars {
				doc = doc[:nestedDocChars]
			}
			fmt.Fprintf(b, "%s    DOCSTRING: %s...\n", indent, doc)
		}
	}
}

func writeFunction(b *strings.Builder, fn *Function, indent string, docLines int) {
	label := "FUNCTION"
	if fn.IsMethod {
		label = "METHOD"
	}
	if fn.Async {
		label = "ASYNC " + label
	}
	fmt.Fprintf(b, "\n%s%s: %s\n", indent, label, Signature(fn))

	if len(fn.Decorators) > 0 {
		fmt.Fprintf(b, "%s  DECORATORS: %s\n", indent, strings.Join(fn.Decorators, ", "))
	}
	writeDocstring(b, fn.Doc, indent+"  ", docLines)
}

func writeDocstring(b *strings.Builder, doc, indent string, limit int) {
	if doc == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	fmt.Fprintf(b, "%sDOCSTRING:\n", indent)
	for i := 0; i < len(lines) && i < limit; i++ {
		fmt.Fprintf(b, "%s  %s\n", indent, strings.TrimSpace(lines[i]))
	}
	if len(lines) > limit {
		fmt.Fprintf(b, "%s  ... (%d more lines)\n", indent, len(lines)-limit)
	}
}

// Signature formats a declaration header. Languages that carry a verbatim
// signature use it as-is; Python signatures are rebuilt from parameters.
func Signature(fn *Function) string {
	if fn.Err != "" {
		return fmt.Sprintf("%s (Error: %s)", fn.Name, fn.Err)
	}
	if fn.Signature != "" {
		return fn.Signature
	}

	parts := make([]string, 0, len(fn.Params))
	sawKeywordMarker := false
	for _, p := range fn.Params {
		s := p.Name
		switch p.Kind {
		case ParamVarArg:
			s = "*" + s
			sawKeywordMarker = true
		case ParamKwArg:
			s = "**" + s
		case ParamKeywordOnly:
			if !sawKeywordMarker {
				parts = append(parts, "*")
				sawKeywordMarker = true
			}
		}
		if p.Annotation != "" {
			s += ": " + p.Annotation
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		parts = append(parts, s)
	}

	sig := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(parts, ", "))
	if fn.ReturnType != "" {
		sig += " -> " + fn.ReturnType
	}
	return sig
}
