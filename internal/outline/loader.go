package outline

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languageSpec binds a grammar to the extensions it covers.
type languageSpec struct {
	grammar    *sitter.Language
	extensions []string
}

// loadLanguages builds the static grammar table. Grammars are linked into
// the binary; there is no runtime loading.
func loadLanguages() map[string]languageSpec {
	return map[string]languageSpec{
		"python": {
			grammar:    sitter.NewLanguage(tree_sitter_python.Language()),
			extensions: []string{".py", ".pyi"},
		},
		"go": {
			grammar:    sitter.NewLanguage(tree_sitter_go.Language()),
			extensions: []string{".go"},
		},
		"java": {
			grammar:    sitter.NewLanguage(tree_sitter_java.Language()),
			extensions: []string{".java"},
		},
		"javascript": {
			grammar:    sitter.NewLanguage(tree_sitter_javascript.Language()),
			extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		},
		"rust": {
			grammar:    sitter.NewLanguage(tree_sitter_rust.Language()),
			extensions: []string{".rs"},
		},
		"typescript": {
			grammar:    sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			extensions: []string{".ts", ".mts", ".cts"},
		},
		"tsx": {
			grammar:    sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			extensions: []string{".tsx"},
		},
	}
}
