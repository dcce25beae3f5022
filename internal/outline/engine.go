package outline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"corpus/internal/core/errors"
	"corpus/internal/shared/observability"
)

// extractor turns a parsed syntax tree into top-level symbols.
type extractor interface {
	extract(root *sitter.Node, source []byte) []Symbol
}

// Parser maps file extensions to grammars and runs the per-language
// extractors. One Parser is safe for sequential reuse across files.
type Parser struct {
	languages  map[string]languageSpec
	extensions map[string]string
	extractors map[string]extractor
	log        *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	p := &Parser{
		languages:  loadLanguages(),
		extensions: make(map[string]string),
		extractors: make(map[string]extractor),
		log:        logger,
	}
	for lang, spec := range p.languages {
		for _, ext := range spec.extensions {
			p.extensions[ext] = lang
		}
	}
	p.extractors["python"] = &pythonExtractor{}
	for lang, tbl := range universalTables {
		p.extractors[lang] = &universalExtractor{table: tbl}
	}
	return p
}

// Supports reports whether an outline can be produced for the file.
func (p *Parser) Supports(path string) bool {
	return p.languageFor(path) != ""
}

// SupportedLanguages lists the configured language identifiers.
func (p *Parser) SupportedLanguages() []string {
	langs := make([]string, 0, len(p.languages))
	for lang := range p.languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (p *Parser) languageFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return p.extensions[ext]
}

// OutlineFile parses one file's content and extracts its declarations.
// Syntax errors anywhere in the file degrade the whole file to a ParseErr
// record; extraction failures on a single declaration degrade only that
// symbol.
func (p *Parser) OutlineFile(path string, content []byte) (*FileOutline, error) {
	lang := p.languageFor(path)
	if lang == "" {
		return nil, errors.New(errors.CodeNotSupported, "no outline support for file").
			WithContext(errors.CtxPath, path)
	}

	out := &FileOutline{Path: path, Language: lang}

	start := time.Now()
	defer func() {
		observability.OutlineParseDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	}()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.languages[lang].grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed").
			WithContext(errors.CtxPath, path).
			WithContext(errors.CtxLanguage, lang)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		observability.OutlineParseErrors.Inc()
		out.ParseErr = fmt.Sprintf("syntax error in %s", filepath.Base(path))
		p.log.Debug("outline parse error", "path", path, "language", lang)
		return out, nil
	}

	out.Symbols = p.extractors[lang].extract(root, content)
	sort.SliceStable(out.Symbols, func(i, j int) bool {
		return out.Symbols[i].Line() < out.Symbols[j].Line()
	})
	return out, nil
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

func nodeLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}
