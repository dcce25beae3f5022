package outline

// ParamKind classifies a function parameter.
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamVarArg
	ParamKeywordOnly
	ParamKwArg
)

// Param is one parameter of a function-like declaration.
type Param struct {
	Name       string
	Annotation string
	Default    string
	Kind       ParamKind
}

// Function is an extracted function or method declaration.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string
	Doc        string
	Decorators []string
	Async      bool
	IsMethod   bool
	Line       int

	// Signature, when set, is a verbatim signature string used instead of
	// Params (the universal extractor fills it; the Python extractor builds
	// signatures from Params).
	Signature string

	// Err marks a degraded record: extraction of this declaration failed
	// but its siblings were unaffected.
	Err string
}

// Class is an extracted class-like declaration with its members.
type Class struct {
	Name       string
	Bases      []string
	Decorators []string
	Doc        string
	Methods    []Function
	Nested     []Class
	Line       int
	Err        string
}

// Symbol is a tagged variant: exactly one of Function, Class, or Err is set.
type Symbol struct {
	Function *Function
	Class    *Class
	Err      string
	ErrLine  int
}

// Line returns the source line for ordering. Symbols are always sorted by
// ascending line for output determinism.
func (s Symbol) Line() int {
	switch {
	case s.Function != nil:
		return s.Function.Line
	case s.Class != nil:
		return s.Class.Line
	default:
		return s.ErrLine
	}
}

// FileOutline is the per-file extraction result. A parse failure fills
// ParseErr and leaves Symbols empty: outline generation is all-or-nothing
// per file, but one file's failure never aborts the batch.
type FileOutline struct {
	Path     string
	Language string
	Symbols  []Symbol
	ParseErr string
}
