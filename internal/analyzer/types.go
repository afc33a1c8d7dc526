// Package analyzer implements the seven analysis passes this module
// exists for: the Callable Enumerator, Throw Collector, Catch Analyzer,
// Doc Reconciler, Effect Solver, Call Linker, and Suppression Engine,
// plus the Emitter that turns their combined result into a
// diagnostics.Diagnostic slice. Split by concern into multiple files
// (callables.go, which also collects throws, catches.go, docs.go, effects.go, calls.go,
// bridge.go, suppression.go, emitter.go) the way the teacher splits its
// own internal/analyzer package (declarations_functions.go,
// inference_calls.go, inference_control.go, …) rather than one
// monolithic file.
package analyzer

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
	"github.com/BLamy/does-it-throw/internal/lexer"
)

// ErrorKind is the tagged variant of a thrown value's inferred class.
type ErrorKind struct {
	Variant ErrorKindVariant
	Name    string // identifier for Named/Variable; unused for Anonymous/Literal
}

type ErrorKindVariant int

const (
	KindNamed ErrorKindVariant = iota
	KindAnonymous
	KindLiteral
	KindVariable
)

// Render produces the emitter's `{K1, K2}`-style rendering of a single kind.
func (k ErrorKind) Render() string {
	switch k.Variant {
	case KindNamed:
		return k.Name
	case KindVariable:
		return "variable: " + k.Name
	case KindLiteral:
		return "Literal"
	default:
		return "Error"
	}
}

// Key is a stable map/set key for an ErrorKind.
func (k ErrorKind) Key() string {
	switch k.Variant {
	case KindNamed:
		return "N:" + k.Name
	case KindVariable:
		return "V:" + k.Name
	case KindLiteral:
		return "L"
	default:
		return "A"
	}
}

// CallableKind enumerates how a Callable was declared (spec.md §3).
type CallableKind int

const (
	KindFree CallableKind = iota
	KindMethod
	KindConstructor
	KindArrow
	KindAccessor
	KindObjectLiteralMethod
	KindAnonymousCallback
)

// Callable is one function/scope record (spec.md §3).
type Callable struct {
	ID       int
	Name     string // user-visible name, or "" for a true anonymous-callback
	Qualified string // dotted path used for cross-file ThrowIds
	Kind     CallableKind
	HeadSpan ast.Span
	BodySpan ast.Span
	DocSpan  *ast.Span
	DeclStart int // offset a leading pragma/doc comment attaches against; may precede HeadSpan (e.g. the `function`/`const` keyword, not the name)
	ParentID  int // -1 for the synthetic <module> root
	ClassName string // non-empty only for class methods/accessors/fields
	Exported  bool
	IsModule  bool // true only for the synthetic top-level Callable

	Body ast.Node // *ast.BlockStatement, or an Expression for a concise arrow body

	RaiseSites []*RaiseSite
	TryFrames  []*TryFrame
	CallSites  []*CallSite

	Documented map[string]ErrorKind // keys are ErrorKind.Key()

	// Populated by the effect solver (effects.go).
	RaisedFromBody []ErrorKind // deduplicated, source-appearance order
	Effective      []ErrorKind // after masking, doc subtraction, and one-hop import
	Suppressed     bool

	// Populated by the suppression engine (suppression.go) when a
	// function-leading pragma precedes this Callable's head.
	SuppressionSpan *ast.Span
}

// RaiseSite is one `throw` statement (spec.md §3).
type RaiseSite struct {
	Span      ast.Span
	Kind      ErrorKind
	TryFrame  *TryFrame // nearest enclosing protected-region TryFrame, or nil
	Suppressed bool
}

// GuardBranch is one `e instanceof Id` arm of a catch handler (spec.md §4.3).
type GuardBranch struct {
	GuardedKind  ErrorKind
	Returns      bool
	RethrowsKind *ErrorKind // non-nil if this branch ends with a throw
}

// TryFrame is one `try { } catch (e) { }` construct (spec.md §3).
type TryFrame struct {
	Span                  ast.Span // protected (try) block span
	HandlerSpan           ast.Span // catch head span, used for ExhaustiveCatchMissing
	HasHandler            bool
	BoundName             string
	Guards                []GuardBranch
	HasUnconditionalRethrow bool
	Parent                *TryFrame // enclosing TryFrame, if this try is nested in another's protected block

	// Populated by the catch analyzer (catches.go).
	Protected []ErrorKind // P
	Masked    map[string]bool // M, by ErrorKind.Key()
	Rethrown  []ErrorKind // R
	Missing   []ErrorKind // P \ (M ∪ guarded), reported when no unconditional rethrow
}

// CallSite is one call or `new` expression (spec.md §3).
type CallSite struct {
	Span       ast.Span
	CalleeText string // dotted path or identifier, as written
	IsNew      bool
	TryFrame   *TryFrame // nearest enclosing protected-region TryFrame, or nil
	Linked     *Callable // non-nil once the call linker resolves it locally
	Suppressed bool
}

// DocBlock is a parsed `/** ... */` block (spec.md §3, §4.4).
type DocBlock struct {
	Span       ast.Span
	Documented map[string]ErrorKind
}

// analysisState is the mutable working set threaded through every pass
// for one Analyze call.
type analysisState struct {
	filename  string
	source    string
	lineIndex *diagnostics.LineIndex
	comments  *lexer.CommentIndex
	callables []*Callable
	nextID    int
}
