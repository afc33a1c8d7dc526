package analyzer

import (
	"fmt"
	"strings"

	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/lexer"
)

// newCallable allocates the next Callable ID and registers it on state.
func (st *analysisState) newCallable(c *Callable) *Callable {
	c.ID = st.nextID
	st.nextID++
	st.callables = append(st.callables, c)
	return c
}

// enumerate is the Callable Enumerator (spec.md §4.1): a single
// recursive pass over the Program that, for every function/method/
// arrow/object-literal-method/anonymous-callback, builds a Callable
// record with its parent link, then immediately walks that Callable's
// own body for raise sites, try frames, and call sites (handleThrow and
// inferThrowKind below, catches.go) before recursing into any further-nested Callables it
// discovers — "descend into nested Callables only to record them for
// separate processing; do not attribute their raises upward" (spec.md §4.2).
func enumerate(st *analysisState, prog *ast.Program, exportedNames map[string]bool) *Callable {
	module := st.newCallable(&Callable{
		Name:      "<module>",
		Qualified: "<module>",
		Kind:      KindFree,
		IsModule:  true,
		ParentID:  -1,
		HeadSpan:  prog.Span,
		BodySpan:  prog.Span,
	})
	ctx := &walkCtx{state: st, exported: exportedNames}
	ctx.walkStatements(prog.Body, module, nil)
	return module
}

// walkCtx threads read-only enumeration context (the exported-name set)
// alongside the per-call analysisState.
type walkCtx struct {
	state    *analysisState
	exported map[string]bool

	// skipRethrow is the handler's own unconditional-rethrow statement
	// (catches.go's unconditionalRethrowNode) while handleTry is walking
	// that handler's body, or nil otherwise. The walk is single-threaded
	// depth-first, so a plain field — set before descending into the
	// handler body and restored after — is enough; handleThrow checks it
	// by pointer identity to skip recording that one statement as a
	// RaiseSite (it is already folded into TryFrame.HasUnconditionalRethrow).
	skipRethrow *ast.ThrowStatement
}

func (c *walkCtx) isExported(name string) bool {
	return c.exported != nil && c.exported[name]
}

// attachDoc looks up the nearest preceding comment and, if it is a
// DocComment separated from declStart only by whitespace, parses and
// attaches its `@throws` tags (spec.md §4.1 "Doc ownership").
func (c *walkCtx) attachDoc(callable *Callable, declStart int) {
	callable.DeclStart = declStart
	if c.state.comments == nil {
		return
	}
	cm := c.state.comments.ImmediatelyBefore(declStart)
	if cm == nil || cm.Kind != lexer.DocComment {
		return
	}
	between := c.state.source[cm.EndOffset:clampOffset(declStart, len(c.state.source))]
	if strings.TrimSpace(between) != "" {
		return
	}
	span := ast.Span{Start: cm.StartOffset, End: cm.EndOffset}
	callable.DocSpan = &span
	callable.Documented = parseDocThrows(cm.Text)
}

func clampOffset(off, max int) int {
	if off > max {
		return max
	}
	if off < 0 {
		return 0
	}
	return off
}

func (c *walkCtx) syntheticAnon(span ast.Span) string {
	pos := c.state.lineIndex.Position(span.Start)
	return fmt.Sprintf("<anonymous@%s:%d:%d>", c.state.filename, pos.Line, pos.Character)
}

// walkStatements processes a statement list against parent's body,
// threading the active protected-region try-frame stack.
func (c *walkCtx) walkStatements(stmts []ast.Statement, parent *Callable, tryStack []*TryFrame) {
	for _, s := range stmts {
		c.walkStatement(s, parent, tryStack)
	}
}

func (c *walkCtx) walkStatement(stmt ast.Statement, parent *Callable, tryStack []*TryFrame) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.BlockStatement:
		c.walkStatements(s.Body, parent, tryStack)
	case *ast.ExpressionStatement:
		c.walkExpression(s.Expression, parent, tryStack, "", -1)
	case *ast.ReturnStatement:
		c.walkExpression(s.Argument, parent, tryStack, "", -1)
	case *ast.ThrowStatement:
		c.handleThrow(s, parent, tryStack)
	case *ast.IfStatement:
		c.walkExpression(s.Test, parent, tryStack, "", -1)
		c.walkStatement(s.Consequent, parent, tryStack)
		c.walkStatement(s.Alternate, parent, tryStack)
	case *ast.TryStatement:
		c.handleTry(s, parent, tryStack)
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			name := ""
			if id, ok := d.ID.(*ast.Identifier); ok {
				name = id.Name
			}
			c.walkExpression(d.Init, parent, tryStack, name, s.Span.Start)
		}
	case *ast.FunctionDeclaration:
		c.declareFreeFunction(s, parent)
	case *ast.ClassDeclaration:
		c.declareClass(s, parent)
	default:
		// no throw/call/callable content reachable from other statement kinds
	}
}

// walkExpression descends into expressions looking for call sites,
// throw-adjacent constructs are handled by handleThrow, and any
// function/arrow/class expression value it finds becomes a new
// Callable rather than being walked inline. boundName is the
// identifier this expression is being assigned/bound to, if any
// (spec.md §4.1: "const NAME = (...) => { ... }" naming rule).
func (c *walkCtx) walkExpression(expr ast.Expression, parent *Callable, tryStack []*TryFrame, boundName string, docAnchor int) {
	switch e := expr.(type) {
	case nil:
		return
	case *ast.FunctionExpression:
		c.declareNamedOrAnonFunction(e, parent, boundName, docAnchor)
	case *ast.ArrowFunctionExpression:
		c.declareArrow(e, parent, boundName, docAnchor)
	case *ast.ClassDeclaration:
		c.declareClass(e, parent)
	case *ast.CallExpression:
		c.handleCall2(e.Callee, e.Arguments, e.Span, parent, tryStack, false)
		for _, a := range e.Arguments {
			c.walkExpression(a, parent, tryStack, "", -1)
		}
	case *ast.NewExpression:
		c.handleCall2(e.Callee, e.Arguments, e.Span, parent, tryStack, true)
		for _, a := range e.Arguments {
			c.walkExpression(a, parent, tryStack, "", -1)
		}
	case *ast.MemberExpression:
		c.walkExpression(e.Object, parent, tryStack, "", -1)
	case *ast.BinaryExpression:
		c.walkExpression(e.Left, parent, tryStack, "", -1)
		c.walkExpression(e.Right, parent, tryStack, "", -1)
	case *ast.LogicalExpression:
		c.walkExpression(e.Left, parent, tryStack, "", -1)
		c.walkExpression(e.Right, parent, tryStack, "", -1)
	case *ast.AssignmentExpression:
		name := ""
		if id, ok := e.Left.(*ast.Identifier); ok {
			name = id.Name
		}
		c.walkExpression(e.Right, parent, tryStack, name, e.Span.Start)
	case *ast.ConditionalExpression:
		c.walkExpression(e.Test, parent, tryStack, "", -1)
		c.walkExpression(e.Consequent, parent, tryStack, "", -1)
		c.walkExpression(e.Alternate, parent, tryStack, "", -1)
	case *ast.UnaryExpression:
		c.walkExpression(e.Argument, parent, tryStack, "", -1)
	case *ast.SpreadElement:
		c.walkExpression(e.Argument, parent, tryStack, "", -1)
	case *ast.SequenceExpression:
		for _, sub := range e.Expressions {
			c.walkExpression(sub, parent, tryStack, "", -1)
		}
	case *ast.ArrayExpression:
		for _, el := range e.Elements {
			c.walkExpression(el, parent, tryStack, "", -1)
		}
	case *ast.ObjectExpression:
		c.declareObjectMethods(e, parent)
	default:
		// identifiers/literals/this: leaves, nothing to collect
	}
}

func (c *walkCtx) declareFreeFunction(fn *ast.FunctionDeclaration, parent *Callable) {
	name := "<anonymous>"
	headSpan := fn.Span
	exported := false
	if fn.Name != nil {
		name = fn.Name.Name
		headSpan = fn.Name.Span
		exported = c.isExported(name)
	}
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: name, Kind: KindFree,
		HeadSpan: headSpan, BodySpan: fn.Body.GetSpan(),
		ParentID: parent.ID, Exported: exported, Body: fn.Body,
	})
	c.attachDoc(callable, fn.Span.Start)
	c.walkStatements(fn.Body.Body, callable, nil)
}

func (c *walkCtx) declareNamedOrAnonFunction(fn *ast.FunctionExpression, parent *Callable, boundName string, docAnchor int) {
	name := boundName
	kind := KindFree
	headSpan := fn.Span
	if name == "" && fn.Name != nil {
		name = fn.Name.Name
	}
	if name == "" {
		kind = KindAnonymousCallback
	} else {
		headSpan = ast.Span{Start: fn.Span.Start, End: fn.Span.Start}
	}
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: qualifiedOrAnon(c, name, fn.Span),
		Kind: kind, HeadSpan: headSpan, BodySpan: fn.Body.GetSpan(),
		ParentID: parent.ID, Exported: name != "" && c.isExported(name), Body: fn.Body,
	})
	anchor := fn.Span.Start
	if docAnchor >= 0 {
		anchor = docAnchor
	}
	c.attachDoc(callable, anchor)
	c.walkStatements(fn.Body.Body, callable, nil)
}

func (c *walkCtx) declareArrow(fn *ast.ArrowFunctionExpression, parent *Callable, boundName string, docAnchor int) {
	name := boundName
	kind := KindArrow
	if name == "" {
		kind = KindAnonymousCallback
	}
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: qualifiedOrAnon(c, name, fn.Span),
		Kind: kind, HeadSpan: fn.Span, BodySpan: fn.GetSpan(),
		ParentID: parent.ID, Exported: name != "" && c.isExported(name), Body: fn.Body,
	})
	anchor := fn.Span.Start
	if docAnchor >= 0 {
		anchor = docAnchor
	}
	c.attachDoc(callable, anchor)
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		c.walkStatements(body.Body, callable, nil)
	case ast.Expression:
		c.walkExpression(body, callable, nil, "", -1)
	}
}

// qualifiedOrAnon returns name itself when non-empty, else a synthetic anonymous id.
func qualifiedOrAnon(c *walkCtx, name string, span ast.Span) string {
	if name != "" {
		return name
	}
	return c.syntheticAnon(span)
}

func (c *walkCtx) declareClass(cls *ast.ClassDeclaration, parent *Callable) {
	className := "<anonymous>"
	classExported := false
	if cls.Name != nil {
		className = cls.Name.Name
		classExported = c.isExported(className)
	}
	for _, m := range cls.Body {
		switch member := m.(type) {
		case *ast.MethodDefinition:
			c.declareMethod(member, className, classExported, parent)
		case *ast.PropertyDefinition:
			if member.Value == nil {
				continue
			}
			switch v := member.Value.(type) {
			case *ast.FunctionExpression:
				c.declareFieldCallable(member, className, classExported, parent, v.Body, v.Span, v.Async)
			case *ast.ArrowFunctionExpression:
				c.declareArrowField(member, className, classExported, parent, v)
			}
		}
	}
}

func (c *walkCtx) declareMethod(m *ast.MethodDefinition, className string, classExported bool, parent *Callable) {
	name, _ := propertyKeyName(m.Key)
	if name == "" {
		name = "<anonymous>"
	}
	kind := KindMethod
	switch m.Kind {
	case ast.MethodKindConstructor:
		kind = KindConstructor
		name = constructorName
	case ast.MethodKindGet, ast.MethodKindSet:
		kind = KindAccessor
	}
	qualified := className + "." + name
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: qualified, Kind: kind, ClassName: className,
		HeadSpan: m.Key.GetSpan(), BodySpan: m.Value.Body.GetSpan(),
		ParentID: parent.ID, Exported: classExported, Body: m.Value.Body,
	})
	c.attachDoc(callable, m.Span.Start)
	c.walkStatements(m.Value.Body.Body, callable, nil)
}

func (c *walkCtx) declareFieldCallable(field *ast.PropertyDefinition, className string, classExported bool, parent *Callable, body *ast.BlockStatement, span ast.Span, _ bool) {
	name, _ := propertyKeyName(field.Key)
	if name == "" {
		name = "<anonymous>"
	}
	qualified := className + "." + name
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: qualified, Kind: KindObjectLiteralMethod, ClassName: className,
		HeadSpan: field.Key.GetSpan(), BodySpan: body.GetSpan(),
		ParentID: parent.ID, Exported: classExported, Body: body,
	})
	c.attachDoc(callable, field.Span.Start)
	c.walkStatements(body.Body, callable, nil)
}

func (c *walkCtx) declareArrowField(field *ast.PropertyDefinition, className string, classExported bool, parent *Callable, fn *ast.ArrowFunctionExpression) {
	name, _ := propertyKeyName(field.Key)
	if name == "" {
		name = "<anonymous>"
	}
	qualified := className + "." + name
	callable := c.state.newCallable(&Callable{
		Name: name, Qualified: qualified, Kind: KindObjectLiteralMethod, ClassName: className,
		HeadSpan: field.Key.GetSpan(), BodySpan: fn.GetSpan(),
		ParentID: parent.ID, Exported: classExported, Body: fn.Body,
	})
	c.attachDoc(callable, field.Span.Start)
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		c.walkStatements(body.Body, callable, nil)
	case ast.Expression:
		c.walkExpression(body, callable, nil, "", -1)
	}
}

func (c *walkCtx) declareObjectMethods(obj *ast.ObjectExpression, parent *Callable) {
	for _, prop := range obj.Properties {
		if prop.Key == nil {
			continue
		}
		name, _ := propertyKeyName(prop.Key)
		switch prop.Kind {
		case ast.PropertyKindMethod, ast.PropertyKindGet, ast.PropertyKindSet:
			fn, ok := prop.Value.(*ast.FunctionExpression)
			if !ok {
				continue
			}
			kind := KindObjectLiteralMethod
			if prop.Kind == ast.PropertyKindGet || prop.Kind == ast.PropertyKindSet {
				kind = KindAccessor
			}
			if name == "" {
				name = "<anonymous>"
			}
			callable := c.state.newCallable(&Callable{
				Name: name, Qualified: name, Kind: kind,
				HeadSpan: prop.Key.GetSpan(), BodySpan: fn.Body.GetSpan(),
				ParentID: parent.ID, Body: fn.Body,
			})
			c.attachDoc(callable, prop.Span.Start)
			c.walkStatements(fn.Body.Body, callable, nil)
		default:
			switch v := prop.Value.(type) {
			case *ast.FunctionExpression:
				if name == "" {
					name = "<anonymous>"
				}
				callable := c.state.newCallable(&Callable{
					Name: name, Qualified: name, Kind: KindObjectLiteralMethod,
					HeadSpan: prop.Key.GetSpan(), BodySpan: v.Body.GetSpan(),
					ParentID: parent.ID, Body: v.Body,
				})
				c.attachDoc(callable, prop.Span.Start)
				c.walkStatements(v.Body.Body, callable, nil)
			case *ast.ArrowFunctionExpression:
				if name == "" {
					name = "<anonymous>"
				}
				callable := c.state.newCallable(&Callable{
					Name: name, Qualified: name, Kind: KindObjectLiteralMethod,
					HeadSpan: prop.Key.GetSpan(), BodySpan: v.GetSpan(),
					ParentID: parent.ID, Body: v.Body,
				})
				c.attachDoc(callable, prop.Span.Start)
				switch body := v.Body.(type) {
				case *ast.BlockStatement:
					c.walkStatements(body.Body, callable, nil)
				case ast.Expression:
					c.walkExpression(body, callable, nil, "", -1)
				}
			default:
				c.walkExpression(prop.Value, parent, nil, "", -1)
			}
		}
	}
}

// propertyKeyName extracts a static name from a property/method key
// expression, or ("", false) for a computed key this subset can't
// resolve statically.
func propertyKeyName(key ast.Expression) (string, bool) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, true
	case *ast.StringLiteral:
		return k.Value, true
	case *ast.NumericLiteral:
		return k.Value, true
	default:
		return "", false
	}
}

// handleTry walks a TryStatement: the protected block is walked with
// this frame pushed onto tryStack (so raises/calls inside it record
// this TryFrame as their innermost enclosing frame); the handler body
// is then analyzed by the catch analyzer (catches.go) and walked with
// the frame popped again, since a handler is not protected by its own try.
func (c *walkCtx) handleTry(stmt *ast.TryStatement, parent *Callable, tryStack []*TryFrame) {
	frame := &TryFrame{Span: stmt.Block.GetSpan()}
	if n := len(tryStack); n > 0 {
		frame.Parent = tryStack[n-1]
	}
	if stmt.Handler != nil {
		frame.HasHandler = true
		frame.HandlerSpan = ast.Span{Start: stmt.Handler.Tok.Offset, End: stmt.Handler.Tok.EndOffset}
		if stmt.Handler.Param != nil {
			frame.BoundName = stmt.Handler.Param.Name
		}
		frame.Guards, frame.HasUnconditionalRethrow = analyzeCatchGuards(stmt.Handler, frame.BoundName)
	}
	parent.TryFrames = append(parent.TryFrames, frame)

	c.walkStatements(stmt.Block.Body, parent, append(tryStack, frame))
	if stmt.Handler != nil {
		prevSkip := c.skipRethrow
		c.skipRethrow = unconditionalRethrowNode(stmt.Handler, frame.BoundName)
		c.walkStatements(stmt.Handler.Body.Body, parent, tryStack)
		c.skipRethrow = prevSkip
	}
	if stmt.Finalizer != nil {
		// Non-goal: finally is parsed for fidelity but never inspected for throws.
		_ = stmt.Finalizer
	}
}

func (c *walkCtx) handleThrow(stmt *ast.ThrowStatement, parent *Callable, tryStack []*TryFrame) {
	var frame *TryFrame
	if n := len(tryStack); n > 0 {
		frame = tryStack[n-1]
	}

	// The handler's unconditional re-raise `throw e` (e being the
	// catch's bound name) is not itself a new RaiseSite: it is already
	// folded into frame.HasUnconditionalRethrow by analyzeCatchGuards.
	// handleTry sets c.skipRethrow to that exact statement while walking
	// the handler body, so it is recorded once (as the TryFrame's
	// Rethrown kinds) and not again as a raw raise. Any other `throw e`
	// in the handler, such as one inside a guard branch, is recorded as
	// a RaiseSite of kind {variable: e}.
	if stmt == c.skipRethrow {
		c.walkExpression(stmt.Argument, parent, tryStack, "", -1)
		return
	}

	kind := inferThrowKind(stmt.Argument)
	site := &RaiseSite{Span: stmt.Span, Kind: kind, TryFrame: frame}
	parent.RaiseSites = append(parent.RaiseSites, site)
	c.walkExpression(stmt.Argument, parent, tryStack, "", -1)
}

// inferThrowKind implements spec.md §4.2's ErrorKind inference rules.
func inferThrowKind(arg ast.Expression) ErrorKind {
	switch e := arg.(type) {
	case *ast.NewExpression:
		if id, ok := e.Callee.(*ast.Identifier); ok {
			return ErrorKind{Variant: KindNamed, Name: id.Name}
		}
		return ErrorKind{Variant: KindAnonymous}
	case *ast.Identifier:
		return ErrorKind{Variant: KindVariable, Name: e.Name}
	case *ast.StringLiteral, *ast.NumericLiteral, *ast.TemplateLiteral, *ast.BooleanLiteral:
		return ErrorKind{Variant: KindLiteral}
	default:
		return ErrorKind{Variant: KindAnonymous}
	}
}

func (c *walkCtx) handleCall2(callee ast.Expression, _ []ast.Expression, span ast.Span, parent *Callable, tryStack []*TryFrame, isNew bool) {
	var frame *TryFrame
	if n := len(tryStack); n > 0 {
		frame = tryStack[n-1]
	}
	site := &CallSite{Span: span, CalleeText: calleeText(callee), IsNew: isNew, TryFrame: frame}
	parent.CallSites = append(parent.CallSites, site)
	c.walkExpression(callee, parent, tryStack, "", -1)
}

// calleeText renders a call's callee expression as the dotted path or
// bare identifier spec.md §3's CallSite needs for lexical resolution
// (effects.go / calls.go).
func calleeText(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.MemberExpression:
		obj := calleeText(e.Object)
		if e.Computed {
			return obj + "[...]"
		}
		if id, ok := e.Property.(*ast.Identifier); ok {
			return obj + "." + id.Name
		}
		return obj + ".?"
	case *ast.ThisExpression:
		return "this"
	default:
		return "?"
	}
}
