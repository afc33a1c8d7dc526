package analyzer

import "github.com/BLamy/does-it-throw/internal/ast"

// analyzeCatchGuards implements spec.md §4.3 step 1-2: flatten the
// handler's `if (e instanceof Id) { ... } else if ... else { ... }`
// chain into GuardBranches, and determine whether a reachable
// unconditional `throw e` follows the chain.
//
// Encoded as a small decision table rather than nested conditionals
// per spec.md §9's design note ("the single most bug-prone subsystem").
func analyzeCatchGuards(handler *ast.CatchClause, boundName string) ([]GuardBranch, bool) {
	if handler == nil || handler.Body == nil {
		return nil, false
	}
	stmts := handler.Body.Body
	if len(stmts) == 0 {
		return nil, false
	}

	ifStmt, ok := stmts[0].(*ast.IfStatement)
	if !ok {
		// No leading guard chain at all: the whole handler body is the
		// unconditional fallback.
		return nil, blockHasUnconditionalRethrow(stmts, boundName)
	}

	guards, tail := flattenGuardChain(ifStmt, boundName)
	if tail != nil {
		return guards, bodyHasUnconditionalRethrow(tail, boundName)
	}
	// No trailing `else`: an unconditional rethrow may still follow the
	// chain as later statements in the handler body.
	return guards, blockHasUnconditionalRethrow(stmts[1:], boundName)
}

// unconditionalRethrowNode locates the exact `throw <boundName>`
// statement that analyzeCatchGuards recognizes as the handler's
// unconditional rethrow, or nil if there is none. It mirrors
// analyzeCatchGuards' own traversal so the two never disagree about
// which statement (if any) is "the" rethrow. handleTry (callables.go)
// uses this to suppress the spurious RaiseSite a bare re-raise would
// otherwise record: spec.md §4.2 treats `throw e` for the caught
// variable as propagation of the already-recorded Rethrown kinds, not
// a RaiseSite of its own.
func unconditionalRethrowNode(handler *ast.CatchClause, boundName string) *ast.ThrowStatement {
	if handler == nil || handler.Body == nil {
		return nil
	}
	stmts := handler.Body.Body
	if len(stmts) == 0 {
		return nil
	}

	ifStmt, ok := stmts[0].(*ast.IfStatement)
	if !ok {
		return trailingRethrowStmt(stmts, boundName)
	}

	_, tail := flattenGuardChain(ifStmt, boundName)
	if tail != nil {
		return trailingRethrowStmt(statementsOf(tail), boundName)
	}
	return trailingRethrowStmt(stmts[1:], boundName)
}

// flattenGuardChain walks an `if (e instanceof A) {} else if (e
// instanceof B) {} else {}` chain, returning one GuardBranch per
// `instanceof` arm and the trailing non-guarded else body, if any.
// The chain stops (returning the offending node as tail) as soon as a
// condition is not a recognized `instanceof` guard.
func flattenGuardChain(ifStmt *ast.IfStatement, boundName string) ([]GuardBranch, ast.Statement) {
	guardKind, isGuard := guardedKind(ifStmt.Test, boundName)
	if !isGuard {
		return nil, ifStmt
	}
	branch := GuardBranch{GuardedKind: guardKind}
	classifyBranchBody(ifStmt.Consequent, boundName, &branch)
	guards := []GuardBranch{branch}

	if ifStmt.Alternate == nil {
		return guards, nil
	}
	if next, ok := ifStmt.Alternate.(*ast.IfStatement); ok {
		more, tail := flattenGuardChain(next, boundName)
		return append(guards, more...), tail
	}
	return guards, ifStmt.Alternate
}

// guardedKind recognizes `e instanceof Id` where e is the catch's
// bound exception identifier exactly (spec.md §4.3 step 1).
func guardedKind(test ast.Expression, boundName string) (ErrorKind, bool) {
	bin, ok := test.(*ast.BinaryExpression)
	if !ok || bin.Operator != "instanceof" {
		return ErrorKind{}, false
	}
	id, ok := bin.Left.(*ast.Identifier)
	if !ok || boundName == "" || id.Name != boundName {
		return ErrorKind{}, false
	}
	target, ok := bin.Right.(*ast.Identifier)
	if !ok {
		return ErrorKind{}, false
	}
	return ErrorKind{Variant: KindNamed, Name: target.Name}, true
}

// classifyBranchBody sets branch.Returns / branch.RethrowsKind
// according to whether every path inside body terminates via return
// (disposition "returns") or ends with a throw of the bound name or a
// `new` expression (disposition "rethrows(K)"). A throw of the bound
// name rethrows the branch's GuardedKind.
func classifyBranchBody(body ast.Statement, boundName string, branch *GuardBranch) {
	stmts := statementsOf(body)
	if len(stmts) == 0 {
		return
	}
	last := stmts[len(stmts)-1]
	switch s := last.(type) {
	case *ast.ReturnStatement:
		branch.Returns = true
	case *ast.ThrowStatement:
		if id, ok := s.Argument.(*ast.Identifier); ok && id.Name == boundName {
			k := branch.GuardedKind
			branch.RethrowsKind = &k
		} else {
			k := inferThrowKind(s.Argument)
			branch.RethrowsKind = &k
		}
	}
}

func statementsOf(s ast.Statement) []ast.Statement {
	if block, ok := s.(*ast.BlockStatement); ok {
		return block.Body
	}
	if s == nil {
		return nil
	}
	return []ast.Statement{s}
}

// bodyHasUnconditionalRethrow reports whether the final statement of
// body is a bare `throw e` (boundName) reaching the handler's end.
func bodyHasUnconditionalRethrow(body ast.Statement, boundName string) bool {
	return blockHasUnconditionalRethrow(statementsOf(body), boundName)
}

func blockHasUnconditionalRethrow(stmts []ast.Statement, boundName string) bool {
	return trailingRethrowStmt(stmts, boundName) != nil
}

// trailingRethrowStmt returns stmts' last statement when it is exactly
// `throw <boundName>`, or nil otherwise.
func trailingRethrowStmt(stmts []ast.Statement, boundName string) *ast.ThrowStatement {
	if len(stmts) == 0 {
		return nil
	}
	last := stmts[len(stmts)-1]
	throwStmt, ok := last.(*ast.ThrowStatement)
	if !ok {
		return nil
	}
	id, ok := throwStmt.Argument.(*ast.Identifier)
	if !ok || id.Name != boundName {
		return nil
	}
	return throwStmt
}

// solveCatchFrame implements spec.md §4.3 steps 3-6: given the raw raise
// kinds and one-hop call-imported kinds reaching a TryFrame's protected
// region (computed by the effect solver, effects.go), compute Protected,
// Masked, Rethrown, and Missing.
func solveCatchFrame(frame *TryFrame, protected []ErrorKind) {
	frame.Protected = protected
	frame.Masked = make(map[string]bool)

	guardedKeys := make(map[string]bool)
	var rethrown []ErrorKind
	for _, g := range frame.Guards {
		guardedKeys[g.GuardedKind.Key()] = true
		if g.Returns {
			frame.Masked[g.GuardedKind.Key()] = true
		}
		if g.RethrowsKind != nil {
			rethrown = append(rethrown, *g.RethrowsKind)
		}
	}

	var missing []ErrorKind
	for _, k := range protected {
		key := k.Key()
		if frame.Masked[key] || guardedKeys[key] {
			continue
		}
		if frame.HasUnconditionalRethrow {
			rethrown = append(rethrown, k)
		} else {
			missing = append(missing, k)
		}
	}
	frame.Rethrown = dedupKinds(rethrown)
	frame.Missing = dedupKinds(missing)
}

func dedupKinds(kinds []ErrorKind) []ErrorKind {
	seen := make(map[string]bool, len(kinds))
	out := make([]ErrorKind, 0, len(kinds))
	for _, k := range kinds {
		if seen[k.Key()] {
			continue
		}
		seen[k.Key()] = true
		out = append(out, k)
	}
	return out
}
