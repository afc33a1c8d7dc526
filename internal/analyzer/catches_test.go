package analyzer

import (
	"testing"

	"github.com/BLamy/does-it-throw/internal/ast"
)

func throwStmt(name string) *ast.ThrowStatement {
	return &ast.ThrowStatement{Argument: &ast.Identifier{Name: name}}
}

func returnStmt() *ast.ReturnStatement { return &ast.ReturnStatement{} }

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Body: stmts}
}

func instanceofGuard(bound, kind string) *ast.BinaryExpression {
	return &ast.BinaryExpression{
		Operator: "instanceof",
		Left:     &ast.Identifier{Name: bound},
		Right:    &ast.Identifier{Name: kind},
	}
}

func TestAnalyzeCatchGuards_SingleMaskingGuard(t *testing.T) {
	handler := &ast.CatchClause{
		Param: &ast.Identifier{Name: "e"},
		Body: block(&ast.IfStatement{
			Test:       instanceofGuard("e", "Error"),
			Consequent: block(returnStmt()),
		}),
	}
	guards, unconditional := analyzeCatchGuards(handler, "e")
	if len(guards) != 1 || guards[0].GuardedKind.Name != "Error" || !guards[0].Returns {
		t.Fatalf("expected one returning Error guard, got %+v", guards)
	}
	if unconditional {
		t.Errorf("expected no unconditional rethrow")
	}
}

func TestAnalyzeCatchGuards_RethrowingGuard(t *testing.T) {
	handler := &ast.CatchClause{
		Param: &ast.Identifier{Name: "e"},
		Body: block(&ast.IfStatement{
			Test:       instanceofGuard("e", "TypeError"),
			Consequent: block(throwStmt("e")),
		}),
	}
	guards, _ := analyzeCatchGuards(handler, "e")
	if len(guards) != 1 || guards[0].RethrowsKind == nil || guards[0].RethrowsKind.Key() != (ErrorKind{Variant: KindNamed, Name: "TypeError"}).Key() {
		t.Fatalf("expected a rethrowing TypeError guard, got %+v", guards)
	}
}

func TestAnalyzeCatchGuards_UnconditionalRethrowNoGuards(t *testing.T) {
	handler := &ast.CatchClause{
		Param: &ast.Identifier{Name: "e"},
		Body:  block(throwStmt("e")),
	}
	guards, unconditional := analyzeCatchGuards(handler, "e")
	if len(guards) != 0 {
		t.Fatalf("expected no guards, got %+v", guards)
	}
	if !unconditional {
		t.Errorf("expected an unconditional rethrow")
	}
}

func TestAnalyzeCatchGuards_TrailingUnconditionalRethrowAfterGuard(t *testing.T) {
	handler := &ast.CatchClause{
		Param: &ast.Identifier{Name: "e"},
		Body: block(
			&ast.IfStatement{
				Test:       instanceofGuard("e", "Error"),
				Consequent: block(returnStmt()),
			},
			throwStmt("e"),
		),
	}
	guards, unconditional := analyzeCatchGuards(handler, "e")
	if len(guards) != 1 {
		t.Fatalf("expected one guard, got %+v", guards)
	}
	if !unconditional {
		t.Errorf("expected the trailing bare throw e to count as an unconditional rethrow")
	}
}

func TestSolveCatchFrame_MaskedGuardLeavesNothingMissing(t *testing.T) {
	frame := &TryFrame{
		Guards: []GuardBranch{{GuardedKind: ErrorKind{Variant: KindNamed, Name: "Error"}, Returns: true}},
	}
	solveCatchFrame(frame, []ErrorKind{{Variant: KindNamed, Name: "Error"}})
	if len(frame.Missing) != 0 || len(frame.Rethrown) != 0 {
		t.Fatalf("expected no missing/rethrown kinds, got %+v", frame)
	}
	if !frame.Masked["N:Error"] {
		t.Errorf("expected Error to be recorded as masked")
	}
}

func TestSolveCatchFrame_UnguardedKindIsMissingWithoutUnconditionalRethrow(t *testing.T) {
	frame := &TryFrame{}
	solveCatchFrame(frame, []ErrorKind{{Variant: KindNamed, Name: "Error"}})
	if len(frame.Missing) != 1 || frame.Missing[0].Name != "Error" {
		t.Fatalf("expected Error to be missing, got %+v", frame.Missing)
	}
	if len(frame.Rethrown) != 0 {
		t.Errorf("expected nothing rethrown, got %+v", frame.Rethrown)
	}
}

func TestSolveCatchFrame_UnconditionalRethrowMovesUnguardedToRethrown(t *testing.T) {
	frame := &TryFrame{HasUnconditionalRethrow: true}
	solveCatchFrame(frame, []ErrorKind{{Variant: KindNamed, Name: "Error"}})
	if len(frame.Missing) != 0 {
		t.Fatalf("expected nothing missing, got %+v", frame.Missing)
	}
	if len(frame.Rethrown) != 1 || frame.Rethrown[0].Name != "Error" {
		t.Fatalf("expected Error to be rethrown, got %+v", frame.Rethrown)
	}
}

func TestDedupKinds_PreservesFirstOccurrenceOrder(t *testing.T) {
	in := []ErrorKind{
		{Variant: KindNamed, Name: "Error"},
		{Variant: KindNamed, Name: "TypeError"},
		{Variant: KindNamed, Name: "Error"},
	}
	out := dedupKinds(in)
	if len(out) != 2 || out[0].Name != "Error" || out[1].Name != "TypeError" {
		t.Fatalf("expected [Error, TypeError] in source order, got %+v", out)
	}
}
