package analyzer

import "testing"

func TestLinkCallSites_BareIdentifier(t *testing.T) {
	a := &Callable{ID: 1, Name: "a", ParentID: -1}
	b := &Callable{ID: 2, Name: "b", ParentID: -1, CallSites: []*CallSite{{CalleeText: "a"}}}
	linkCallSites([]*Callable{a, b})
	if b.CallSites[0].Linked != a {
		t.Fatalf("expected b's call site to link to a, got %+v", b.CallSites[0].Linked)
	}
}

func TestLinkCallSites_ThisDotMethodResolvesWithinEnclosingClass(t *testing.T) {
	method := &Callable{ID: 1, Name: "helper", Qualified: "Widget.helper", ClassName: "Widget", ParentID: -1}
	caller := &Callable{
		ID: 2, Name: "render", Qualified: "Widget.render", ClassName: "Widget", ParentID: -1,
		CallSites: []*CallSite{{CalleeText: "this.helper"}},
	}
	linkCallSites([]*Callable{method, caller})
	if caller.CallSites[0].Linked != method {
		t.Fatalf("expected this.helper() to resolve to Widget.helper, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_ThisDotMethodOutsideAnyClassIsUnlinked(t *testing.T) {
	caller := &Callable{ID: 1, Name: "f", ParentID: -1, CallSites: []*CallSite{{CalleeText: "this.helper"}}}
	linkCallSites([]*Callable{caller})
	if caller.CallSites[0].Linked != nil {
		t.Fatalf("expected an unlinked call site, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_ObjectDotMethodResolvesByQualifiedName(t *testing.T) {
	method := &Callable{ID: 1, Name: "parse", Qualified: "JSON2.parse", ParentID: -1}
	caller := &Callable{ID: 2, Name: "f", ParentID: -1, CallSites: []*CallSite{{CalleeText: "JSON2.parse"}}}
	linkCallSites([]*Callable{method, caller})
	if caller.CallSites[0].Linked != method {
		t.Fatalf("expected JSON2.parse() to resolve, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_NewExpressionResolvesToLocalConstructor(t *testing.T) {
	ctor := &Callable{ID: 1, Name: constructorName, Qualified: "Widget.<constructor>", ClassName: "Widget", ParentID: -1}
	caller := &Callable{
		ID: 2, Name: "f", ParentID: -1,
		CallSites: []*CallSite{{CalleeText: "Widget", IsNew: true}},
	}
	linkCallSites([]*Callable{ctor, caller})
	if caller.CallSites[0].Linked != ctor {
		t.Fatalf("expected new Widget() to resolve to Widget's constructor, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_PlainCallDoesNotResolveToConstructor(t *testing.T) {
	ctor := &Callable{ID: 1, Name: constructorName, Qualified: "Widget.<constructor>", ClassName: "Widget", ParentID: -1}
	caller := &Callable{
		ID: 2, Name: "f", ParentID: -1,
		CallSites: []*CallSite{{CalleeText: "Widget", IsNew: false}},
	}
	linkCallSites([]*Callable{ctor, caller})
	if caller.CallSites[0].Linked != nil {
		t.Fatalf("expected a bare call to Widget() (no `new`) to stay unlinked, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_DeeperChainIsUnlinked(t *testing.T) {
	caller := &Callable{ID: 1, Name: "f", ParentID: -1, CallSites: []*CallSite{{CalleeText: "a.b.c"}}}
	linkCallSites([]*Callable{caller})
	if caller.CallSites[0].Linked != nil {
		t.Fatalf("expected a.b.c() to stay unlinked, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_ComputedCalleeIsUnlinked(t *testing.T) {
	caller := &Callable{ID: 1, Name: "f", ParentID: -1, CallSites: []*CallSite{{CalleeText: "handlers[...]"}}}
	linkCallSites([]*Callable{caller})
	if caller.CallSites[0].Linked != nil {
		t.Fatalf("expected a computed callee to stay unlinked, got %+v", caller.CallSites[0].Linked)
	}
}

func TestLinkCallSites_FirstDeclarationWinsOnNameCollision(t *testing.T) {
	first := &Callable{ID: 1, Name: "dup", ParentID: -1}
	second := &Callable{ID: 2, Name: "dup", ParentID: -1}
	caller := &Callable{ID: 3, Name: "f", ParentID: -1, CallSites: []*CallSite{{CalleeText: "dup"}}}
	linkCallSites([]*Callable{first, second, caller})
	if caller.CallSites[0].Linked != first {
		t.Fatalf("expected the first declaration to win, got %+v", caller.CallSites[0].Linked)
	}
}

func TestEnclosingClassName_WalksParentChain(t *testing.T) {
	byID := map[int]*Callable{
		1: {ID: 1, ParentID: -1, ClassName: "Widget"},
		2: {ID: 2, ParentID: 1},
	}
	nested := &Callable{ID: 3, ParentID: 2}
	if got := enclosingClassName(nested, byID); got != "Widget" {
		t.Errorf("expected Widget, got %q", got)
	}
}
