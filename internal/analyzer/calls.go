package analyzer

import "strings"

// buildCallIndex builds the by-Name and by-Qualified lookup tables the
// call linker resolves CallSites against (spec.md §4.5: same-file,
// one-hop, lexical resolution only — no type information). The first
// declaration wins on a name collision, matching the teacher's own
// first-match symbol table lookup in inference_calls.go.
func buildCallIndex(callables []*Callable) (byName map[string]*Callable, byQualified map[string]*Callable) {
	byName = make(map[string]*Callable)
	byQualified = make(map[string]*Callable)
	for _, c := range callables {
		if c.IsModule {
			continue
		}
		if c.Name != "" && c.Name != "<anonymous>" {
			if _, ok := byName[c.Name]; !ok {
				byName[c.Name] = c
			}
		}
		if c.Qualified != "" {
			if _, ok := byQualified[c.Qualified]; !ok {
				byQualified[c.Qualified] = c
			}
		}
	}
	return byName, byQualified
}

// enclosingClassName walks a Callable's ParentID chain looking for the
// nearest ancestor that is itself a class member, so `this.m()` inside
// a nested arrow still resolves against the method's own class.
func enclosingClassName(c *Callable, byID map[int]*Callable) string {
	for cur := c; cur != nil; cur = byID[cur.ParentID] {
		if cur.ClassName != "" {
			return cur.ClassName
		}
	}
	return ""
}

// linkCallSites resolves every CallSite.CalleeText to a locally defined
// Callable where lexically unambiguous: a bare identifier against a
// same-named free/arrow Callable, `this.m` against the enclosing
// class's member, and `Obj.m` against a dotted Qualified match, falling
// back to a bare-name match for plain-object-literal methods. Calls
// that don't resolve — builtins, imported names, computed/dynamic
// callees — are left unlinked and simply don't participate in one-hop
// propagation (spec.md §4.5).
func linkCallSites(callables []*Callable) {
	byName, byQualified := buildCallIndex(callables)
	byID := make(map[int]*Callable, len(callables))
	for _, c := range callables {
		byID[c.ID] = c
	}

	for _, caller := range callables {
		for _, site := range caller.CallSites {
			site.Linked = resolveCallee(site.CalleeText, site.IsNew, caller, byID, byName, byQualified)
		}
	}
}

// constructorName is the Callable Name (callables.go's declareMethod)
// every class constructor is indexed under, distinguishing it from a
// same-named bare function or variable.
const constructorName = "<constructor>"

func resolveCallee(calleeText string, isNew bool, caller *Callable, byID map[int]*Callable, byName, byQualified map[string]*Callable) *Callable {
	if calleeText == "" || calleeText == "?" || strings.HasSuffix(calleeText, "[...]") {
		return nil
	}
	if !strings.Contains(calleeText, ".") {
		// `new Foo()` resolves against Foo's constructor (indexed as
		// "Foo.<constructor>", never under the bare name "Foo" — DESIGN.md
		// Open Questions §1: a `new` expression whose callee is a local
		// class participates in one-hop propagation like any other call.
		if isNew {
			if ctor, ok := byQualified[calleeText+"."+constructorName]; ok {
				return ctor
			}
		}
		return byName[calleeText]
	}
	parts := strings.SplitN(calleeText, ".", 2)
	head, rest := parts[0], parts[1]
	if strings.ContainsAny(rest, ".[") {
		// Only a single member hop (obj.m) is resolved; deeper chains
		// (a.b.c()) are left unlinked.
		return nil
	}
	if head == "this" {
		class := enclosingClassName(caller, byID)
		if class == "" {
			return nil
		}
		return byQualified[class+"."+rest]
	}
	if m, ok := byQualified[head+"."+rest]; ok {
		return m
	}
	return byName[rest]
}
