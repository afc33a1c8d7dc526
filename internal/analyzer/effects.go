package analyzer

import "sort"

// solveEffects is the Effect Solver (spec.md §4.5), combined with the
// Call Linker since the two are inter-dependent: a TryFrame's protected
// set must include the raised kinds of any locally resolved callee
// reached from inside it, but a callee's own raised set must already be
// solved (including its own catches) before it can be imported.
//
// Because resolution is one-hop only — a caller imports a callee's own
// raised set, never anything the callee itself imported — this can be
// done in two rounds with no fixpoint iteration:
//
//  1. Solve every TryFrame using only its Callable's own `throw`
//     statements (no call knowledge yet); this gives every Callable a
//     pass-1 raised-from-body set.
//  2. Resolve CallSites against that same pass-1 view (linkCallSites
//     never needs solved effects), then re-solve every TryFrame with
//     call-derived kinds folded into its protected set, and fold
//     call-derived propagation into Callables whose calls sit outside
//     any try. The result is Effective, doc-subtracted per spec.md §4.4.
func solveEffects(callables []*Callable) {
	for _, c := range callables {
		solveFrames(c, nil)
	}

	pass1 := make(map[int][]ErrorKind, len(callables))
	for _, c := range callables {
		pass1[c.ID] = subtractDocumented(bodyRaises(c), c.Documented)
	}

	linkCallSites(callables)

	for _, c := range callables {
		solveFrames(c, pass1)
		direct := bodyRaises(c)
		c.RaisedFromBody = direct
		propagated := propagatedRaises(c, pass1)
		combined := dedupKinds(append(append([]ErrorKind{}, direct...), propagated...))
		c.Effective = subtractDocumented(combined, c.Documented)
	}
}

// framesByDepth orders a Callable's TryFrames so a nested try is solved
// before the try it's nested inside, letting a parent frame's protected
// set absorb whatever its children don't fully mask.
func framesByDepth(c *Callable) []*TryFrame {
	depth := make(map[*TryFrame]int, len(c.TryFrames))
	var depthOf func(f *TryFrame) int
	depthOf = func(f *TryFrame) int {
		if v, ok := depth[f]; ok {
			return v
		}
		if f.Parent == nil {
			depth[f] = 0
			return 0
		}
		v := depthOf(f.Parent) + 1
		depth[f] = v
		return v
	}
	for _, f := range c.TryFrames {
		depthOf(f)
	}
	ordered := append([]*TryFrame{}, c.TryFrames...)
	sort.SliceStable(ordered, func(i, j int) bool { return depth[ordered[i]] > depth[ordered[j]] })
	return ordered
}

// escapingKinds is what a solved TryFrame still lets through: whatever
// a guard rethrows, plus whatever is left unguarded with no
// unconditional rethrow to catch it (spec.md §4.3).
func escapingKinds(f *TryFrame) []ErrorKind {
	return dedupKinds(append(append([]ErrorKind{}, f.Rethrown...), f.Missing...))
}

// solveFrames solves every TryFrame belonging to c, deepest first. When
// pass1 is nil (round one), a frame's protected set is its own direct
// raise sites only. When pass1 is supplied (round two), CallSites inside
// the frame additionally contribute their linked callee's pass-1
// raised set, and a nested frame's escaping kinds are folded into its
// parent's protected set.
func solveFrames(c *Callable, pass1 map[int][]ErrorKind) {
	childEscapes := make(map[*TryFrame][]ErrorKind)
	for _, f := range framesByDepth(c) {
		var protected []ErrorKind
		for _, r := range c.RaiseSites {
			if r.TryFrame == f {
				protected = append(protected, r.Kind)
			}
		}
		if pass1 != nil {
			for _, cs := range c.CallSites {
				if cs.TryFrame == f && cs.Linked != nil {
					protected = append(protected, pass1[cs.Linked.ID]...)
				}
			}
		}
		protected = append(protected, childEscapes[f]...)
		solveCatchFrame(f, dedupKinds(protected))
		if f.Parent != nil {
			childEscapes[f.Parent] = append(childEscapes[f.Parent], escapingKinds(f)...)
		}
	}
}

// bodyRaises is the deduplicated, source-appearance-order union of
// kinds that escape c's own body once its TryFrames are solved: direct
// throws that sit outside any try, plus whatever escapes each of c's
// own top-level TryFrames (a nested frame's escapes were already folded
// into its parent by solveFrames).
func bodyRaises(c *Callable) []ErrorKind {
	var out []ErrorKind
	for _, r := range c.RaiseSites {
		if r.TryFrame == nil {
			out = append(out, r.Kind)
		}
	}
	for _, f := range c.TryFrames {
		if f.Parent == nil {
			out = append(out, escapingKinds(f)...)
		}
	}
	return dedupKinds(out)
}

// propagatedRaises collects the pass-1 raised sets of locally resolved
// callees reached from call sites that sit outside any try — those
// reaching through a try already had their contribution folded into
// bodyRaises via the frame's protected-set solve.
func propagatedRaises(c *Callable, pass1 map[int][]ErrorKind) []ErrorKind {
	var out []ErrorKind
	for _, cs := range c.CallSites {
		if cs.TryFrame != nil || cs.Linked == nil {
			continue
		}
		out = append(out, pass1[cs.Linked.ID]...)
	}
	return dedupKinds(out)
}

func subtractDocumented(kinds []ErrorKind, documented map[string]ErrorKind) []ErrorKind {
	if len(documented) == 0 {
		return kinds
	}
	out := make([]ErrorKind, 0, len(kinds))
	for _, k := range kinds {
		if _, ok := documented[k.Key()]; ok {
			continue
		}
		out = append(out, k)
	}
	return out
}
