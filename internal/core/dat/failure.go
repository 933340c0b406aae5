package dat

// compileFailures computes failure links and propagated outputs.
// States are visited in increasing id order. Ids are handed out level by level,
// so a parent and every state on its failure chain are final before its children
func compileFailures(t *trie, fb Fallback) ([]int, [][]int) {
	n := t.states()
	fail := make([]int, n)
	out := make([][]int, n)
	out[Root] = t.raw[Root]

	for c := 1; c < n; c++ {
		out[c] = t.raw[c]
		s := t.check[c]
		if s == Root {
			continue // depth one fails to root
		}

		f, ok := t.failTarget(fail, fail[s], t.label[c], fb)
		if !ok || f == Root {
			continue
		}
		fail[c] = f
		out[c] = mergeIDs(t.raw[c], out[f])
	}
	return fail, out
}

// failTarget resolves code from the parent's failure state. Under FallbackChain it keeps
// following failure links until an edge exists; FallbackSingleHop does one lookup only
func (t *trie) failTarget(fail []int, from, code int, fb Fallback) (int, bool) {
	if fb == FallbackSingleHop {
		return t.child(from, code)
	}
	return t.walk(fail, from, code), true
}

// walk is the goto/fail composition: try s, then each state on its failure chain
func (t *trie) walk(fail []int, s, code int) int {
	for {
		if next, ok := t.child(s, code); ok {
			return next
		}
		if s == Root {
			return Root
		}
		s = fail[s]
	}
}

// mergeIDs unions two ascending id lists into a fresh ascending list
func mergeIDs(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
