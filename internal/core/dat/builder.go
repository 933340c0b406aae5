package dat

import (
	"fmt"
	"slices"
	"strings"
)

// Root is the id of the start state
const Root = 0

// trie is the double-array encoding produced by build
//
//	pool[anchor[s] + base[s] + code] = child of s on code
//	check[child] = s
//
// anchor[s] is the pool address that stores s itself, cached when s is created
type trie struct {
	alpha  Alphabet
	pool   *pool
	base   []int
	check  []int
	label  []int // edge code into the state, -1 for root
	anchor []int
	depth  []int
	raw    [][]int // pattern ids whose last byte lands exactly on the state
}

// keyed is a pattern queued for construction, key is the folded form
type keyed struct {
	id  int
	key string
}

func newTrie(alpha Alphabet, capacity int) *trie {
	return &trie{
		alpha:  alpha,
		pool:   newPool(capacity + 1 + alpha.Size()),
		base:   []int{0},
		check:  []int{-1},
		label:  []int{-1},
		anchor: []int{0},
		depth:  []int{0},
		raw:    [][]int{nil},
	}
}

func (t *trie) states() int { return len(t.check) }

func (t *trie) newState(parent, code int) int {
	s := len(t.check)
	t.base = append(t.base, 0)
	t.check = append(t.check, parent)
	t.label = append(t.label, code)
	t.anchor = append(t.anchor, 0)
	t.depth = append(t.depth, t.depth[parent]+1)
	t.raw = append(t.raw, nil)
	return s
}

// child resolves the edge of s on code through the pool and re-validates ownership.
// For the root an empty slot resolves to the root itself
func (t *trie) child(s, code int) (int, bool) {
	next, ok := t.pool.at(t.anchor[s] + t.base[s] + code)
	if !ok || t.check[next] != s {
		return 0, false
	}
	if next != Root && t.label[next] != code {
		return 0, false
	}
	return next, true
}

// prepare validates and folds patterns, skipping empty ones, and returns them sorted
func prepare(patterns []string, alpha Alphabet) ([]keyed, int, int, error) {
	out := make([]keyed, 0, len(patterns))
	longest, total := 0, 0
	for i, p := range patterns {
		if p == "" {
			continue
		}
		var b strings.Builder
		b.Grow(len(p))
		for at := 0; at < len(p); at++ {
			if _, ok := alpha.Code(p[at]); !ok {
				return nil, 0, 0, unsupported(fmt.Sprintf("patterns[%d]", i), p, at, alpha)
			}
			b.WriteByte(alpha.Fold(p[at]))
		}
		out = append(out, keyed{id: i, key: b.String()})
		longest = max(longest, len(p))
		total += len(p)
	}
	if len(out) == 0 {
		return nil, 0, 0, ErrEmptyPatternSet
	}
	// identical prefixes must be contiguous for branch detection below
	slices.SortStableFunc(out, func(a, b keyed) int { return strings.Compare(a.key, b.key) })
	return out, longest, total, nil
}

// build lays the pattern trie out level by level. At depth i every pattern still
// longer than i has a frontier state; the first pattern of a (frontier, byte) pair
// creates the state and every following pattern in the run advances onto it
func build(patterns []string, alpha Alphabet) (*trie, error) {
	sorted, longest, total, err := prepare(patterns, alpha)
	if err != nil {
		return nil, err
	}

	t := newTrie(alpha, total)
	frontier := make([]int, len(sorted))

	for i := 0; i <= longest; i++ {
		prevParent, prevCode, cur := -1, -1, Root
		for j := range sorted {
			key := sorted[j].key
			if i > len(key) {
				continue
			}
			parent := frontier[j]
			if i == len(key) {
				t.raw[parent] = append(t.raw[parent], sorted[j].id)
				continue
			}

			code, _ := alpha.Code(key[i])
			if parent != prevParent || code != prevCode {
				cur = t.newState(parent, code)
				var addr int
				if parent == prevParent {
					// sibling, lands in the row the first child claimed
					addr = t.anchor[parent] + t.base[parent] + code
				} else {
					addr = t.pool.claim(siblingRow(sorted, frontier, j, i, parent, code, alpha))
					t.base[parent] = addr - t.anchor[parent] - code
				}
				t.pool.put(addr, cur)
				t.anchor[cur] = addr
				prevParent, prevCode = parent, code
			}
			frontier[j] = cur
		}
	}
	t.check[Root] = Root

	for s := range t.raw {
		slices.Sort(t.raw[s])
	}
	return t, nil
}

// siblingRow collects the offsets of every child parent will get at depth i,
// relative to the first child's code. Patterns sharing parent are contiguous from j
func siblingRow(sorted []keyed, frontier []int, j, i, parent, first int, alpha Alphabet) []int {
	row := []int{0}
	last := first
	for k := j + 1; k < len(sorted) && frontier[k] == parent; k++ {
		if len(sorted[k].key) <= i {
			continue
		}
		code, _ := alpha.Code(sorted[k].key[i])
		if code != last {
			row = append(row, code-first)
			last = code
		}
	}
	return row
}
