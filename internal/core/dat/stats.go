package dat

// Stats summarizes a compiled automaton
type Stats struct {
	Alphabet  string  `json:"alphabet"`
	Fallback  string  `json:"fallback"`
	Patterns  int     `json:"patterns"`
	States    int     `json:"states"`
	MaxDepth  int     `json:"max_depth"`
	PoolSize  int     `json:"pool_size"`
	PoolUsed  int     `json:"pool_used"`
	Occupancy float64 `json:"occupancy"`
}

// Occupancy is the fraction of transition pool slots ever written.
// Informational only
func (a *Automaton) Occupancy() float64 { return a.t.pool.occupancy() }

// Stats reports sizes of the compiled tables
func (a *Automaton) Stats() Stats {
	depth := 0
	for _, d := range a.t.depth {
		depth = max(depth, d)
	}
	return Stats{
		Alphabet:  a.opts.Alphabet.Name(),
		Fallback:  a.opts.Fallback.String(),
		Patterns:  len(a.patterns),
		States:    a.t.states(),
		MaxDepth:  depth,
		PoolSize:  a.t.pool.size(),
		PoolUsed:  a.t.pool.used,
		Occupancy: a.t.pool.occupancy(),
	}
}

// Tables is a copy of the raw double-array tables, for inspection
type Tables struct {
	Pool   []int   `json:"pool"`
	Base   []int   `json:"base"`
	Check  []int   `json:"check"`
	Anchor []int   `json:"anchor"`
	Fail   []int   `json:"fail"`
	Labels string  `json:"labels"`
	Output [][]int `json:"output"`
}

// Tables copies the internal tables. Labels holds one byte per state, '^' for the root
func (a *Automaton) Tables() Tables {
	labels := make([]byte, a.t.states())
	labels[Root] = '^'
	for s := 1; s < len(labels); s++ {
		labels[s] = a.Label(s)
	}
	out := make([][]int, len(a.out))
	for s, ids := range a.out {
		out[s] = append([]int(nil), ids...)
	}
	return Tables{
		Pool:   append([]int(nil), a.t.pool.slots...),
		Base:   append([]int(nil), a.t.base...),
		Check:  append([]int(nil), a.t.check...),
		Anchor: append([]int(nil), a.t.anchor...),
		Fail:   append([]int(nil), a.fail...),
		Labels: string(labels),
		Output: out,
	}
}
