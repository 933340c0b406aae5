package dat

// pool is the shared transition array addressed as anchor(parent) + base(parent) + code.
// Slot 0 is the root anchor and holds the root id; any other slot holding 0 is free
// because no state but the root has id 0.
type pool struct {
	slots []int
	used  int // slots ever written, the root anchor included
	head  int // lowest address that may still be free
}

func newPool(size int) *pool {
	if size < 1 {
		size = 1
	}
	return &pool{slots: make([]int, size), used: 1, head: 1}
}

// at reads a slot. An address outside the array is reported as not found
// so callers fall back exactly as they do on an ownership mismatch
func (p *pool) at(addr int) (int, bool) {
	if addr < 0 || addr >= len(p.slots) {
		return 0, false
	}
	return p.slots[addr], true
}

func (p *pool) free(addr int) bool {
	if addr <= 0 {
		return false
	}
	return addr >= len(p.slots) || p.slots[addr] == 0
}

func (p *pool) put(addr, state int) {
	if addr >= len(p.slots) {
		p.grow(addr + 1)
	}
	if p.slots[addr] == 0 {
		p.used++
	}
	p.slots[addr] = state
}

func (p *pool) grow(n int) {
	size := 2 * len(p.slots)
	if size < n {
		size = n
	}
	next := make([]int, size)
	copy(next, p.slots)
	p.slots = next
}

// claim returns the first address past 0 where every offset of row lands on a free slot.
// row holds sibling offsets relative to the first child, so row[0] is 0
func (p *pool) claim(row []int) int {
	for p.head < len(p.slots) && p.slots[p.head] != 0 {
		p.head++
	}
	for addr := p.head; ; addr++ {
		fits := true
		for _, off := range row {
			if !p.free(addr + off) {
				fits = false
				break
			}
		}
		if fits {
			return addr
		}
	}
}

func (p *pool) size() int { return len(p.slots) }

func (p *pool) occupancy() float64 {
	if len(p.slots) == 0 {
		return 0
	}
	return float64(p.used) / float64(len(p.slots))
}
