package art

// Stats is a point-in-time population summary of a Tree, useful for
// understanding how keys have distributed across the N4/N16/N48/N256
// tiers.
type Stats struct {
	Node4Count   int
	Node16Count  int
	Node48Count  int
	Node256Count int
	LeafCount    int
	MaxDepth     int
	KeyCount     int
}

// Stats walks the whole tree once and tallies node-kind populations and
// the maximum depth reached.
func (t *Tree[V]) Stats() Stats {
	s := Stats{KeyCount: t.size}
	if t.root != nil {
		collectStats(t.root, 0, &s)
	}
	return s
}

func collectStats[V any](n *node[V], depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if n.m == nil {
		s.LeafCount++
		return
	}
	switch n.m.kind() {
	case kindNode4:
		s.Node4Count++
	case kindNode16:
		s.Node16Count++
	case kindNode48:
		s.Node48Count++
	case kindNode256:
		s.Node256Count++
	}
	n.m.iterate(func(_ byte, child *node[V]) {
		collectStats(child, depth+1, s)
	})
}
