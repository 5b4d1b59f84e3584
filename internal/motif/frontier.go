package motif

import "fmt"

// startNode returns the most interesting motif node, breaking ties by the
// smallest id. ids are sorted, so the first maximum wins.
func (s *Session) startNode() int {
	best := 0
	for i := 1; i < len(s.ids); i++ {
		if s.interest[i] > s.interest[best] {
			best = i
		}
	}

	return best
}

// nextNode picks the unmapped motif node with the most mapped neighbors.
// Ties go to the higher interestingness, then to the smaller id.
func (s *Session) nextNode(b Backbone) (int, error) {
	best, bestCount := -1, 0

	for i := range s.ids {
		if b.has(i) {
			continue
		}

		count := 0
		for _, j := range s.adj[i] {
			if b.has(j) {
				count++
			}
		}

		switch {
		case count == 0:
			continue
		case count > bestCount:
			best, bestCount = i, count
		case count == bestCount && s.interest[i] > s.interest[best]:
			best = i
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("%w: no unmapped motif node is adjacent to a backbone of %d nodes", ErrStructural, b.size)
	}

	return best, nil
}
