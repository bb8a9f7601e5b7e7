package orbital

// NeutralFill distributes total electrons front to back over the fill order.
// A negative total clamps to zero. When useExceptions is set and z has a rule,
// electrons are moved one at a time from the rule's source to its destination.
func (t *Table) NeutralFill(total int, useExceptions bool, z int) Counts {
	counts := t.empty()
	left := max(0, total)
	for _, s := range t.order {
		if left == 0 {
			break
		}
		add := min(left, s.Capacity())
		counts[s] = add
		left -= add
	}

	if !useExceptions {
		return counts
	}
	rule, ok := t.exceptions[z]
	if !ok {
		return counts
	}
	for counts[rule.D] < rule.DTarget && counts[rule.S] > rule.SFinal && counts[rule.D] < rule.D.Capacity() {
		counts[rule.D]++
		counts[rule.S]--
	}
	return counts
}

// RemoveForCation takes up to q electrons out of counts, always from the
// occupied subshell with the highest rank (n, then l). It returns how many
// were actually removed, which is less than q once counts is empty.
func RemoveForCation(counts Counts, q int) int {
	removed := 0
	for removed < q {
		var best Subshell
		bestRank := -1
		for s, n := range counts {
			if n <= 0 {
				continue
			}
			r := s.Rank()
			if r > bestRank || (r == bestRank && s.Letter > best.Letter) {
				best, bestRank = s, r
			}
		}
		if bestRank < 0 {
			break
		}
		counts[best]--
		removed++
	}
	return removed
}
