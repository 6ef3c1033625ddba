package induce

// Closures groups hosts into neighbor-sets under the distance threshold
// delta. For every pivot host a the set contains a itself plus every b with
// distance(a, b) < delta, in input order. Exact duplicate sets are elided;
// partially overlapping sets are kept as distinct entries, so the result is
// deliberately not a partition.
func Closures(hosts []string, delta int, table *Table) [][]string {
	var closures [][]string
	for _, pivot := range hosts {
		members := make([]string, 0, 4)
		for _, other := range hosts {
			if table.Distance(pivot, other) < delta {
				members = append(members, other)
			}
		}
		// the pivot is always within distance 0 of itself, so members is
		// never empty and always contains pivot
		if !containsSet(closures, members) {
			closures = append(closures, members)
		}
	}
	return closures
}

// containsSet reports whether an identical member list was already produced.
// Member lists are built by scanning the same host list in the same order,
// so element-wise equality is set equality here.
func containsSet(closures [][]string, members []string) bool {
	for _, existing := range closures {
		if equalStrings(existing, members) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
