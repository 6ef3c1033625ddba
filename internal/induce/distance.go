package induce

import (
	"runtime"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Table holds the pairwise Levenshtein distances of a fixed host list.
// It is built once, before any clustering, and is read-only afterwards:
// consumers share the same table across goroutines without locking.
//
// Distances are stored in a triangular layout indexed by each host's rank in
// the (sorted, deduplicated) input list instead of a string-keyed memo.
type Table struct {
	hosts []string
	rank  map[string]int
	cells [][]int // cells[i][j-i] = distance(hosts[i], hosts[j]) for j >= i
}

// BuildTable computes all pairwise distances over hosts using up to workers
// goroutines. Rows are independent, so the build parallelizes without shared
// writes; BuildTable returns only once the table is complete.
func BuildTable(hosts []string, workers int) *Table {
	n := len(hosts)
	t := &Table{
		hosts: hosts,
		rank:  make(map[string]int, n),
		cells: make([][]int, n),
	}
	for i, host := range hosts {
		t.rank[host] = i
		t.cells[i] = make([]int, n-i)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	rows := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := i; j < n; j++ {
					t.cells[i][j-i] = levenshtein.ComputeDistance(hosts[i], hosts[j])
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()
	return t
}

// Distance returns the edit distance between two hosts of the table. Hosts
// outside the table fall back to a direct computation.
func (t *Table) Distance(a, b string) int {
	i, oki := t.rank[a]
	j, okj := t.rank[b]
	if !oki || !okj {
		return levenshtein.ComputeDistance(a, b)
	}
	if i > j {
		i, j = j, i
	}
	return t.cells[i][j-i]
}

// Len returns the number of hosts covered by the table.
func (t *Table) Len() int {
	return len(t.hosts)
}
