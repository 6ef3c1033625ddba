package induce

import "sort"

// Index is an ordered prefix index over hostnames. Keys are restricted to
// the DNS alphabet; KeysWithPrefix returns matches in sorted order, which
// the orchestrator's redundant-prefix walk depends on.
type Index struct {
	root *indexNode
	size int
}

type indexNode struct {
	children map[byte]*indexNode
	end      bool
}

// NewIndex returns an empty prefix index.
func NewIndex() *Index {
	return &Index{root: newIndexNode()}
}

func newIndexNode() *indexNode {
	return &indexNode{children: make(map[byte]*indexNode)}
}

// Insert adds key to the index. Duplicate inserts are no-ops.
func (ix *Index) Insert(key string) {
	node := ix.root
	for i := 0; i < len(key); i++ {
		child := node.children[key[i]]
		if child == nil {
			child = newIndexNode()
			node.children[key[i]] = child
		}
		node = child
	}
	if !node.end {
		node.end = true
		ix.size++
	}
}

// Len returns the number of distinct keys in the index.
func (ix *Index) Len() int {
	return ix.size
}

// KeysWithPrefix returns every key starting with prefix, sorted.
func (ix *Index) KeysWithPrefix(prefix string) []string {
	node := ix.root
	for i := 0; i < len(prefix); i++ {
		node = node.children[prefix[i]]
		if node == nil {
			return nil
		}
	}
	var keys []string
	collectKeys(node, []byte(prefix), &keys)
	return keys
}

// collectKeys walks the subtree in byte order, so keys come out sorted.
func collectKeys(node *indexNode, prefix []byte, keys *[]string) {
	if node.end {
		*keys = append(*keys, string(prefix))
	}
	chars := make([]byte, 0, len(node.children))
	for c := range node.children {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	for _, c := range chars {
		collectKeys(node.children[c], append(prefix, c), keys)
	}
}
