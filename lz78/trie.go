package lz78

// NotFound is returned by Trie.Lookup when a phrase was never inserted.
const NotFound = -1

// Trie maps every phrase inserted so far to its index. Nodes live in a
// single slice and are addressed by index; the index of a node is its
// creation order, with the root (the empty phrase) at 0.
type Trie struct {
	nodes []trieNode
}

type trieNode struct {
	depth    int
	children map[byte]int
}

// NewTrie returns a trie holding only the root.
func NewTrie() *Trie {
	t := &Trie{nodes: make([]trieNode, 0, 256)}
	t.nodes = append(t.nodes, trieNode{})
	return t
}

// Len is the number of phrases in the trie, the empty phrase included.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// Insert adds phrase and every prefix of it that is missing. The encoder
// grows the trie one child at a time, which is Insert of the phrase it just
// finished matching.
func (t *Trie) Insert(phrase []byte) {
	current := 0
	for _, c := range phrase {
		next, ok := t.child(current, c)
		if !ok {
			next = t.addChild(current, c)
		}
		current = next
	}
}

// Lookup returns the index of phrase, or NotFound. The empty phrase is
// always 0. The encoder's node walk gives the same index as Lookup of the
// bytes matched so far.
func (t *Trie) Lookup(phrase []byte) int {
	current := 0
	for _, c := range phrase {
		next, ok := t.child(current, c)
		if !ok {
			return NotFound
		}
		current = next
	}
	return current
}

// Depth returns the phrase length of node i.
func (t *Trie) Depth(i int) int {
	return t.nodes[i].depth
}

func (t *Trie) child(i int, c byte) (int, bool) {
	next, ok := t.nodes[i].children[c]
	return next, ok
}

func (t *Trie) addChild(parent int, c byte) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, trieNode{
		depth: t.nodes[parent].depth + 1,
	})
	if t.nodes[parent].children == nil {
		t.nodes[parent].children = make(map[byte]int)
	}
	t.nodes[parent].children[c] = idx
	return idx
}
