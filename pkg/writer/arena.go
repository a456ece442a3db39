package writer

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// defaultArenaCapacity is the initial node capacity of a new Arena.
const defaultArenaCapacity = 1024

// NodeID is a handle to a node in an Arena. The zero value means "no node".
// Handles are only meaningful for the Arena (and pass) that produced them.
type NodeID uint32

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool {
	return id != 0
}

// node is a single link in the predecessor chain.
type node struct {
	item Item
	prev NodeID
}

// WidthFunc measures the visual width of a text run.
type WidthFunc func(s string) uint32

// CharCount counts Unicode code points. It is the default WidthFunc.
func CharCount(s string) uint32 {
	return uint32(utf8.RuneCountInString(s))
}

// DisplayWidth measures terminal display width, counting East Asian wide
// characters as two columns.
func DisplayWidth(s string) uint32 {
	return uint32(runewidth.StringWidth(s))
}

// Arena owns every output graph node and interned text of a formatting pass.
// Nodes are never freed individually; Reset drops everything at once.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	nodes   []node
	texts   map[string]*Text
	measure WidthFunc
}

// NewArena creates an empty arena that measures text with measure.
// A nil measure defaults to CharCount.
func NewArena(measure WidthFunc) *Arena {
	if measure == nil {
		measure = CharCount
	}
	return &Arena{
		nodes:   make([]node, 0, defaultArenaCapacity),
		texts:   make(map[string]*Text),
		measure: measure,
	}
}

// Alloc stores a node holding item whose predecessor is prev and returns its handle.
// The handle stays valid until Reset.
func (a *Arena) Alloc(item Item, prev NodeID) NodeID {
	a.nodes = append(a.nodes, node{item: item, prev: prev})
	return NodeID(len(a.nodes))
}

// Node returns the item and predecessor stored at id.
// It panics if id is not a handle issued by this arena.
func (a *Arena) Node(id NodeID) (Item, NodeID) {
	n := a.nodes[id-1]
	return n.item, n.prev
}

// Len returns the number of nodes allocated since the last Reset.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Text interns s for the current pass, computing its width once.
func (a *Arena) Text(s string) *Text {
	if t, ok := a.texts[s]; ok {
		return t
	}
	t := &Text{Value: s, CharCount: a.measure(s)}
	a.texts[s] = t
	return t
}

// Reset drops all nodes and interned texts. Every NodeID and State issued
// before the call becomes invalid.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
	clear(a.texts)
}
