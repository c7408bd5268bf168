package ringq

import "deedles.dev/ringq/internal/list"

// arena owns the elements that are currently linked into a queue and
// resolves their IDs for the ring.
type arena struct {
	elems  map[list.ID]*Element
	lastID list.ID
}

func (a *arena) init() {
	a.elems = make(map[list.ID]*Element)
}

// add gives e a fresh ID and takes ownership of it. IDs are never
// reused.
func (a *arena) add(e *Element) {
	a.lastID++
	e.id = a.lastID
	e.node.Detach(e.id)
	a.elems[e.id] = e
}

func (a *arena) take(id list.ID) *Element {
	e := a.elems[id]
	delete(a.elems, id)
	return e
}

func (a *arena) get(id list.ID) *Element {
	return a.elems[id]
}

func (a *arena) Node(id list.ID) *list.Node {
	e, ok := a.elems[id]
	if !ok {
		return nil
	}
	return &e.node
}

func (a *arena) len() int {
	return len(a.elems)
}
