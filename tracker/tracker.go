// Package tracker gives owners outside the board (undo entries, selections,
// editor handles) stable references to element ids while structural edits
// renumber the dense element arrays.
//
// A tracker is a tree of scopes. The root lives as long as the editor; every
// composite edit opens a child scope, translates the ids it cares about into
// handles, performs the raw shift (which calls Update on the root) and reads
// the handles back. Update always reaches every nested scope.
//
// Lookups in Ref are linear in the size of the scope. Scopes are opened per
// edit, not per frame, so this stays small in practice.
package tracker

import (
	"errors"
	"slices"
)

// Nil is the value a handle resolves to once its id was invalidated.
const Nil = -1

// Handle is a stable reference to a value inside one scope.
type Handle int

var (
	ErrStopped  = errors.New("tracker: scope already stopped")
	ErrStopRoot = errors.New("tracker: cannot stop root scope")
)

const rootID = 0

type node struct {
	gen      uint32
	live     bool
	parent   int
	children []int
	values   []int
}

// arena owns every scope node of one tracker tree. Scopes address nodes by
// index and generation, so a released slot can be reused without a stale
// Scope silently reading someone else's values.
type arena struct {
	nodes []node
	free  []int
}

func (a *arena) alloc(parent int) int {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		nd := &a.nodes[id]
		nd.live = true
		nd.parent = parent
		return id
	}
	a.nodes = append(a.nodes, node{live: true, parent: parent})
	return len(a.nodes) - 1
}

func (a *arena) release(id int) {
	children := a.nodes[id].children
	a.nodes[id].children = nil
	for _, c := range children {
		a.release(c)
	}
	n := &a.nodes[id]
	n.live = false
	n.gen++
	n.values = nil
	n.parent = -1
	a.free = append(a.free, id)
}

func (a *arena) update(id int, fn func(int) int) {
	n := &a.nodes[id]
	for i, v := range n.values {
		if v != Nil {
			n.values[i] = fn(v)
		}
	}
	for _, c := range n.children {
		a.update(c, fn)
	}
}

// Scope is one node of a tracker tree.
type Scope struct {
	a   *arena
	id  int
	gen uint32
}

// New returns a root scope.
func New() *Scope {
	a := &arena{nodes: []node{{live: true, parent: -1}}}
	return &Scope{a: a, id: rootID}
}

func (s *Scope) node() *node {
	n := &s.a.nodes[s.id]
	if !n.live || n.gen != s.gen {
		panic(ErrStopped)
	}
	return n
}

// Live reports whether the scope can still be used.
func (s *Scope) Live() bool {
	n := &s.a.nodes[s.id]
	return n.live && n.gen == s.gen
}

// Len returns the number of handles allocated in this scope.
func (s *Scope) Len() int {
	return len(s.node().values)
}

// Ref returns the handle of v in this scope, allocating one if no live
// handle holds an equal value.
func (s *Scope) Ref(v int) Handle {
	n := s.node()
	for i, x := range n.values {
		if x == v && x != Nil {
			return Handle(i)
		}
	}
	n.values = append(n.values, v)
	return Handle(len(n.values) - 1)
}

// Val dereferences h. Invalidated or unknown handles resolve to Nil.
func (s *Scope) Val(h Handle) int {
	n := s.node()
	if h < 0 || int(h) >= len(n.values) {
		return Nil
	}
	return n.values[h]
}

// Update maps every live value of this scope and of all nested scopes
// through fn. fn returns Nil to invalidate a value.
func (s *Scope) Update(fn func(int) int) {
	s.node()
	s.a.update(s.id, fn)
}

// Start opens a nested scope.
func (s *Scope) Start() *Scope {
	s.node()
	id := s.a.alloc(s.id)
	s.a.nodes[s.id].children = append(s.a.nodes[s.id].children, id)
	return &Scope{a: s.a, id: id, gen: s.a.nodes[id].gen}
}

// Stop detaches the scope from its parent and releases it together with
// every scope nested inside it.
func (s *Scope) Stop() error {
	if s.id == rootID {
		return ErrStopRoot
	}
	if !s.Live() {
		return ErrStopped
	}
	p := &s.a.nodes[s.a.nodes[s.id].parent]
	p.children = slices.DeleteFunc(p.children, func(c int) bool { return c == s.id })
	s.a.release(s.id)
	return nil
}

// Track runs fn inside a fresh scope nested in parent and stops the scope on
// every exit path.
func Track(parent *Scope, fn func(s *Scope) error) (err error) {
	s := parent.Start()
	defer func() {
		if serr := s.Stop(); serr != nil && err == nil {
			err = serr
		}
	}()
	return fn(s)
}

// TrackValue is Track for functions producing a value.
func TrackValue[T any](parent *Scope, fn func(s *Scope) (T, error)) (T, error) {
	var result T
	err := Track(parent, func(s *Scope) error {
		var err error
		result, err = fn(s)
		return err
	})
	return result, err
}
