package sim

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
)

var errRecycled = errors.New("node handle used after recycle")

type element struct {
	attrs    model.Element // Children unused; see children
	children []*element
}

func buildElement(m model.Element) *element {
	el := &element{attrs: m}
	el.attrs.Children = nil
	for _, c := range m.Children {
		el.children = append(el.children, buildElement(c))
	}
	return el
}

func (el *element) snapshot() model.Element {
	out := el.attrs
	out.Children = nil
	for _, c := range el.children {
		out.Children = append(out.Children, c.snapshot())
	}
	return out
}

// Tree is the simulated window content. It hands out counted node handles.
type Tree struct {
	mu        sync.RWMutex
	root      *element
	a11yFocus *element

	childErr   error
	actionErr  error
	rejectText bool

	obtained        atomic.Int64
	recycled        atomic.Int64
	doubleRecycled  atomic.Int64
	useAfterRecycle atomic.Int64
}

// NewTree builds a tree from a scene root.
func NewTree(root model.Element) *Tree {
	return &Tree{root: buildElement(root)}
}

// Replace swaps the whole window content, clearing accessibility focus.
func (t *Tree) Replace(root model.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = buildElement(root)
	t.a11yFocus = nil
}

// Snapshot returns a detached copy of the current content.
func (t *Tree) Snapshot() model.Element {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.snapshot()
}

// Outstanding returns the number of handles obtained but not yet recycled.
func (t *Tree) Outstanding() int64 { return t.obtained.Load() - t.recycled.Load() }

// Obtained returns the total number of handles handed out.
func (t *Tree) Obtained() int64 { return t.obtained.Load() }

// DoubleRecycles counts Recycle calls on already-recycled handles.
func (t *Tree) DoubleRecycles() int64 { return t.doubleRecycled.Load() }

// UseAfterRecycle counts calls made through recycled handles.
func (t *Tree) UseAfterRecycle() int64 { return t.useAfterRecycle.Load() }

// FailChildren makes every subsequent Child call return err (nil to clear).
func (t *Tree) FailChildren(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.childErr = err
}

// FailActions makes every subsequent PerformAction return err (nil to clear).
func (t *Tree) FailActions(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actionErr = err
}

// RejectSetText makes set-text actions report false without error.
func (t *Tree) RejectSetText(reject bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rejectText = reject
}

// SetAccessibilityFocus moves accessibility focus to the first node whose
// bounds equal r. It reports whether such a node exists.
func (t *Tree) SetAccessibilityFocus(r model.Rect) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	el := findElement(t.root, func(e *element) bool { return e.attrs.Bounds == r })
	t.a11yFocus = el
	return el != nil
}

// ClearAccessibilityFocus removes accessibility focus.
func (t *Tree) ClearAccessibilityFocus() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.a11yFocus = nil
}

func (t *Tree) rootHandle() platform.Node {
	t.mu.RLock()
	root := t.root
	t.mu.RUnlock()
	if root == nil {
		return nil
	}
	return t.handle(root)
}

func (t *Tree) focusHandle(kind platform.FocusKind) platform.Node {
	t.mu.RLock()
	var el *element
	switch kind {
	case platform.FocusInput:
		el = findElement(t.root, func(e *element) bool { return e.attrs.Focused })
	case platform.FocusAccessibility:
		el = t.a11yFocus
	}
	t.mu.RUnlock()
	if el == nil {
		return nil
	}
	return t.handle(el)
}

// focusAt gives input focus to the deepest editable node containing (x, y).
func (t *Tree) focusAt(x, y int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	target := deepestAt(t.root, x, y, func(e *element) bool { return e.attrs.Editable })
	if target == nil {
		return false
	}
	walk(t.root, func(e *element) { e.attrs.Focused = false })
	target.attrs.Focused = true
	return true
}

func (t *Tree) handle(el *element) *node {
	t.obtained.Add(1)
	return &node{tree: t, el: el}
}

func findElement(el *element, match func(*element) bool) *element {
	if el == nil {
		return nil
	}
	if match(el) {
		return el
	}
	for _, c := range el.children {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func deepestAt(el *element, x, y int, match func(*element) bool) *element {
	if el == nil || !el.attrs.Bounds.Contains(x, y) {
		return nil
	}
	for i := len(el.children) - 1; i >= 0; i-- {
		if found := deepestAt(el.children[i], x, y, match); found != nil {
			return found
		}
	}
	if match(el) {
		return el
	}
	return nil
}

func walk(el *element, fn func(*element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, c := range el.children {
		walk(c, fn)
	}
}
