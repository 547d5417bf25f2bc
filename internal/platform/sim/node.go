package sim

import (
	"sync/atomic"

	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
)

// node is one counted handle onto an element.
type node struct {
	tree     *Tree
	el       *element
	recycled atomic.Bool
}

var _ platform.Node = (*node)(nil)

func (n *node) attrs() model.Element {
	if n.recycled.Load() {
		n.tree.useAfterRecycle.Add(1)
	}
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.el.attrs
}

func (n *node) ClassName() string          { return n.attrs().Class }
func (n *node) PackageName() string        { return n.attrs().Package }
func (n *node) ContentDescription() string { return n.attrs().ContentDesc }
func (n *node) Text() string               { return n.attrs().Text }
func (n *node) ViewIDResourceName() string { return n.attrs().ResourceID }
func (n *node) BoundsInScreen() model.Rect { return n.attrs().Bounds }
func (n *node) IsClickable() bool          { return n.attrs().Clickable }
func (n *node) IsFocused() bool            { return n.attrs().Focused }
func (n *node) IsEditable() bool           { return n.attrs().Editable }

func (n *node) ChildCount() int {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return len(n.el.children)
}

func (n *node) Child(i int) (platform.Node, error) {
	if n.recycled.Load() {
		n.tree.useAfterRecycle.Add(1)
		return nil, errRecycled
	}
	n.tree.mu.RLock()
	err := n.tree.childErr
	var child *element
	if i >= 0 && i < len(n.el.children) {
		child = n.el.children[i]
	}
	n.tree.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return n.tree.handle(child), nil
}

func (n *node) Obtain() platform.Node {
	if n.recycled.Load() {
		n.tree.useAfterRecycle.Add(1)
	}
	return n.tree.handle(n.el)
}

func (n *node) PerformAction(action platform.Action, args platform.ActionArgs) (bool, error) {
	if n.recycled.Load() {
		n.tree.useAfterRecycle.Add(1)
		return false, errRecycled
	}
	n.tree.mu.Lock()
	defer n.tree.mu.Unlock()
	if n.tree.actionErr != nil {
		return false, n.tree.actionErr
	}
	switch action {
	case platform.ActionSetText:
		if !n.el.attrs.Editable || n.tree.rejectText {
			return false, nil
		}
		n.el.attrs.Text = args.SetText
		return true, nil
	default:
		return false, nil
	}
}

func (n *node) Recycle() {
	if n.recycled.Swap(true) {
		n.tree.doubleRecycled.Add(1)
		return
	}
	n.tree.recycled.Add(1)
}
