// Package render holds the element tree cards produce on every render pass.
//
// A tree is plain data: tags, slots, classes, attributes, properties, inline
// style variables, declared event listeners and ordered children. Hosts turn
// it into whatever their surface needs (DOM, HTML, a terminal preview).
package render

import (
	"maps"
	"slices"
)

// Style maps CSS custom properties (or plain properties) to values.
type Style map[string]string

// Node is one element of a render tree.
type Node struct {
	Tag       string
	Slot      string
	Classes   []string
	Attrs     map[string]string
	Props     map[string]any
	Style     Style
	Listeners []string
	Text      string
	Children  []*Node
}

// El creates an element. Nil children are dropped so optional slots can be
// passed inline.
func El(tag string, children ...*Node) *Node {
	n := &Node{Tag: tag}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// InSlot sets the slot the node is projected into.
func (n *Node) InSlot(slot string) *Node {
	n.Slot = slot
	return n
}

// Class adds class when on is true.
func (n *Node) Class(class string, on bool) *Node {
	if on && !slices.Contains(n.Classes, class) {
		n.Classes = append(n.Classes, class)
	}
	return n
}

// Attr sets a string attribute.
func (n *Node) Attr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// BoolAttr sets a boolean attribute when on is true and removes it otherwise.
func (n *Node) BoolAttr(name string, on bool) *Node {
	if !on {
		delete(n.Attrs, name)
		return n
	}
	return n.Attr(name, "")
}

// Prop sets a property binding.
func (n *Node) Prop(name string, value any) *Node {
	if n.Props == nil {
		n.Props = map[string]any{}
	}
	n.Props[name] = value
	return n
}

// WithStyle merges s into the node's inline style. An empty s is a no-op.
func (n *Node) WithStyle(s Style) *Node {
	if len(s) == 0 {
		return n
	}
	if n.Style == nil {
		n.Style = Style{}
	}
	maps.Copy(n.Style, s)
	return n
}

// On declares that the host must route events of the given types to the card.
func (n *Node) On(events ...string) *Node {
	n.Listeners = append(n.Listeners, events...)
	return n
}

// HasClass reports whether class is set on the node.
func (n *Node) HasClass(class string) bool {
	return n != nil && slices.Contains(n.Classes, class)
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[name]
	return ok
}

// Listens reports whether the node declares a listener for event.
func (n *Node) Listens(event string) bool {
	return n != nil && slices.Contains(n.Listeners, event)
}

// Walk visits n and its descendants depth first, stopping when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Tag == tag {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindSlot returns the first direct child projected into slot, or nil.
func (n *Node) FindSlot(slot string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Slot == slot {
			return c
		}
	}
	return nil
}
