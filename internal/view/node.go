// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package view turns server records into a small structured view tree.
// Every renderer is a pure function of its input and the active locale;
// front ends walk the tree to draw it and to wire its buttons.
package view

import "strings"

// Tag identifies what a Node stands for.
type Tag string

const (
	TagRow     Tag = "row"
	TagCell    Tag = "cell"
	TagCode    Tag = "code"
	TagBadge   Tag = "badge"
	TagButton  Tag = "button"
	TagHeading Tag = "heading"
	TagText    Tag = "text"
	TagField   Tag = "field"
	TagGroup   Tag = "group"
	TagNav     Tag = "nav"
)

// ActionKind names the controller a button is wired to.
type ActionKind string

const (
	ActionLoadKeys   ActionKind = "load_keys"
	ActionLoadLogs   ActionKind = "load_logs"
	ActionShowKey    ActionKind = "show_key"
	ActionPauseKey   ActionKind = "pause_key"
	ActionUnpauseKey ActionKind = "unpause_key"
	ActionResetHWID  ActionKind = "reset_hwid"
	ActionDeleteKey  ActionKind = "delete_key"
	ActionCloseModal ActionKind = "close_modal"
	ActionCopyKeys   ActionKind = "copy_keys"
)

// Action is what happens when a button is pressed.
type Action struct {
	Kind     ActionKind
	Page     int
	KeyValue string
	// Keys carries the payload of ActionCopyKeys.
	Keys []string
}

// Node is one element of the view tree.
type Node struct {
	Tag      Tag
	Class    string
	Text     string
	Icon     string
	Span     int
	Hidden   bool
	Action   *Action
	Children []*Node
}

func el(tag Tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

func text(tag Tag, class, s string) *Node {
	return &Node{Tag: tag, Class: class, Text: s}
}

func button(class, label, icon string, a Action) *Node {
	return &Node{Tag: TagButton, Class: class, Text: label, Icon: icon, Action: &a}
}

// HasClass reports whether class is one of the node's space separated classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// TextContent returns the visible text of n and its descendants, the way a
// reader would see it. Icons carry no text.
func TextContent(n *Node) string {
	var parts []string
	Walk(n, func(x *Node) bool {
		if x.Text != "" {
			parts = append(parts, x.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Buttons returns every button below n, in document order.
func Buttons(n *Node) []*Node {
	var out []*Node
	Walk(n, func(x *Node) bool {
		if x.Tag == TagButton {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Find returns the first node below n carrying class.
func Find(n *Node, class string) *Node {
	var found *Node
	Walk(n, func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.HasClass(class) {
			found = x
			return false
		}
		return true
	})
	return found
}
