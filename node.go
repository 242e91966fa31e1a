package xmltree

import (
	"strings"

	"github.com/pkg/errors"
)

// ToEnd selects the rest of the data in SubstringData.
const ToEnd = -1

// Node is a single element of a document tree.
//
// A node owns its children through the firstChild/nextSibling chain. The
// parent and prevSibling links are navigation only.
type Node struct {
	parent      *Node
	prevSibling *Node
	nextSibling *Node
	firstChild  *Node
	lastChild   *Node

	tag         string
	data        string
	attrs       Attrs
	selfClosing bool
	// closed is set by the parser once the matching close tag is consumed.
	closed bool
}

func NewNode(tag string) *Node {
	return &Node{tag: tag}
}

func (node *Node) Tag() string {
	return node.tag
}

func (node *Node) SetTag(tag string) {
	node.tag = tag
}

func (node *Node) SelfClosing() bool {
	return node.selfClosing
}

// SetSelfClosing marks the node as having no body. It fails with
// ErrSelfClosing when the node already holds children or data.
func (node *Node) SetSelfClosing(selfClosing bool) error {
	if selfClosing && (node.HasChildren() || node.HasData()) {
		return errors.Wrapf(ErrSelfClosing, "<%s>", node.tag)
	}
	node.selfClosing = selfClosing
	return nil
}

// Attributes

// GetAttr returns the value stored under key or ErrAttributeNotFound.
func (node *Node) GetAttr(key string) (string, error) {
	value, ok := node.attrs.Get(key)
	if !ok {
		return "", errors.Wrapf(ErrAttributeNotFound, "<%s> %q", node.tag, key)
	}
	return value, nil
}

func (node *Node) FindAttr(key string) bool {
	return node.attrs.Has(key)
}

// AddAttr inserts key or overwrites its current value. A value holding both
// quote characters cannot be rendered so that it parses back.
func (node *Node) AddAttr(key, value string) {
	node.attrs.Set(key, value)
}

// SetAttr overwrites an existing attribute. Unknown keys are ignored; use
// AddAttr to create one.
func (node *Node) SetAttr(key, value string) {
	if node.FindAttr(key) {
		node.attrs.Set(key, value)
	}
}

func (node *Node) RemoveAttr(key string) error {
	if !node.attrs.Delete(key) {
		return errors.Wrapf(ErrAttributeNotFound, "<%s> %q", node.tag, key)
	}
	return nil
}

// Attrs returns a copy of the attributes in stored order.
func (node *Node) Attrs() Attrs {
	return node.attrs.Clone()
}

// Data

func (node *Node) Data() string {
	return node.data
}

func (node *Node) DataLength() int {
	return len(node.data)
}

func (node *Node) HasData() bool {
	return node.data != ""
}

// SetData replaces the text content. Entities are neither decoded nor
// encoded, so data containing '<' renders to markup that does not parse back.
func (node *Node) SetData(data string) error {
	if err := node.acceptData(data); err != nil {
		return err
	}
	node.data = data
	return nil
}

func (node *Node) AppendData(data string) error {
	if err := node.acceptData(data); err != nil {
		return err
	}
	node.data += data
	return nil
}

// InsertData inserts data at byte offset idx, which may equal DataLength.
func (node *Node) InsertData(idx int, data string) error {
	if err := node.checkIndex(idx); err != nil {
		return err
	}
	if err := node.acceptData(data); err != nil {
		return err
	}
	node.data = node.data[:idx] + data + node.data[idx:]
	return nil
}

// ReplaceData replaces the first occurrence of old with replacement.
func (node *Node) ReplaceData(old, replacement string) {
	if old == "" {
		return
	}
	node.data = strings.Replace(node.data, old, replacement, 1)
}

// SplitData returns the data from byte offset idx onwards. The node keeps
// its data unchanged.
func (node *Node) SplitData(idx int) (string, error) {
	if err := node.checkIndex(idx); err != nil {
		return "", err
	}
	return node.data[idx:], nil
}

// SubstringData returns up to count bytes starting at idx. A negative count
// (see ToEnd) or one running past the end selects the rest of the data.
func (node *Node) SubstringData(idx, count int) (string, error) {
	if err := node.checkIndex(idx); err != nil {
		return "", err
	}
	if count < 0 || idx+count > len(node.data) {
		return node.data[idx:], nil
	}
	return node.data[idx : idx+count], nil
}

func (node *Node) DeleteData() {
	node.data = ""
}

func (node *Node) checkIndex(idx int) error {
	if idx < 0 || idx > len(node.data) {
		return errors.Wrapf(ErrIndexOutOfRange, "<%s> index %d, length %d", node.tag, idx, len(node.data))
	}
	return nil
}

func (node *Node) acceptData(data string) error {
	if node.selfClosing && data != "" {
		return errors.Wrapf(ErrSelfClosing, "<%s> data", node.tag)
	}
	return nil
}

// Navigation

func (node *Node) Parent() *Node {
	return node.parent
}

func (node *Node) PrevSibling() *Node {
	return node.prevSibling
}

func (node *Node) NextSibling() *Node {
	return node.nextSibling
}

func (node *Node) FirstChild() *Node {
	return node.firstChild
}

func (node *Node) LastChild() *Node {
	return node.lastChild
}

// NthChild returns the zero-based n-th child or nil when there is none.
func (node *Node) NthChild(n int) *Node {
	if n < 0 {
		return nil
	}
	child := node.firstChild
	for ; child != nil && n > 0; n-- {
		child = child.nextSibling
	}
	return child
}

func (node *Node) Children() []*Node {
	children := make([]*Node, 0, node.ChildCount())
	for child := node.firstChild; child != nil; child = child.nextSibling {
		children = append(children, child)
	}
	return children
}

func (node *Node) ChildCount() int {
	count := 0
	for child := node.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

func (node *Node) IsFirstChild() bool {
	parent := node.Parent()
	return parent != nil && parent.firstChild == node
}

func (node *Node) IsLastChild() bool {
	parent := node.Parent()
	return parent != nil && parent.lastChild == node
}

func (node *Node) HasChildren() bool {
	return node.firstChild != nil
}

func (node *Node) HasParent() bool {
	return node.Parent() != nil
}

// Mutation

// AppendChild attaches child as the last child of node. A child that
// already belongs to a tree is moved.
func (node *Node) AppendChild(child *Node) error {
	if err := node.canAdopt(child); err != nil {
		return err
	}
	child.detach()
	node.link(child, nil)
	return nil
}

// PrependChild attaches child as the first child of node.
func (node *Node) PrependChild(child *Node) error {
	if err := node.canAdopt(child); err != nil {
		return err
	}
	child.detach()
	node.link(child, node.firstChild)
	return nil
}

// InsertChild inserts child immediately before anchor, which has to be a
// child of node. It reports whether the insertion happened.
func (node *Node) InsertChild(anchor, child *Node) bool {
	if anchor == nil || anchor == child || anchor.Parent() != node {
		return false
	}
	if node.canAdopt(child) != nil {
		return false
	}
	child.detach()
	node.link(child, anchor)
	return true
}

// RemoveChild detaches anchor from node and clears its links. The caller
// owns the detached subtree afterwards.
func (node *Node) RemoveChild(anchor *Node) bool {
	if anchor == nil || anchor.Parent() != node {
		return false
	}
	node.unlink(anchor)
	return true
}

// RemoveFirstChild detaches and returns the first child, or nil.
func (node *Node) RemoveFirstChild() *Node {
	child := node.firstChild
	if child != nil {
		node.unlink(child)
	}
	return child
}

// RemoveLastChild detaches and returns the last child, or nil.
func (node *Node) RemoveLastChild() *Node {
	child := node.lastChild
	if child != nil {
		node.unlink(child)
	}
	return child
}

func (node *Node) canAdopt(child *Node) error {
	if child == nil {
		return ErrUndefinedNode
	}
	if node.selfClosing {
		return errors.Wrapf(ErrSelfClosing, "<%s> child <%s>", node.tag, child.tag)
	}
	for ancestor := node; ancestor != nil; ancestor = ancestor.Parent() {
		if ancestor == child {
			return errors.Wrapf(ErrHierarchy, "<%s> into <%s>", child.tag, node.tag)
		}
	}
	return nil
}

func (node *Node) detach() {
	if parent := node.Parent(); parent != nil {
		parent.unlink(node)
	}
}

// link inserts a detached child before anchor, or at the end if anchor is nil.
func (node *Node) link(child, anchor *Node) {
	child.parent = node
	if anchor == nil {
		child.nextSibling = nil
		child.prevSibling = node.lastChild
		if node.lastChild != nil {
			node.lastChild.nextSibling = child
		} else {
			node.firstChild = child
		}
		node.lastChild = child
		return
	}
	child.prevSibling = anchor.prevSibling
	child.nextSibling = anchor
	if anchor.prevSibling != nil {
		anchor.prevSibling.nextSibling = child
	} else {
		node.firstChild = child
	}
	anchor.prevSibling = child
}

func (node *Node) unlink(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		node.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		node.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// Traversal

// Walk visits node and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (node *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(current) {
			continue
		}
		for child := current.lastChild; child != nil; child = child.prevSibling {
			stack = append(stack, child)
		}
	}
}

func (node *Node) collect(match func(*Node) bool) []*Node {
	found := make([]*Node, 0)
	node.Walk(func(current *Node) bool {
		if match(current) {
			found = append(found, current)
		}
		return true
	})
	return found
}

// GetElementsByTagName returns node and its descendants tagged name, in
// pre-order.
func (node *Node) GetElementsByTagName(name string) []*Node {
	return node.collect(func(current *Node) bool {
		return current.tag == name
	})
}

// GetElementsByAttrName returns node and its descendants carrying key, in
// pre-order.
func (node *Node) GetElementsByAttrName(key string) []*Node {
	return node.collect(func(current *Node) bool {
		return current.attrs.Has(key)
	})
}

// Copying and teardown

// Copy overwrites target with a deep copy of node. The previous children of
// target are disposed; its own position in a tree is kept. Target may be node
// itself or one of its ancestors.
func (node *Node) Copy(target *Node) {
	if target == nil {
		panic(ErrUndefinedNode)
	}
	src := node
	for ancestor := node; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == target {
			src = node.Clone()
			break
		}
	}
	for target.firstChild != nil {
		target.RemoveFirstChild().Dispose()
	}
	src.copyInto(target)
}

// Clone returns a detached deep copy of node.
func (node *Node) Clone() *Node {
	copyNode := new(Node)
	node.copyInto(copyNode)
	return copyNode
}

// copyInto fills a childless target from node.
func (node *Node) copyInto(target *Node) {
	target.tag = node.tag
	target.data = node.data
	target.attrs = node.attrs.Clone()
	target.selfClosing = node.selfClosing
	target.closed = node.closed
	for child := node.firstChild; child != nil; child = child.nextSibling {
		target.link(child.Clone(), nil)
	}
}

// Dispose detaches node and tears its subtree down children first. The
// nodes must not be used afterwards.
func (node *Node) Dispose() {
	node.detach()
	stack := []*Node{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		if child := current.firstChild; child != nil {
			current.unlink(child)
			stack = append(stack, child)
			continue
		}
		stack = stack[:len(stack)-1]
		current.attrs = nil
		current.data = ""
	}
}

func (node *Node) String() string {
	out, err := RenderString(node)
	if err != nil {
		return "<" + node.tag + ">"
	}
	return out
}
