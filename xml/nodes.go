package xml

import (
	"slices"
	"strconv"
	"strings"
)

type NodeType int8

const (
	TypeDocument NodeType = 1 << iota
	TypeElement
	TypeComment
	TypeAttribute
	TypeInstruction
	TypeText
	TypeNamespace
)

const TypeNode = TypeDocument | TypeElement | TypeComment | TypeAttribute | TypeInstruction | TypeText | TypeNamespace

func (n NodeType) String() string {
	switch n {
	default:
		return "<>"
	case TypeDocument:
		return "document"
	case TypeElement:
		return "element"
	case TypeComment:
		return "comment"
	case TypeAttribute:
		return "attribute"
	case TypeInstruction:
		return "pi"
	case TypeText:
		return "text"
	case TypeNamespace:
		return "namespace"
	case TypeNode:
		return "node"
	}
}

// Node is the read-only view the query engine has of a document tree.
// The parent link is traversal-only: the tree owns its nodes top-down.
type Node interface {
	Type() NodeType
	LocalName() string
	QualifiedName() string
	Namespace() string
	Leaf() bool
	Position() int
	Parent() Node
	Value() string
	Identity() string

	setParent(Node)
	setPosition(int)
	path() []int
}

// Attributes and namespace nodes order immediately before their
// element's children. Their path component starts at a large negative
// offset so that comparing paths keeps the invariant.
const (
	nsOrder   = -(1 << 21)
	attrOrder = -(1 << 20)
)

// Before reports whether left comes before right in document order,
// the order induced by a pre-order depth first traversal.
func Before(left, right Node) bool {
	var (
		p1 = left.path()
		p2 = right.path()
	)
	for i := 0; i < len(p1) && i < len(p2); i++ {
		if p1[i] != p2[i] {
			return p1[i] < p2[i]
		}
	}
	return len(p1) < len(p2)
}

func After(left, right Node) bool {
	return !Before(left, right) && left.Identity() != right.Identity()
}

// Attach links a synthesized node under a parent without adding it to
// the parent's children. The query engine uses it to materialize
// namespace nodes on demand.
func Attach(node, parent Node, pos int) {
	node.setParent(parent)
	node.setPosition(pos)
}

func Root(node Node) Node {
	for node != nil {
		p := node.Parent()
		if p == nil {
			break
		}
		node = p
	}
	return node
}

type QName struct {
	Name  string
	Space string
	Uri   string
}

func LocalName(name string) QName {
	return QName{
		Name: name,
	}
}

func QualifiedName(name, space string) QName {
	return QName{
		Name:  name,
		Space: space,
	}
}

func ExpandedName(name, space, uri string) QName {
	return QName{
		Name:  name,
		Space: space,
		Uri:   uri,
	}
}

func ParseName(name string) QName {
	if space, local, ok := strings.Cut(name, ":"); ok {
		return QualifiedName(local, space)
	}
	return LocalName(name)
}

func (q QName) Zero() bool {
	return q.Name == "" && q.Space == ""
}

func (q QName) LocalName() string {
	return q.Name
}

func (q QName) QualifiedName() string {
	if q.Space == "" {
		return q.Name
	}
	return q.Space + ":" + q.Name
}

type NS struct {
	Prefix string
	Uri    string
}

func (n NS) Default() bool {
	return n.Prefix == ""
}

type Document struct {
	Version  string
	Encoding string

	Nodes []Node
}

func NewDocument(root Node) *Document {
	doc := Document{
		Version:  "1.0",
		Encoding: "UTF-8",
	}
	doc.Append(root)
	return &doc
}

func (d *Document) Append(node Node) {
	node.setParent(d)
	node.setPosition(len(d.Nodes))
	d.Nodes = append(d.Nodes, node)
}

func (d *Document) Root() Node {
	for _, n := range d.Nodes {
		if n.Type() == TypeElement {
			return n
		}
	}
	return nil
}

func (d *Document) Type() NodeType {
	return TypeDocument
}

func (d *Document) LocalName() string {
	return ""
}

func (d *Document) QualifiedName() string {
	return ""
}

func (d *Document) Namespace() string {
	return ""
}

func (d *Document) Leaf() bool {
	return false
}

func (d *Document) Position() int {
	return 0
}

func (d *Document) Parent() Node {
	return nil
}

func (d *Document) Value() string {
	root := d.Root()
	if root == nil {
		return ""
	}
	return root.Value()
}

func (d *Document) Identity() string {
	return "/"
}

func (d *Document) path() []int {
	return nil
}

func (d *Document) setParent(_ Node)  {}
func (d *Document) setPosition(_ int) {}

type Element struct {
	QName
	Attrs      []Attribute
	Namespaces []NS
	Nodes      []Node

	parent   Node
	position int
}

func NewElement(name QName) *Element {
	return &Element{
		QName: name,
	}
}

func (e *Element) Append(node Node) {
	node.setParent(e)
	node.setPosition(len(e.Nodes))
	e.Nodes = append(e.Nodes, node)
}

func (e *Element) SetAttribute(attr Attribute) {
	attr.parent = e
	attr.position = len(e.Attrs)
	e.Attrs = append(e.Attrs, attr)
}

func (e *Element) GetAttribute(name string) (Attribute, bool) {
	ix := slices.IndexFunc(e.Attrs, func(a Attribute) bool {
		return a.QualifiedName() == name
	})
	if ix < 0 {
		var a Attribute
		return a, false
	}
	return e.Attrs[ix], true
}

func (e *Element) Find(name string) Node {
	ix := slices.IndexFunc(e.Nodes, func(n Node) bool {
		return n.Type() == TypeElement && n.QualifiedName() == name
	})
	if ix < 0 {
		return nil
	}
	return e.Nodes[ix]
}

func (e *Element) Type() NodeType {
	return TypeElement
}

func (e *Element) Namespace() string {
	return e.Uri
}

func (e *Element) Leaf() bool {
	return e.Empty()
}

func (e *Element) Empty() bool {
	return len(e.Nodes) == 0
}

func (e *Element) Len() int {
	return len(e.Nodes)
}

func (e *Element) Position() int {
	return e.position
}

func (e *Element) Parent() Node {
	return e.parent
}

func (e *Element) Value() string {
	var str strings.Builder
	writeValue(&str, e)
	return str.String()
}

func (e *Element) Identity() string {
	return identity(e)
}

func (e *Element) path() []int {
	if e.parent == nil {
		return []int{e.position}
	}
	return append(e.parent.path(), e.position)
}

func (e *Element) setParent(node Node) {
	e.parent = node
}

func (e *Element) setPosition(pos int) {
	e.position = pos
}

func writeValue(str *strings.Builder, node Node) {
	el, ok := node.(*Element)
	if !ok {
		str.WriteString(node.Value())
		return
	}
	for _, n := range el.Nodes {
		switch n.Type() {
		case TypeText:
			str.WriteString(n.Value())
		case TypeElement:
			writeValue(str, n)
		}
	}
}

func identity(node Node) string {
	var (
		parts = node.path()
		list  = make([]string, len(parts))
	)
	for i := range parts {
		list[i] = strconv.Itoa(parts[i])
	}
	return "/" + strings.Join(list, "/")
}

type Attribute struct {
	QName
	Datum string

	parent   Node
	position int
}

func NewAttribute(name QName, value string) Attribute {
	return Attribute{
		QName: name,
		Datum: value,
	}
}

func (a *Attribute) Type() NodeType {
	return TypeAttribute
}

func (a *Attribute) Namespace() string {
	return a.Uri
}

func (a *Attribute) Leaf() bool {
	return true
}

func (a *Attribute) Position() int {
	return a.position
}

func (a *Attribute) Parent() Node {
	return a.parent
}

func (a *Attribute) Value() string {
	return a.Datum
}

func (a *Attribute) Identity() string {
	return identity(a)
}

func (a *Attribute) path() []int {
	if a.parent == nil {
		return []int{attrOrder + a.position}
	}
	return append(a.parent.path(), attrOrder+a.position)
}

func (a *Attribute) setParent(node Node) {
	a.parent = node
}

func (a *Attribute) setPosition(pos int) {
	a.position = pos
}

type Text struct {
	Content string

	parent   Node
	position int
}

func NewText(content string) *Text {
	return &Text{
		Content: content,
	}
}

func (t *Text) Type() NodeType {
	return TypeText
}

func (t *Text) LocalName() string {
	return ""
}

func (t *Text) QualifiedName() string {
	return ""
}

func (t *Text) Namespace() string {
	return ""
}

func (t *Text) Leaf() bool {
	return true
}

func (t *Text) Position() int {
	return t.position
}

func (t *Text) Parent() Node {
	return t.parent
}

func (t *Text) Value() string {
	return t.Content
}

func (t *Text) Identity() string {
	return identity(t)
}

func (t *Text) path() []int {
	if t.parent == nil {
		return []int{t.position}
	}
	return append(t.parent.path(), t.position)
}

func (t *Text) setParent(node Node) {
	t.parent = node
}

func (t *Text) setPosition(pos int) {
	t.position = pos
}

type Comment struct {
	Content string

	parent   Node
	position int
}

func NewComment(content string) *Comment {
	return &Comment{
		Content: content,
	}
}

func (c *Comment) Type() NodeType {
	return TypeComment
}

func (c *Comment) LocalName() string {
	return ""
}

func (c *Comment) QualifiedName() string {
	return ""
}

func (c *Comment) Namespace() string {
	return ""
}

func (c *Comment) Leaf() bool {
	return true
}

func (c *Comment) Position() int {
	return c.position
}

func (c *Comment) Parent() Node {
	return c.parent
}

func (c *Comment) Value() string {
	return c.Content
}

func (c *Comment) Identity() string {
	return identity(c)
}

func (c *Comment) path() []int {
	if c.parent == nil {
		return []int{c.position}
	}
	return append(c.parent.path(), c.position)
}

func (c *Comment) setParent(node Node) {
	c.parent = node
}

func (c *Comment) setPosition(pos int) {
	c.position = pos
}

type Instruction struct {
	Target  string
	Content string

	parent   Node
	position int
}

func NewInstruction(target, content string) *Instruction {
	return &Instruction{
		Target:  target,
		Content: content,
	}
}

func (i *Instruction) Type() NodeType {
	return TypeInstruction
}

func (i *Instruction) LocalName() string {
	return i.Target
}

func (i *Instruction) QualifiedName() string {
	return i.Target
}

func (i *Instruction) Namespace() string {
	return ""
}

func (i *Instruction) Leaf() bool {
	return true
}

func (i *Instruction) Position() int {
	return i.position
}

func (i *Instruction) Parent() Node {
	return i.parent
}

func (i *Instruction) Value() string {
	return i.Content
}

func (i *Instruction) Identity() string {
	return identity(i)
}

func (i *Instruction) path() []int {
	if i.parent == nil {
		return []int{i.position}
	}
	return append(i.parent.path(), i.position)
}

func (i *Instruction) setParent(node Node) {
	i.parent = node
}

func (i *Instruction) setPosition(pos int) {
	i.position = pos
}

type Namespace struct {
	NS

	parent   Node
	position int
}

func NewNamespace(ns NS) *Namespace {
	return &Namespace{
		NS: ns,
	}
}

func (n *Namespace) Type() NodeType {
	return TypeNamespace
}

func (n *Namespace) LocalName() string {
	return n.Prefix
}

func (n *Namespace) QualifiedName() string {
	return n.Prefix
}

func (n *Namespace) Namespace() string {
	return n.Uri
}

func (n *Namespace) Leaf() bool {
	return true
}

func (n *Namespace) Position() int {
	return n.position
}

func (n *Namespace) Parent() Node {
	return n.parent
}

func (n *Namespace) Value() string {
	return n.Uri
}

func (n *Namespace) Identity() string {
	return identity(n)
}

func (n *Namespace) path() []int {
	if n.parent == nil {
		return []int{nsOrder + n.position}
	}
	return append(n.parent.path(), nsOrder+n.position)
}

func (n *Namespace) setParent(node Node) {
	n.parent = node
}

func (n *Namespace) setPosition(pos int) {
	n.position = pos
}
