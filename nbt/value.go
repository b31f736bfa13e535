package nbt

// Value is one of the thirteen NBT payload variants. The tag id of a
// value is intrinsic to its concrete type.
type Value interface {
	Tag() Tag
}

// End is the sentinel variant. It carries no payload; on the wire it
// terminates a compound.
type End struct{}

type Byte int8
type Short int16
type Int int32
type Long int64
type Float float32
type Double float64
type ByteArray []byte

// String carries raw UTF-8 bytes. Java's Modified UTF-8 (two-byte NUL,
// surrogate pairs) is not transcoded; the bytes pass through verbatim.
type String string

type IntArray []int32
type LongArray []int64

func (End) Tag() Tag { return TagEnd }
func (Byte) Tag() Tag { return TagByte }
func (Short) Tag() Tag { return TagShort }
func (Int) Tag() Tag { return TagInt }
func (Long) Tag() Tag { return TagLong }
func (Float) Tag() Tag { return TagFloat }
func (Double) Tag() Tag { return TagDouble }
func (ByteArray) Tag() Tag { return TagByteArray }
func (String) Tag() Tag { return TagString }
func (IntArray) Tag() Tag { return TagIntArray }
func (LongArray) Tag() Tag { return TagLongArray }

// Node is a named value. Top-level roots always carry a name, possibly
// empty; list elements are bare values and have no node of their own.
type Node struct {
	Name  string
	Value Value
}

// Compound is an ordered collection of named children. Insertion order
// is preserved on write. Lookups return the first child with a matching
// name; duplicate names are accepted on read.
type Compound struct {
	Fields []Node
}

func (*Compound) Tag() Tag { return TagCompound }

func (c *Compound) Len() int { return len(c.Fields) }

// Get returns the first child named name.
func (c *Compound) Get(name string) (*Node, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// Put appends a child. It does not replace an existing child with the
// same name.
func (c *Compound) Put(name string, v Value) {
	c.Fields = append(c.Fields, Node{Name: name, Value: v})
}

// List is a homogeneous sequence. Every element's tag must equal Elem;
// the empty list has Elem == TagEnd.
type List struct {
	Elem  Tag
	Items []Value
}

func (*List) Tag() Tag { return TagList }

func (l *List) Len() int { return len(l.Items) }

// NewList builds a list of the given element type. Passing an element
// of a different variant, or any element at all for TagEnd, returns
// ErrInvalidList.
func NewList(elem Tag, items ...Value) (*List, error) {
	l := &List{Elem: elem}
	for _, it := range items {
		if err := l.Append(it); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds an element, enforcing homogeneity.
func (l *List) Append(v Value) error {
	if l.Elem == TagEnd || v.Tag() != l.Elem {
		return ErrInvalidList
	}
	l.Items = append(l.Items, v)
	return nil
}

// Typed accessors. Each fails with ErrTypeMismatch when the node holds
// a different variant.

func (n *Node) Byte() (int8, error) {
	if v, ok := n.Value.(Byte); ok {
		return int8(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) Short() (int16, error) {
	if v, ok := n.Value.(Short); ok {
		return int16(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) Int() (int32, error) {
	if v, ok := n.Value.(Int); ok {
		return int32(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) Long() (int64, error) {
	if v, ok := n.Value.(Long); ok {
		return int64(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) Float() (float32, error) {
	if v, ok := n.Value.(Float); ok {
		return float32(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) Double() (float64, error) {
	if v, ok := n.Value.(Double); ok {
		return float64(v), nil
	}
	return 0, ErrTypeMismatch
}

func (n *Node) ByteArray() ([]byte, error) {
	if v, ok := n.Value.(ByteArray); ok {
		return []byte(v), nil
	}
	return nil, ErrTypeMismatch
}

// Text returns the payload of a TAG_String node.
func (n *Node) Text() (string, error) {
	if v, ok := n.Value.(String); ok {
		return string(v), nil
	}
	return "", ErrTypeMismatch
}

func (n *Node) IntArray() ([]int32, error) {
	if v, ok := n.Value.(IntArray); ok {
		return []int32(v), nil
	}
	return nil, ErrTypeMismatch
}

func (n *Node) LongArray() ([]int64, error) {
	if v, ok := n.Value.(LongArray); ok {
		return []int64(v), nil
	}
	return nil, ErrTypeMismatch
}

func (n *Node) List() (*List, error) {
	if v, ok := n.Value.(*List); ok {
		return v, nil
	}
	return nil, ErrTypeMismatch
}

func (n *Node) Compound() (*Compound, error) {
	if v, ok := n.Value.(*Compound); ok {
		return v, nil
	}
	return nil, ErrTypeMismatch
}

// Find looks up a direct child of a compound node by name.
func (n *Node) Find(name string) (*Node, error) {
	c, err := n.Compound()
	if err != nil {
		return nil, err
	}
	child, ok := c.Get(name)
	if !ok {
		return nil, ErrNotFound
	}
	return child, nil
}

// FindPath descends through nested compounds, one name per level. It
// fails with ErrNotFound at the first missing segment and with
// ErrTypeMismatch if a non-leaf segment is not a compound.
func (n *Node) FindPath(path ...string) (*Node, error) {
	cur := n
	for _, name := range path {
		child, err := cur.Find(name)
		if err != nil {
			return nil, err
		}
		cur = child
	}
	return cur, nil
}
