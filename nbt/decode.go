package nbt

// Read parses a big-endian NBT stream into a tree. The whole tree is
// materialized; data is not retained beyond the call except for
// ByteArray payloads, which alias the input buffer.
func Read(data []byte) (*Node, error) {
	c := &cursor{data: data}
	return readNode(c)
}

// readNode reads one named node: tag byte, name framing, payload. A
// TAG_End byte yields the sentinel node with an empty name and no
// payload bytes.
func readNode(c *cursor) (*Node, error) {
	t, err := c.u8()
	if err != nil {
		return nil, err
	}
	tag := Tag(t)
	if !tag.valid() {
		return nil, InvalidTagError{Tag: t}
	}
	if tag == TagEnd {
		return &Node{Value: End{}}, nil
	}

	name, err := readName(c)
	if err != nil {
		return nil, err
	}
	value, err := readPayload(c, tag)
	if err != nil {
		return nil, err
	}
	return &Node{Name: name, Value: value}, nil
}

// Names are framed as an unsigned 16-bit big-endian length followed by
// that many bytes, same as TAG_String payloads.
func readName(c *cursor) (string, error) {
	length, err := c.u16()
	if err != nil {
		return "", err
	}
	b, err := c.take(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readPayload(c *cursor, tag Tag) (Value, error) {
	switch tag {
	case TagByte:
		v, err := c.i8()
		return Byte(v), err
	case TagShort:
		v, err := c.i16()
		return Short(v), err
	case TagInt:
		v, err := c.i32()
		return Int(v), err
	case TagLong:
		v, err := c.i64()
		return Long(v), err
	case TagFloat:
		v, err := c.f32()
		return Float(v), err
	case TagDouble:
		v, err := c.f64()
		return Double(v), err
	case TagByteArray:
		n, err := c.i32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		b, err := c.take(int(n))
		if err != nil {
			return nil, err
		}
		return ByteArray(b), nil
	case TagString:
		length, err := c.u16()
		if err != nil {
			return nil, err
		}
		b, err := c.take(int(length))
		if err != nil {
			return nil, err
		}
		return String(b), nil
	case TagIntArray:
		n, err := c.i32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		arr := make(IntArray, n)
		for i := range arr {
			v, err := c.i32()
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case TagLongArray:
		n, err := c.i32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		arr := make(LongArray, n)
		for i := range arr {
			v, err := c.i64()
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case TagList:
		return readList(c)
	case TagCompound:
		return readCompound(c)
	}
	return nil, InvalidTagError{Tag: byte(tag)}
}

// readList reads the element tag, the length, then length bare payloads
// of the element type. A TAG_End element type is only legal with length
// zero; the length prefix is still consumed in that case.
func readList(c *cursor) (*List, error) {
	t, err := c.u8()
	if err != nil {
		return nil, err
	}
	elem := Tag(t)
	if !elem.valid() {
		return nil, InvalidTagError{Tag: t}
	}
	n, err := c.i32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrInvalidList
	}
	if elem == TagEnd {
		if n > 0 {
			return nil, ErrInvalidList
		}
		return &List{Elem: TagEnd}, nil
	}

	list := &List{Elem: elem, Items: make([]Value, 0, n)}
	for i := int32(0); i < n; i++ {
		v, err := readPayload(c, elem)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, v)
	}
	return list, nil
}

// readCompound collects named children until the End sentinel, which is
// consumed but not retained.
func readCompound(c *cursor) (*Compound, error) {
	comp := &Compound{}
	for {
		child, err := readNode(c)
		if err != nil {
			return nil, err
		}
		if child.Value.Tag() == TagEnd {
			return comp, nil
		}
		comp.Fields = append(comp.Fields, *child)
	}
}
