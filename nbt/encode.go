package nbt

// Write serializes a tree into its big-endian NBT stream. The output
// buffer is sized exactly up front via EncodedSize.
func Write(node *Node) ([]byte, error) {
	s := &sink{buf: make([]byte, 0, EncodedSize(node))}
	if err := writeNode(s, node); err != nil {
		return nil, err
	}
	return s.buf, nil
}

// writeNode emits tag byte, name framing and payload. The End sentinel
// is a single zero byte with no name framing.
func writeNode(s *sink, node *Node) error {
	tag := node.Value.Tag()
	if tag == TagEnd {
		s.u8(byte(TagEnd))
		return nil
	}
	s.u8(byte(tag))
	writeName(s, node.Name)
	return writePayload(s, node.Value)
}

func writeName(s *sink, name string) {
	s.u16(uint16(len(name)))
	s.raw([]byte(name))
}

func writePayload(s *sink, value Value) error {
	switch v := value.(type) {
	case Byte:
		s.i8(int8(v))
	case Short:
		s.i16(int16(v))
	case Int:
		s.i32(int32(v))
	case Long:
		s.i64(int64(v))
	case Float:
		s.f32(float32(v))
	case Double:
		s.f64(float64(v))
	case ByteArray:
		s.i32(int32(len(v)))
		s.raw(v)
	case String:
		s.u16(uint16(len(v)))
		s.raw([]byte(v))
	case IntArray:
		s.i32(int32(len(v)))
		for _, x := range v {
			s.i32(x)
		}
	case LongArray:
		s.i32(int32(len(v)))
		for _, x := range v {
			s.i64(x)
		}
	case *List:
		return writeList(s, v)
	case *Compound:
		return writeCompound(s, v)
	case End:
		// Bare End payloads only occur as the compound terminator,
		// which writeCompound emits itself.
	default:
		return InvalidTagError{Tag: byte(value.Tag())}
	}
	return nil
}

// writeList declares the element tag once; elements follow as bare
// payloads with neither name nor per-element tag byte.
func writeList(s *sink, l *List) error {
	if l.Elem == TagEnd && len(l.Items) > 0 {
		return ErrInvalidList
	}
	s.u8(byte(l.Elem))
	s.i32(int32(len(l.Items)))
	for _, it := range l.Items {
		if it.Tag() != l.Elem {
			return ErrInvalidList
		}
		if err := writePayload(s, it); err != nil {
			return err
		}
	}
	return nil
}

func writeCompound(s *sink, c *Compound) error {
	for i := range c.Fields {
		if err := writeNode(s, &c.Fields[i]); err != nil {
			return err
		}
	}
	s.u8(byte(TagEnd))
	return nil
}

// EncodedSize returns the exact number of bytes Write will produce for
// the node.
func EncodedSize(node *Node) int {
	if node.Value.Tag() == TagEnd {
		return 1
	}
	return 1 + 2 + len(node.Name) + payloadSize(node.Value)
}

func payloadSize(value Value) int {
	switch v := value.(type) {
	case Byte:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Long, Double:
		return 8
	case ByteArray:
		return 4 + len(v)
	case String:
		return 2 + len(v)
	case IntArray:
		return 4 + 4*len(v)
	case LongArray:
		return 4 + 8*len(v)
	case *List:
		size := 1 + 4
		for _, it := range v.Items {
			size += payloadSize(it)
		}
		return size
	case *Compound:
		size := 0
		for i := range v.Fields {
			size += EncodedSize(&v.Fields[i])
		}
		return size + 1
	}
	return 0
}
