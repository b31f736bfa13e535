package nbt

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustWrite(t *testing.T, node *Node) []byte {
	t.Helper()
	data, err := Write(node)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return data
}

func roundtrip(t *testing.T, node *Node) *Node {
	t.Helper()
	data := mustWrite(t, node)
	if got := EncodedSize(node); got != len(data) {
		t.Fatalf("EncodedSize() = %d, want %d", got, len(data))
	}
	back, err := Read(data)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return back
}

func TestIntRoundtrip(t *testing.T) {
	node := &Node{Name: "myInt", Value: Int(12345)}
	back := roundtrip(t, node)

	if back.Value.Tag() != TagInt {
		t.Fatalf("tag = %v, want %v", back.Value.Tag(), TagInt)
	}
	if back.Name != "myInt" {
		t.Fatalf("name = %q, want %q", back.Name, "myInt")
	}
	if v, err := back.Int(); err != nil || v != 12345 {
		t.Fatalf("Int() = %d, %v", v, err)
	}
}

func TestPrimitiveRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{name: "byte", node: &Node{Name: "b", Value: Byte(-7)}},
		{name: "short", node: &Node{Name: "s", Value: Short(-30000)}},
		{name: "long", node: &Node{Name: "l", Value: Long(1 << 62)}},
		{name: "float", node: &Node{Name: "f", Value: Float(1.5)}},
		{name: "double", node: &Node{Name: "d", Value: Double(-2.25)}},
		{name: "string", node: &Node{Name: "str", Value: String("hello")}},
		{name: "byte array", node: &Node{Name: "ba", Value: ByteArray{1, 2, 3}}},
		{name: "int array", node: &Node{Name: "ia", Value: IntArray{-1, 0, 1}}},
		{name: "long array", node: &Node{Name: "la", Value: LongArray{1 << 40}}},
		{name: "unnamed root", node: &Node{Value: Int(9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := roundtrip(t, tt.node)
			if !reflect.DeepEqual(back, tt.node) {
				t.Errorf("roundtrip = %#v, want %#v", back, tt.node)
			}
		})
	}
}

func TestZeroLengthPayloads(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{name: "empty string", node: &Node{Name: "s", Value: String("")}},
		{name: "empty byte array", node: &Node{Name: "ba", Value: ByteArray{}}},
		{name: "empty int array", node: &Node{Name: "ia", Value: IntArray{}}},
		{name: "empty long array", node: &Node{Name: "la", Value: LongArray{}}},
		{name: "empty compound", node: &Node{Name: "c", Value: &Compound{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := roundtrip(t, tt.node)
			if back.Value.Tag() != tt.node.Value.Tag() {
				t.Errorf("tag = %v, want %v", back.Value.Tag(), tt.node.Value.Tag())
			}
			if EncodedSize(back) != EncodedSize(tt.node) {
				t.Errorf("size changed across roundtrip")
			}
		})
	}
}

func TestEmptyCompoundEncoding(t *testing.T) {
	node := &Node{Name: "c", Value: &Compound{}}
	data := mustWrite(t, node)
	want := []byte{byte(TagCompound), 0, 1, 'c', byte(TagEnd)}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("Write() = %v, want %v", data, want)
	}
}

func TestEmptyList(t *testing.T) {
	comp := &Compound{}
	comp.Put("empty", &List{Elem: TagEnd})
	back := roundtrip(t, &Node{Name: "root", Value: comp})

	child, err := back.Find("empty")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	list, err := child.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Elem != TagEnd || list.Len() != 0 {
		t.Fatalf("list = {%v, %d}, want {TagEnd, 0}", list.Elem, list.Len())
	}
}

func TestLargeList(t *testing.T) {
	list := &List{Elem: TagInt}
	for i := 0; i < 10000; i++ {
		if err := list.Append(Int(i)); err != nil {
			t.Fatal(err)
		}
	}
	back := roundtrip(t, &Node{Name: "big", Value: list})

	got, err := back.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got.Len() != 10000 {
		t.Fatalf("Len() = %d, want 10000", got.Len())
	}
	if got.Items[0] != Int(0) || got.Items[9999] != Int(9999) {
		t.Fatalf("first = %v, last = %v", got.Items[0], got.Items[9999])
	}
}

func TestListOfLists(t *testing.T) {
	outer := &List{Elem: TagList}
	for i := 0; i < 3; i++ {
		inner, err := NewList(TagInt, Int(i*10), Int(i*10+1), Int(i*10+2), Int(i*10+3))
		if err != nil {
			t.Fatal(err)
		}
		if err := outer.Append(inner); err != nil {
			t.Fatal(err)
		}
	}
	back := roundtrip(t, &Node{Name: "nested", Value: outer})

	got, err := back.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	inner := got.Items[1].(*List)
	if inner.Items[2] != Int(12) {
		t.Fatalf("inner[1][2] = %v, want 12", inner.Items[2])
	}
}

func TestCompoundOrderAndDuplicates(t *testing.T) {
	comp := &Compound{}
	comp.Put("a", Int(1))
	comp.Put("b", Int(2))
	comp.Put("a", Int(3))
	back := roundtrip(t, &Node{Name: "", Value: comp})

	c, err := back.Compound()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, c.Len())
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "a"}) {
		t.Fatalf("field order = %v", names)
	}
	// Lookup prefers the first duplicate.
	first, _ := c.Get("a")
	if first.Value != Int(1) {
		t.Fatalf("Get(a) = %v, want 1", first.Value)
	}
}

func TestFloatBitPatterns(t *testing.T) {
	// A quiet NaN with payload bits must survive the trip untouched.
	bits := uint32(0x7FC00123)
	node := &Node{Name: "nan", Value: Float(math.Float32frombits(bits))}
	back := roundtrip(t, node)
	v, err := back.Float()
	if err != nil {
		t.Fatal(err)
	}
	if got := math.Float32bits(v); got != bits {
		t.Fatalf("bits = %08x, want %08x", got, bits)
	}

	bits64 := uint64(0xFFF8000000000042)
	node = &Node{Name: "nan64", Value: Double(math.Float64frombits(bits64))}
	back = roundtrip(t, node)
	d, err := back.Double()
	if err != nil {
		t.Fatal(err)
	}
	if got := math.Float64bits(d); got != bits64 {
		t.Fatalf("bits = %016x, want %016x", got, bits64)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "unknown tag", data: []byte{0xFF, 0x00}, want: InvalidTagError{Tag: 0xFF}},
		{name: "truncated name", data: []byte{byte(TagInt), 0x00}, want: ErrTruncated},
		{name: "truncated payload", data: []byte{byte(TagInt), 0x00, 0x00, 0x00, 0x01}, want: ErrTruncated},
		{
			name: "negative byte array length",
			data: []byte{byte(TagByteArray), 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF},
			want: ErrNegativeLength,
		},
		{
			name: "list of End with nonzero length",
			data: []byte{byte(TagList), 0x00, 0x00, byte(TagEnd), 0x00, 0x00, 0x00, 0x01},
			want: ErrInvalidList,
		},
		{
			name: "negative list length",
			data: []byte{byte(TagList), 0x00, 0x00, byte(TagInt), 0xFF, 0xFF, 0xFF, 0xFF},
			want: ErrInvalidList,
		},
		{
			name: "invalid list element tag",
			data: []byte{byte(TagList), 0x00, 0x00, 0x63, 0x00, 0x00, 0x00, 0x00},
			want: InvalidTagError{Tag: 0x63},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.data)
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			var tagErr InvalidTagError
			if errors.As(tt.want, &tagErr) {
				var got InvalidTagError
				if !errors.As(err, &got) || got != tagErr {
					t.Fatalf("Read() error = %v, want %v", err, tt.want)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Read() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEndOnlyInput(t *testing.T) {
	back, err := Read([]byte{byte(TagEnd)})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if back.Value.Tag() != TagEnd || back.Name != "" {
		t.Fatalf("node = %#v, want unnamed End", back)
	}
	if data := mustWrite(t, back); !reflect.DeepEqual(data, []byte{0}) {
		t.Fatalf("Write(End) = %v, want [0]", data)
	}
}

func TestSizePrecomputation(t *testing.T) {
	comp := &Compound{}
	comp.Put("int", Int(42))
	comp.Put("str", String("sized"))
	comp.Put("arr", LongArray{1, 2, 3})
	inner := &Compound{}
	inner.Put("deep", Byte(1))
	comp.Put("nested", inner)
	list, _ := NewList(TagShort, Short(1), Short(2))
	comp.Put("list", list)

	node := &Node{Name: "root", Value: comp}
	data := mustWrite(t, node)
	if got := EncodedSize(node); got != len(data) {
		t.Fatalf("EncodedSize() = %d, len(Write()) = %d", got, len(data))
	}
}
