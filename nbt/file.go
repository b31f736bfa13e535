package nbt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// File envelopes for a single root node. Raw is the node bytes
// verbatim, gzip is the level.dat convention, zlib the chunk payload
// convention. The caller picks the envelope; nothing is sniffed.

func ReadRawFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

func WriteRawFile(path string, node *Node) error {
	data, err := Write(node)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadGzipFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("nbt: open gzip stream: %w", err)
	}
	defer zr.Close()
	return readFrom(zr)
}

func WriteGzipFile(path string, node *Node) error {
	data, err := Write(node)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err = zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func ReadZlibFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("nbt: open zlib stream: %w", err)
	}
	defer zr.Close()
	return readFrom(zr)
}

func WriteZlibFile(path string, node *Node) error {
	data, err := Write(node)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zlib.NewWriter(f)
	if _, err = zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func readFrom(r io.Reader) (*Node, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Read(buf.Bytes())
}
