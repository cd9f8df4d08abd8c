// Package header decodes the fixed binary prefix of engine asset files.
package header

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// Magic is the little-endian "!TCO" tag at offset 0.
	Magic uint32 = 0x4F435421

	// MinSize is the shortest buffer that can carry magic, version and type.
	MinSize = 12
	// FullSize covers the embedded flag and uuid written from UUIDVersion on.
	FullSize = 21
	// UUIDVersion is the first format version that stores a uuid.
	UUIDVersion = 12

	uuidOffset = 13
)

var (
	ErrShort    = errors.New("asset header too short")
	ErrBadMagic = errors.New("not an asset file")
)

// Header is the decoded asset prefix. Embedded and UUID are zero for
// versions older than UUIDVersion or when the buffer stops at MinSize.
type Header struct {
	Magic    uint32
	Version  uint32
	TypeID   uint32
	Embedded uint8
	UUID     uint64
}

// Parse decodes b. It never panics on short or foreign input.
func Parse(b []byte) (Header, error) {
	var h Header
	if len(b) < MinSize {
		return h, ErrShort
	}
	h.Magic = binary.LittleEndian.Uint32(b[0:4])
	h.Version = binary.LittleEndian.Uint32(b[4:8])
	h.TypeID = binary.LittleEndian.Uint32(b[8:12])
	if h.Magic != Magic {
		return Header{}, ErrBadMagic
	}
	if h.Version >= UUIDVersion && len(b) >= FullSize {
		h.Embedded = b[MinSize]
		h.UUID = binary.LittleEndian.Uint64(b[uuidOffset : uuidOffset+8])
	}
	return h, nil
}

// Read decodes the header from the first FullSize bytes of r.
func Read(r io.Reader) (Header, error) {
	buf := make([]byte, FullSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Header{}, err
	}
	return Parse(buf[:n])
}

// ReadFile opens path and decodes its header.
func ReadFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	h, err := Read(f)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Encode writes h in the on-disk layout. Versions below UUIDVersion get the
// short form.
func Encode(h Header) []byte {
	size := MinSize
	if h.Version >= UUIDVersion {
		size = FullSize
	}
	b := make([]byte, size)
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	binary.LittleEndian.PutUint32(b[4:8], h.Version)
	binary.LittleEndian.PutUint32(b[8:12], h.TypeID)
	if size == FullSize {
		b[MinSize] = h.Embedded
		binary.LittleEndian.PutUint64(b[uuidOffset:uuidOffset+8], h.UUID)
	}
	return b
}
