// Package hexfile reads and writes firmware images in the Intel HEX format.
//
// An Image holds a sparse memory image as a set of chunks, each one a
// contiguous run of bytes at a 32-bit start address. Decoding merges every
// data record into the chunk it extends, so memory stays proportional to
// the number of distinct regions rather than to the address space.
//
// An Image is not safe for concurrent use.
package hexfile

import (
	"errors"
	"os"
	"sort"

	"github.com/golang/glog"
)

// Constants definitions of IntelHex record types
const (
	_DATA_RECORD             byte = 0 // Record with data bytes
	_EOF_RECORD              byte = 1 // Record with end of file indicator
	_SEGMENT_ADDRESS_RECORD  byte = 2 // Record with extended segment address
	_EXTENDED_ADDRESS_RECORD byte = 4 // Record with extended linear address
)

// MaxRowLength is the largest number of data bytes written in one record.
const MaxRowLength = 32

// ErrAddressOverflow is returned when data would extend past the 32-bit
// address space.
var ErrAddressOverflow = errors.New("hexfile: data exceeds 32-bit address space")

// Chunk is a contiguous run of bytes starting at Address.
type Chunk struct {
	Address uint32 // Starting address of the chunk
	Data    []byte // Chunk bytes, never empty
}

func (c *Chunk) end() uint64 {
	return uint64(c.Address) + uint64(len(c.Data))
}

// Helper type for chunks sorting operations
type sortByAddress []*Chunk

func (cs sortByAddress) Len() int           { return len(cs) }
func (cs sortByAddress) Swap(i, j int)      { cs[i], cs[j] = cs[j], cs[i] }
func (cs sortByAddress) Less(i, j int) bool { return cs[i].Address < cs[j].Address }

// Image is an in-memory binary image made of non-overlapping chunks kept in
// ascending address order.
type Image struct {
	chunks []*Chunk
}

// NewImage returns an empty image.
func NewImage() *Image {
	m := new(Image)
	m.Clear()
	return m
}

// Clear removes every chunk.
func (m *Image) Clear() {
	m.chunks = []*Chunk{}
}

// Chunks returns copies of the image chunks in ascending address order.
func (m *Image) Chunks() []Chunk {
	cs := make([]Chunk, 0, len(m.chunks))
	for _, c := range m.chunks {
		cs = append(cs, Chunk{Address: c.Address, Data: append([]byte(nil), c.Data...)})
	}
	return cs
}

// AddBinary inserts a copy of bytes at adr, fusing it with an adjacent chunk
// when there is one. Empty input is ignored.
func (m *Image) AddBinary(adr uint32, bytes []byte) error {
	return m.insert(adr, append([]byte(nil), bytes...), 0)
}

// insert takes ownership of data. Only the first fusable chunk in address
// order is extended: a payload bridging two chunks is fused with the lower
// one and the upper one is left as is.
func (m *Image) insert(adr uint32, data []byte, line uint) error {
	if len(data) == 0 {
		return nil
	}
	start := uint64(adr)
	end := start + uint64(len(data))
	if end > 1<<32 {
		return ErrAddressOverflow
	}
	for _, c := range m.chunks {
		if start < c.end() && end > uint64(c.Address) {
			return &OverlapError{Line: line, Address: adr}
		}
	}

	for _, c := range m.chunks {
		if start == c.end() {
			c.Data = append(c.Data, data...)
			glog.V(2).Infof("hexfile: tail fusion of %d bytes into chunk %08X", len(data), c.Address)
			return nil
		}
		if end == uint64(c.Address) {
			c.Data = append(data, c.Data...)
			c.Address = adr
			glog.V(2).Infof("hexfile: head fusion of %d bytes, chunk now at %08X", len(data), c.Address)
			return nil
		}
	}

	m.chunks = append(m.chunks, &Chunk{Address: adr, Data: data})
	sort.Sort(sortByAddress(m.chunks))
	return nil
}

// ToBinary returns size bytes of the image starting at address. Bytes not
// covered by any chunk are set to padding.
func (m *Image) ToBinary(address uint32, size uint32, padding byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = padding
	}

	lo := uint64(address)
	hi := lo + uint64(size)
	for _, c := range m.chunks {
		if c.end() <= lo || uint64(c.Address) >= hi {
			continue
		}
		from := max(lo, uint64(c.Address))
		to := min(hi, c.end())
		copy(data[from-lo:to-lo], c.Data[from-uint64(c.Address):to-uint64(c.Address)])
	}
	return data
}

// Read decodes the Intel HEX file name into a new image.
func Read(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &FileOpeningError{FileName: name, Err: err}
	}
	defer f.Close()

	m := NewImage()
	if err := m.ParseIntelHex(f); err != nil {
		var rerr *readError
		if errors.As(err, &rerr) {
			return nil, &FileOpeningError{FileName: name, Err: rerr.err}
		}
		return nil, err
	}
	return m, nil
}

// Write encodes m into the file name, replacing its contents.
func Write(name string, m *Image) error {
	f, err := os.Create(name)
	if err != nil {
		return &FileOpeningError{FileName: name, Err: err}
	}
	err = m.DumpIntelHex(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
