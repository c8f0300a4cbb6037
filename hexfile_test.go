package hexfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func assertChunks(t *testing.T, m *Image, want []Chunk) {
	t.Helper()
	got := m.Chunks()
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %+v, want %d chunks %+v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].Address != want[i].Address || !bytes.Equal(got[i].Data, want[i].Data) {
			t.Errorf("chunk %d: got %08X %X, want %08X %X",
				i, got[i].Address, got[i].Data, want[i].Address, want[i].Data)
		}
	}
}

func addBinary(t *testing.T, m *Image, adr uint32, data []byte) {
	t.Helper()
	if err := m.AddBinary(adr, data); err != nil {
		t.Fatalf("AddBinary(%08X): %v", adr, err)
	}
}

func TestConstructor(t *testing.T) {
	m := NewImage()
	if len(m.Chunks()) != 0 {
		t.Errorf("wrong initial chunks")
	}
}

func TestTailFusion(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x100, []byte{1, 2, 3, 4})
	addBinary(t, m, 0x104, []byte{5, 6})
	assertChunks(t, m, []Chunk{{0x100, []byte{1, 2, 3, 4, 5, 6}}})
}

func TestHeadFusion(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x100, []byte{3, 4, 5, 6})
	addBinary(t, m, 0xFE, []byte{1, 2})
	assertChunks(t, m, []Chunk{{0xFE, []byte{1, 2, 3, 4, 5, 6}}})
}

func TestDisjointInsert(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x200, []byte{2})
	addBinary(t, m, 0x100, []byte{1})
	addBinary(t, m, 0x300, []byte{3})
	assertChunks(t, m, []Chunk{
		{0x100, []byte{1}},
		{0x200, []byte{2}},
		{0x300, []byte{3}},
	})
}

func TestBridgingInsertFusesFirstChunkOnly(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x100, []byte{1, 1, 1, 1})
	addBinary(t, m, 0x108, []byte{3, 3, 3, 3})
	addBinary(t, m, 0x104, []byte{2, 2, 2, 2})
	assertChunks(t, m, []Chunk{
		{0x100, []byte{1, 1, 1, 1, 2, 2, 2, 2}},
		{0x108, []byte{3, 3, 3, 3}},
	})
}

func TestOverlap(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x100, []byte{1, 2, 3, 4})
	for _, adr := range []uint32{0x100, 0x102, 0xFE} {
		err := m.AddBinary(adr, []byte{0, 0, 0, 0})
		var oerr *OverlapError
		if !errors.As(err, &oerr) {
			t.Errorf("AddBinary(%08X): got %v, want overlap error", adr, err)
			continue
		}
		if oerr.Address != adr || oerr.Line != 0 {
			t.Errorf("got %+v", *oerr)
		}
	}
	assertChunks(t, m, []Chunk{{0x100, []byte{1, 2, 3, 4}}})
}

func TestAddBinaryCopiesInput(t *testing.T) {
	m := NewImage()
	data := []byte{1, 2}
	addBinary(t, m, 0, data)
	data[0] = 0xFF
	m.Chunks()[0].Data[1] = 0xFF
	assertChunks(t, m, []Chunk{{0, []byte{1, 2}}})
}

func TestAddBinaryEmpty(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x10, nil)
	assertChunks(t, m, []Chunk{})
}

func TestAddBinaryOverflow(t *testing.T) {
	m := NewImage()
	if err := m.AddBinary(0xFFFFFFFF, []byte{1, 2}); !errors.Is(err, ErrAddressOverflow) {
		t.Errorf("got %v, want %v", err, ErrAddressOverflow)
	}
	addBinary(t, m, 0xFFFFFFFE, []byte{1, 2})
}

func TestToBinary(t *testing.T) {
	m := NewImage()
	addBinary(t, m, 0x10, []byte{1, 2})
	addBinary(t, m, 0x14, []byte{3})
	got := m.ToBinary(0x0F, 7, 0xFF)
	want := []byte{0xFF, 1, 2, 0xFF, 0xFF, 3, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("got %X, want %X", got, want)
	}
	if got := m.ToBinary(0x11, 1, 0); !bytes.Equal(got, []byte{2}) {
		t.Errorf("got %X", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing.hex")
	_, err := Read(name)
	var ferr *FileOpeningError
	if !errors.As(err, &ferr) {
		t.Fatalf("got %v, want file opening error", err)
	}
	if ferr.FileName != name || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %+v", *ferr)
	}
}

func TestReadDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(dir)
	var ferr *FileOpeningError
	if !errors.As(err, &ferr) {
		t.Fatalf("got %v, want file opening error", err)
	}
}

func TestWriteBadPath(t *testing.T) {
	name := filepath.Join(t.TempDir(), "no", "such", "dir.hex")
	err := Write(name, NewImage())
	var ferr *FileOpeningError
	if !errors.As(err, &ferr) || ferr.FileName != name {
		t.Fatalf("got %v, want file opening error", err)
	}
}

func TestReadFormatError(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.hex")
	if err := os.WriteFile(name, []byte(":020000021200EA\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(name)
	var eerr *EarlyEOFError
	if !errors.As(err, &eerr) || eerr.Lines != 1 {
		t.Fatalf("got %v, want early EOF after 1 line", err)
	}
}

func TestRoundTrip(t *testing.T) {
	pattern := func(n int, seed byte) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = seed + byte(i*7)
		}
		return b
	}
	want := []Chunk{
		{0x00000000, pattern(100, 0)},
		{0x00001000, pattern(1, 0x55)},
		{0x0001FFF0, pattern(64, 3)},
		{0x08000000, pattern(1000, 9)},
		{0x80000000, pattern(5, 0xA0)},
		{0xFFFFFF00, pattern(256, 0x11)},
	}
	m := NewImage()
	for _, c := range want {
		addBinary(t, m, c.Address, c.Data)
	}

	name := filepath.Join(t.TempDir(), "image.hex")
	if err := Write(name, m); err != nil {
		t.Fatal(err)
	}
	r, err := Read(name)
	if err != nil {
		t.Fatal(err)
	}
	assertChunks(t, r, want)
}

func TestErrorMessages(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{&FileOpeningError{FileName: "a.hex", Err: os.ErrNotExist}, "can't open file a.hex: file does not exist"},
		{&EarlyEOFError{Lines: 3}, "early end of file after 3 lines"},
		{&InvalidRecordError{Line: 7}, "invalid record at line 7"},
		{&WrongCheckSumError{Line: 2, Computed: 0xF7, Stored: 0xF8}, "wrong checksum (F8 instead of F7) at line 2"},
		{&UnknownRecordTypeError{Line: 4, RecordType: 3}, "unknown record type (03) at line 4"},
		{&OverlapError{Line: 1, Address: 0x100}, "data overlaps existing chunk at address 00000100 (line 1)"},
	} {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}
