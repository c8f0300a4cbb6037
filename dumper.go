package hexfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golang/glog"
)

// dumpChunk writes c as rows of at most MaxRowLength bytes. A row never
// crosses a 64 KiB boundary, and an extended linear address record is
// written first and again whenever the upper 16 address bits change.
func dumpChunk(writer io.Writer, c *Chunk) int {
	records := 1
	high := c.Address >> 16
	writeExtendedAddressLine(writer, uint16(high))
	for off := 0; off < len(c.Data); {
		adr := c.Address + uint32(off)
		if adr>>16 != high {
			high = adr >> 16
			writeExtendedAddressLine(writer, uint16(high))
			records++
		}
		n := min(len(c.Data)-off, MaxRowLength, 0x10000-int(adr&0xFFFF))
		writeDataLine(writer, uint16(adr), c.Data[off:off+n])
		records++
		off += n
	}
	return records
}

// DumpIntelHex writes m to writer in ascending address order, followed by
// the end of file record. Hex digits are upper case and every record ends
// with a newline.
func (m *Image) DumpIntelHex(writer io.Writer) error {
	w := bufio.NewWriter(writer)
	records := 1
	for _, c := range m.chunks {
		records += dumpChunk(w, c)
	}
	writeEofLine(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("hexfile: write: %w", err)
	}
	glog.V(1).Infof("hexfile: wrote %d chunks in %d records", len(m.chunks), records)
	return nil
}
