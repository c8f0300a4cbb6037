package hexfile

import (
	"fmt"
	"io"
)

// checksum returns the two's complement of sum, the value that makes the
// bytes of a valid record add up to zero.
func checksum(sum byte) byte {
	return ^sum + 1
}

func calcSum(bytes []byte) byte {
	var sum byte
	for _, b := range bytes {
		sum += b
	}
	return checksum(sum)
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func writeRecord(writer io.Writer, recordType byte, adr uint16, data []byte) {
	bytes := make([]byte, 0, len(data)+5)
	bytes = append(bytes, byte(len(data)), byte(adr>>8), byte(adr), recordType)
	bytes = append(bytes, data...)
	bytes = append(bytes, calcSum(bytes))
	fmt.Fprintf(writer, ":%X\n", bytes)
}

func writeDataLine(writer io.Writer, adr uint16, data []byte) {
	writeRecord(writer, _DATA_RECORD, adr, data)
}

func writeExtendedAddressLine(writer io.Writer, adr uint16) {
	writeRecord(writer, _EXTENDED_ADDRESS_RECORD, 0, []byte{byte(adr >> 8), byte(adr)})
}

func writeEofLine(writer io.Writer) {
	writeRecord(writer, _EOF_RECORD, 0, nil)
}
