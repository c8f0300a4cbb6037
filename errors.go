package hexfile

import (
	"fmt"
)

// FileOpeningError is returned when a file cannot be opened or read.
type FileOpeningError struct {
	FileName string
	Err      error
}

func (e *FileOpeningError) Error() string {
	return fmt.Sprintf("can't open file %s: %v", e.FileName, e.Err)
}

func (e *FileOpeningError) Unwrap() error { return e.Err }

// EarlyEOFError is returned when the input ends before the end of file
// record.
type EarlyEOFError struct {
	Lines uint // Records parsed before the input ended
}

func (e *EarlyEOFError) Error() string {
	return fmt.Sprintf("early end of file after %d lines", e.Lines)
}

// InvalidRecordError is returned for a record with a missing marker, a non
// hex digit or a malformed address record.
type InvalidRecordError struct {
	Line uint
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record at line %d", e.Line)
}

type WrongCheckSumError struct {
	Line     uint
	Computed byte
	Stored   byte
}

func (e *WrongCheckSumError) Error() string {
	return fmt.Sprintf("wrong checksum (%02X instead of %02X) at line %d", e.Stored, e.Computed, e.Line)
}

type UnknownRecordTypeError struct {
	Line       uint
	RecordType byte
}

func (e *UnknownRecordTypeError) Error() string {
	return fmt.Sprintf("unknown record type (%02X) at line %d", e.RecordType, e.Line)
}

// OverlapError is returned when new data overlaps an existing chunk. Line
// is zero for data added with AddBinary.
type OverlapError struct {
	Line    uint
	Address uint32
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("data overlaps existing chunk at address %08X (line %d)", e.Address, e.Line)
}

// readError wraps an I/O failure of the underlying reader.
type readError struct {
	err error
}

func (e *readError) Error() string { return "read error: " + e.err.Error() }

func (e *readError) Unwrap() error { return e.err }
