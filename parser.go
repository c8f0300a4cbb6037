package hexfile

import (
	"bufio"
	"io"

	"github.com/golang/glog"
)

// parser holds the state of one decoding pass.
type parser struct {
	r       *bufio.Reader
	m       *Image
	base    uint32 // Address set by the last segment or linear address record
	sum     byte   // Running sum of the current record bytes
	lineNum uint   // Number of records parsed so far
}

func (p *parser) getUint4() (byte, error) {
	c, err := p.r.ReadByte()
	if err != nil {
		return 0, p.inputError(err)
	}
	v, ok := hexDigit(c)
	if !ok {
		return 0, &InvalidRecordError{Line: p.lineNum}
	}
	return v, nil
}

// getUint8 reads two hex digits and adds the byte to the running sum.
func (p *parser) getUint8() (byte, error) {
	hi, err := p.getUint4()
	if err != nil {
		return 0, err
	}
	lo, err := p.getUint4()
	if err != nil {
		return 0, err
	}
	b := hi<<4 | lo
	p.sum += b
	return b, nil
}

func (p *parser) getUint16() (uint16, error) {
	hi, err := p.getUint8()
	if err != nil {
		return 0, err
	}
	lo, err := p.getUint8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (p *parser) inputError(err error) error {
	if err == io.EOF {
		return &EarlyEOFError{Lines: p.lineNum}
	}
	return &readError{err: err}
}

// verifyChecksum reads the checksum field and compares it with the negated
// sum of the bytes read so far.
func (p *parser) verifyChecksum() error {
	computed := checksum(p.sum)
	stored, err := p.getUint8()
	if err != nil {
		return err
	}
	if stored != computed {
		return &WrongCheckSumError{Line: p.lineNum, Computed: computed, Stored: stored}
	}
	return nil
}

// skipToRecord consumes the whitespace between records and the record
// marker.
func (p *parser) skipToRecord() error {
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			return p.inputError(err)
		}
		switch c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			continue
		case ':':
			return nil
		default:
			return &InvalidRecordError{Line: p.lineNum}
		}
	}
}

// parseRecord decodes one record. It reports done once the end of file
// record has been read.
func (p *parser) parseRecord() (done bool, err error) {
	if err := p.skipToRecord(); err != nil {
		return false, err
	}
	p.sum = 0
	size, err := p.getUint8()
	if err != nil {
		return false, err
	}
	offset, err := p.getUint16()
	if err != nil {
		return false, err
	}
	recordType, err := p.getUint8()
	if err != nil {
		return false, err
	}

	switch recordType {
	case _DATA_RECORD:
		data := make([]byte, size)
		for i := range data {
			if data[i], err = p.getUint8(); err != nil {
				return false, err
			}
		}
		if err := p.verifyChecksum(); err != nil {
			return false, err
		}
		if err := p.m.insert(p.base+uint32(offset), data, p.lineNum); err != nil {
			if err == ErrAddressOverflow {
				return false, &InvalidRecordError{Line: p.lineNum}
			}
			return false, err
		}
	case _EOF_RECORD:
		return true, nil
	case _SEGMENT_ADDRESS_RECORD, _EXTENDED_ADDRESS_RECORD:
		if size != 2 {
			return false, &InvalidRecordError{Line: p.lineNum}
		}
		adr, err := p.getUint16()
		if err != nil {
			return false, err
		}
		if err := p.verifyChecksum(); err != nil {
			return false, err
		}
		if recordType == _SEGMENT_ADDRESS_RECORD {
			p.base = uint32(adr) << 4
		} else {
			p.base = uint32(adr) << 16
		}
	default:
		return false, &UnknownRecordTypeError{Line: p.lineNum, RecordType: recordType}
	}
	p.lineNum++
	return false, nil
}

// ParseIntelHex replaces the content of m with the image decoded from
// reader. Decoding stops at the end of file record; anything after it is
// ignored.
func (m *Image) ParseIntelHex(reader io.Reader) error {
	m.Clear()
	p := &parser{r: bufio.NewReader(reader), m: m}
	for {
		done, err := p.parseRecord()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	glog.V(1).Infof("hexfile: parsed %d records into %d chunks", p.lineNum, len(m.chunks))
	return nil
}
