package memory

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
)

// LoadImage reads a big endian program image from r into memory.
//
// The first word of the image is the origin address; every remaining word
// is stored sequentially from there. Loading stops quietly at the end of
// the stream, at a trailing odd byte (which is not a whole word), or once
// the top of memory has been written. Images may be loaded back to back;
// a later image overwrites any overlapping words of an earlier one.
func (m *Memory) LoadImage(r io.Reader) (origin uint16, count int, err error) {
	var scratch [2]byte

	_, err = io.ReadFull(r, scratch[:])
	if err != nil {
		err = errors.Join(ErrImageOrigin, err)
		return
	}
	origin = binary.BigEndian.Uint16(scratch[:])

	addr := origin
	for {
		_, err = io.ReadFull(r, scratch[:])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = nil
			break
		}
		if err != nil {
			err = errors.Join(ErrImageRead, err)
			return
		}

		m.Data[addr] = binary.BigEndian.Uint16(scratch[:])
		count++
		if addr == SIZE-1 {
			break
		}
		addr++
	}

	if m.Verbose {
		log.Printf("memory: image: %d words at 0x%04x", count, origin)
	}

	return
}
