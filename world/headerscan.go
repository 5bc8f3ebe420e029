/*
	cartograph, voxel-world map renderer
	Copyright (C) 2026 cartograph contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package world

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// NBT tag IDs, per the format's fixed wire encoding.
const (
	tagEnd       = 0
	tagByte      = 1
	tagShort     = 2
	tagInt       = 3
	tagLong      = 4
	tagFloat     = 5
	tagDouble    = 6
	tagByteArray = 7
	tagString    = 8
	tagList      = 9
	tagCompound  = 10
	tagIntArray  = 11
	tagLongArray = 12
)

// ParseOffsetError names the byte offset a header scan or full parse
// failed at, so a require-all abort can point at the exact file and
// position (§4.6, §7).
type ParseOffsetError struct {
	Offset int
	Err    error
}

func (e *ParseOffsetError) Error() string {
	return fmt.Sprintf("nbt parse error at byte %d: %s", e.Offset, e.Err)
}

func (e *ParseOffsetError) Unwrap() error { return e.Err }

// headerScanner walks just the root compound's direct children,
// recognizing the two plain Int fields (xPos, zPos) a chunk file
// carries and skipping everything else — including the Sections list
// that holds the actual block data — without interpreting it.
//
// Adapted from lib/nbtwalk's reflection-free, callback-driven
// approach (no interface{}, no reflect, a plain tag switch), but
// restructured as a recursive skipper rather than a flattened
// tag-stack: a flattened stack cannot tell a list-of-compound's
// per-element TagEnd from the list's own terminator without a frame
// per open element, so skipping recursively here is both simpler and
// correct for the bare compound-without-a-leading-tag case that
// Sections (a List of Compound) is.
type headerScanner struct {
	data  []byte
	pos   int
	xPos  int32
	zPos  int32
	haveX bool
	haveZ bool
}

// ScanHeader extracts (xPos, zPos) from an uncompressed NBT chunk
// payload without decoding the rest of the structure.
func ScanHeader(data []byte) (xPos, zPos int32, err error) {
	s := &headerScanner{data: data}
	if len(data) < 1 {
		return 0, 0, &ParseOffsetError{Offset: 0, Err: errors.New("empty chunk payload")}
	}
	// A serialized NBT document opens with one named TagCompound: the
	// root. Consume its tag+name, then walk its direct children.
	t, err2 := s.readByte()
	if err2 != nil {
		return 0, 0, &ParseOffsetError{Offset: s.pos, Err: err2}
	}
	if t != tagCompound {
		return 0, 0, &ParseOffsetError{Offset: s.pos, Err: fmt.Errorf("root tag is 0x%02x, not TagCompound", t)}
	}
	if _, err2 := s.readName(); err2 != nil {
		return 0, 0, &ParseOffsetError{Offset: s.pos, Err: err2}
	}
	if err2 := s.walkCompoundBody(); err2 != nil {
		return 0, 0, &ParseOffsetError{Offset: s.pos, Err: err2}
	}
	if !s.haveX || !s.haveZ {
		return 0, 0, &ParseOffsetError{Offset: s.pos, Err: errors.New("xPos/zPos not found in header")}
	}
	return s.xPos, s.zPos, nil
}

func (s *headerScanner) readByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, errors.New("unexpected end of buffer")
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *headerScanner) readName() (string, error) {
	if s.pos+2 > len(s.data) {
		return "", errors.New("truncated name length")
	}
	n := int(binary.BigEndian.Uint16(s.data[s.pos:]))
	s.pos += 2
	if s.pos+n > len(s.data) {
		return "", errors.New("truncated name")
	}
	name := string(s.data[s.pos : s.pos+n])
	s.pos += n
	return name, nil
}

// walkCompoundBody consumes tag+name+value triples until TagEnd,
// intercepting root-level Int fields named xPos/zPos.
func (s *headerScanner) walkCompoundBody() error {
	for {
		t, err := s.readByte()
		if err != nil {
			return err
		}
		if t == tagEnd {
			return nil
		}
		name, err := s.readName()
		if err != nil {
			return err
		}
		if t == tagInt {
			if s.pos+4 > len(s.data) {
				return errors.New("truncated int payload")
			}
			v := int32(binary.BigEndian.Uint32(s.data[s.pos:]))
			s.pos += 4
			switch name {
			case "xPos":
				s.xPos, s.haveX = v, true
			case "zPos":
				s.zPos, s.haveZ = v, true
			}
			continue
		}
		if err := s.skipValue(t); err != nil {
			return err
		}
	}
}

// skipValue advances past one unnamed value of tag t without
// interpreting it, recursing into compounds and lists.
func (s *headerScanner) skipValue(t byte) error {
	switch t {
	case tagByte:
		s.pos++
	case tagShort:
		s.pos += 2
	case tagInt, tagFloat:
		s.pos += 4
	case tagLong, tagDouble:
		s.pos += 8
	case tagByteArray:
		n, err := s.readInt32Len()
		if err != nil {
			return err
		}
		s.pos += n
	case tagIntArray:
		n, err := s.readInt32Len()
		if err != nil {
			return err
		}
		s.pos += n * 4
	case tagLongArray:
		n, err := s.readInt32Len()
		if err != nil {
			return err
		}
		s.pos += n * 8
	case tagString:
		if s.pos+2 > len(s.data) {
			return errors.New("truncated string length")
		}
		n := int(binary.BigEndian.Uint16(s.data[s.pos:]))
		s.pos += 2 + n
	case tagCompound:
		return s.walkCompoundBodySkipAll()
	case tagList:
		elemType, err := s.readByte()
		if err != nil {
			return err
		}
		n, err := s.readInt32Len()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if elemType == tagEnd {
				continue
			}
			if err := s.skipValue(elemType); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown tag 0x%02x", t)
	}
	if s.pos > len(s.data) {
		return errors.New("read past end of buffer")
	}
	return nil
}

// walkCompoundBodySkipAll is walkCompoundBody without the xPos/zPos
// interception, for nested compounds that aren't the root.
func (s *headerScanner) walkCompoundBodySkipAll() error {
	for {
		t, err := s.readByte()
		if err != nil {
			return err
		}
		if t == tagEnd {
			return nil
		}
		if _, err := s.readName(); err != nil {
			return err
		}
		if err := s.skipValue(t); err != nil {
			return err
		}
	}
}

func (s *headerScanner) readInt32Len() (int, error) {
	if s.pos+4 > len(s.data) {
		return 0, errors.New("truncated length")
	}
	n := int32(binary.BigEndian.Uint32(s.data[s.pos:]))
	s.pos += 4
	if n < 0 {
		return 0, errors.New("negative length")
	}
	return int(n), nil
}
