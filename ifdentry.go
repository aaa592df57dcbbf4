// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"fmt"
)

// Format is the TIFF field type code of an entry.
// Codes outside 1-12 are kept as read so they survive a round trip;
// Known reports whether the code is one of the standard types.
//
//go:generate stringer -type=Format -trimprefix=Format
type Format uint16

const (
	FormatUnknown   Format = 0
	FormatU8        Format = 1
	FormatASCII     Format = 2
	FormatU16       Format = 3
	FormatU32       Format = 4
	FormatURational Format = 5
	FormatI8        Format = 6
	FormatUndefined Format = 7
	FormatI16       Format = 8
	FormatI32       Format = 9
	FormatIRational Format = 10
	FormatF32       Format = 11
	FormatF64       Format = 12
)

// Known reports whether f is one of the 12 standard TIFF types.
func (f Format) Known() bool {
	return f >= FormatU8 && f <= FormatF64
}

// Size returns the size in bytes of one element of f.
// Unknown formats are treated as byte arrays.
func (f Format) Size() int {
	switch f {
	case FormatU16, FormatI16:
		return 2
	case FormatU32, FormatI32, FormatF32:
		return 4
	case FormatURational, FormatIRational, FormatF64:
		return 8
	default:
		return 1
	}
}

// ifdEntrySize is the size of one directory record: tag, format, count and data/offset.
const ifdEntrySize = 12

// IFDEntry is one raw 12 byte directory record and its payload.
type IFDEntry struct {
	Namespace Namespace
	Tag       uint16
	Format    Format
	Count     uint32

	// IFDData is the 4 byte data/offset field as read from the record.
	IFDData [4]byte

	// Data is the resolved payload, exactly Length bytes. For inline payloads
	// this is the head of IFDData, otherwise a copy of the range IFDData points to.
	Data []byte

	// LittleEndian is the byte order used for the record and its payload.
	LittleEndian bool
}

// Length returns the payload size in bytes.
func (e *IFDEntry) Length() uint64 {
	return uint64(e.Format.Size()) * uint64(e.Count)
}

// InIFD reports whether the payload fits in the record itself.
func (e *IFDEntry) InIFD() bool {
	return e.Length() <= 4
}

// Offset returns the data/offset field interpreted as an offset.
func (e *IFDEntry) Offset() uint32 {
	v, _ := read4(e.LittleEndian, e.IFDData[:])
	return v
}

// resolve fills in Data from the record or from contents, the whole TIFF
// structure that offsets are relative to. It returns false if the external
// payload lies outside of contents.
func (e *IFDEntry) resolve(contents []byte) bool {
	length := e.Length()
	if e.InIFD() {
		e.Data = bytes.Clone(e.IFDData[:length])
		return true
	}
	start := uint64(e.Offset())
	end := start + length
	if end > uint64(len(contents)) {
		return false
	}
	e.Data = bytes.Clone(contents[start:end])
	return true
}

// pointer returns the payload as a 32 bit offset, used for the sub-IFD pointer tags.
func (e *IFDEntry) pointer() (uint32, bool) {
	return read4(e.LittleEndian, e.Data)
}

// patch is a 4 byte offset field to be filled in once the payload it
// points to has been appended.
type patch struct {
	pos  int
	data []byte
}

// appendTo appends the 12 byte record to b. External payloads are queued
// in patches with a zero placeholder in the offset field.
func (e *IFDEntry) appendTo(b []byte, patches []patch) ([]byte, []patch, error) {
	if e.Namespace != NamespaceStandard {
		return nil, nil, fmt.Errorf("tag 0x%04x in namespace %s: %w", e.Tag, e.Namespace, ErrUnsupportedNamespace)
	}
	if uint64(len(e.Data)) != e.Length() {
		return nil, nil, fmt.Errorf("tag 0x%04x has %d bytes, expected %d: %w", e.Tag, len(e.Data), e.Length(), ErrPayloadSize)
	}

	b = appendUint16(b, e.LittleEndian, e.Tag)
	b = appendUint16(b, e.LittleEndian, uint16(e.Format))
	b = appendUint32(b, e.LittleEndian, e.Count)

	if e.InIFD() {
		var field [4]byte
		copy(field[:], e.Data)
		return append(b, field[:]...), patches, nil
	}

	patches = append(patches, patch{pos: len(b), data: e.Data})
	return append(b, 0, 0, 0, 0), patches, nil
}
