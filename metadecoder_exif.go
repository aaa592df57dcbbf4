// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
	tiffMagic             = 42
	tiffHeaderSize        = 8
)

// Entry is one decoded directory entry.
type Entry struct {
	Namespace Namespace

	// Kind is the directory the entry was found in.
	Kind IFDKind

	// IFD is the raw directory record and its payload.
	IFD IFDEntry

	// Name is the tag name, e.g. "Orientation", or UnknownPrefix followed
	// by the tag code for tags not in the lookup table.
	Name string

	// Value is the payload converted to its declared format.
	Value Value

	// Unit of Value, e.g. "mm".
	Unit string

	// Readable is the display form of Value, e.g. "1/250 s".
	Readable string
}

// Tag returns the numeric tag code.
func (e *Entry) Tag() uint16 {
	return e.IFD.Tag
}

// IsUnknown reports whether the tag was not found in the lookup table.
func (e *Entry) IsUnknown() bool {
	return strings.HasPrefix(e.Name, UnknownPrefix)
}

// IsIFDPointer reports whether e is the Exif or GPS sub-IFD pointer in IFD0.
func (e *Entry) IsIFDPointer() bool {
	return e.Kind == IFD0 && e.Namespace == NamespaceStandard && isIFDPointerTag(e.IFD.Tag)
}

func isIFDPointerTag(tag uint16) bool {
	return tag == TagExifOffset || tag == TagGPSOffset
}

// Equal reports whether e and other describe the same entry.
// For the sub-IFD pointers the payload is an offset that depends on the
// layout of the file, so only the identity fields are compared.
func (e *Entry) Equal(other *Entry) bool {
	if e.Namespace != other.Namespace || e.Kind != other.Kind ||
		e.IFD.Tag != other.IFD.Tag || e.Name != other.Name || e.Unit != other.Unit {
		return false
	}

	if e.IsIFDPointer() {
		return true
	}

	return e.IFD.Format == other.IFD.Format &&
		e.IFD.Count == other.IFD.Count &&
		e.IFD.LittleEndian == other.IFD.LittleEndian &&
		bytes.Equal(e.IFD.Data, other.IFD.Data) &&
		valuesEqual(e.Value, other.Value) &&
		e.Readable == other.Readable
}

type metaDecoderEXIF struct {
	// The TIFF structure. All offsets are relative to its start.
	b            []byte
	littleEndian bool

	numTags uint32
	opts    Options
	entries []Entry
}

// decodeTIFF decodes the TIFF header, IFD0 and the Exif and GPS sub-IFDs in b.
func decodeTIFF(b []byte, format ImageFormat, opts Options) (*Data, error) {
	e := &metaDecoderEXIF{b: b, opts: opts}
	if err := e.decode(); err != nil {
		return nil, err
	}
	return &Data{
		Format:       format,
		Entries:      e.entries,
		LittleEndian: e.littleEndian,
	}, nil
}

func (e *metaDecoderEXIF) warnf(kind IFDKind, tag uint16, format string, args ...any) {
	e.opts.Warnf("exif: %s tag 0x%04x: %s", kind, tag, fmt.Sprintf(format, args...))
}

func (e *metaDecoderEXIF) decode() error {
	if len(e.b) < tiffHeaderSize {
		return newInvalidFormatError(ErrTIFFTruncated)
	}

	byteOrderTag, _ := read2(false, e.b)
	switch byteOrderTag {
	case byteOrderBigEndian:
		e.littleEndian = false
	case byteOrderLittleEndian:
		e.littleEndian = true
	default:
		return newInvalidFormatErrorf("%w: unknown byte order 0x%04x", ErrTIFFBadPreamble, byteOrderTag)
	}

	if magic, _ := read2(e.littleEndian, e.b[2:]); magic != tiffMagic {
		return newInvalidFormatErrorf("%w: magic number %d", ErrTIFFBadPreamble, magic)
	}

	// Main image.
	ifd0Offset, _ := read4(e.littleEndian, e.b[4:])
	ifd0, ifd1Offset, err := e.decodeTags(IFD0, ifd0Offset)
	if err != nil {
		return newInvalidFormatErrorf("%w: %w", ErrIFDTruncated, err)
	}
	e.entries = append(e.entries, ifd0...)

	// Sub-IFDs in the order their pointers appear in IFD0.
	for _, pointer := range ifd0 {
		if !pointer.IsIFDPointer() {
			continue
		}
		kind := IFDExif
		if pointer.IFD.Tag == TagGPSOffset {
			kind = IFDGPS
		}
		offset, ok := pointer.IFD.pointer()
		if !ok {
			e.warnf(IFD0, pointer.IFD.Tag, "pointer with %d bytes of payload", len(pointer.IFD.Data))
			continue
		}
		sub, _, err := e.decodeTags(kind, offset)
		if err != nil {
			return newInvalidFormatErrorf("%w: %s: %w", ErrSubIFDTruncated, kind, err)
		}
		e.entries = append(e.entries, sub...)
	}

	// Thumbnail IFD.
	if ifd1Offset != 0 {
		e.opts.Warnf("exif: IFD1 at offset %d not decoded", ifd1Offset)
	}

	e.resolveUnits()

	return nil
}

// A tag is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer to another location where the data may be found.
//
// decodeTags decodes the directory at offset and returns its entries and
// the offset of the next directory, 0 if none.
func (e *metaDecoderEXIF) decodeTags(kind IFDKind, offset uint32) ([]Entry, uint32, error) {
	pos := uint64(offset)
	if pos+2 > uint64(len(e.b)) {
		return nil, 0, fmt.Errorf("truncated at entry count: offset %d beyond %d bytes", offset, len(e.b))
	}

	numTags, _ := read2(e.littleEndian, e.b[pos:])
	pos += 2

	end := pos + uint64(numTags)*ifdEntrySize
	if end > uint64(len(e.b)) {
		return nil, 0, fmt.Errorf("truncated at entry listing: %d entries at offset %d", numTags, offset)
	}

	var entries []Entry
	for i := 0; i < int(numTags); i++ {
		entry, ok := e.decodeTag(kind, e.b[pos:pos+ifdEntrySize])
		pos += ifdEntrySize
		if ok {
			entries = append(entries, entry)
		}
	}

	// Some writers leave out the next pointer of the last directory.
	next, _ := read4(e.littleEndian, e.b[end:])

	return entries, next, nil
}

func (e *metaDecoderEXIF) decodeTag(kind IFDKind, record []byte) (Entry, bool) {
	le := e.littleEndian
	tagID, _ := read2(le, record)
	dataType, _ := read2(le, record[2:])
	count, _ := read4(le, record[4:])

	ifd := IFDEntry{
		Namespace:    NamespaceStandard,
		Tag:          tagID,
		Format:       Format(dataType),
		Count:        count,
		LittleEndian: le,
	}
	copy(ifd.IFDData[:], record[8:ifdEntrySize])

	if !ifd.resolve(e.b) {
		e.warnf(kind, tagID, "%d bytes of data at offset %d beyond %d bytes", ifd.Length(), ifd.Offset(), len(e.b))
		return Entry{}, false
	}

	if !ifd.Format.Known() {
		e.warnf(kind, tagID, "unknown format %d", dataType)
	}

	entry := e.newEntry(kind, ifd)

	if !entry.IsIFDPointer() {
		if !e.opts.ShouldHandleTag(&entry) {
			return Entry{}, false
		}
		if e.numTags >= e.opts.LimitNumTags {
			e.warnf(kind, tagID, "dropped, more than %d tags", e.opts.LimitNumTags)
			return Entry{}, false
		}
	}
	e.numTags++

	return entry, true
}

func (e *metaDecoderEXIF) newEntry(kind IFDKind, ifd IFDEntry) Entry {
	info := e.opts.LookupTag(ifd.Tag)
	value := newValue(&ifd)

	if _, ok := value.(InvalidValue); ok {
		e.warnf(kind, ifd.Tag, "could not convert %d bytes to %d %s", len(ifd.Data), ifd.Count, ifd.Format)
	}

	var readable string
	if !info.IsUnknown() && !info.accepts(&ifd) {
		e.warnf(kind, ifd.Tag, "%s: expected format %s with count in [%d, %d], got %s with count %d",
			info.Name, info.Format, info.MinCount, info.MaxCount, ifd.Format, ifd.Count)
		readable = "Invalid data for " + info.Name
	} else {
		readable = value.String()
		if info.Readable != nil {
			if s, ok := info.Readable(ifd.Tag, value); ok {
				readable = s
			}
		}
	}

	return Entry{
		Namespace: ifd.Namespace,
		Kind:      kind,
		IFD:       ifd,
		Name:      info.Name,
		Value:     value,
		Unit:      info.Unit,
		Readable:  readable,
	}
}

// resolveUnits replaces units of the form "@TagName" with the display
// string of that tag, e.g. "@GPSSpeedRef" with "km/h".
func (e *metaDecoderEXIF) resolveUnits() {
	for i := range e.entries {
		entry := &e.entries[i]
		name, found := strings.CutPrefix(entry.Unit, "@")
		if !found {
			continue
		}
		for _, other := range e.entries {
			if other.Name == name {
				entry.Unit = other.Readable
				break
			}
		}
	}
}
