// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta_test

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bep/exifmeta"
)

// testTag is a directory entry in a hand built TIFF fixture.
type testTag struct {
	tag    uint16
	format exifmeta.Format
	count  uint32
	encode func(o binary.AppendByteOrder) []byte
}

func tU8(tag uint16, v ...byte) testTag {
	return testTag{tag, exifmeta.FormatU8, uint32(len(v)), func(binary.AppendByteOrder) []byte { return v }}
}

func tASCII(tag uint16, s string) testTag {
	b := append([]byte(s), 0)
	return testTag{tag, exifmeta.FormatASCII, uint32(len(b)), func(binary.AppendByteOrder) []byte { return b }}
}

func tUndef(tag uint16, b []byte) testTag {
	return testTag{tag, exifmeta.FormatUndefined, uint32(len(b)), func(binary.AppendByteOrder) []byte { return b }}
}

func tU16(tag uint16, v ...uint16) testTag {
	return testTag{tag, exifmeta.FormatU16, uint32(len(v)), func(o binary.AppendByteOrder) []byte {
		var b []byte
		for _, vv := range v {
			b = o.AppendUint16(b, vv)
		}
		return b
	}}
}

func tU32(tag uint16, v ...uint32) testTag {
	return testTag{tag, exifmeta.FormatU32, uint32(len(v)), func(o binary.AppendByteOrder) []byte {
		var b []byte
		for _, vv := range v {
			b = o.AppendUint32(b, vv)
		}
		return b
	}}
}

// tURat takes numerator/denominator pairs.
func tURat(tag uint16, v ...uint32) testTag {
	t := tU32(tag, v...)
	t.format = exifmeta.FormatURational
	t.count = uint32(len(v) / 2)
	return t
}

// tIRat takes numerator/denominator pairs.
func tIRat(tag uint16, v ...int32) testTag {
	return testTag{tag, exifmeta.FormatIRational, uint32(len(v) / 2), func(o binary.AppendByteOrder) []byte {
		var b []byte
		for _, vv := range v {
			b = o.AppendUint32(b, uint32(vv))
		}
		return b
	}}
}

func tF64(tag uint16, v ...float64) testTag {
	return testTag{tag, exifmeta.FormatF64, uint32(len(v)), func(o binary.AppendByteOrder) []byte {
		var b []byte
		for _, vv := range v {
			b = o.AppendUint64(b, math.Float64bits(vv))
		}
		return b
	}}
}

func tF32(tag uint16, v ...float32) testTag {
	return testTag{tag, exifmeta.FormatF32, uint32(len(v)), func(o binary.AppendByteOrder) []byte {
		var b []byte
		for _, vv := range v {
			b = o.AppendUint32(b, math.Float32bits(vv))
		}
		return b
	}}
}

// tRaw is an entry with a verbatim payload, e.g. for unknown formats.
func tRaw(tag uint16, format exifmeta.Format, count uint32, data []byte) testTag {
	return testTag{tag, format, count, func(binary.AppendByteOrder) []byte { return data }}
}

// testTIFF lays out a TIFF structure the way most writers do: the header,
// IFD0, its external payloads, then the Exif and GPS sub-IFDs with theirs.
// Pointer entries for non-empty sub-IFDs are appended to IFD0.
type testTIFF struct {
	littleEndian bool
	ifd0         []testTag
	exif         []testTag
	gps          []testTag

	// Written as the next IFD offset of IFD0 when set.
	ifd1Offset uint32
}

func (tt testTIFF) bytes() []byte {
	var o binary.AppendByteOrder = binary.BigEndian
	var po binary.ByteOrder = binary.BigEndian
	b := []byte("MM\x00\x2a")
	if tt.littleEndian {
		o, po = binary.LittleEndian, binary.LittleEndian
		b = []byte("II\x2a\x00")
	}
	b = o.AppendUint32(b, 8)

	ifd0 := append([]testTag{}, tt.ifd0...)
	if len(tt.exif) > 0 {
		ifd0 = append(ifd0, tU32(exifmeta.TagExifOffset, 0))
	}
	if len(tt.gps) > 0 {
		ifd0 = append(ifd0, tU32(exifmeta.TagGPSOffset, 0))
	}

	b, fields := appendTestIFD(b, o, po, ifd0, tt.ifd1Offset)

	for _, sub := range []struct {
		tag  uint16
		tags []testTag
	}{
		{exifmeta.TagExifOffset, tt.exif},
		{exifmeta.TagGPSOffset, tt.gps},
	} {
		if len(sub.tags) == 0 {
			continue
		}
		po.PutUint32(b[fields[sub.tag]:], uint32(len(b)))
		b, _ = appendTestIFD(b, o, po, sub.tags, 0)
	}

	return b
}

// appendTestIFD appends a directory followed by its external payloads and
// returns the positions of the data fields by tag.
func appendTestIFD(b []byte, o binary.AppendByteOrder, po binary.ByteOrder, tags []testTag, next uint32) ([]byte, map[uint16]int) {
	type external struct {
		pos  int
		data []byte
	}
	var externals []external
	fields := make(map[uint16]int)

	b = o.AppendUint16(b, uint16(len(tags)))
	for _, t := range tags {
		data := t.encode(o)
		b = o.AppendUint16(b, t.tag)
		b = o.AppendUint16(b, uint16(t.format))
		b = o.AppendUint32(b, t.count)
		fields[t.tag] = len(b)
		if len(data) <= 4 {
			var field [4]byte
			copy(field[:], data)
			b = append(b, field[:]...)
		} else {
			externals = append(externals, external{pos: len(b), data: data})
			b = append(b, 0, 0, 0, 0)
		}
	}
	b = o.AppendUint32(b, next)

	for _, e := range externals {
		po.PutUint32(b[e.pos:], uint32(len(b)))
		b = append(b, e.data...)
	}

	return b, fields
}

func jpegSegment(marker uint16, body []byte) []byte {
	b := binary.BigEndian.AppendUint16(nil, marker)
	b = binary.BigEndian.AppendUint16(b, uint16(len(body)+2))
	return append(b, body...)
}

var jfifSegment = jpegSegment(0xffe0, []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"))

// testJPEG wraps the EXIF APP1 payload (including "Exif\x00\x00") in a
// minimal JPEG, after the given extra segments.
func testJPEG(app1 []byte, before ...[]byte) []byte {
	b := []byte{0xff, 0xd8}
	for _, seg := range before {
		b = append(b, seg...)
	}
	if app1 != nil {
		b = append(b, jpegSegment(0xffe1, app1)...)
	}
	b = append(b, jpegSegment(0xffda, []byte{0x01, 0x01, 0x00, 0x00, 0x3f, 0x00})...)
	b = append(b, 0x00, 0x00, 0xff, 0xd9)
	return b
}

func exifPayload(tiff []byte) []byte {
	return append([]byte("Exif\x00\x00"), tiff...)
}

// sunriseTIFF resembles the metadata of a typical camera JPEG.
func sunriseTIFF(littleEndian bool) testTIFF {
	return testTIFF{
		littleEndian: littleEndian,
		ifd0: []testTag{
			tASCII(0x010f, "Canon"),
			tASCII(0x0110, "Canon EOS 6D"),
			tU16(0x0112, 1),
			tURat(0x011a, 72, 1),
			tURat(0x011b, 72, 1),
			tU16(0x0128, 2),
			tASCII(0x0132, "2017:10:27 08:32:42"),
			tASCII(0x8298, "Bjørn Erik Pedersen"),
		},
		exif: []testTag{
			tURat(0x829a, 1, 200),
			tURat(0x829d, 71, 10),
			tU16(0x8822, 3),
			tU16(0x8827, 100),
			tUndef(0x9000, []byte("0230")),
			tASCII(0x9003, "2017:10:27 08:32:42"),
			tIRat(0x9204, 0, 1),
			tU16(0x9207, 5),
			tU16(0x9209, 16),
			tURat(0x920a, 21, 1),
			tUndef(0x9286, append([]byte("ASCII\x00\x00\x00"), "Sunrise in Spain"...)),
			tU16(0xa001, 1),
			tURat(0xa20e, 5472000, 1436),
			tU16(0xa210, 2),
			tURat(0xa432, 16, 1, 35, 1, 0, 0, 0, 0),
		},
		gps: []testTag{
			tU8(0x0000, 2, 3, 0, 0),
			tASCII(0x0001, "N"),
			tURat(0x0002, 36, 1, 35, 1, 5079, 100),
			tASCII(0x0003, "W"),
			tURat(0x0004, 4, 1, 30, 1, 3046, 100),
			tU8(0x0005, 0),
			tURat(0x0006, 1234, 10),
			tURat(0x0007, 7, 1, 32, 1, 41, 1),
			tASCII(0x000c, "K"),
			tURat(0x000d, 55, 10),
		},
	}
}

func collectWarnings(warnings *[]string) func(string, ...any) {
	return func(format string, args ...any) {
		*warnings = append(*warnings, fmt.Sprintf(format, args...))
	}
}
