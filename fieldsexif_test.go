// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLookupTag(t *testing.T) {
	c := qt.New(t)

	ti := LookupTag(0x0112)
	c.Assert(ti.Name, qt.Equals, "Orientation")
	c.Assert(ti.Format, qt.Equals, FormatU16)
	c.Assert(ti.IsUnknown(), qt.IsFalse)

	ti = LookupTag(TagGPSOffset)
	c.Assert(ti.Name, qt.Equals, "GPSOffset")

	ti = LookupTag(0x0002)
	c.Assert(ti.Name, qt.Equals, "GPSLatitude")

	ti = LookupTag(0xfffe)
	c.Assert(ti.Name, qt.Equals, "UnknownTag_0xfffe")
	c.Assert(ti.Unit, qt.Equals, "Unknown unit")
	c.Assert(ti.IsUnknown(), qt.IsTrue)
	c.Assert(ti.accepts(&IFDEntry{Format: Format(99), Count: 1000}), qt.IsTrue)
}

func TestTagInfoAccepts(t *testing.T) {
	c := qt.New(t)

	isoSpeed := LookupTag(0x8827)
	c.Assert(isoSpeed.accepts(&IFDEntry{Format: FormatU16, Count: 1}), qt.IsTrue)
	c.Assert(isoSpeed.accepts(&IFDEntry{Format: FormatU16, Count: 3}), qt.IsTrue)
	c.Assert(isoSpeed.accepts(&IFDEntry{Format: FormatU16, Count: 0}), qt.IsFalse)
	c.Assert(isoSpeed.accepts(&IFDEntry{Format: FormatU16, Count: 4}), qt.IsFalse)
	c.Assert(isoSpeed.accepts(&IFDEntry{Format: FormatU32, Count: 1}), qt.IsFalse)

	width := LookupTag(0x0100)
	c.Assert(width.accepts(&IFDEntry{Format: FormatU16, Count: 1}), qt.IsTrue)
	c.Assert(width.accepts(&IFDEntry{Format: FormatU32, Count: 1}), qt.IsTrue)

	model := LookupTag(0x0110)
	c.Assert(model.accepts(&IFDEntry{Format: FormatASCII, Count: 100000}), qt.IsTrue)
	c.Assert(model.accepts(&IFDEntry{Format: FormatUndefined, Count: 10}), qt.IsFalse)
}

func TestExifTagsTable(t *testing.T) {
	c := qt.New(t)

	names := make(map[string]uint16)
	for tag, ti := range exifTags {
		c.Assert(ti.Name, qt.Not(qt.Equals), "", qt.Commentf("tag 0x%04x", tag))
		c.Assert(ti.Readable, qt.IsNotNil, qt.Commentf("tag %s", ti.Name))
		c.Assert(ti.MinCount <= ti.MaxCount || ti.MaxCount == anyCount, qt.IsTrue, qt.Commentf("tag %s", ti.Name))

		other, found := names[ti.Name]
		c.Assert(found, qt.IsFalse, qt.Commentf("tag %s used for 0x%04x and 0x%04x", ti.Name, tag, other))
		names[ti.Name] = tag

		// Units referring to another tag must name one in the table.
		if ref, ok := strings.CutPrefix(ti.Unit, "@"); ok {
			_, found := names[ref]
			if !found {
				for _, ti2 := range exifTags {
					if ti2.Name == ref {
						found = true
						break
					}
				}
			}
			c.Assert(found, qt.IsTrue, qt.Commentf("unit %s of %s", ti.Unit, ti.Name))
		}
	}

	c.Assert(names["ExifOffset"], qt.Equals, TagExifOffset)
	c.Assert(names["GPSOffset"], qt.Equals, TagGPSOffset)
	c.Assert(names["InteropOffset"], qt.Equals, TagInteropOffset)
}
