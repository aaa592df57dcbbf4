// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding"
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStringer(t *testing.T) {
	c := qt.New(t)

	c.Assert(FormatURational.String(), qt.Equals, "URational")
	c.Assert(FormatUnknown.String(), qt.Equals, "Unknown")
	c.Assert(Format(13).String(), qt.Equals, "Format(13)")

	c.Assert(IFD0.String(), qt.Equals, "IFD0")
	c.Assert(IFDGPS.String(), qt.Equals, "IFDGPS")
	c.Assert(IFDKind(42).String(), qt.Equals, "IFDKind(42)")

	c.Assert(NamespaceStandard.String(), qt.Equals, "Standard")
	c.Assert(NamespaceCanon.String(), qt.Equals, "Canon")

	var imageFormat42 ImageFormat = 42
	c.Assert(JPEG.String(), qt.Equals, "JPEG")
	c.Assert(TIFF.String(), qt.Equals, "TIFF")
	c.Assert(ImageFormatUnknown.String(), qt.Equals, "ImageFormatUnknown")
	c.Assert(imageFormat42.String(), qt.Equals, "ImageFormat(42)")
}

func BenchmarkPrintableString(b *testing.B) {
	runBench := func(b *testing.B, name, s string) {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = printableString(s)
			}
		})
	}

	runBench(b, "ASCII", "Hello, World!")
	runBench(b, "ASCII with whitespace", "   Hello, World!   ")
	runBench(b, "UTF-8", "Hello, 世界!")
	runBench(b, "Mixed", "Hello, 世界! 🌍")
	runBench(b, "Unprintable", "Hello, \x00World!")
}

func TestPrintableString(t *testing.T) {
	c := qt.New(t)

	c.Assert(printableString("  Hello, 世界!\x00\x00"), qt.Equals, "Hello, 世界!")
	c.Assert(printableString("Hello, \x00World!"), qt.Equals, "Hello, World!")
}

func TestTrimTrailingNulls(t *testing.T) {
	c := qt.New(t)

	c.Assert(string(trimTrailingNulls([]byte("abc\x00\x00"))), qt.Equals, "abc")
	c.Assert(string(trimTrailingNulls([]byte("a\x00c"))), qt.Equals, "a\x00c")
	c.Assert(trimTrailingNulls([]byte{0, 0}), qt.HasLen, 0)
}

func TestRat(t *testing.T) {
	c := qt.New(t)

	c.Run("Float64", func(c *qt.C) {
		c.Assert(URational{Num: 1, Den: 2}.Float64(), qt.Equals, 0.5)
		c.Assert(IRational{Num: -3, Den: 4}.Float64(), qt.Equals, -0.75)
		c.Assert(math.IsInf(URational{Num: 1, Den: 0}.Float64(), 1), qt.IsTrue)
		c.Assert(math.IsNaN(URational{Num: 0, Den: 0}.Float64()), qt.IsTrue)
	})

	c.Run("Not normalized", func(c *qt.C) {
		r := URational{Num: 6, Den: 9}
		c.Assert(r.String(), qt.Equals, "6/9")
		c.Assert(URational{Num: 4, Den: 1}.String(), qt.Equals, "4/1")
		c.Assert(IRational{Num: 13, Den: -3}.String(), qt.Equals, "13/-3")
	})

	c.Run("IsFinite", func(c *qt.C) {
		c.Assert(URational{Num: 1, Den: 2}.IsFinite(), qt.IsTrue)
		c.Assert(URational{Num: 0, Den: 0}.IsFinite(), qt.IsFalse)
	})

	c.Run("MarshalText", func(c *qt.C) {
		var ru encoding.TextMarshaler = URational{Num: 1, Den: 2}
		text, err := ru.MarshalText()
		c.Assert(err, qt.Equals, nil)
		c.Assert(string(text), qt.Equals, "1/2")
	})

	c.Run("UnmarshalText", func(c *qt.C) {
		var ru URational
		err := ru.UnmarshalText([]byte("3/4"))
		c.Assert(err, qt.Equals, nil)
		c.Assert(ru, qt.Equals, URational{Num: 3, Den: 4})

		err = ru.UnmarshalText([]byte("4"))
		c.Assert(err, qt.Equals, nil)
		c.Assert(ru, qt.Equals, URational{Num: 4, Den: 1})

		var ri IRational
		err = ri.UnmarshalText([]byte("-1/3"))
		c.Assert(err, qt.Equals, nil)
		c.Assert(ri, qt.Equals, IRational{Num: -1, Den: 3})

		err = ri.UnmarshalText([]byte("a/b"))
		c.Assert(err, qt.ErrorMatches, `failed to parse "a/b" as a rational number: .*`)
	})
}

func TestJoinValues(t *testing.T) {
	c := qt.New(t)

	c.Assert(joinValues([]uint16{1, 2, 3}), qt.Equals, "1, 2, 3")
	c.Assert(joinValues([]URational{{Num: 1, Den: 2}}), qt.Equals, "1/2")
	c.Assert(joinValues([]byte{}), qt.Equals, "")
}
