// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	markerApp1EXIF = 0xffe1
	markerSOS      = 0xffda

	// Smallest buffer DetectFormat will classify.
	minDetectLen = 11
)

var (
	// exifHeader is the preamble of an EXIF APP1 segment.
	exifHeader = []byte("Exif\x00\x00")

	// SOI followed by the first byte of the next marker.
	jpegPrefix   = []byte{0xff, 0xd8, 0xff}
	jpegJFIFTag  = []byte("JFIF\x00")
	jpegEXIFTag  = []byte("Exif\x00")
	tiffHeaderLE = []byte{'I', 'I', 0x2a, 0x00}
	tiffHeaderBE = []byte{'M', 'M', 0x00, 0x2a}
)

// DetectFormat classifies b from its leading magic bytes.
// A JPEG must start with SOI followed by a JFIF or Exif APP segment.
func DetectFormat(b []byte) ImageFormat {
	if len(b) < minDetectLen {
		return ImageFormatUnknown
	}

	if bytes.HasPrefix(b, jpegPrefix) {
		// The APP segment identifier follows the marker and the segment length.
		tag := b[6:minDetectLen]
		if bytes.Equal(tag, jpegJFIFTag) || bytes.Equal(tag, jpegEXIFTag) {
			return JPEG
		}
	}

	if bytes.HasPrefix(b, tiffHeaderLE) || bytes.HasPrefix(b, tiffHeaderBE) {
		return TIFF
	}

	return ImageFormatUnknown
}

func hasEXIFHeader(b []byte) bool {
	return bytes.HasPrefix(b, exifHeader)
}

func errJPEGWithoutEXIF(format string, args ...any) error {
	return newInvalidFormatError(fmt.Errorf("%w: %s", ErrJPEGWithoutEXIF, fmt.Sprintf(format, args...)))
}

// FindEmbeddedTIFF scans the JPEG segments in b up to the start of scan and
// returns the position and length of the TIFF structure stored in the
// first EXIF APP1 segment, i.e. the bytes following "Exif\x00\x00".
// APP1 segments with another preamble (e.g. XMP) are skipped.
func FindEmbeddedTIFF(b []byte) (offset, length int, err error) {
	// Skip SOI.
	pos := 2

	for pos < len(b) {
		if len(b) < pos+2 {
			return 0, 0, errJPEGWithoutEXIF("JPEG truncated in marker header")
		}

		marker := binary.BigEndian.Uint16(b[pos:])
		if marker < 0xff00 {
			return 0, 0, errJPEGWithoutEXIF("invalid marker %x", marker)
		}

		if marker == markerSOS {
			// Start of scan. No more metadata segments.
			return 0, 0, errJPEGWithoutEXIF("last marker found and no EXIF")
		}

		pos += 2
		if len(b) < pos+2 {
			return 0, 0, errJPEGWithoutEXIF("JPEG truncated in marker header")
		}

		// The 16-bit segment length includes the 2 bytes for the length itself.
		size := int(binary.BigEndian.Uint16(b[pos:]))
		if size < 2 {
			return 0, 0, errJPEGWithoutEXIF("JPEG marker size must be at least 2 (because of the size word)")
		}
		if len(b) < pos+size {
			return 0, 0, errJPEGWithoutEXIF("JPEG truncated in marker body")
		}

		if marker == markerApp1EXIF && size >= 2+len(exifHeader) && hasEXIFHeader(b[pos+2:pos+size]) {
			// The offset and size of the block, excluding size and 'Exif\0\0'.
			return pos + 2 + len(exifHeader), size - 2 - len(exifHeader), nil
		}

		pos += size
	}

	return 0, 0, errJPEGWithoutEXIF("scan past EOF and no EXIF found")
}
