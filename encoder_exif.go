// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding"
	"fmt"
)

var _ encoding.BinaryMarshaler = (*Data)(nil)

// MarshalBinary is the same as Serialize.
func (d *Data) MarshalBinary() ([]byte, error) {
	return d.Serialize()
}

// Serialize encodes the entries into a TIFF structure in the byte order of d:
// the header, IFD0, and the Exif and GPS sub-IFDs, each directory followed
// by the payloads that did not fit in its records.
// For JPEG the result is prefixed with "Exif\x00\x00" and can be used as
// the body of an APP1 segment.
//
// Maker note and interoperability entries are left out. Entries from IFD1
// or from a manufacturer namespace are not supported and fail the whole call.
func (d *Data) Serialize() ([]byte, error) {
	var ifd0, exif, gps []*IFDEntry

	for i := range d.Entries {
		entry := &d.Entries[i]
		switch entry.Kind {
		case IFD0:
			ifd0 = append(ifd0, &entry.IFD)
		case IFDExif:
			exif = append(exif, &entry.IFD)
		case IFDGPS:
			gps = append(gps, &entry.IFD)
		case IFD1:
			return nil, fmt.Errorf("tag 0x%04x: %w", entry.IFD.Tag, ErrThumbnailNotSupported)
		case IFDMakernote, IFDInteroperability:
		}
	}

	enc := &encoderEXIF{littleEndian: d.LittleEndian}
	if err := enc.encode(ifd0, exif, gps); err != nil {
		return nil, err
	}

	if d.Format == JPEG {
		return append(append([]byte{}, exifHeader...), enc.b...), nil
	}
	return enc.b, nil
}

type encoderEXIF struct {
	b            []byte
	littleEndian bool

	// Pending external payloads of the directory being written.
	patches []patch

	// Positions of the offset fields of the Exif and GPS pointers in IFD0, -1 if not seen.
	exifPointerPos int
	gpsPointerPos  int
}

func (enc *encoderEXIF) encode(ifd0, exif, gps []*IFDEntry) error {
	enc.exifPointerPos, enc.gpsPointerPos = -1, -1

	if enc.littleEndian {
		enc.b = append(enc.b, tiffHeaderLE...)
	} else {
		enc.b = append(enc.b, tiffHeaderBE...)
	}
	// IFD0 follows the header.
	enc.b = appendUint32(enc.b, enc.littleEndian, tiffHeaderSize)

	enc.b = appendUint16(enc.b, enc.littleEndian, uint16(len(ifd0)))
	for _, e := range ifd0 {
		if err := enc.encodeTag(e); err != nil {
			return err
		}
		if !isIFDPointerTag(e.Tag) || !e.InIFD() {
			continue
		}
		if e.Tag == TagExifOffset {
			enc.exifPointerPos = len(enc.b) - 4
		} else {
			enc.gpsPointerPos = len(enc.b) - 4
		}
	}
	// No IFD1.
	enc.b = appendUint32(enc.b, enc.littleEndian, 0)
	enc.resolvePatches()

	if err := enc.encodeSubIFD(IFDExif, enc.exifPointerPos, exif); err != nil {
		return err
	}
	return enc.encodeSubIFD(IFDGPS, enc.gpsPointerPos, gps)
}

func (enc *encoderEXIF) encodeTag(e *IFDEntry) error {
	b, patches, err := e.appendTo(enc.b, enc.patches)
	if err != nil {
		return err
	}
	enc.b, enc.patches = b, patches
	return nil
}

// encodeSubIFD writes entries as a directory and points the IFD0 pointer
// field at pointerPos to it. An empty group is only written if IFD0 has a
// pointer to it.
func (enc *encoderEXIF) encodeSubIFD(kind IFDKind, pointerPos int, entries []*IFDEntry) error {
	if pointerPos < 0 {
		if len(entries) > 0 {
			return fmt.Errorf("%d %s entries: %w", len(entries), kind, ErrMissingPointer)
		}
		return nil
	}

	putUint32At(enc.b, pointerPos, enc.littleEndian, uint32(len(enc.b)))

	enc.b = appendUint16(enc.b, enc.littleEndian, uint16(len(entries)))
	for _, e := range entries {
		if err := enc.encodeTag(e); err != nil {
			return err
		}
	}
	enc.b = appendUint32(enc.b, enc.littleEndian, 0)
	enc.resolvePatches()

	return nil
}

// resolvePatches appends the pending payloads in the order they were
// queued and fills in their offset fields.
func (enc *encoderEXIF) resolvePatches() {
	for _, p := range enc.patches {
		putUint32At(enc.b, p.pos, enc.littleEndian, uint32(len(enc.b)))
		enc.b = append(enc.b, p.data...)
	}
	enc.patches = enc.patches[:0]
}
