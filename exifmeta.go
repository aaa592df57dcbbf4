// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package exifmeta decodes the TIFF/EXIF directory structure embedded in
// JPEG and TIFF files into a flat list of typed entries, and encodes such a
// list back into a TIFF directory structure using the original byte order.
package exifmeta

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrFileTypeUnknown is returned when the input is neither JPEG nor TIFF.
	ErrFileTypeUnknown = errors.New("file type unknown")
	// ErrJPEGWithoutEXIF is returned when no EXIF APP1 segment could be located.
	ErrJPEGWithoutEXIF = errors.New("JPEG without EXIF section")
	// ErrTIFFTruncated is returned when the TIFF header is cut short.
	ErrTIFFTruncated = errors.New("TIFF truncated at start")
	// ErrTIFFBadPreamble is returned for an unknown byte order mark or magic number.
	ErrTIFFBadPreamble = errors.New("TIFF with bad preamble")
	// ErrIFDTruncated is returned when IFD0 extends past the end of the data.
	ErrIFDTruncated = errors.New("TIFF IFD truncated")
	// ErrSubIFDTruncated is returned when the Exif or GPS IFD extends past the end of the data.
	ErrSubIFDTruncated = errors.New("TIFF Exif IFD truncated")
	// ErrBufferTooLarge is returned when a reader holds more than Options.MaxBufSize bytes.
	ErrBufferTooLarge = errors.New("input too large")

	// ErrUnsupportedNamespace is returned when serializing a manufacturer specific entry.
	ErrUnsupportedNamespace = errors.New("only the standard namespace can be serialized")
	// ErrThumbnailNotSupported is returned when serializing entries that belong to IFD1.
	ErrThumbnailNotSupported = errors.New("serializing the thumbnail IFD is not supported")
	// ErrMissingPointer is returned when serializing Exif or GPS entries without
	// the matching pointer entry in IFD0.
	ErrMissingPointer = errors.New("expected to have seen the sub-IFD pointer tag in IFD0")
	// ErrPayloadSize is returned when serializing an entry whose payload length
	// does not match its format and count.
	ErrPayloadSize = errors.New("payload size does not match format and count")
)

// InvalidFormatError wraps errors caused by malformed or truncated input.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("exifmeta: invalid format: %s", e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// IsInvalidFormat reports whether err was caused by malformed input.
func IsInvalidFormat(err error) bool {
	var e *InvalidFormatError
	return errors.As(err, &e)
}

func newInvalidFormatError(err error) error {
	return &InvalidFormatError{Err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return newInvalidFormatError(fmt.Errorf(format, args...))
}

const (
	// ImageFormatUnknown is anything not recognized as JPEG or TIFF.
	ImageFormatUnknown ImageFormat = iota
	// JPEG is the JPEG image format with a JFIF or Exif APP segment.
	JPEG
	// TIFF is the TIFF image format, also used for raw EXIF payloads.
	TIFF
)

// ImageFormat is the container format of the decoded file.
//
//go:generate stringer -type=ImageFormat
type ImageFormat int

// MIME returns the MIME type for f.
func (f ImageFormat) MIME() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case TIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

const (
	// NamespaceStandard holds the tags defined by the TIFF and EXIF standards.
	NamespaceStandard Namespace = iota
	// NamespaceNikon is reserved for tags found inside Nikon maker notes.
	NamespaceNikon
	// NamespaceCanon is reserved for tags found inside Canon maker notes.
	NamespaceCanon
)

// Namespace tells which tag table an entry belongs to.
// Only NamespaceStandard is produced by the decoder; the others exist
// for maker note parsing and cannot be serialized.
//
//go:generate stringer -type=Namespace -trimprefix=Namespace
type Namespace uint16

const (
	// IFD0 is the main image directory.
	IFD0 IFDKind = iota
	// IFD1 is the thumbnail directory.
	IFD1
	// IFDExif is the Exif sub-directory referenced from IFD0.
	IFDExif
	// IFDGPS is the GPS sub-directory referenced from IFD0.
	IFDGPS
	// IFDMakernote holds entries decoded from a maker note blob.
	IFDMakernote
	// IFDInteroperability is the interoperability sub-directory.
	IFDInteroperability
)

// IFDKind is the directory an entry was found in.
//
//go:generate stringer -type=IFDKind
type IFDKind int

// Options contains the options for the Decode functions.
type Options struct {
	// Warnf will be called for each recoverable problem, e.g. an entry with
	// an unknown format or a payload that could not be converted.
	Warnf func(string, ...any)

	// LookupTag resolves a tag code to its name, unit and display formatter.
	// If not set, LookupTag from this package is used.
	LookupTag TagLookupFunc

	// If set, entries for which this function returns false are left out.
	// The Exif and GPS pointer entries are always kept and never passed here.
	ShouldHandleTag func(e *Entry) bool

	// LimitNumTags is the maximum number of entries to decode.
	// Default value is 5000.
	LimitNumTags uint32

	// MaxBufSize is the maximum number of bytes read by Decode and DecodeFile.
	// Default value is 10 MB.
	MaxBufSize int64
}

func (o Options) withDefaults() Options {
	const defaultLimitNumTags = 5000

	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	if o.LookupTag == nil {
		o.LookupTag = LookupTag
	}
	if o.ShouldHandleTag == nil {
		o.ShouldHandleTag = func(*Entry) bool { return true }
	}
	if o.LimitNumTags == 0 {
		o.LimitNumTags = defaultLimitNumTags
	}
	if o.MaxBufSize <= 0 {
		o.MaxBufSize = defaultMaxBufSize
	}
	return o
}

// Data is the metadata decoded from one file.
type Data struct {
	// Format is the container the metadata was found in.
	// JPEG output from Serialize carries the "Exif\x00\x00" APP1 preamble.
	Format ImageFormat

	// Entries in file order: IFD0 first, then the Exif and GPS sub-IFDs.
	Entries []Entry

	// LittleEndian is the byte order of the TIFF structure.
	LittleEndian bool
}

// MIME returns the MIME type of the container.
func (d *Data) MIME() string {
	return d.Format.MIME()
}

// Get returns the first entry with the given tag name.
func (d *Data) Get(name string) (*Entry, bool) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			return &d.Entries[i], true
		}
	}
	return nil, false
}

// Equal reports whether d and other hold equivalent entries.
// Sub-IFD pointer values are not compared, see Entry.Equal.
func (d *Data) Equal(other *Data) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Format != other.Format || d.LittleEndian != other.LittleEndian {
		return false
	}
	if len(d.Entries) != len(other.Entries) {
		return false
	}
	for i := range d.Entries {
		if !d.Entries[i].Equal(&other.Entries[i]) {
			return false
		}
	}
	return true
}

// Decode reads all of r and decodes the EXIF metadata in it.
func Decode(r io.Reader, opts Options) (*Data, error) {
	opts = opts.withDefaults()
	b, err := readAllLimited(r, opts.MaxBufSize)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, opts)
}

// DecodeFile decodes the EXIF metadata in the named JPEG or TIFF file.
func DecodeFile(filename string, opts Options) (*Data, error) {
	opts = opts.withDefaults()
	b, err := readFile(filename, opts.MaxBufSize)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, opts)
}

// DecodeBytes decodes the EXIF metadata in a complete JPEG or TIFF file.
// The returned Data does not reference b.
func DecodeBytes(b []byte, opts Options) (*Data, error) {
	opts = opts.withDefaults()

	format := DetectFormat(b)
	switch format {
	case JPEG:
		offset, length, err := FindEmbeddedTIFF(b)
		if err != nil {
			return nil, err
		}
		b = b[offset : offset+length]
	case TIFF:
	default:
		return nil, newInvalidFormatError(ErrFileTypeUnknown)
	}

	return decodeTIFF(b, format, opts)
}

// DecodeEXIF decodes a bare EXIF payload as produced by Data.Serialize:
// either a TIFF structure, or a TIFF structure prefixed by "Exif\x00\x00"
// as stored in a JPEG APP1 segment. The prefix decides the Format of the result.
func DecodeEXIF(b []byte, opts Options) (*Data, error) {
	opts = opts.withDefaults()
	format := TIFF
	if hasEXIFHeader(b) {
		format = JPEG
		b = b[len(exifHeader):]
	}
	return decodeTIFF(b, format, opts)
}
