// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"fmt"
	"strings"
)

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

const (
	// TagExifOffset is the IFD0 entry pointing to the Exif sub-IFD.
	TagExifOffset uint16 = 0x8769
	// TagGPSOffset is the IFD0 entry pointing to the GPS sub-IFD.
	TagGPSOffset uint16 = 0x8825
	// TagInteropOffset is the Exif entry pointing to the interoperability IFD.
	TagInteropOffset uint16 = 0xa005
)

// Bounds marker for MinCount and MaxCount.
const anyCount = -1

// ReadableFunc formats v for display. It returns false if it cannot handle
// the value, in which case v.String() is used.
type ReadableFunc func(tag uint16, v Value) (string, bool)

// TagLookupFunc resolves a tag code to its descriptor.
type TagLookupFunc func(tag uint16) TagInfo

// TagInfo describes a tag as defined by the TIFF, EXIF and GPS standards.
type TagInfo struct {
	// The tag name, e.g. "Orientation".
	Name string

	// Unit of the raw value, e.g. "mm". A unit starting with "@" names
	// another tag whose display string is the unit, e.g. "@GPSSpeedRef".
	Unit string

	// The expected format. FormatUnknown disables the format check.
	Format Format

	// Expected element count range. -1 means unbounded.
	MinCount int
	MaxCount int

	Readable ReadableFunc
}

// IsUnknown reports whether ti was made up for a tag code not in the table.
func (ti TagInfo) IsUnknown() bool {
	return strings.HasPrefix(ti.Name, UnknownPrefix)
}

// accepts reports whether the format and count of e match ti.
func (ti TagInfo) accepts(e *IFDEntry) bool {
	if ti.Format != FormatUnknown && e.Format != ti.Format {
		return false
	}
	if ti.MinCount != anyCount && int64(e.Count) < int64(ti.MinCount) {
		return false
	}
	if ti.MaxCount != anyCount && int64(e.Count) > int64(ti.MaxCount) {
		return false
	}
	return true
}

// LookupTag returns the descriptor for the standard tag with the given code.
// GPS tags share the code space with the other IFDs but never collide with
// the tags this table knows.
func LookupTag(tag uint16) TagInfo {
	if ti, ok := exifTags[tag]; ok {
		return ti
	}
	return TagInfo{
		Name:     fmt.Sprintf("%s0x%04x", UnknownPrefix, tag),
		Unit:     "Unknown unit",
		Format:   FormatUnknown,
		MinCount: anyCount,
		MaxCount: anyCount,
		Readable: readableUnknown,
	}
}

func tagInfo(name, unit string, format Format, minCount, maxCount int, readable ReadableFunc) TagInfo {
	return TagInfo{Name: name, Unit: unit, Format: format, MinCount: minCount, MaxCount: maxCount, Readable: readable}
}

// any* describe tags where writers disagree on the type, e.g. SHORT or LONG dimensions.
func anyTag(name string) TagInfo {
	return tagInfo(name, "none", FormatUnknown, anyCount, anyCount, readableDefault)
}

func asciiTag(name string) TagInfo {
	return tagInfo(name, "none", FormatASCII, anyCount, anyCount, readableDefault)
}

var exifTags = map[uint16]TagInfo{
	// IFD0.
	0x0100: anyTag("ImageWidth"),
	0x0101: anyTag("ImageLength"),
	0x0102: anyTag("BitsPerSample"),
	0x0103: anyTag("Compression"),
	0x0106: anyTag("PhotometricInterpretation"),
	0x010e: asciiTag("ImageDescription"),
	0x010f: asciiTag("Make"),
	0x0110: asciiTag("Model"),
	0x0112: tagInfo("Orientation", "none", FormatU16, 1, 1, readableOrientation),
	0x0115: anyTag("SamplesPerPixel"),
	0x011a: tagInfo("XResolution", "pixels per res unit", FormatURational, 1, 1, readableRational),
	0x011b: tagInfo("YResolution", "pixels per res unit", FormatURational, 1, 1, readableRational),
	0x011c: anyTag("PlanarConfiguration"),
	0x0128: tagInfo("ResolutionUnit", "none", FormatU16, 1, 1, readableResolutionUnit),
	0x0131: asciiTag("Software"),
	0x0132: asciiTag("DateTime"),
	0x013b: asciiTag("Artist"),
	0x013c: asciiTag("HostComputer"),
	0x013e: tagInfo("WhitePoint", "CIE 1931 coordinates", FormatURational, 2, 2, readableRationals),
	0x013f: tagInfo("PrimaryChromaticities", "CIE 1931 coordinates", FormatURational, 6, 6, readableRationals),
	0x0211: tagInfo("YCbCrCoefficients", "none", FormatURational, 3, 3, readableRationals),
	0x0212: anyTag("YCbCrSubSampling"),
	0x0213: anyTag("YCbCrPositioning"),
	0x0214: tagInfo("ReferenceBlackWhite", "RGB or YCbCr", FormatURational, 6, 6, readableRationals),
	0x8298: asciiTag("Copyright"),
	0x8769: tagInfo("ExifOffset", "byte offset", FormatU32, 1, 1, readableDefault),
	0x8825: tagInfo("GPSOffset", "byte offset", FormatU32, 1, 1, readableDefault),

	// Exif sub-IFD.
	0x829a: tagInfo("ExposureTime", "s", FormatURational, 1, 1, readableExposureTime),
	0x829d: tagInfo("FNumber", "f-number", FormatURational, 1, 1, readableFNumber),
	0x8822: tagInfo("ExposureProgram", "none", FormatU16, 1, 1, readableExposureProgram),
	0x8824: tagInfo("SpectralSensitivity", "ASTM string", FormatASCII, anyCount, anyCount, readableDefault),
	0x8827: tagInfo("ISOSpeedRatings", "ISO", FormatU16, 1, 3, readableISOSpeeds),
	0x8828: tagInfo("OECF", "none", FormatUndefined, anyCount, anyCount, readableBlob),
	0x8830: tagInfo("SensitivityType", "none", FormatU16, 1, 1, readableSensitivityType),
	0x9000: tagInfo("ExifVersion", "none", FormatUndefined, anyCount, anyCount, readableUndefinedASCII),
	0x9003: asciiTag("DateTimeOriginal"),
	0x9004: asciiTag("DateTimeDigitized"),
	0x9101: tagInfo("ComponentsConfiguration", "none", FormatUndefined, 4, 4, readableUndefinedBytes),
	0x9102: tagInfo("CompressedBitsPerPixel", "none", FormatURational, 1, 1, readableRational),
	0x9201: tagInfo("ShutterSpeedValue", "APEX", FormatIRational, 1, 1, readableApexTv),
	0x9202: tagInfo("ApertureValue", "APEX", FormatURational, 1, 1, readableApexAv),
	0x9203: tagInfo("BrightnessValue", "APEX", FormatIRational, 1, 1, readableApexBrightness),
	0x9204: tagInfo("ExposureBiasValue", "APEX", FormatIRational, 1, 1, readableApexEV),
	0x9205: tagInfo("MaxApertureValue", "APEX", FormatURational, 1, 1, readableApexAv),
	0x9206: tagInfo("SubjectDistance", "m", FormatURational, 1, 1, readableMeters),
	0x9207: tagInfo("MeteringMode", "none", FormatU16, 1, 1, readableMeteringMode),
	0x9208: tagInfo("LightSource", "none", FormatU16, 1, 1, readableLightSource),
	0x9209: tagInfo("Flash", "none", FormatU16, 1, 2, readableFlash),
	0x920a: tagInfo("FocalLength", "mm", FormatURational, 1, 1, readableFocalLength),
	0x9214: tagInfo("SubjectArea", "px", FormatU16, 2, 4, readableSubjectArea),
	0x927c: tagInfo("MakerNote", "none", FormatUndefined, anyCount, anyCount, readableBlob),
	0x9286: tagInfo("UserComment", "none", FormatUndefined, anyCount, anyCount, readableEncodedString),
	0x9290: asciiTag("SubSecTime"),
	0x9291: asciiTag("SubSecTimeOriginal"),
	0x9292: asciiTag("SubSecTimeDigitized"),
	0xa000: tagInfo("FlashPixVersion", "none", FormatUndefined, anyCount, anyCount, readableUndefinedASCII),
	0xa001: tagInfo("ColorSpace", "none", FormatU16, 1, 1, readableColorSpace),
	0xa002: anyTag("PixelXDimension"),
	0xa003: anyTag("PixelYDimension"),
	0xa004: asciiTag("RelatedSoundFile"),
	0xa005: tagInfo("InteropOffset", "byte offset", FormatU32, 1, 1, readableDefault),
	0xa20b: tagInfo("FlashEnergy", "BCPS", FormatURational, 1, 1, readableFlashEnergy),
	0xa20e: tagInfo("FocalPlaneXResolution", "@FocalPlaneResolutionUnit", FormatURational, 1, 1, readableRational),
	0xa20f: tagInfo("FocalPlaneYResolution", "@FocalPlaneResolutionUnit", FormatURational, 1, 1, readableRational),
	0xa210: tagInfo("FocalPlaneResolutionUnit", "none", FormatU16, 1, 1, readableResolutionUnit),
	0xa214: tagInfo("SubjectLocation", "X,Y", FormatU16, 2, 2, readableSubjectLocation),
	0xa215: tagInfo("ExposureIndex", "EI", FormatURational, 1, 1, readableRational),
	0xa217: tagInfo("SensingMethod", "none", FormatU16, 1, 1, readableSensingMethod),
	0xa300: tagInfo("FileSource", "none", FormatUndefined, 1, 1, readableFileSource),
	0xa301: tagInfo("SceneType", "none", FormatUndefined, 1, 1, readableSceneType),
	0xa302: tagInfo("CFAPattern", "none", FormatUndefined, anyCount, anyCount, readableUndefinedBytes),
	0xa401: tagInfo("CustomRendered", "none", FormatU16, 1, 1, readableCustomRendered),
	0xa402: tagInfo("ExposureMode", "none", FormatU16, 1, 1, readableExposureMode),
	0xa403: tagInfo("WhiteBalance", "none", FormatU16, 1, 1, readableWhiteBalance),
	0xa404: tagInfo("DigitalZoomRatio", "none", FormatURational, 1, 1, readableRational),
	0xa405: tagInfo("FocalLengthIn35mmFilm", "mm", FormatU16, 1, 1, readableFocalLength35),
	0xa406: tagInfo("SceneCaptureType", "none", FormatU16, 1, 1, readableSceneCaptureType),
	0xa407: tagInfo("GainControl", "none", FormatU16, 1, 1, readableGainControl),
	0xa408: tagInfo("Contrast", "none", FormatU16, 1, 1, readableContrast),
	0xa409: tagInfo("Saturation", "none", FormatU16, 1, 1, readableSaturation),
	0xa40a: tagInfo("Sharpness", "none", FormatU16, 1, 1, readableSharpness),
	0xa40b: tagInfo("DeviceSettingDescription", "none", FormatUndefined, anyCount, anyCount, readableBlob),
	0xa40c: tagInfo("SubjectDistanceRange", "none", FormatU16, 1, 1, readableSubjectDistanceRange),
	0xa420: asciiTag("ImageUniqueID"),
	0xa432: tagInfo("LensSpecification", "none", FormatURational, 4, 4, readableLensSpec),
	0xa433: asciiTag("LensMake"),
	0xa434: asciiTag("LensModel"),
	0xa500: tagInfo("Gamma", "none", FormatURational, 1, 1, readableRational),

	// GPS sub-IFD.
	0x00: tagInfo("GPSVersionID", "none", FormatU8, 4, 4, readableDefault),
	0x01: asciiTag("GPSLatitudeRef"),
	0x02: tagInfo("GPSLatitude", "D/M/S", FormatURational, 3, 3, readableDMS),
	0x03: asciiTag("GPSLongitudeRef"),
	0x04: tagInfo("GPSLongitude", "D/M/S", FormatURational, 3, 3, readableDMS),
	0x05: tagInfo("GPSAltitudeRef", "none", FormatU8, 1, 1, readableGPSAltitudeRef),
	0x06: tagInfo("GPSAltitude", "m", FormatURational, 1, 1, readableMeters),
	0x07: tagInfo("GPSTimeStamp", "UTC time", FormatURational, 3, 3, readableGPSTimeStamp),
	0x08: asciiTag("GPSSatellites"),
	0x09: tagInfo("GPSStatus", "none", FormatASCII, anyCount, anyCount, readableGPSStatus),
	0x0a: tagInfo("GPSMeasureMode", "none", FormatASCII, anyCount, anyCount, readableGPSMeasureMode),
	0x0b: tagInfo("GPSDOP", "none", FormatURational, 1, 1, readableRational),
	0x0c: tagInfo("GPSSpeedRef", "none", FormatASCII, anyCount, anyCount, readableGPSSpeedRef),
	0x0d: tagInfo("GPSSpeed", "@GPSSpeedRef", FormatURational, 1, 1, readableGPSSpeed),
	0x0e: tagInfo("GPSTrackRef", "none", FormatASCII, anyCount, anyCount, readableGPSBearingRef),
	0x0f: tagInfo("GPSTrack", "deg", FormatURational, 1, 1, readableGPSBearing),
	0x10: tagInfo("GPSImgDirectionRef", "none", FormatASCII, anyCount, anyCount, readableGPSBearingRef),
	0x11: tagInfo("GPSImgDirection", "deg", FormatURational, 1, 1, readableGPSBearing),
	0x12: asciiTag("GPSMapDatum"),
	0x13: asciiTag("GPSDestLatitudeRef"),
	0x14: tagInfo("GPSDestLatitude", "D/M/S", FormatURational, 3, 3, readableDMS),
	0x15: asciiTag("GPSDestLongitudeRef"),
	0x16: tagInfo("GPSDestLongitude", "D/M/S", FormatURational, 3, 3, readableDMS),
	0x17: tagInfo("GPSDestBearingRef", "none", FormatASCII, anyCount, anyCount, readableGPSBearingRef),
	0x18: tagInfo("GPSDestBearing", "deg", FormatURational, 1, 1, readableGPSBearing),
	0x19: tagInfo("GPSDestDistanceRef", "none", FormatASCII, anyCount, anyCount, readableGPSDestDistanceRef),
	0x1a: tagInfo("GPSDestDistance", "@GPSDestDistanceRef", FormatURational, 1, 1, readableGPSDestDistance),
	0x1b: tagInfo("GPSProcessingMethod", "none", FormatUndefined, anyCount, anyCount, readableEncodedString),
	0x1c: tagInfo("GPSAreaInformation", "none", FormatUndefined, anyCount, anyCount, readableEncodedString),
	0x1d: asciiTag("GPSDateStamp"),
	0x1e: tagInfo("GPSDifferential", "none", FormatU16, 1, 1, readableGPSDifferential),
}
