// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding/binary"
	"io"
	"math"
	"os"
)

// All readers in this file work on an in-memory byte slice and report
// a short slice by returning ok=false. They never panic.

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func read2(le bool, b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return byteOrder(le).Uint16(b), true
}

func read2s(le bool, b []byte) (int16, bool) {
	v, ok := read2(le, b)
	return int16(v), ok
}

func read4(le bool, b []byte) (uint32, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return byteOrder(le).Uint32(b), true
}

func read4s(le bool, b []byte) (int32, bool) {
	v, ok := read4(le, b)
	return int32(v), ok
}

func readFloat32(le bool, b []byte) (float32, bool) {
	v, ok := read4(le, b)
	return math.Float32frombits(v), ok
}

func readFloat64(le bool, b []byte) (float64, bool) {
	if len(b) < 8 {
		return 0, false
	}
	return math.Float64frombits(byteOrder(le).Uint64(b)), true
}

func readURational(le bool, b []byte) (URational, bool) {
	if len(b) < 8 {
		return URational{}, false
	}
	n, _ := read4(le, b)
	d, _ := read4(le, b[4:])
	return URational{Num: n, Den: d}, true
}

func readIRational(le bool, b []byte) (IRational, bool) {
	if len(b) < 8 {
		return IRational{}, false
	}
	n, _ := read4s(le, b)
	d, _ := read4s(le, b[4:])
	return IRational{Num: n, Den: d}, true
}

// readArray reads count elements of size bytes each from the front of b.
// It fails as a whole if b is too short; the byte count is computed in
// 64 bits so an attacker controlled count cannot overflow it.
func readArray[T any](size int, count uint32, b []byte, conv func([]byte) (T, bool)) ([]T, bool) {
	total := uint64(size) * uint64(count)
	if total > uint64(len(b)) {
		return nil, false
	}
	out := make([]T, 0, count)
	for i := 0; i < int(count); i++ {
		v, ok := conv(b[i*size:])
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func readI8Array(count uint32, b []byte) ([]int8, bool) {
	return readArray(1, count, b, func(b []byte) (int8, bool) {
		return int8(b[0]), true
	})
}

func readU16Array(le bool, count uint32, b []byte) ([]uint16, bool) {
	return readArray(2, count, b, func(b []byte) (uint16, bool) { return read2(le, b) })
}

func readI16Array(le bool, count uint32, b []byte) ([]int16, bool) {
	return readArray(2, count, b, func(b []byte) (int16, bool) { return read2s(le, b) })
}

func readU32Array(le bool, count uint32, b []byte) ([]uint32, bool) {
	return readArray(4, count, b, func(b []byte) (uint32, bool) { return read4(le, b) })
}

func readI32Array(le bool, count uint32, b []byte) ([]int32, bool) {
	return readArray(4, count, b, func(b []byte) (int32, bool) { return read4s(le, b) })
}

func readF32Array(le bool, count uint32, b []byte) ([]float32, bool) {
	return readArray(4, count, b, func(b []byte) (float32, bool) { return readFloat32(le, b) })
}

func readF64Array(le bool, count uint32, b []byte) ([]float64, bool) {
	return readArray(8, count, b, func(b []byte) (float64, bool) { return readFloat64(le, b) })
}

func readURationalArray(le bool, count uint32, b []byte) ([]URational, bool) {
	return readArray(8, count, b, func(b []byte) (URational, bool) { return readURational(le, b) })
}

func readIRationalArray(le bool, count uint32, b []byte) ([]IRational, bool) {
	return readArray(8, count, b, func(b []byte) (IRational, bool) { return readIRational(le, b) })
}

func appendOrder(le bool) binary.AppendByteOrder {
	if le {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func appendUint16(b []byte, le bool, v uint16) []byte {
	return appendOrder(le).AppendUint16(b, v)
}

func appendUint32(b []byte, le bool, v uint32) []byte {
	return appendOrder(le).AppendUint32(b, v)
}

// putUint32At backfills a 4 byte offset field that was reserved earlier.
func putUint32At(b []byte, pos int, le bool, v uint32) {
	byteOrder(le).PutUint32(b[pos:pos+4], v)
}

// 10 MB should be plenty for image metadata.
const defaultMaxBufSize = 10 * 1024 * 1024

// readAllLimited reads r into memory, failing if it holds more than max bytes.
func readAllLimited(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, newInvalidFormatErrorf("%w: more than %d bytes", ErrBufferTooLarge, max)
	}
	return b, nil
}

func readFile(filename string, max int64) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAllLimited(f, max)
}
