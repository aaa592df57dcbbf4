// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
)

// Value is the typed payload of an entry.
// Every TIFF field is an array, so all numeric values are slices even
// when the count is 1.
type Value interface {
	fmt.Stringer
	isValue()
}

type (
	U8Value        []uint8
	U16Value       []uint16
	U32Value       []uint32
	URationalValue []URational
	I8Value        []int8
	I16Value       []int16
	I32Value       []int32
	IRationalValue []IRational
	F32Value       []float32
	F64Value       []float64

	// ASCIIValue is an ASCII payload with the trailing NUL padding removed.
	ASCIIValue string

	// UndefinedValue is an opaque payload whose meaning depends on the tag.
	UndefinedValue struct {
		Bytes        []byte
		LittleEndian bool
	}

	// UnknownValue is the payload of an entry with a non standard format code.
	UnknownValue struct {
		Bytes        []byte
		LittleEndian bool
	}

	// InvalidValue is a payload that could not be converted to its declared format.
	InvalidValue struct {
		Bytes        []byte
		LittleEndian bool
		Format       Format
		Count        uint32
	}
)

func (U8Value) isValue()        {}
func (U16Value) isValue()       {}
func (U32Value) isValue()       {}
func (URationalValue) isValue() {}
func (I8Value) isValue()        {}
func (I16Value) isValue()       {}
func (I32Value) isValue()       {}
func (IRationalValue) isValue() {}
func (F32Value) isValue()       {}
func (F64Value) isValue()       {}
func (ASCIIValue) isValue()     {}
func (UndefinedValue) isValue() {}
func (UnknownValue) isValue()   {}
func (InvalidValue) isValue()   {}

func (v U8Value) String() string        { return joinValues(v) }
func (v U16Value) String() string       { return joinValues(v) }
func (v U32Value) String() string       { return joinValues(v) }
func (v URationalValue) String() string { return joinValues(v) }
func (v I8Value) String() string        { return joinValues(v) }
func (v I16Value) String() string       { return joinValues(v) }
func (v I32Value) String() string       { return joinValues(v) }
func (v IRationalValue) String() string { return joinValues(v) }
func (v F32Value) String() string       { return joinValues(v) }
func (v F64Value) String() string       { return joinValues(v) }
func (v ASCIIValue) String() string     { return string(v) }
func (v UndefinedValue) String() string { return joinValues(v.Bytes) }

func (v UnknownValue) String() string {
	return fmt.Sprintf("<unknown %s>", joinValues(v.Bytes))
}

func (v InvalidValue) String() string {
	return fmt.Sprintf("<invalid %s>", joinValues(v.Bytes))
}

// newValue converts the resolved payload of e to a typed value.
// A payload that does not match the declared format and count becomes an InvalidValue.
func newValue(e *IFDEntry) Value {
	var (
		v  Value
		ok bool
	)

	le, count, data := e.LittleEndian, e.Count, e.Data

	switch e.Format {
	case FormatU8:
		if ok = uint64(len(data)) >= uint64(count); ok {
			v = U8Value(bytes.Clone(data[:count]))
		}
	case FormatASCII:
		if ok = uint64(len(data)) >= uint64(count); ok {
			v = ASCIIValue(trimTrailingNulls(data[:count]))
		}
	case FormatU16:
		var a []uint16
		a, ok = readU16Array(le, count, data)
		v = U16Value(a)
	case FormatU32:
		var a []uint32
		a, ok = readU32Array(le, count, data)
		v = U32Value(a)
	case FormatURational:
		var a []URational
		a, ok = readURationalArray(le, count, data)
		v = URationalValue(a)
	case FormatI8:
		var a []int8
		a, ok = readI8Array(count, data)
		v = I8Value(a)
	case FormatUndefined:
		if ok = uint64(len(data)) >= uint64(count); ok {
			v = UndefinedValue{Bytes: bytes.Clone(data[:count]), LittleEndian: le}
		}
	case FormatI16:
		var a []int16
		a, ok = readI16Array(le, count, data)
		v = I16Value(a)
	case FormatI32:
		var a []int32
		a, ok = readI32Array(le, count, data)
		v = I32Value(a)
	case FormatIRational:
		var a []IRational
		a, ok = readIRationalArray(le, count, data)
		v = IRationalValue(a)
	case FormatF32:
		var a []float32
		a, ok = readF32Array(le, count, data)
		v = F32Value(a)
	case FormatF64:
		var a []float64
		a, ok = readF64Array(le, count, data)
		v = F64Value(a)
	default:
		return UnknownValue{Bytes: bytes.Clone(data), LittleEndian: le}
	}

	if !ok {
		return InvalidValue{Bytes: bytes.Clone(data), LittleEndian: le, Format: e.Format, Count: count}
	}
	return v
}

// ValueInt64 returns element i of an integer value.
// It returns false for rationals, floats, strings and out of range indices.
func ValueInt64(v Value, i int) (int64, bool) {
	if i < 0 {
		return 0, false
	}
	switch vv := v.(type) {
	case U8Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case U16Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case U32Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case I8Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case I16Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case I32Value:
		if i < len(vv) {
			return int64(vv[i]), true
		}
	case UndefinedValue:
		if i < len(vv.Bytes) {
			return int64(vv.Bytes[i]), true
		}
	}
	return 0, false
}

// ValueFloat64 returns element i of a numeric value as a float64.
// Rationals are divided out.
func ValueFloat64(v Value, i int) (float64, bool) {
	if i < 0 {
		return 0, false
	}
	switch vv := v.(type) {
	case URationalValue:
		if i < len(vv) {
			return vv[i].Float64(), true
		}
	case IRationalValue:
		if i < len(vv) {
			return vv[i].Float64(), true
		}
	case F32Value:
		if i < len(vv) {
			return float64(vv[i]), true
		}
	case F64Value:
		if i < len(vv) {
			return vv[i], true
		}
	default:
		n, ok := ValueInt64(v, i)
		return float64(n), ok
	}
	return 0, false
}

// valuesEqual compares two values element by element.
// Floats are compared by bit pattern so NaN payloads compare equal to themselves.
func valuesEqual(a, b Value) bool {
	switch aa := a.(type) {
	case F32Value:
		bb, ok := b.(F32Value)
		if !ok || len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if math.Float32bits(aa[i]) != math.Float32bits(bb[i]) {
				return false
			}
		}
		return true
	case F64Value:
		bb, ok := b.(F64Value)
		if !ok || len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if math.Float64bits(aa[i]) != math.Float64bits(bb[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
