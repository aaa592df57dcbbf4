// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	_ encoding.TextUnmarshaler = (*Rat[int32])(nil)
	_ encoding.TextMarshaler   = Rat[int32]{}
)

// Rat is a TIFF rational number.
// Unlike math/big.Rat it is never normalized: Num and Den are kept as found
// in the file so the value can be written back unchanged.
type Rat[T int32 | uint32] struct {
	Num T
	Den T
}

// URational is the TIFF RATIONAL type.
type URational = Rat[uint32]

// IRational is the TIFF SRATIONAL type.
type IRational = Rat[int32]

// Float64 returns Num/Den.
// A zero denominator is used by some writers to mark an unknown value,
// in which case the result is ±Inf or NaN.
func (r Rat[T]) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String returns the rational in its canonical "n/d" form.
func (r Rat[T]) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// IsFinite reports whether Float64 returns a finite number.
func (r Rat[T]) IsFinite() bool {
	return r.Den != 0
}

func (r *Rat[T]) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.Contains(s, "/") {
		num, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
		}
		r.Num = T(num)
		r.Den = 1
		return nil
	}
	if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
		return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
	}
	return nil
}

func (r Rat[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

// joinValues formats the elements of s separated by ", ".
func joinValues[T any](s []T) string {
	var sb strings.Builder
	for i, v := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	return sb.String()
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

// trimTrailingNulls removes the NUL padding ASCII values usually carry.
func trimTrailingNulls(b []byte) []byte {
	hi := len(b)
	for hi > 0 && b[hi-1] == 0 {
		hi--
	}
	return b[:hi]
}
