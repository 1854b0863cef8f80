// This file is part of ddr3hammer.
//
// ddr3hammer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ddr3hammer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ddr3hammer.  If not, see <https://www.gnu.org/licenses/>.

// Package ddrtest collects small test assertion helpers shared by every
// package's table-driven tests, so that test bodies read as a sequence of
// expectations rather than a sequence of if-t.Fatal blocks.
package ddrtest

import (
	"math"
	"reflect"
	"testing"
)

// ExpectSuccess fails the test unless v is a true bool or a nil error.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("expected success, got false")
		}
	case error:
		if v != nil {
			t.Errorf("expected success, got error: %v", v)
		}
	default:
		if v != nil {
			t.Errorf("expected success, got %v", v)
		}
	}
}

// ExpectFailure fails the test unless v is a false bool or a non-nil error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("expected failure, got true")
		}
	case error:
		if v == nil {
			t.Errorf("expected failure, got nil error")
		}
	default:
		if v == nil {
			t.Errorf("expected failure, got nil")
		}
	}
}

// ExpectEquality fails the test unless got deep-equals want.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected equality: got %v, want %v", got, want)
	}
}

// ExpectInequality fails the test if got deep-equals want.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("expected inequality: got %v, want something other than %v", got, want)
	}
}

// ExpectApproximate fails the test unless got is within tolerance of want.
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("expected approximate equality: got %v, want %v +/- %v", got, want, tolerance)
	}
}
