// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package test

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// id returns a prefix for failure messages built from the tags.
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := strings.Builder{}
	for _, t := range tags {
		s.WriteString(fmt.Sprintf("%v: ", t))
	}
	return s.String()
}

// expect returns true if the value represents success. Supported types are
// bool, error and nil.
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}

	return false
}

// ExpectFailure tests argument v for a failure condition suitable for it's
// type. Currently supported types are bool and error.
//
// If the type is nil then the test will fail.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sa failure value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// ExpectSuccess tests argument v for a success condition suitable for it's
// type. Currently supported types are bool and error.
//
// If the type is nil then the test will succeed.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Errorf("%sa success value is expected for type %T (%v)", id(tags...), v, v)
		return false
	}
	return true
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
func ExpectInequality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v == expectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// number types supported by ExpectApproximate.
type number interface {
	~float32 | ~float64 | ~int | ~int16 | ~int32 | ~int64
}

// ExpectApproximate is used to test approximate equality between one value
// and another. Tolerance is an absolute difference.
func ExpectApproximate[T number](t *testing.T, v T, expectedValue T, tolerance float64, tags ...any) bool {
	t.Helper()
	if math.Abs(float64(v)-float64(expectedValue)) > tolerance {
		t.Errorf("%sapproximation test of type %T failed: '%v' is not within %v of '%v'", id(tags...), v, v, tolerance, expectedValue)
		return false
	}
	return true
}
