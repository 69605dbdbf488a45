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

package curated

import (
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. Note that unlike the fmt.Errorf()
// function the first argument is named "pattern" not "format". This is because
// we use the pattern string in the Is() and Has() functions.
func Errorf(pattern string, values ...any) error {
	// formatting takes place in the Error() function
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Normalisation being the removal
// of duplicate adjacent error messsage parts in the error message chains.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.Split(s, ": ")
	n := make([]string, 0, len(p))
	for i := range p {
		if i > 0 && p[i] == p[i-1] {
			continue
		}
		n = append(n, p[i])
	}

	return strings.Join(n, ": ")
}

// Unwrap returns any error values used to create the curated error.
func (er curated) Unwrap() []error {
	var errs []error
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// IsAny checks if error is being curated by this package.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if the pattern appears anywhere in the error chain.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	for _, v := range err.(curated).values {
		if e, ok := v.(curated); ok {
			if Has(e, pattern) {
				return true
			}
		}
	}

	return false
}
