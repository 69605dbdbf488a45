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

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/test"
)

const testPattern = "test error: %v"
const wrapPattern = "wrapped: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("sound: %v", "invalid quality")
	test.ExpectEquality(t, e.Error(), "sound: invalid quality")

	// wrapping with the same leading part should not duplicate the part
	f := curated.Errorf("sound: %v", e)
	test.ExpectEquality(t, f.Error(), "sound: invalid quality")
}

func TestIsAndHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectSuccess(t, curated.Has(e, testPattern))

	f := curated.Errorf(wrapPattern, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectEquality(t, f.Error(), "wrapped: test error: 10")

	// uncurated errors
	g := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(g))
	test.ExpectFailure(t, curated.Has(g, testPattern))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("wav: %v", io.ErrUnexpectedEOF)
	test.ExpectSuccess(t, errors.Is(e, io.ErrUnexpectedEOF))
	test.ExpectFailure(t, errors.Is(e, io.EOF))
}
