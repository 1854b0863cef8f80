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

package ddrerr_test

import (
	"testing"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/ddrtest"
)

const testErrorA = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := ddrerr.Errorf(testErrorA, "foo")
	ddrtest.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same head next to each other causes one of
	// them to be dropped
	f := ddrerr.Errorf(testErrorA, e)
	ddrtest.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := ddrerr.Errorf(testErrorA, "foo")
	ddrtest.ExpectSuccess(t, ddrerr.Is(e, testErrorA))
	ddrtest.ExpectFailure(t, ddrerr.Has(e, testErrorB))

	f := ddrerr.Errorf(testErrorB, e)
	ddrtest.ExpectFailure(t, ddrerr.Is(f, testErrorA))
	ddrtest.ExpectSuccess(t, ddrerr.Is(f, testErrorB))
	ddrtest.ExpectSuccess(t, ddrerr.Has(f, testErrorA))
	ddrtest.ExpectSuccess(t, ddrerr.Has(f, testErrorB))

	ddrtest.ExpectSuccess(t, ddrerr.IsAny(e))
	ddrtest.ExpectSuccess(t, ddrerr.IsAny(f))
}

func TestPlainErrorsAreNotCurated(t *testing.T) {
	e := errPlain{}
	ddrtest.ExpectFailure(t, ddrerr.IsAny(e))
	ddrtest.ExpectFailure(t, ddrerr.Is(e, testErrorA))
}

type errPlain struct{}

func (errPlain) Error() string { return "plain error" }

func TestKinds(t *testing.T) {
	e := ddrerr.Errorf(ddrerr.MapFailure, "mmap: EINVAL")
	ddrtest.ExpectSuccess(t, ddrerr.Is(e, ddrerr.MapFailure))

	n := ddrerr.Errorf(ddrerr.TemplateNotFound)
	ddrtest.ExpectEquality(t, n.Error(), "template not found")
}
