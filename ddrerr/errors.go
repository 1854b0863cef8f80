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

package ddrerr

import (
	"fmt"
	"strings"
)

// Values is the type used to specify arguments for a curated error.
type Values []interface{}

// curated errors allow code to specify a predefined error head and not worry
// too much about the message behind that head and how the message will be
// formatted on output.
type curated struct {
	head   string
	values Values
}

// Errorf creates a new curated error. The head is also used, unformatted, as
// the comparison key for Is/Has.
func Errorf(head string, values ...interface{}) error {
	return curated{
		head:   head,
		values: values,
	}
}

// Error returns the normalised error message. Normalisation being the
// removal of duplicate adjacent message parts.
//
// Implements the go language error interface.
func (er curated) Error() string {
	s := fmt.Errorf(er.head, er.values...).Error()

	// de-duplicate error message parts
	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// Head returns the leading part of the message, ie. the head passed to
// Errorf. If err is a plain error then Error() is returned instead.
func Head(err error) string {
	if er, ok := err.(curated); ok {
		return er.head
	}
	return err.Error()
}

// IsAny reports whether err is curated by this package.
func IsAny(err error) bool {
	if err == nil {
		return false
	}

	_, ok := err.(curated)
	return ok
}

// Is reports whether err has the given head.
func Is(err error, head string) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(curated); ok {
		return er.head == head
	}
	return false
}

// Has reports whether head appears anywhere in err's causal chain.
func Has(err error, head string) bool {
	if err == nil {
		return false
	}

	if !IsAny(err) {
		return false
	}

	if Is(err, head) {
		return true
	}

	for _, v := range err.(curated).values {
		if e, ok := v.(curated); ok {
			if Has(e, head) {
				return true
			}
		}
	}

	return false
}
