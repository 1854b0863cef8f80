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

package exploit

import (
	"encoding/hex"
	"os"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
)

// dumpFileName is the fixed name a verified flip's victim page is dumped
// to, in the process's current directory.
const dumpFileName = "sudo_out"

// dumpVictimPage writes page as a flat run of two-hex-digit bytes, no
// offsets or line breaks, to path.
func dumpVictimPage(path string, page []byte) error {
	encoded := make([]byte, hex.EncodedLen(len(page)))
	hex.Encode(encoded, page)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return ddrerr.Errorf(ddrerr.IoFailure, err)
	}
	return nil
}
