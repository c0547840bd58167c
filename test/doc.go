// This file is part of ZXCore.
//
// ZXCore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXCore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXCore.  If not, see <https://www.gnu.org/licenses/>.

// Package test bundles helper functions that remove common boilerplate from
// tests written for the standard go test harness.
//
// The Expect functions report failures with t.Errorf() and return false. The
// Demand functions are the same but fail with t.Fatalf(), which is useful when
// subsequent tests depend on the result.
//
// The success and failure tests accept bool and error values. A nil value is
// considered a success because of how errors are conventionally returned.
//
// The optional tags argument of every function is prepended to the failure
// message. Useful when testing in a loop.
package test
