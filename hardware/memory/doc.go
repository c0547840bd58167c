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

// Package memory implements the memory controller of the ZX Spectrum family.
//
// The address space is divided into eight windows of 8K each. Every window
// has a read binding and a write binding, both of which are indices into an
// arena of 8K banks:
//
//	  arena index   bank
//	  -----------   ----
//	   0 - 15       RAM (16K bank n occupies 2n and 2n+1)
//	  16 - 23       ROM (16K ROM n occupies 16+2n and 16+2n+1)
//	  24            junk. absorbs writes to read-only windows
//	  25            unconnected. reads as 0xff
//
// Paging is nothing more than rebinding a window. No data is copied and every
// window always refers to a valid bank. The hardware decides when to rebind
// in response to port writes.
//
//	                         debugger / snapshots
//	                                 |
//	                                 | Peek() / Poke()
//	                                 \/
//
//	    CPU ---- Bus ---- MEMORY ---- Flush() ---- SCREEN
//
//	                                 |
//	                                 | Delay()
//	                                 \/
//
//	                          contention table
//
// Every timed access is given the clock at the start of the access and returns
// the clock at the end of it. Contention for a contended bank is applied
// before the fixed three t-state cost of the access.
//
// A write to the bank holding the displayed screen that changes a byte of the
// bitmap or attributes causes the screen to be brought up to date before the
// write lands.
package memory
