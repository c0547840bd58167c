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

package notifications

// Channel is an implementation of Notify that sends notices to a buffered
// channel. If the channel is full the notice is dropped and counted.
type Channel struct {
	C       chan Notice
	Dropped int
}

// NewChannel is the preferred method of initialisation for the Channel type.
func NewChannel(size int) *Channel {
	return &Channel{
		C: make(chan Notice, size),
	}
}

// Notify implements the Notify interface.
func (ch *Channel) Notify(notice Notice) error {
	select {
	case ch.C <- notice:
	default:
		ch.Dropped++
	}
	return nil
}

// Drain returns all pending notices.
func (ch *Channel) Drain() []Notice {
	var n []Notice
	for {
		select {
		case v := <-ch.C:
			n = append(n, v)
		default:
			return n
		}
	}
}
