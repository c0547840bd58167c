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

// Notice describes events that somehow change the presentation of the
// emulation.
type Notice string

// List of defined notifications.
const (
	// a tape has been inserted into or ejected from the deck
	NotifyTapeInserted Notice = "NotifyTapeInserted"
	NotifyTapeEjected  Notice = "NotifyTapeEjected"

	// tape playback has started or stopped. the tape stops at the end of the
	// tape, on a stop block, on user request or after the auto-stop timeout
	NotifyTapeStarted Notice = "NotifyTapeStarted"
	NotifyTapeStopped Notice = "NotifyTapeStopped"

	// the deck has moved to the next block on the tape
	NotifyTapeNextBlock Notice = "NotifyTapeNextBlock"

	// a data block was loaded in block mode rather than by emulating pulses
	NotifyTapeFlashLoad Notice = "NotifyTapeFlashLoad"

	// sent at the end of every frame
	NotifyFrameEnd Notice = "NotifyFrameEnd"

	// a snapshot has been applied to the machine
	NotifySnapshotLoaded Notice = "NotifySnapshotLoaded"

	// a screenshot has been taken
	NotifyScreenshot Notice = "NotifyScreenshot"
)

// Notify is used for direct communication between the hardware and the host.
type Notify interface {
	Notify(notice Notice) error
}
