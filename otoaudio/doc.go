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

// Package otoaudio plays the audio of the emulation through the host's sound
// device. The Audio type implements the television.AudioMixer interface.
//
// Audio is passed from the emulation to the sound device through a queue.
// The queue is limited in length so that the sound does not lag too far behind
// the picture. If the sound device asks for more audio than is in the queue
// then the most recent sample is repeated. A sudden drop to silence is far
// more noticeable than a brief held note.
//
// The package can be built with the headless build constraint, in which case
// the Audio type discards everything it is sent. This is useful for building
// on systems without a sound device.
package otoaudio
