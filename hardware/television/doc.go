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

// Package television is the output stage of the emulation. The hardware sends
// a completed screen buffer at the end of every frame with NewFrame() and
// blocks of audio samples with SetAudio(). Neither is presented by the
// television itself. Instead, PixelRenderers, FrameTriggers and AudioMixers
// are added and the television forwards everything to them.
//
// The television also owns the frame limiter. The limiter is applied after
// every frame has been forwarded and can be turned off with SetFPSCap().
package television
