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

// Package peripherals implements the devices that can be attached to the
// Spectrum's expansion bus.
//
// Devices are attached to the Registry. Only one device of each ID can be
// attached at any one time. Attaching a device with the same ID as an
// existing device replaces it.
//
// Devices that respond to port reads or writes implement the Port interface.
// Devices that produce sound implement the Audio interface. Devices that
// accept input from the user, such as joysticks, implement the Input
// interface.
package peripherals
