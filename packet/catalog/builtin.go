/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package catalog

import "github.com/nalix-io/nalix-core/packet"

// RegisterBuiltins registers the deserializers for every framework-internal
// packet type (reserved magic range 0xA000-0xAFFF) into c. Application code
// calls this once during startup, before registering its own packet types
// and calling Freeze.
func RegisterBuiltins(c *Catalog) {
	c.Register(packet.MagicHandshake, func() packet.Packet { return &packet.HandshakePacket{} })
	c.Register(packet.MagicControl, func() packet.Packet { return &packet.ControlPacket{} })
	c.Register(packet.MagicText256, func() packet.Packet { return &packet.TextPacket{} })
	c.Register(packet.MagicText512, func() packet.Packet { return &packet.TextPacket{} })
	c.Register(packet.MagicText1024, func() packet.Packet { return &packet.TextPacket{} })
	c.Register(packet.MagicBinary128, func() packet.Packet { return &packet.BinaryPacket{} })
	c.Register(packet.MagicBinary256, func() packet.Packet { return &packet.BinaryPacket{} })
	c.Register(packet.MagicBinary512, func() packet.Packet { return &packet.BinaryPacket{} })
	c.Register(packet.MagicBinary1024, func() packet.Packet { return &packet.BinaryPacket{} })
	c.Register(packet.MagicDirective, func() packet.Packet { return &packet.DirectivePacket{} })
	c.Register(packet.MagicTimeSync, func() packet.Packet { return &packet.TimeSyncPacket{} })
}
