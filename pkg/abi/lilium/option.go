// Copyright 2025 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lilium

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// ByteOrder is the byte order of every structure passed to the kernel.
var ByteOrder = binary.LittleEndian

// OptionAlign is the alignment, in bytes, of every extended option type.
const OptionAlign = 32

// SizeOfUUID is the size of a UUID on the wire.
const SizeOfUUID = 16

// SizeOfExtendedOptionHead is the size of an ExtendedOptionHead on the wire.
const SizeOfExtendedOptionHead = 32

// Extended option flags.
const (
	// OPTION_FLAG_IGNORE marks an option as optional. The kernel ignores
	// an optional option it does not recognize, and clears the flag on an
	// optional option it acted upon.
	OPTION_FLAG_IGNORE uint32 = 1 << 0

	// OPTION_FLAG_TYPE_MASK covers bits reserved for the option type.
	OPTION_FLAG_TYPE_MASK uint32 = 0xffff0000

	// OPTION_FLAG_RESERVED_MASK covers bits that must be zero.
	OPTION_FLAG_RESERVED_MASK = ^(OPTION_FLAG_IGNORE | OPTION_FLAG_TYPE_MASK)
)

// ExtendedOptionHead is the common header of every extended option.
//
// +marshal
type ExtendedOptionHead struct {
	Type     uuid.UUID
	Flags    uint32
	Reserved [3]uint32
}

// Optional returns true if OPTION_FLAG_IGNORE is set.
func (h *ExtendedOptionHead) Optional() bool {
	return h.Flags&OPTION_FLAG_IGNORE != 0
}

// WellFormed returns true if no reserved bits are set in the header.
func (h *ExtendedOptionHead) WellFormed() bool {
	if h.Flags&OPTION_FLAG_RESERVED_MASK != 0 {
		return false
	}
	return h.Reserved == [3]uint32{}
}

// SizeBytes implements marshal.Marshallable.SizeBytes.
func (h *ExtendedOptionHead) SizeBytes() int {
	return SizeOfExtendedOptionHead
}

// MarshalBytes implements marshal.Marshallable.MarshalBytes.
func (h *ExtendedOptionHead) MarshalBytes(dst []byte) []byte {
	dst = MarshalUUID(dst, h.Type)
	ByteOrder.PutUint32(dst[:4], h.Flags)
	dst = dst[4:]
	for _, r := range h.Reserved {
		ByteOrder.PutUint32(dst[:4], r)
		dst = dst[4:]
	}
	return dst
}

// UnmarshalBytes implements marshal.Marshallable.UnmarshalBytes.
func (h *ExtendedOptionHead) UnmarshalBytes(src []byte) []byte {
	h.Type, src = UnmarshalUUID(src)
	h.Flags = ByteOrder.Uint32(src[:4])
	src = src[4:]
	for i := range h.Reserved {
		h.Reserved[i] = ByteOrder.Uint32(src[:4])
		src = src[4:]
	}
	return src
}

// MarshalUUID writes u in the kernel's two-word layout: the low 64 bits
// (the last sixteen hex digits of the canonical form) first, followed by the
// high 64 bits, each in native byte order. It returns the remainder of dst.
func MarshalUUID(dst []byte, u uuid.UUID) []byte {
	ByteOrder.PutUint64(dst[0:8], binary.BigEndian.Uint64(u[8:16]))
	ByteOrder.PutUint64(dst[8:16], binary.BigEndian.Uint64(u[0:8]))
	return dst[SizeOfUUID:]
}

// UnmarshalUUID is the inverse of MarshalUUID.
func UnmarshalUUID(src []byte) (uuid.UUID, []byte) {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:16], ByteOrder.Uint64(src[0:8]))
	binary.BigEndian.PutUint64(u[0:8], ByteOrder.Uint64(src[8:16]))
	return u, src[SizeOfUUID:]
}

// UUIDWords returns the (minor, major) words of u as the kernel sees them.
func UUIDWords(u uuid.UUID) (minor, major uint64) {
	return binary.BigEndian.Uint64(u[8:16]), binary.BigEndian.Uint64(u[0:8])
}
