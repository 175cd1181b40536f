package rawvol

import (
	"encoding/binary"
	"math/bits"
	"slices"
)

// ByteOrder records whether the bytes of each stored value need to be reversed to
// match the byte order of this platform.  It is resolved when a volume is configured,
// so readers only ever ask whether to swap.
type ByteOrder uint8

const (
	Native ByteOrder = iota
	Swapped
)

var nativeBigEndian = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

// NativeBigEndian returns true if this platform stores values most significant byte first.
func NativeBigEndian() bool {
	return nativeBigEndian
}

// BigEndianOrder returns the ByteOrder for data stored big endian.
func BigEndianOrder() ByteOrder {
	if nativeBigEndian {
		return Native
	}
	return Swapped
}

// LittleEndianOrder returns the ByteOrder for data stored little endian.
func LittleEndianOrder() ByteOrder {
	if nativeBigEndian {
		return Swapped
	}
	return Native
}

// DataByteOrder returns the byte order of the stored data.
func (o ByteOrder) DataByteOrder() binary.ByteOrder {
	if (o == Swapped) != nativeBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// String reports the byte order of the stored data, e.g. "BigEndian".
func (o ByteOrder) String() string {
	if o.DataByteOrder() == binary.BigEndian {
		return "BigEndian"
	}
	return "LittleEndian"
}

// SwapRange reverses the bytes of each width-sized value in b in place.  Widths of
// 0 or 1 leave b untouched; a trailing partial value is left untouched.
func SwapRange(b []byte, width int) {
	if width < 2 {
		return
	}
	n := len(b) - len(b)%width
	switch width {
	case 2:
		for i := 0; i < n; i += 2 {
			b[i], b[i+1] = b[i+1], b[i]
		}
	case 4:
		for i := 0; i < n; i += 4 {
			v := binary.LittleEndian.Uint32(b[i:])
			binary.LittleEndian.PutUint32(b[i:], bits.ReverseBytes32(v))
		}
	case 8:
		for i := 0; i < n; i += 8 {
			v := binary.LittleEndian.Uint64(b[i:])
			binary.LittleEndian.PutUint64(b[i:], bits.ReverseBytes64(v))
		}
	default:
		for i := 0; i < n; i += width {
			slices.Reverse(b[i : i+width])
		}
	}
}
