package rawvol

import (
	"bytes"
	"encoding/binary"
	"math/rand"

	. "github.com/janelia-flyem/go/gocheck"
)

type ByteOrderSuite struct{}

var _ = Suite(&ByteOrderSuite{})

func (s *ByteOrderSuite) TestSwapSelfInverse(c *C) {
	r := rand.New(rand.NewSource(7))
	for _, width := range []int{2, 4, 8, 3} {
		orig := make([]byte, width*37)
		r.Read(orig)
		row := append([]byte(nil), orig...)

		SwapRange(row, width)
		c.Assert(bytes.Equal(row, orig), Equals, false, Commentf("width %d", width))
		SwapRange(row, width)
		c.Assert(row, DeepEquals, orig, Commentf("width %d", width))
	}
}

func (s *ByteOrderSuite) TestSwapValues(c *C) {
	row := make([]byte, 8)
	binary.BigEndian.PutUint16(row[0:], 0x0102)
	binary.BigEndian.PutUint16(row[2:], 0xA0B0)
	SwapRange(row[:4], 2)
	c.Assert(binary.LittleEndian.Uint16(row[0:]), Equals, uint16(0x0102))
	c.Assert(binary.LittleEndian.Uint16(row[2:]), Equals, uint16(0xA0B0))

	binary.BigEndian.PutUint64(row, 0x0102030405060708)
	SwapRange(row, 8)
	c.Assert(binary.LittleEndian.Uint64(row), Equals, uint64(0x0102030405060708))

	binary.BigEndian.PutUint32(row, 0xDEADBEEF)
	SwapRange(row[:4], 4)
	c.Assert(binary.LittleEndian.Uint32(row), Equals, uint32(0xDEADBEEF))

	// width 1 and partial trailing values are untouched
	single := []byte{1, 2, 3}
	SwapRange(single, 1)
	c.Assert(single, DeepEquals, []byte{1, 2, 3})
	SwapRange(single, 2)
	c.Assert(single, DeepEquals, []byte{2, 1, 3})
}

func (s *ByteOrderSuite) TestEndianOrders(c *C) {
	c.Assert(BigEndianOrder(), Not(Equals), LittleEndianOrder())
	c.Assert(BigEndianOrder().DataByteOrder(), Equals, binary.ByteOrder(binary.BigEndian))
	c.Assert(LittleEndianOrder().DataByteOrder(), Equals, binary.ByteOrder(binary.LittleEndian))
	c.Assert(BigEndianOrder().String(), Equals, "BigEndian")
	c.Assert(LittleEndianOrder().String(), Equals, "LittleEndian")
	if NativeBigEndian() {
		c.Assert(BigEndianOrder(), Equals, Native)
	} else {
		c.Assert(LittleEndianOrder(), Equals, Native)
	}
}
