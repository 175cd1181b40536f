package rawvol

import (
	"math/rand"

	. "github.com/janelia-flyem/go/gocheck"
)

type SerializeSuite struct {
	data []byte
}

var _ = Suite(&SerializeSuite{})

func (s *SerializeSuite) SetUpSuite(c *C) {
	r := rand.New(rand.NewSource(11))
	s.data = make([]byte, 64*1024)
	// half random, half runs so compressors have something to do
	r.Read(s.data[:32*1024])
	for i := 32 * 1024; i < len(s.data); i++ {
		s.data[i] = byte(i / 512)
	}
}

func (s *SerializeSuite) TestRoundTrip(c *C) {
	for _, compress := range []Compression{Uncompressed, Snappy, Gzip, Zstd} {
		for _, checksum := range []Checksum{NoChecksum, CRC32} {
			serialized, err := SerializeData(s.data, compress, checksum)
			c.Assert(err, IsNil)

			data, gotCompress, err := DeserializeData(serialized, true)
			c.Assert(err, IsNil, Commentf("%s/%s", compress, checksum))
			c.Assert(gotCompress, Equals, compress)
			c.Assert(data, DeepEquals, s.data, Commentf("%s/%s", compress, checksum))
		}
	}
}

func (s *SerializeSuite) TestBadChecksum(c *C) {
	serialized, err := SerializeData(s.data, Snappy, CRC32)
	c.Assert(err, IsNil)
	serialized[len(serialized)-1] ^= 0xFF
	_, _, err = DeserializeData(serialized, true)
	c.Assert(err, ErrorMatches, "bad checksum.*")
}

func (s *SerializeSuite) TestFormatText(c *C) {
	var compress Compression
	c.Assert(compress.UnmarshalText([]byte("ZSTD")), IsNil)
	c.Assert(compress, Equals, Zstd)
	c.Assert(compress.UnmarshalText([]byte("lzma")), NotNil)

	var checksum Checksum
	c.Assert(checksum.UnmarshalText([]byte("crc32")), IsNil)
	c.Assert(checksum, Equals, CRC32)

	format := EncodeSerializationFormat(Gzip, CRC32)
	gotCompress, gotChecksum := DecodeSerializationFormat(format)
	c.Assert(gotCompress, Equals, Gzip)
	c.Assert(gotChecksum, Equals, CRC32)
}
