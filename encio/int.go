package encio

// DecodeInt8 reads an int8 from buff.
func DecodeInt8(buff []byte) int8 {
	return int8(buff[0])
}

// DecodeInt16 reads a little-endian int16 from buff.
func DecodeInt16(buff []byte) int16 {
	n := int16(buff[0])
	n |= int16(buff[1]) << 8
	return n
}

// DecodeInt32 reads a little-endian int32 from buff.
func DecodeInt32(buff []byte) int32 {
	n := int32(buff[0])
	n |= int32(buff[1]) << 8
	n |= int32(buff[2]) << 16
	n |= int32(buff[3]) << 24
	return n
}

// EncodeInt16 writes a little-endian int16 to buff.
func EncodeInt16(buff []byte, n int16) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
}

// EncodeInt32 writes a little-endian int32 to buff.
func EncodeInt32(buff []byte, n int32) {
	buff[0] = uint8(n)
	buff[1] = uint8(n >> 8)
	buff[2] = uint8(n >> 16)
	buff[3] = uint8(n >> 24)
}

// ReadInt8 reads an int8 from s.
func ReadInt8(s *Source) (int8, error) {
	b, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return DecodeInt8(b), nil
}

// ReadInt16 reads a little-endian int16 from s.
func ReadInt16(s *Source) (int16, error) {
	b, err := s.Read(2)
	if err != nil {
		return 0, err
	}
	return DecodeInt16(b), nil
}

// ReadInt32 reads a little-endian int32 from s.
func ReadInt32(s *Source) (int32, error) {
	b, err := s.Read(4)
	if err != nil {
		return 0, err
	}
	return DecodeInt32(b), nil
}
