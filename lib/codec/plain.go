package codec

// NewStringCodec creates a codec that stores string keys and string values unchanged
func NewStringCodec() Codec[string, string] {
	return stringCodecImpl{}
}

// NewBytesCodec creates a codec for string keys and raw byte values
func NewBytesCodec() Codec[string, []byte] {
	return bytesCodecImpl{}
}

type stringCodecImpl struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (stringCodecImpl) EncodeKey(key string) (string, error) { return key, nil }

func (stringCodecImpl) DecodeKey(raw string) (string, error) { return raw, nil }

func (stringCodecImpl) EncodeValue(value string) ([]byte, error) { return []byte(value), nil }

func (stringCodecImpl) DecodeValue(raw []byte) (string, error) { return string(raw), nil }

type bytesCodecImpl struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (bytesCodecImpl) EncodeKey(key string) (string, error) { return key, nil }

func (bytesCodecImpl) DecodeKey(raw string) (string, error) { return raw, nil }

func (bytesCodecImpl) EncodeValue(value []byte) ([]byte, error) {
	if value == nil {
		return []byte{}, nil
	}
	return value, nil
}

func (bytesCodecImpl) DecodeValue(raw []byte) ([]byte, error) { return raw, nil }
