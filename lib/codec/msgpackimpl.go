package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// NewMsgPackCodec creates a codec for string keys and values of type V encoded as MessagePack
func NewMsgPackCodec[V any]() Codec[string, V] {
	return msgpackCodecImpl[V]{}
}

// msgpackCodecImpl implements the Codec interface using MessagePack encoding
type msgpackCodecImpl[V any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (m msgpackCodecImpl[V]) EncodeKey(key string) (string, error) {
	return key, nil
}

func (m msgpackCodecImpl[V]) DecodeKey(raw string) (string, error) {
	return raw, nil
}

func (m msgpackCodecImpl[V]) EncodeValue(value V) ([]byte, error) {
	return msgpack.Marshal(value)
}

func (m msgpackCodecImpl[V]) DecodeValue(raw []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(raw, &v)
	return v, err
}
