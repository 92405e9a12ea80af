package codec

import (
	"github.com/goccy/go-json"
)

// NewJSONCodec creates a codec for string keys and values of type V encoded as json
func NewJSONCodec[V any]() Codec[string, V] {
	return jsonCodecImpl[V]{}
}

// jsonCodecImpl implements the Codec interface using json encoding
type jsonCodecImpl[V any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl[V]) EncodeKey(key string) (string, error) {
	return key, nil
}

func (j jsonCodecImpl[V]) DecodeKey(raw string) (string, error) {
	return raw, nil
}

func (j jsonCodecImpl[V]) EncodeValue(value V) ([]byte, error) {
	return json.Marshal(value)
}

func (j jsonCodecImpl[V]) DecodeValue(raw []byte) (V, error) {
	var v V
	err := json.Unmarshal(raw, &v)
	return v, err
}
