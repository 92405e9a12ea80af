package codec

import (
	"bytes"
	"encoding/gob"
)

// NewGOBCodec creates a codec for string keys and values of type V encoded with Go's gob format
func NewGOBCodec[V any]() Codec[string, V] {
	return gobCodecImpl[V]{}
}

// gobCodecImpl implements the Codec interface using gob encoding
type gobCodecImpl[V any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (g gobCodecImpl[V]) EncodeKey(key string) (string, error) {
	return key, nil
}

func (g gobCodecImpl[V]) DecodeKey(raw string) (string, error) {
	return raw, nil
}

func (g gobCodecImpl[V]) EncodeValue(value V) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl[V]) DecodeValue(raw []byte) (V, error) {
	var v V
	dec := gob.NewDecoder(bytes.NewReader(raw))
	err := dec.Decode(&v)
	return v, err
}
