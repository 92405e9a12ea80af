package codec

// Codec converts keys and values between their Go representation and the
// representation stored on the server. Keys are strings on the wire, values are bytes.
type Codec[K any, V any] interface {
	// EncodeKey converts a key into the string sent to the server
	EncodeKey(key K) (string, error)
	// DecodeKey converts a key returned by the server (e.g. by KEYS) back into K
	DecodeKey(raw string) (K, error)
	// EncodeValue converts a value into the bytes sent to the server
	EncodeValue(value V) ([]byte, error)
	// DecodeValue converts bytes returned by the server back into V
	DecodeValue(raw []byte) (V, error)
}
