// Package codec converts keys and values between Go types and the strings and byte
// slices stored on the server. A connection manager is parameterized by one codec and
// every command executor obtained from it encodes arguments and decodes replies with it.
//
// Key Components:
//
//   - Codec: Core interface with EncodeKey/DecodeKey and EncodeValue/DecodeValue.
//
//   - NewStringCodec / NewBytesCodec: Identity codecs for string keys with string or raw
//     byte values. These are the codecs used by the command line client.
//
//   - NewJSONCodec: Values of any type encoded as json. Human readable, useful when other
//     systems read the same keys.
//
//   - NewMsgPackCodec: Values of any type encoded as MessagePack. Smaller payloads than json.
//
//   - NewGOBCodec: Values encoded with Go's gob format. Only readable by Go programs.
//
// Thread Safety:
//
//	All codecs are stateless and safe for concurrent use across multiple goroutines.
//
// Usage:
//
//	type User struct{ Name string }
//	mgr := manager.NewManager(codec.NewJSONCodec[User](), false, true)
package codec
