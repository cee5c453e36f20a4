// Package codec converts typed values to the bytes kept in the store and back.
// Use them with replaycache.StoreEncoded and replaycache.GetDecoded; a
// codec's Decode method is also a valid transform for replaycache.GetAs.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
