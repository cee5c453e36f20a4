package replaycache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/replaycache/codec"
)

// GetAs reads key and, on a hit, applies transform to the raw bytes.
// On a miss transform is not called and (zero, false, nil) is returned.
// A nil transform yields the raw value when T is []byte and ErrNilTransform otherwise.
func GetAs[T any](ctx context.Context, g Getter, key string, transform func([]byte) (T, error)) (T, bool, error) {
	var zero T
	raw, ok, err := g.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	if transform == nil {
		if v, ok := any(raw).(T); ok {
			return v, true, nil
		}
		return zero, false, ErrNilTransform
	}
	v, err := transform(raw)
	if err != nil {
		return zero, false, fmt.Errorf("replaycache: transform %q: %w", key, err)
	}
	return v, true, nil
}

// StoreEncoded encodes v with enc and stores the bytes through s, so the
// call is counted and recorded like any other Store call.
func StoreEncoded[V any](ctx context.Context, s Storer, v V, enc codec.Codec[V]) (string, error) {
	b, err := enc.Encode(v)
	if err != nil {
		return "", fmt.Errorf("replaycache: encode: %w", err)
	}
	return s.Store(ctx, b)
}

// GetDecoded is GetAs with dec.Decode as the transform.
func GetDecoded[V any](ctx context.Context, g Getter, key string, dec codec.Codec[V]) (V, bool, error) {
	return GetAs(ctx, g, key, dec.Decode)
}
