package codec

import "strconv"

// Bytes is the identity codec.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String assumes UTF-8 and performs no validation.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Int uses base-10 text, the representation INCR and Redis numeric
// arguments use, so values stay usable by server-side commands.
type Int struct{}

func (Int) Encode(n int64) ([]byte, error) { return strconv.AppendInt(nil, n, 10), nil }
func (Int) Decode(b []byte) (int64, error) { return strconv.ParseInt(string(b), 10, 64) }

// Float uses the shortest decimal form without exponent, as go-redis does
// for float arguments.
type Float struct{}

func (Float) Encode(f float64) ([]byte, error) { return strconv.AppendFloat(nil, f, 'f', -1, 64), nil }
func (Float) Decode(b []byte) (float64, error) { return strconv.ParseFloat(string(b), 64) }
