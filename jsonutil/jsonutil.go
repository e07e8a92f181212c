// Package jsonutil wraps sonic so every package encodes JSON the same way.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal encodes v using the standard-compatible sonic configuration.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent is the indented variant of Marshal.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Encode writes v to w followed by a newline.
func Encode(w io.Writer, v any) error {
	return api.NewEncoder(w).Encode(v)
}

// Decode reads a single JSON value from r into v.
func Decode(r io.Reader, v any) error {
	return api.NewDecoder(r).Decode(v)
}
