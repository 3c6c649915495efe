// Package compression wraps the codecs used for record payloads at rest.
package compression

import "fmt"

// Compressor is implemented by ZstdCompressor and GzipCompressor.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Identity stores payloads unchanged.
type Identity struct{}

func (Identity) Compress(data []byte) ([]byte, error)   { return data, nil }
func (Identity) Decompress(data []byte) ([]byte, error) { return data, nil }

// ByName resolves the codec names accepted in configuration.
func ByName(name string) (Compressor, error) {
	switch name {
	case "zstd", "":
		return ZstdCompressor{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	case "none":
		return Identity{}, nil
	}
	return nil, fmt.Errorf("unknown compression %q", name)
}
