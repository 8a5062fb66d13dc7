package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressor compresses encoded type metadata with ZStandard.
// It is safe for concurrent use.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable compressor at the default level.
// Call Close when done.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress appends the compressed form of data to dst.
func (c *Compressor) Compress(dst, data []byte) []byte {
	if len(data) == 0 {
		return dst
	}
	return c.encoder.EncodeAll(data, dst)
}

func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor decompresses ZStandard data. It is safe for concurrent use.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable decompressor. maxSize bounds the
// decompressed size; zero keeps the zstd default.
// Call Close when done.
func NewDecompressor(maxSize uint64) (*Decompressor, error) {
	var opts []zstd.DOption
	if maxSize > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(maxSize))
	}
	decoder, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress returns the decompressed form of data.
func (d *Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	out, err := d.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}
