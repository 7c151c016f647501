package decoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/genaforvena/bass-taber/internal/types"
)

// AudioDecoder decodes one on-disk audio format into a types.AudioFile.
type AudioDecoder interface {
	Decode(filePath string) (types.AudioFile, error)
	SupportedFormats() []string
}

// DecoderRegistry maps file extensions to decoders.
type DecoderRegistry struct {
	decoders map[string]AudioDecoder
}

// NewDecoderRegistry returns a registry with all built-in decoders registered.
func NewDecoderRegistry() *DecoderRegistry {
	registry := &DecoderRegistry{
		decoders: make(map[string]AudioDecoder),
	}

	registry.Register(&WAVDecoder{})
	registry.Register(&FLACDecoder{})

	return registry
}

// Register adds a decoder for every extension it claims.
func (r *DecoderRegistry) Register(decoder AudioDecoder) {
	for _, format := range decoder.SupportedFormats() {
		r.decoders[strings.ToLower(format)] = decoder
	}
}

// GetDecoder picks a decoder from the file extension.
func (r *DecoderRegistry) GetDecoder(filePath string) (AudioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil, fmt.Errorf("cannot determine audio format of %s", filePath)
	}

	ext = ext[1:]

	decoder, exists := r.decoders[ext]
	if !exists {
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	return decoder, nil
}

// DecodeFile decodes filePath with the decoder matching its extension.
func (r *DecoderRegistry) DecodeFile(filePath string) (types.AudioFile, error) {
	decoder, err := r.GetDecoder(filePath)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(filePath)
}
