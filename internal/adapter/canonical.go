package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonicalizer renders values as RFC 8785 canonical JSON so equal payloads hash identically
type Canonicalizer interface {
	Canonicalize(v any) ([]byte, error)
}

type jcsCanonicalizer struct{}

// NewCanonicalizer creates a canonicalizer backed by gowebpki/jcs
func NewCanonicalizer() Canonicalizer {
	return jcsCanonicalizer{}
}

func (jcsCanonicalizer) Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize json: %w", err)
	}
	return out, nil
}
