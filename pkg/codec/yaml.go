package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/waypoint/pkg/domain"
	"gopkg.in/yaml.v3"
)

// YAML encodes fragments as YAML documents.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

// Marshal encodes f and its subtree.
func (YAML) Marshal(f domain.Fragment) ([]byte, error) {
	if domain.Classify(f) == domain.KindUndefined {
		return nil, fmt.Errorf("yaml marshal: %w", domain.ErrNilFragment)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into target. Unknown fields are rejected.
func (YAML) Unmarshal(data []byte, target domain.Fragment) error {
	want := domain.Classify(target)
	scratch := domain.NewFragment(want)
	if scratch == nil {
		return fmt.Errorf("yaml unmarshal: %w", domain.ErrNilFragment)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(scratch); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml unmarshal: %w: %w", domain.ErrCodec, err)
	}
	if got := domain.Classify(scratch); got != want {
		return fmt.Errorf("yaml unmarshal %s into %s: %w", got, want, domain.ErrKindMismatch)
	}
	return domain.CopyInto(target, scratch)
}
