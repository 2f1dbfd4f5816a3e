package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
)

// JSON encodes fragments as indented JSON using the protobuf field names.
type JSON struct{}

func (JSON) Name() string { return "json" }

// Marshal encodes f and its subtree.
func (JSON) Marshal(f domain.Fragment) ([]byte, error) {
	if domain.Classify(f) == domain.KindUndefined {
		return nil, fmt.Errorf("json marshal: %w", domain.ErrNilFragment)
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Unmarshal decodes data into target. Unknown fields are rejected.
func (JSON) Unmarshal(data []byte, target domain.Fragment) error {
	want := domain.Classify(target)
	scratch := domain.NewFragment(want)
	if scratch == nil {
		return fmt.Errorf("json unmarshal: %w", domain.ErrNilFragment)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(scratch); err != nil {
		return fmt.Errorf("json unmarshal: %w: %w", domain.ErrCodec, err)
	}
	if got := domain.Classify(scratch); got != want {
		return fmt.Errorf("json unmarshal %s into %s: %w", got, want, domain.ErrKindMismatch)
	}
	return domain.CopyInto(target, scratch)
}
