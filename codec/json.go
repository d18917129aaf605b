package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-cmis/core"
)

const ContentTypeJSON = "application/json"

// JSON encodes and decodes browser binding payloads. Numbers decode as
// json.Number so repository property values keep their precision.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (*JSON) ContentType() string {
	return ContentTypeJSON
}

func (*JSON) Encode(value any) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return payload, nil
}

func (*JSON) Decode(payload []byte, target any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return fmt.Errorf("codec: decode json: empty payload")
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("codec: decode json: %w", err)
	}
	return nil
}

func Register(registry *core.ClassRegistry) error {
	return registry.RegisterCodec(core.ClassJSONCodec, func() (core.Codec, error) {
		return NewJSON(), nil
	})
}

var _ core.Codec = (*JSON)(nil)
