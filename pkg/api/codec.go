package api

import (
	"encoding/json"
	"fmt"
)

// codecNameJSON replaces Connect's default protobuf-JSON codec so that
// handlers and clients can exchange plain Go structs.
const codecNameJSON = "json"

// jsonCodec implements connect.Codec with encoding/json.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecNameJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return nil
}
