package handler

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Codec marshals PortalService messages as JSON. The server forces it for
// every call; clients select it with grpc.ForceCodec or the "json" content
// subtype.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (Codec) Name() string                       { return "json" }

func init() {
	encoding.RegisterCodec(Codec{})
}
