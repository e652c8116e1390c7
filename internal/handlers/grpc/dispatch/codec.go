package dispatch

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype вызовов: application/grpc+json.
const CodecName = "json"

// Codec сообщения сервиса передаются в JSON, тем же форматом, что и в HTTP API.
// proto кодек остается для остальных сервисов (health).
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}
