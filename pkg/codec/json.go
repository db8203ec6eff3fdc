// pkg/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Codec encodes response bodies and event payloads.
type Codec interface {
	Marshal(v any) ([]byte, error)
	ContentType() string
}

type jsonCodec struct{}

// JSON leaves HTML characters unescaped and trims the encoder's trailing newline.
var JSON Codec = jsonCodec{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (jsonCodec) ContentType() string { return "application/json" }

// Write encodes payload with c and sends it with the given status.
func Write(w http.ResponseWriter, c Codec, status int, payload any) {
	b, err := c.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
