//go:build !stdjson

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

// std-compatible config so json.Marshaler/Unmarshaler and map ordering behave
// like encoding/json.
var api = sonic.ConfigStd

// Marshal proxies to sonic when the stdjson build tag is absent.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal proxies to sonic when the stdjson build tag is absent.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

func NewDecoder(r io.Reader) Decoder { return api.NewDecoder(r) }

func NewEncoder(w io.Writer) Encoder { return api.NewEncoder(w) }
