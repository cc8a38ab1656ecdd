package midich

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

type savePayload struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
	Error    string `json:"error"`
}

// decodePayload parses the JSON string the save hook passes to the binding.
func decodePayload(raw string) (Result, error) {
	var p savePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Result{}, fmt.Errorf("decode save payload: %w", err)
	}
	if msg := strings.TrimSpace(p.Error); msg != "" {
		return Result{}, fmt.Errorf("converter page could not read blob: %s", msg)
	}
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return Result{}, fmt.Errorf("decode save data: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return Result{Filename: strings.TrimSpace(p.Filename), Data: data}, nil
}
