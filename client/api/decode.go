package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"social/util/model"
)

// Page es una página de resultados. Meta es nil si el servidor no la envía
type Page[T any] struct {
	Items []T
	Meta  *model.Meta
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// decodeWrapped acepta tanto {"key": X} como X
func decodeWrapped(raw json.RawMessage, key string, out any) error {
	if isNull(raw) {
		return fmt.Errorf("empty response")
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok && !isNull(inner) {
			return json.Unmarshal(inner, out)
		}
	}
	return json.Unmarshal(raw, out)
}

// decodePage acepta un array, o un objeto con la lista bajo alguna de keys
// (que a su vez puede volver a estar envuelta) y un "meta" opcional
func decodePage[T any](raw json.RawMessage, keys ...string) (Page[T], error) {
	var page Page[T]
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return page, nil
	}

	if raw[0] == '[' {
		err := json.Unmarshal(raw, &page.Items)
		return page, err
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return page, err
	}

	if m, ok := wrapper["meta"]; ok && !isNull(m) {
		page.Meta = &model.Meta{}
		if err := json.Unmarshal(m, page.Meta); err != nil {
			return page, err
		}
	}

	for _, k := range keys {
		inner, ok := wrapper[k]
		if !ok || isNull(inner) {
			continue
		}
		nested, err := decodePage[T](inner, keys...)
		if err != nil {
			return page, err
		}
		page.Items = nested.Items
		if page.Meta == nil {
			page.Meta = nested.Meta
		}
		return page, nil
	}
	return page, nil
}
