package catalog

import (
	"bytes"
	"encoding/json"
)

// payloadItem mirrors the wire shape of one product entry.
type payloadItem struct {
	SKU     string  `json:"sku"`
	State   *string `json:"state"`
	Enabled bool    `json:"enabled"`
}

// pageEnvelope mirrors the outermost wire shape of one listing page.
// "data" is kept raw because the API wraps items under different shapes.
type pageEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Items  []payloadItem   `json:"items"`
	Paging struct {
		Next *string `json:"next"`
	} `json:"paging"`
}

// normalizePage extracts the item list and next-page cursor from a raw
// listing payload. Malformed payloads degrade to an empty item list with an
// empty cursor; they never fail the walk.
//
// Item extraction precedence:
//  1. "data" is an object: use its "items" list (empty when absent — no
//     further fallback, matching upstream behavior)
//  2. "data" is a list: use it directly
//  3. otherwise: use the top-level "items" list
func normalizePage(body []byte) (items []Item, next string) {
	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ""
	}

	if envelope.Paging.Next != nil {
		next = *envelope.Paging.Next
	}

	raw := bytes.TrimSpace(envelope.Data)
	switch {
	case len(raw) > 0 && raw[0] == '{':
		var wrapper struct {
			Items []payloadItem `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, next
		}
		return normalizeItems(wrapper.Items), next
	case len(raw) > 0 && raw[0] == '[':
		var list []payloadItem
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, next
		}
		return normalizeItems(list), next
	default:
		return normalizeItems(envelope.Items), next
	}
}

// normalizeItems converts wire entries to Items, applying the empty-string
// identifier and "unknown" status defaults. Items with a missing identifier
// are kept: they still count toward their status tally.
func normalizeItems(payload []payloadItem) []Item {
	if len(payload) == 0 {
		return nil
	}

	items := make([]Item, 0, len(payload))
	for _, p := range payload {
		status := StatusUnknown
		if p.State != nil && *p.State != "" {
			status = *p.State
		}
		items = append(items, Item{
			Identifier: p.SKU,
			Status:     status,
			Active:     p.Enabled,
		})
	}
	return items
}
