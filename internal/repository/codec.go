package repository

import (
	"time"

	json "github.com/goccy/go-json"
)

// encodeDocument converts an entity into its document form. Values are
// JSON-normalized so containment checks behave identically across backends.
func encodeDocument[T any](record T) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeDocument converts a document back into its entity form.
func decodeDocument[T any](doc map[string]any) (T, error) {
	var record T
	raw, err := json.Marshal(doc)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, err
	}
	return record, nil
}

// normalizeQuery round-trips a query so literal values (numbers, times)
// compare equal against stored document values.
func normalizeQuery(query Query) (map[string]any, error) {
	if len(query) == 0 {
		return map[string]any{}, nil
	}
	return encodeDocument(map[string]any(query))
}

// stampCreate sets the store-assigned metadata on a new document.
func stampCreate(doc map[string]any, id string, now time.Time) {
	ts := now.UTC().Format(time.RFC3339Nano)
	doc["id"] = id
	doc["createdAt"] = ts
	doc["updatedAt"] = ts
}

// sanitizePatch strips immutable metadata from a patch and refreshes the
// update timestamp. The caller's map is never mutated.
func sanitizePatch(patch Patch, now time.Time) map[string]any {
	out := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		out[k] = v
	}
	out["updatedAt"] = now.UTC().Format(time.RFC3339Nano)
	return out
}
