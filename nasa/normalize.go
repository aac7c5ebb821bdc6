package nasa

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cosmicwatch/neo-backend/model"
)

// FeedDocument is the decoded shape of the NeoWs /feed endpoint. The
// near_earth_objects field is kept raw because its date keys must be
// flattened in document order, which a Go map cannot preserve.
type FeedDocument struct {
	Links            json.RawMessage `json:"links,omitempty"`
	ElementCount     int             `json:"element_count"`
	NearEarthObjects json.RawMessage `json:"near_earth_objects"`
}

// BrowsePage is the normalized shape of one NeoWs /neo/browse page. The
// upstream near_earth_objects field arrives either as an array or as an
// object-of-arrays keyed by date; both decode into one flat ordered slice
// here so no downstream code branches on the upstream shape again.
type BrowsePage struct {
	NearEarthObjects []model.Asteroid
	Page             model.PageInfo
	Links            json.RawMessage
}

// NormalizeBrowse decodes a raw browse response into a BrowsePage. Page
// metadata is passed through when present (total_pages floored at 1);
// otherwise total_pages defaults to 1 and total_elements to the flattened
// list length.
func NormalizeBrowse(raw json.RawMessage, requestedPage int) (*BrowsePage, error) {
	var doc struct {
		Links            json.RawMessage `json:"links"`
		Page             *model.PageInfo `json:"page"`
		NearEarthObjects json.RawMessage `json:"near_earth_objects"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid response from NASA API: %w", err)
	}

	asteroids, err := FlattenNEOs(doc.NearEarthObjects)
	if err != nil {
		return nil, fmt.Errorf("invalid response from NASA API: %w", err)
	}

	page := model.PageInfo{Number: requestedPage, TotalPages: 1, TotalElements: len(asteroids)}
	if doc.Page != nil {
		page.Size = doc.Page.Size
		page.TotalElements = doc.Page.TotalElements
		if doc.Page.TotalPages > 1 {
			page.TotalPages = doc.Page.TotalPages
		}
	}

	return &BrowsePage{
		NearEarthObjects: asteroids,
		Page:             page,
		Links:            doc.Links,
	}, nil
}

// FlattenNEOs turns the near_earth_objects field into one flat ordered
// slice. An array passes through; an object-of-arrays is concatenated in
// the object's own key order with per-date array order preserved. No sort
// is applied. Null entries are dropped.
func FlattenNEOs(raw json.RawMessage) ([]model.Asteroid, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Asteroid{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []*model.Asteroid
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return compact(items), nil
	case '{':
		return flattenDateMap(trimmed)
	default:
		return nil, fmt.Errorf("unexpected near_earth_objects shape")
	}
}

// flattenDateMap iterates the object keys with a token decoder so the
// document's insertion order survives; json.Unmarshal into a map would
// randomize it.
func flattenDateMap(raw []byte) ([]model.Asteroid, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	flat := []model.Asteroid{}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // date key
			return nil, err
		}
		var items []*model.Asteroid
		if err := dec.Decode(&items); err != nil {
			return nil, err
		}
		flat = append(flat, compact(items)...)
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return flat, nil
}

func compact(items []*model.Asteroid) []model.Asteroid {
	out := make([]model.Asteroid, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}
