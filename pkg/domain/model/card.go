package model

import (
	"strconv"
	"strings"
)

// Card is a raw card record as returned by the search API. Values follow
// encoding/json conventions: strings, float64, bool, []any and map[string]any.
type Card map[string]any

// Flattened returns a copy of the card prepared for field extraction.
// For multi-faced cards the first face's fields are merged over the card's
// own fields (face wins on conflict); the remaining faces are discarded.
// A synthetic "image" field holding a spreadsheet image formula is always
// injected.
func (c Card) Flattened() Card {
	flat := make(Card, len(c)+1)
	for k, v := range c {
		flat[k] = v
	}

	if faces, ok := c["card_faces"].([]any); ok && len(faces) > 0 {
		if face, ok := faces[0].(map[string]any); ok {
			for k, v := range face {
				flat[k] = v
			}
		}
	}

	flat["image"] = ImageFormula(flat.imageURL())
	return flat
}

func (c Card) imageURL() string {
	uris, ok := c["image_uris"].(map[string]any)
	if !ok {
		return ""
	}
	normal, _ := uris["normal"].(string)
	return normal
}

// ImageFormula builds the image formula string consumed by the spreadsheet
// host. It is never evaluated here.
func ImageFormula(url string) string {
	return `=IMAGE("` + url + `")`
}

// FieldValue resolves a dotted path (e.g. "prices.usd") against the card.
// A missing path yields nil, never an error.
func (c Card) FieldValue(path string) any {
	var cur any = map[string]any(c)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// RenderValue converts an extracted field value into its cell representation.
// Strings get every line break doubled for display readability. Lists are
// joined without a separator when the field name contains "color" (mana
// symbols read as one word), otherwise with ", ".
func RenderValue(field string, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(val, "\n", "\n\n")
	case []any:
		sep := ", "
		if strings.Contains(field, "color") {
			sep = ""
		}
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, RenderValue(field, item))
		}
		return strings.Join(parts, sep)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
