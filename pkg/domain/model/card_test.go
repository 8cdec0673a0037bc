package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

func TestCard_Flattened(t *testing.T) {
	t.Run("single-faced card keeps its own fields", func(t *testing.T) {
		card := model.Card{
			"name":      "Island",
			"type_line": "Basic Land — Island",
			"image_uris": map[string]any{
				"normal": "https://img.example.com/island.jpg",
			},
		}

		flat := card.Flattened()
		gt.Value(t, flat["name"]).Equal("Island")
		gt.Value(t, flat["image"]).Equal(`=IMAGE("https://img.example.com/island.jpg")`)
	})

	t.Run("first face fields win over top-level fields", func(t *testing.T) {
		card := model.Card{
			"name":      "Delver of Secrets // Insectile Aberration",
			"type_line": "Creature — Human Wizard // Creature — Human Insect",
			"card_faces": []any{
				map[string]any{
					"name":      "Delver of Secrets",
					"type_line": "Creature — Human Wizard",
					"image_uris": map[string]any{
						"normal": "https://img.example.com/delver-front.jpg",
					},
				},
				map[string]any{
					"name": "Insectile Aberration",
				},
			},
		}

		flat := card.Flattened()
		gt.Value(t, flat["name"]).Equal("Delver of Secrets")
		gt.Value(t, flat["type_line"]).Equal("Creature — Human Wizard")
		gt.Value(t, flat["image"]).Equal(`=IMAGE("https://img.example.com/delver-front.jpg")`)
	})

	t.Run("face fields fall back to top level when face omits them", func(t *testing.T) {
		card := model.Card{
			"rarity": "rare",
			"card_faces": []any{
				map[string]any{"name": "Front"},
			},
		}

		flat := card.Flattened()
		gt.Value(t, flat["rarity"]).Equal("rare")
		gt.Value(t, flat["name"]).Equal("Front")
	})

	t.Run("card without image URIs gets an empty image formula", func(t *testing.T) {
		card := model.Card{"name": "Plains"}
		flat := card.Flattened()
		gt.Value(t, flat["image"]).Equal(`=IMAGE("")`)
	})
}

func TestCard_FieldValue(t *testing.T) {
	card := model.Card{
		"name": "Black Lotus",
		"prices": map[string]any{
			"usd": "10000.00",
		},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{name: "top-level field", path: "name", want: "Black Lotus"},
		{name: "dotted path", path: "prices.usd", want: "10000.00"},
		{name: "missing field", path: "power", want: nil},
		{name: "missing nested field", path: "prices.eur", want: nil},
		{name: "path through scalar", path: "name.first", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := card.FieldValue(tt.path)
			if got != tt.want {
				t.Errorf("FieldValue(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{
			name:  "nil renders empty",
			field: "power",
			value: nil,
			want:  "",
		},
		{
			name:  "newlines are doubled",
			field: "oracle_text",
			value: "Flying\nWhen this enters, draw a card.",
			want:  "Flying\n\nWhen this enters, draw a card.",
		},
		{
			name:  "color fields join without separator",
			field: "color_identity",
			value: []any{"W", "U"},
			want:  "WU",
		},
		{
			name:  "other lists join with comma",
			field: "keywords",
			value: []any{"Flying", "Vigilance"},
			want:  "Flying, Vigilance",
		},
		{
			name:  "numbers render without trailing zeros",
			field: "cmc",
			value: float64(3),
			want:  "3",
		},
		{
			name:  "fractional numbers keep their digits",
			field: "cmc",
			value: 2.5,
			want:  "2.5",
		},
		{
			name:  "booleans render as text",
			field: "reserved",
			value: true,
			want:  "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.RenderValue(tt.field, tt.value)
			if got != tt.want {
				t.Errorf("RenderValue(%q, %v) = %q, want %q", tt.field, tt.value, got, tt.want)
			}
		})
	}
}
