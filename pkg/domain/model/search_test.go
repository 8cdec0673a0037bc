package model_test

import (
	"reflect"
	"testing"

	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

func TestFieldAlias(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "color", want: "color_identity"},
		{token: "colors", want: "color_identity"},
		{token: "price", want: "prices.usd"},
		{token: "type", want: "type_line"},
		{token: "uri", want: "scryfall_uri"},
		{token: "url", want: "scryfall_uri"},
		{token: "mana", want: "mana_cost"},
		{token: "text", want: "oracle_text"},
		{token: "oracle", want: "oracle_text"},
		{token: "flavor", want: "flavor_text"},
		{token: "set", want: "set_name"},
		{token: "name", want: "name"},
		{token: "something_custom", want: "something_custom"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := model.FieldAlias(tt.token); got != tt.want {
				t.Errorf("FieldAlias(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestOrderAlias(t *testing.T) {
	// Order tokens share the alias table except price, which maps to the
	// flat sort key.
	if got := model.OrderAlias("price"); got != "usd" {
		t.Errorf("OrderAlias(price) = %q, want usd", got)
	}
	if got := model.OrderAlias("type"); got != "type_line" {
		t.Errorf("OrderAlias(type) = %q, want type_line", got)
	}
	if got := model.OrderAlias("released"); got != "released" {
		t.Errorf("OrderAlias(released) = %q, want released", got)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name   string
		fields string
		want   []string
	}{
		{name: "spaces", fields: "name type price", want: []string{"name", "type", "price"}},
		{name: "commas", fields: "name,type,price", want: []string{"name", "type", "price"}},
		{name: "mixed", fields: "name, type  price", want: []string{"name", "type", "price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.SplitFields(tt.fields); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFields(%q) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestSearchQuery_Normalize(t *testing.T) {
	t.Run("empty query is rejected", func(t *testing.T) {
		q := &model.SearchQuery{}
		if err := q.Normalize(); err == nil {
			t.Error("Normalize() should fail on empty query")
		}
	})

	t.Run("defaults are applied", func(t *testing.T) {
		q := &model.SearchQuery{Query: "c:blue"}
		if err := q.Normalize(); err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if q.Fields != model.DefaultFields {
			t.Errorf("Fields = %q, want %q", q.Fields, model.DefaultFields)
		}
		if q.Limit != model.DefaultLimit {
			t.Errorf("Limit = %d, want %d", q.Limit, model.DefaultLimit)
		}
		if q.Order != "name" || q.Direction != "auto" || q.Unique != "cards" {
			t.Errorf("defaults = %q/%q/%q, want name/auto/cards", q.Order, q.Direction, q.Unique)
		}
	})

	t.Run("limit above ceiling is silently clamped", func(t *testing.T) {
		q := &model.SearchQuery{Query: "c:blue", Limit: 5000}
		if err := q.Normalize(); err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if q.Limit != model.MaxLimit {
			t.Errorf("Limit = %d, want %d", q.Limit, model.MaxLimit)
		}
	})

	t.Run("order alias is resolved", func(t *testing.T) {
		q := &model.SearchQuery{Query: "c:blue", Order: "price"}
		if err := q.Normalize(); err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if q.Order != "usd" {
			t.Errorf("Order = %q, want usd", q.Order)
		}
	})
}

func TestSearchQuery_Columns(t *testing.T) {
	q := &model.SearchQuery{Query: "c:blue", Fields: "name, color price image"}
	if err := q.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := []string{"name", "color_identity", "prices.usd", "image"}
	if got := q.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}
