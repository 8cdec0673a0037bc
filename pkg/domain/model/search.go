package model

import (
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
)

// Defaults and limits for the search function
const (
	DefaultFields    = "name"
	DefaultOrder     = "name"
	DefaultDirection = "auto"
	DefaultUnique    = "cards"
	DefaultLimit     = 150
	MaxLimit         = 700
)

// sharedAliases maps user-facing shorthand to API field names. Applied to
// both field and order tokens; unrecognized tokens pass through unchanged.
var sharedAliases = map[string]string{
	"color":  "color_identity",
	"colors": "color_identity",
	"type":   "type_line",
	"uri":    "scryfall_uri",
	"url":    "scryfall_uri",
	"mana":   "mana_cost",
	"text":   "oracle_text",
	"oracle": "oracle_text",
	"flavor": "flavor_text",
	"set":    "set_name",
}

// FieldAlias resolves a field token. "price" maps to the dotted path into
// the nested prices record.
func FieldAlias(token string) string {
	if token == "price" {
		return "prices.usd"
	}
	if target, ok := sharedAliases[token]; ok {
		return target
	}
	return token
}

// OrderAlias resolves a sort-order token. Unlike fields, "price" maps to the
// API's flat "usd" sort key.
func OrderAlias(token string) string {
	if token == "price" {
		return "usd"
	}
	if target, ok := sharedAliases[token]; ok {
		return target
	}
	return token
}

// SplitFields splits a space/comma-separated field list into tokens.
func SplitFields(fields string) []string {
	return strings.FieldsFunc(fields, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// SearchQuery holds the caller's arguments to the search function.
type SearchQuery struct {
	Query     string
	Fields    string
	Limit     int
	Order     string
	Direction string
	Unique    string
}

// Normalize validates the query, fills in defaults, clamps the result limit
// and resolves the order alias. It must be called before the query is used.
func (q *SearchQuery) Normalize() error {
	if strings.TrimSpace(q.Query) == "" {
		return goerr.New("query is required")
	}
	if strings.TrimSpace(q.Fields) == "" {
		q.Fields = DefaultFields
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Order == "" {
		q.Order = DefaultOrder
	}
	q.Order = OrderAlias(q.Order)
	if q.Direction == "" {
		q.Direction = DefaultDirection
	}
	if q.Unique == "" {
		q.Unique = DefaultUnique
	}
	return nil
}

// Columns returns the resolved field names, in caller order.
func (q *SearchQuery) Columns() []string {
	tokens := SplitFields(q.Fields)
	columns := make([]string, 0, len(tokens))
	for _, token := range tokens {
		columns = append(columns, FieldAlias(token))
	}
	return columns
}

// ResultTable is the 2D output of the search function: one row per matched
// card, in source order, plus the resolved column names.
type ResultTable struct {
	Columns []string
	Rows    [][]string
}
