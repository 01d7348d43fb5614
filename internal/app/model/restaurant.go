package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnnamedRestaurant replaces a missing or blank restaurant name.
const UnnamedRestaurant = "Restaurant sans nom"

// StringArray stores a list of strings as a JSON array column.
type StringArray []string

// Value implements driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan StringArray")
	}

	if len(raw) == 0 {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// Restaurant is the normalized catalog record. Static rows are imported once
// from the catalog source; custom rows form the writable overlay.
type Restaurant struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Type       string    `gorm:"type:varchar(64);index" json:"type"`
	Cuisines   string    `gorm:"type:text" json:"cuisines"` // comma-joined tags
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Vegetarian bool      `gorm:"default:false" json:"vegetarian"`
	Vegan      bool      `gorm:"default:false" json:"vegan"`
	Takeaway   bool      `gorm:"default:false" json:"takeaway"`
	IsCustom   bool      `gorm:"default:false;index" json:"is_custom"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// Coordinates implements geo.Locatable.
func (r Restaurant) Coordinates() (float64, float64) {
	return r.Latitude, r.Longitude
}

// HasLocation is false for the (0, 0) placeholder.
func (r Restaurant) HasLocation() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// CuisineSet returns the lowercase, trimmed, de-duplicated cuisine tags in
// their stored order.
func (r Restaurant) CuisineSet() []string {
	return SplitTags(r.Cuisines)
}

// TypeTag is the lowercase category token.
func (r Restaurant) TypeTag() string {
	return strings.ToLower(strings.TrimSpace(r.Type))
}

// IDString is the identifier as it appears in interaction records.
func (r Restaurant) IDString() string {
	return strconv.FormatUint(uint64(r.ID), 10)
}

// SplitTags splits a comma-joined tag string into lowercase unique tags,
// dropping empty pieces.
func SplitTags(s string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, piece := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(piece))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// GeoPoint is the nested position some catalog exports use.
type GeoPoint struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// RawRestaurant is a catalog entry as found in the JSON or spreadsheet
// export, before normalization. Fields hold whatever shape the export used.
type RawRestaurant struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Cuisine      json.RawMessage `json:"cuisine"`
	Cuisines     json.RawMessage `json:"cuisines"`
	Lat          *float64        `json:"lat"`
	Lon          *float64        `json:"lon"`
	MetaGeoPoint *GeoPoint       `json:"meta_geo_point"`
	Vegetarian   interface{}     `json:"vegetarian"`
	Vegan        interface{}     `json:"vegan"`
	Takeaway     interface{}     `json:"takeaway"`
}

var (
	dietFlagValues     = map[string]bool{"yes": true, "only": true, "limited": true, "true": true, "1": true}
	takeawayFlagValues = map[string]bool{"yes": true, "only": true, "sandwitches": true, "true": true, "1": true}
)

// NormalizeRaw converts a raw catalog entry into a Restaurant. This is the
// only place where loosely typed catalog fields are interpreted.
func NormalizeRaw(raw RawRestaurant) Restaurant {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = UnnamedRestaurant
	}

	cuisines := joinCuisine(raw.Cuisine)
	if cuisines == "" {
		cuisines = joinCuisine(raw.Cuisines)
	}

	r := Restaurant{
		Name:       name,
		Type:       strings.TrimSpace(raw.Type),
		Cuisines:   cuisines,
		Vegetarian: parseFlag(raw.Vegetarian, dietFlagValues),
		Vegan:      parseFlag(raw.Vegan, dietFlagValues),
		Takeaway:   parseFlag(raw.Takeaway, takeawayFlagValues),
	}

	if raw.Lat != nil && raw.Lon != nil {
		r.Latitude, r.Longitude = *raw.Lat, *raw.Lon
	} else if raw.MetaGeoPoint != nil && raw.MetaGeoPoint.Lat != nil && raw.MetaGeoPoint.Lon != nil {
		r.Latitude, r.Longitude = *raw.MetaGeoPoint.Lat, *raw.MetaGeoPoint.Lon
	}

	return r
}

// ParseCatalog decodes a catalog document, either a bare array or an object
// with a "restaurants" array.
func ParseCatalog(data []byte) ([]RawRestaurant, error) {
	var list []RawRestaurant
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Restaurants []RawRestaurant `json:"restaurants"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	return wrapped.Restaurants, nil
}

func joinCuisine(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, c := range list {
			if c = strings.TrimSpace(c); c != "" {
				parts = append(parts, c)
			}
		}
		return strings.Join(parts, ",")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}
	return ""
}

func parseFlag(v interface{}, truthy map[string]bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t == 1
	case int:
		return t == 1
	case string:
		return truthy[strings.ToLower(strings.TrimSpace(t))]
	default:
		return false
	}
}
