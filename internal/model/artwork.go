package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Artwork is a single artwork returned by the match API.
type Artwork struct {
	Title    string     `json:"title" yaml:"title"`
	Artist   string     `json:"artist,omitempty" yaml:"artist,omitempty"`
	Year     FlexString `json:"year,omitempty" yaml:"year,omitempty"`
	Medium   string     `json:"medium,omitempty" yaml:"medium,omitempty"`
	Price    FlexString `json:"price,omitempty" yaml:"price,omitempty"`
	ImageURL string     `json:"image_url" yaml:"image_url"`
}

// PriceValue returns the price as a number, or 0 when absent or unparseable.
func (a Artwork) PriceValue() float64 {
	s := strings.TrimSpace(string(a.Price))
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Leading numeric prefix, e.g. "1200 USD".
		end := 0
		for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && s[end] == '-')) {
			end++
		}
		v, err = strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MatchResponse is the payload returned by POST /api/match.
// Fields are optional on the wire; missing ones decode to zero values.
type MatchResponse struct {
	Success        bool      `json:"success" yaml:"success"`
	Artworks       []Artwork `json:"artworks" yaml:"artworks"`
	CompositeImage string    `json:"composite_image,omitempty" yaml:"composite_image,omitempty"`
	Error          string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// FlexString accepts a JSON string, number or null and keeps its text form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Booleans and objects carry no useful display value.
		*f = ""
		return nil //nolint:nilerr // lenient decoding
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the underlying text.
func (f FlexString) String() string {
	return string(f)
}
