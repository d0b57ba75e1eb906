package codec

import (
	"mime"
	"sort"
	"strconv"
	"strings"
)

const (
	All                    = "*/*"
	ApplicationJSON        = "application/json"
	ApplicationNDJSON      = "application/x-ndjson"
	ApplicationOctetStream = "application/octet-stream"
	ApplicationXML         = "application/xml"
	TextEventStream        = "text/event-stream"
	TextHTML               = "text/html"
	TextPlain              = "text/plain"
	TextXML                = "text/xml"
)

// Essence strips parameters from mediaType and lower cases it,
// e.g., "Text/HTML; charset=utf-8" => "text/html".
func Essence(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}

	mt, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// ContentType returns the Content-Type header value for mediaType,
// adding a UTF-8 charset to textual types missing one.
func ContentType(mediaType string) string {
	if !strings.HasPrefix(Essence(mediaType), "text/") || strings.Contains(strings.ToLower(mediaType), "charset=") {
		return mediaType
	}

	if Essence(mediaType) == TextEventStream {
		return mediaType
	}

	return mediaType + ";charset=UTF-8"
}

// A MediaRange is one entry of an Accept header.
type MediaRange struct {
	Type    string
	Quality float64
}

// Includes reports whether mediaType falls within the range.
func (m MediaRange) Includes(mediaType string) bool {
	want := Essence(mediaType)
	switch {
	case m.Type == All:
		return true
	case strings.HasSuffix(m.Type, "/*"):
		return strings.HasPrefix(want, strings.TrimSuffix(m.Type, "*"))
	default:
		return m.Type == want
	}
}

// ParseAccept parses an Accept header into MediaRanges ordered by descending quality,
// then by specificity.
// Ranges with a quality of 0 are dropped.
//
// An empty header accepts anything.
func ParseAccept(header string) []MediaRange {
	if strings.TrimSpace(header) == "" {
		return []MediaRange{{Type: All, Quality: 1}}
	}

	ranges := make([]MediaRange, 0)
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rng := MediaRange{Type: Essence(part), Quality: 1}
		if rng.Type == "*" {
			rng.Type = All
		}

		if _, params, err := mime.ParseMediaType(part); err == nil {
			if q, err := strconv.ParseFloat(params["q"], 64); err == nil {
				rng.Quality = q
			}
		}

		if rng.Quality <= 0 {
			continue
		}

		ranges = append(ranges, rng)
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Quality != ranges[j].Quality {
			return ranges[i].Quality > ranges[j].Quality
		}

		return specificity(ranges[i].Type) > specificity(ranges[j].Type)
	})

	return ranges
}

func specificity(mt string) int {
	switch {
	case mt == All:
		return 0
	case strings.HasSuffix(mt, "/*"):
		return 1
	default:
		return 2
	}
}
