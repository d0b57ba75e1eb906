package reply

import "net/url"

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

const (
	AppLogKind  = "app"
	HTTPLogKind = "http"
)

// Mask replaces the values for key in vals with a single LogMaskVal.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
