package core

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/huangsam/chronometrist/schema"
)

// AnnotationValues converts annotations to query values.
// Slices repeat the key once per element; nil becomes an empty value.
func AnnotationValues(ann schema.Annotations) url.Values {
	values := make(url.Values, len(ann))
	for k, v := range ann {
		switch typed := v.(type) {
		case nil:
			values.Add(k, "")
		case string:
			values.Add(k, typed)
		case []string:
			for _, item := range typed {
				values.Add(k, item)
			}
		case []any:
			for _, item := range typed {
				values.Add(k, fmt.Sprint(item))
			}
		default:
			values.Add(k, fmt.Sprint(typed))
		}
	}
	return values
}

// FormatQuery serializes values as key=value pairs sorted by key, with
// spaces escaped as %20. The "&" separators are de-emphasized with the
// black style.
func FormatQuery(values url.Values, paint schema.Colorizer) string {
	encoded := values.Encode()
	if encoded == "" {
		return ""
	}
	// Encode writes spaces as "+"; a literal plus is already %2B.
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	return strings.ReplaceAll(encoded, "&", paint("&", schema.ColorBlack))
}
