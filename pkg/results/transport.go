package results

import (
	"fmt"
	"net/url"
	"strings"
)

// ParamName is the query parameter carrying a result to the results page.
const ParamName = "result"

// EncodeParam serialises raw as compact JSON text for the results page. A nil
// Raw encodes to the empty string, which DecodeParam reads back as nil.
func EncodeParam(raw *Raw) (string, error) {
	if raw == nil {
		return "", nil
	}
	data, err := raw.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("results: encode param: %w", err)
	}
	return string(data), nil
}

// DecodeParam is the inverse of EncodeParam. Text that does not parse
// returns an error wrapping ErrMalformedResult.
func DecodeParam(text string) (*Raw, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return ParseRaw([]byte(text))
}

// ResultsURL appends the encoded result to path as the result query
// parameter.
func ResultsURL(path string, raw *Raw) (string, error) {
	encoded, err := EncodeParam(raw)
	if err != nil {
		return "", err
	}
	return TextURL(path, encoded), nil
}

// TextURL carries text verbatim as the result parameter. Engine bodies that
// are not a result object travel this way and render as a raw fallback.
func TextURL(path, text string) string {
	if text == "" {
		return path
	}
	values := url.Values{}
	values.Set(ParamName, text)
	return path + "?" + values.Encode()
}
