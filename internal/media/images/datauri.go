package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrNotDataURI is returned for image references that are not inline data.
var ErrNotDataURI = errors.New("not a data URI")

// DataURI is a decoded "data:" URI.
type DataURI struct {
	MediaType string
	Data      []byte
}

// IsDataURI reports whether s is an inline data URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI decodes a base64 data URI such as
// "data:image/png;base64,iVBORw0...". Non-base64 payloads are rejected
// since browsers only produce base64 for file uploads.
func ParseDataURI(s string) (*DataURI, error) {
	if !IsDataURI(s) {
		return nil, ErrNotDataURI
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, errors.New("data URI has no payload")
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return nil, errors.New("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("decode data URI payload: %w", err)
		}
	}

	mediaType := params[0]
	if mediaType == "" || mediaType == "base64" {
		mediaType = "text/plain"
	}

	return &DataURI{MediaType: mediaType, Data: data}, nil
}

// BlurHashFromURI computes a BlurHash for an inline image. Remote URIs yield
// ErrNotDataURI; the server never fetches them.
func BlurHashFromURI(uri string) (string, error) {
	d, err := ParseDataURI(uri)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(d.MediaType, "image/") {
		return "", fmt.Errorf("unsupported media type %q", d.MediaType)
	}
	return ComputeBlurHash(bytes.NewReader(d.Data))
}
