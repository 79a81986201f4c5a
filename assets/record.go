package assets

import (
	"bytes"
	"slices"
)

type Header struct {
	Name  string
	Value string
}

type Headers []Header

// Get returns the first value for name. Names compare exactly.
func (h Headers) Get(name string) (string, bool) {
	for _, hdr := range h {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}
	return "", false
}

func contentType(mime string) Headers {
	return Headers{{Name: "Content-Type", Value: mime}}
}

// Record is the stored response for one path.
type Record struct {
	Headers Headers
	Body    []byte
}

func (r Record) clone() Record {
	return Record{
		Headers: slices.Clone(r.Headers),
		Body:    bytes.Clone(r.Body),
	}
}
