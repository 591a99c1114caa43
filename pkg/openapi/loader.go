package openapi

import (
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

// ValidateDocument loads an OpenAPI document from a local file path or an
// HTTP(S) URL and validates it.
func ValidateDocument(input string) error {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	var (
		doc *openapi3.T
		err error
	)
	if u, perr := url.Parse(input); perr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		doc, err = loader.LoadFromURI(u)
	} else {
		doc, err = loader.LoadFromFile(input)
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "load openapi document %s", input), errors.ErrIO)
	}
	return errors.Mark(errors.Wrapf(doc.Validate(loader.Context), "validate %s", input), errors.ErrParse)
}

// ValidateData parses a serialized document and validates it.
func ValidateData(data []byte) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "parse openapi document"), errors.ErrParse)
	}
	return errors.Mark(errors.Wrap(doc.Validate(loader.Context), "validate openapi document"), errors.ErrParse)
}
