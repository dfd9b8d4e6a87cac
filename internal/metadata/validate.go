package metadata

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/proofai/proofai-cli/util/common/errors"
	"github.com/proofai/proofai-cli/util/common/fileutil"
)

//go:embed schema.json
var descriptorSchema []byte

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(descriptorSchema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// Validate reads the descriptor at path and returns the declared Resource.
//
// Failure kinds are distinguishable with errors.Is: unparseable or
// structurally wrong content unwraps to ErrMalformedMetadata, an absent
// "type" key to ErrMissingRequiredField, and an unknown type value to
// ErrUnrecognizedResourceType. A file that cannot be read surfaces as a
// FileError.
func Validate(path string) (*Resource, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	schema, err := getSchema()
	if err != nil {
		return nil, errors.Wrap(err, "compiling descriptor schema")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The document is not valid JSON at all.
		return nil, errors.NewMalformedMetadataError(path, err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, errors.NewMalformedMetadataError(path, strings.Join(details, "; "))
	}

	// The schema deliberately neither requires "type" nor constrains its
	// values, so absence and an unrecognized value stay distinguishable here.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.NewMalformedMetadataError(path, err.Error())
	}
	if _, ok := fields["type"]; !ok {
		return nil, errors.NewMissingFieldError(path, "type")
	}

	var res Resource
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.NewMalformedMetadataError(path, err.Error())
	}
	if !res.Type.Valid() {
		return nil, errors.NewUnknownTypeError(path, string(res.Type))
	}

	return &res, nil
}
