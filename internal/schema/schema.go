package schema

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json schemas/refs/*.json
var FS embed.FS

const baseURI = "https://raceplanner.local/schemas/"

// Schema IDs of the embedded top level schemas.
const (
	Car         = baseURI + "car.json"
	CarCreate   = baseURI + "car_create.json"
	Event       = baseURI + "event.json"
	EventCreate = baseURI + "event_create.json"
	NewEvent    = baseURI + "new_event.json"
	Race        = baseURI + "race.json"
	RaceCreate  = baseURI + "race_create.json"
)

var ErrInvalidDocument = errors.New("the document is not valid")

// Validator validates JSON documents against compiled schemas, keyed by $id.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New returns a Validator over the embedded schemas.
func New() (*Validator, error) {
	sub, err := fs.Sub(FS, "schemas")
	if err != nil {
		return nil, err
	}
	return NewValidatorFromFS(sub)
}

// NewValidatorFromFS compiles the json files at the root of fsys as top level schemas.
// Files under refs/ may be referenced by them.
func NewValidatorFromFS(fsys fs.FS) (*Validator, error) {
	readDir := func(dir string) ([]string, error) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("cannot read dir %s: %w", dir, err)
		}

		var docs []string
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			path := e.Name()
			if dir != "." {
				path = dir + "/" + e.Name()
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return nil, fmt.Errorf("cannot read file %s: %w", path, err)
			}
			docs = append(docs, string(data))
		}
		return docs, nil
	}

	schemas, err := readDir(".")
	if err != nil {
		return nil, err
	}
	refs, err := readDir("refs")
	if err != nil {
		return nil, err
	}

	return NewValidator(schemas, refs)
}

// NewValidator compiles schemas. Top level schemas may only reference documents from refs.
func NewValidator(schemas []string, refs []string) (*Validator, error) {
	var header struct {
		ID string `json:"$id"`
	}

	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(schemas))}
	for _, doc := range schemas {
		header.ID = ""
		if err := json.Unmarshal([]byte(doc), &header); err != nil {
			return nil, fmt.Errorf("parse error in schema: %w", err)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: %s", doc)
		}

		sl := gojsonschema.NewSchemaLoader()
		for _, ref := range refs {
			if err := sl.AddSchemas(gojsonschema.NewStringLoader(ref)); err != nil {
				return nil, fmt.Errorf("cannot add ref schema: %w", err)
			}
		}

		compiled, err := sl.Compile(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", header.ID, err)
		}
		v.schemas[header.ID] = compiled
	}

	return v, nil
}

func (v *Validator) HasSchema(schemaID string) bool {
	_, ok := v.schemas[schemaID]
	return ok
}

// Validate checks a decoded JSON document against schemaID. Violations wrap ErrInvalidDocument.
func (v *Validator) Validate(document interface{}, schemaID string) error {
	return v.validate(gojsonschema.NewGoLoader(document), schemaID)
}

func (v *Validator) ValidateBytes(document []byte, schemaID string) error {
	return v.validate(gojsonschema.NewBytesLoader(document), schemaID)
}

func (v *Validator) validate(loader gojsonschema.JSONLoader, schemaID string) error {
	compiled, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := compiled.Validate(loader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}
