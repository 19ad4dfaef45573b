// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// FSSchemaReader loads validation schemas from a root directory,
// dispatching on the file extension.
type FSSchemaReader struct {
	root string
}

// NewFSSchemaReader creates a reader rooted at the given directory.
func NewFSSchemaReader(root string) *FSSchemaReader {
	return &FSSchemaReader{root: root}
}

// GetSchema reads a schema file: .json parses as JSON, .yml and .yaml
// parse as YAML and convert to the JSON data model. Other extensions
// are rejected.
func (r *FSSchemaReader) GetSchema(path string) (any, error) {
	full := filepath.Join(r.root, path)
	switch filepath.Ext(path) {
	case ".json":
		return r.schemaFromJSON(path, full)
	case ".yml", ".yaml":
		return r.schemaFromYAML(path, full)
	case "":
		return nil, errors.Io("%s has no extension, load either a json, yml or yaml file", path)
	}
	return nil, errors.Io("%s has an invalid extension, load either a json, yml or yaml file", path)
}

func (r *FSSchemaReader) schemaFromJSON(path, full string) (any, error) {
	fmt.Printf("loading json schema: %s\n", path)
	f, err := os.Open(full)
	if err != nil {
		return nil, errors.Io("could not open schema %s", path).Wrap(err)
	}
	defer f.Close()

	schema, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, errors.Parse("could not parse schema %s", path).Wrap(err)
	}
	return schema, nil
}

func (r *FSSchemaReader) schemaFromYAML(path, full string) (any, error) {
	fmt.Printf("loading yml schema: %s\n", path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, errors.Io("could not open schema %s", path).Wrap(err)
	}
	value, err := document.Parse(data)
	if err != nil {
		return nil, errors.Parse("could not parse schema %s", path).Wrap(err)
	}
	raw, err := value.MarshalJSON()
	if err != nil {
		return nil, errors.Parse("could not convert schema %s to json", path).Wrap(err)
	}
	schema, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Parse("could not parse schema %s", path).Wrap(err)
	}
	return schema, nil
}
