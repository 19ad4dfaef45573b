// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package assembler

import (
	"bytes"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/pkg/adapters"
	"github.com/kraklabs/ymlforge/pkg/document"
	"github.com/kraklabs/ymlforge/pkg/transform"
	"github.com/kraklabs/ymlforge/pkg/variables"
)

// Assembler wires the pipeline to its adapters. One assembler is shared
// by every worker; per-entry state lives inside each Assemble call.
type Assembler struct {
	parts      adapters.PartReader
	schemas    adapters.SchemaReader
	assemblies adapters.AssemblySink
	schemaOut  adapters.SchemaSink
}

// New creates an assembler over the four adapters.
func New(parts adapters.PartReader, schemas adapters.SchemaReader, assemblies adapters.AssemblySink, schemaOut adapters.SchemaSink) *Assembler {
	return &Assembler{
		parts:      parts,
		schemas:    schemas,
		assemblies: assemblies,
		schemaOut:  schemaOut,
	}
}

// Assemble compiles one entry through the full pipeline: load and
// aggregate, inject mix-ins, transform, optionally validate against a
// schema, and deliver to the sinks. An empty schemaID skips validation.
func (a *Assembler) Assemble(entry, schemaID string, vars map[string]string, format adapters.Format) error {
	agg := NewAggregator(a.parts)
	scope := variables.FromStrings(vars)

	doc, err := agg.Load(entry, scope)
	if err != nil {
		return err
	}
	doc, err = agg.Mixins().Inject(doc)
	if err != nil {
		return err
	}

	list, err := transform.FromDocument(doc)
	if err != nil {
		return err
	}
	if err := list.Transform(); err != nil {
		return err
	}
	doc, err = list.ToDocument()
	if err != nil {
		return err
	}

	var schemaDoc any
	if schemaID != "" {
		schemaDoc, err = a.schemas.GetSchema(schemaID)
		if err != nil {
			return err
		}
		if err := validate(schemaDoc, doc); err != nil {
			return err
		}
	}

	if err := a.assemblies.Write(doc, entry, format); err != nil {
		return err
	}
	if schemaID != "" {
		if err := a.schemaOut.Write(schemaDoc, schemaID); err != nil {
			return err
		}
	}
	return nil
}

// validate compiles the schema and checks the assembled document
// against it.
func validate(schemaDoc any, doc *document.Value) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaDoc); err != nil {
		return errors.Validate("schema is not valid").Wrap(err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return errors.Validate("schema is not valid").Wrap(err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return errors.Validate("could not convert assembly to json").Wrap(err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Validate("could not convert assembly to json").Wrap(err)
	}

	if err := schema.Validate(instance); err != nil {
		return errors.Validate("generated document is not valid").Wrap(err)
	}
	return nil
}
