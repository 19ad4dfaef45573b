// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package infra

import (
	"os"
	"path/filepath"

	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/internal/output"
	"github.com/kraklabs/ymlforge/pkg/adapters"
	"github.com/kraklabs/ymlforge/pkg/document"
)

// FSAssemblySink writes assemblies beneath an output directory,
// mirroring the entry identifier's relative path and appending the
// format's canonical extension. Missing parent directories are created.
type FSAssemblySink struct {
	dir string
}

// NewFSAssemblySink creates a sink writing beneath dir.
func NewFSAssemblySink(dir string) *FSAssemblySink {
	return &FSAssemblySink{dir: dir}
}

// Write serializes the value in the requested format and writes it
// under the entry key.
func (s *FSAssemblySink) Write(value *document.Value, key string, format adapters.Format) error {
	outPath := filepath.Join(s.dir, key+format.Extension())
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Io("could not create output directory").Wrap(err)
	}

	var data []byte
	var err error
	switch format {
	case adapters.FormatJSON:
		data, err = output.PrettyJSON(value)
	default:
		data, err = document.MarshalYAML(value)
	}
	if err != nil {
		return errors.Io("could not serialize assembly %s", key).Wrap(err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Io("could not write file to output directory").Wrap(err)
	}
	return nil
}
