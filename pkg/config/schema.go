// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gitlab.com/tozd/go/errors"
)

// SchemaURL is the $id of the embedded schema. Configs may point their
// "$schema" field at it.
const SchemaURL = "https://github.com/walteh/tpull/schema/tpull-config.schema.json"

//go:embed schema/tpull-config.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// 📐 Schema returns the compiled config schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = errors.Errorf("decoding embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(SchemaURL, doc); err != nil {
			schemaErr = errors.Errorf("adding embedded schema: %w", err)
			return
		}

		compiledSchema, schemaErr = compiler.Compile(SchemaURL)
		if schemaErr != nil {
			schemaErr = errors.Errorf("compiling embedded schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a JSON-encoded config document.
func validateSchema(raw []byte) error {
	sch, err := Schema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Errorf("decoding document: %w", err)
	}

	return sch.Validate(inst)
}
