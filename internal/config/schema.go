package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// SchemaError is a schema violation with source position.
type SchemaError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckSchema validates raw YAML config against the embedded CUE schema.
// filename is used only for error positions.
//
// Unknown keys, out-of-range ports and unsupported enum values are rejected
// here, before the file is decoded.
func CheckSchema(filename string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return formatCUEError(err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "config"
	if path := first.Path(); len(path) > 0 {
		field = joinPath(path)
	}

	// Prefer a position inside the config file over one in the schema.
	positions := cueerrors.Positions(first)
	for _, pos := range positions {
		if pos.Filename() != "schema.cue" {
			return &SchemaError{Field: field, Message: first.Error(), Pos: pos}
		}
	}
	if len(positions) > 0 {
		return &SchemaError{Field: field, Message: first.Error(), Pos: positions[0]}
	}
	return &SchemaError{Field: field, Message: first.Error()}
}

func joinPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		if p != "#Config" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "config"
	}
	return strings.Join(parts, ".")
}
