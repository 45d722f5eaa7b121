package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank file format major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion indicates a bank file written for another format major.
var ErrUnsupportedVersion = errors.New("unsupported bank format version")

//go:embed sample.json
var sampleBank []byte

// ValidationError reports a bank file that does not conform to the format.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question bank %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
		},
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "integer"},
					"question": map[string]any{"type": "string", "minLength": 1},
					"answer":   map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "question", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required": []any{"version", "questions"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles bankSchema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not a
		// Go map with typed slices, so round-trip through JSON first.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Load reads and validates the bank file at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return parse(path, data)
}

// Default returns the built-in sample bank.
func Default() (*Bank, error) {
	return parse("(built-in)", sampleBank)
}

// Parse validates raw bank JSON and decodes it.
func Parse(data []byte) (*Bank, error) {
	return parse("(inline)", data)
}

func parse(source string, data []byte) (*Bank, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	if !semver.IsValid(b.Version) || semver.Major(b.Version) != SupportedMajor {
		return nil, &ValidationError{
			Source: source,
			Err:    fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, b.Version, SupportedMajor),
		}
	}

	seen := make(map[int]bool, len(b.Questions))
	for _, q := range b.Questions {
		if seen[q.ID] {
			return nil, &ValidationError{Source: source, Err: fmt.Errorf("duplicate question id %d", q.ID)}
		}
		seen[q.ID] = true
	}

	return &b, nil
}
