package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[keyFromPath(path)] = schema
	}
}

// keyFromPath: "schemas/events/lead-created/v1.json" -> "LeadCreatedEvent/1.0.0",
// "schemas/requests/lead/v1.json" -> "LeadRequest/1.0.0"
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return ""
	}

	suffix := "Event"
	if parts[0] == "requests" {
		suffix = "Request"
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return name.String() + "/" + version
}

// Validate проверяет JSON-документ по схеме name/version (например "LeadRequest", "1.0.0")
func Validate(name, version string, body []byte) error {
	key := name + "/" + version
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

const (
	LeadRequestSchema      = "LeadRequest"
	LeadCreatedEventSchema = "LeadCreatedEvent"
	SchemaVersionV1        = "1.0.0"
)

// ValidateLeadRequest - проверка тела POST /api/leads
func ValidateLeadRequest(body []byte) error {
	return Validate(LeadRequestSchema, SchemaVersionV1, body)
}

// LeadRequestValidator - обертка для внедрения в обработчики
type LeadRequestValidator struct{}

func (LeadRequestValidator) ValidateLead(body []byte) error {
	return ValidateLeadRequest(body)
}
