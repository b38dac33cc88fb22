package sections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	schemaOnce     sync.Once
	compiledByType map[Type]*jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON schema document describing the payload of t.
func Schema(t Type) (map[string]any, error) {
	props, ok := payloadProperties(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, t)
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}, nil
}

// ValidatePayload checks raw against the schema for t. Violations are reported
// together as a *PayloadValidationError.
func ValidatePayload(t Type, raw json.RawMessage) error {
	if !t.Valid() {
		return &UnknownTypeError{Type: t}
	}
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	compiled := compiledByType[t]

	var doc any = map[string]any{}
	if !isEmptyJSON(raw) {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return &PayloadValidationError{Type: t, Issues: []Issue{{Message: err.Error()}}}
		}
	}
	if err := compiled.Validate(doc); err != nil {
		return &PayloadValidationError{Type: t, Issues: schemaIssues(err)}
	}
	return nil
}

func compileSchemas() {
	compiledByType = make(map[Type]*jsonschema.Schema, len(knownTypes))
	for _, t := range knownTypes {
		doc, err := Schema(t)
		if err != nil {
			schemaErr = err
			return
		}
		compiled, err := compileSchema(string(t), doc)
		if err != nil {
			schemaErr = fmt.Errorf("sections: compile %s schema: %w", t, err)
			return
		}
		compiledByType[t] = compiled
	}
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	resource := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(resource, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(resource)
}

func schemaIssues(err error) []Issue {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Message: err.Error()}}
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}

func payloadProperties(t Type) (map[string]any, bool) {
	props := layoutProperties()
	switch {
	case t.IsHero():
		merge(props, headerProperties(), buttonProperties())
		props["image"] = stringProp()
		props["video"] = stringProp()
	case t.IsCard():
		merge(props, headerProperties())
		props["cards"] = listOf("title", "description", "image", "link", "linkText")
	case t.IsContact():
		merge(props, headerProperties())
		for _, key := range []string{"address", "phone", "email", "workingHours", "mapUrl", "formTitle"} {
			props[key] = stringProp()
		}
	case t == TypeCTAOne:
		merge(props, headerProperties(), buttonProperties())
	case t == TypeLogosOne:
		merge(props, headerProperties())
		props["logos"] = listOf("name", "image", "link")
	case t == TypeTeamOne:
		merge(props, headerProperties())
		props["members"] = listOf("name", "photo", "role", "bio")
	case t == TypeCustomHTML:
		props["html"] = stringProp()
	default:
		return nil, false
	}
	return props, true
}

func layoutProperties() map[string]any {
	return map[string]any{
		"layout":          map[string]any{"type": "string", "enum": []any{"", "contained", "full-width"}},
		"height":          map[string]any{"type": "string"},
		"backgroundColor": stringProp(),
		"textColor":       stringProp(),
		"backgroundImage": stringProp(),
	}
}

func headerProperties() map[string]any {
	return map[string]any{
		"title":       stringProp(),
		"subtitle":    stringProp(),
		"description": stringProp(),
	}
}

func buttonProperties() map[string]any {
	return map[string]any{
		"buttonText":  stringProp(),
		"buttonLink":  stringProp(),
		"buttonStyle": stringProp(),
	}
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func listOf(keys ...string) map[string]any {
	item := make(map[string]any, len(keys))
	for _, key := range keys {
		item[key] = stringProp()
	}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"properties":           item,
			"additionalProperties": false,
		},
	}
}

func merge(dst map[string]any, sources ...map[string]any) {
	for _, src := range sources {
		for key, value := range src {
			dst[key] = value
		}
	}
}
