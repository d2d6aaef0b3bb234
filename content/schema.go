// Package content declares the blog post front-matter schema and loads
// content collections that satisfy it.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FieldType is the value kind a schema field accepts.
type FieldType int

const (
	String FieldType = iota
	Date
	Bool
	StringList
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Date:
		return "date"
	case Bool:
		return "bool"
	case StringList:
		return "string list"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field describes one front-matter key.
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	Default   any // applied when the key is absent; nil means no default
	MinLength int // string fields only; 0 means unchecked
	MaxLength int // string fields only; 0 means unchecked
}

// Schema is an ordered list of field descriptors for one collection.
type Schema struct {
	Collection string
	Fields     []Field
}

// BlogSchema is the front-matter contract for the blog collection.
var BlogSchema = Schema{
	Collection: "blog",
	Fields: []Field{
		{Name: "title", Type: String, Required: true, MinLength: 1},
		{Name: "description", Type: String, Required: true, MaxLength: 160},
		{Name: "pubDate", Type: Date, Required: true},
		{Name: "updatedDate", Type: Date},
		{Name: "draft", Type: Bool, Default: false},
		{Name: "tags", Type: StringList, Default: []any{}},
	},
}

// BlogPostMetadata is validated blog front-matter.
type BlogPostMetadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PubDate     time.Time  `json:"pubDate"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
	Draft       bool       `json:"draft"`
	Tags        []string   `json:"tags"`
}

// LastModified returns UpdatedDate when set, otherwise PubDate.
func (m BlogPostMetadata) LastModified() time.Time {
	if m.UpdatedDate != nil {
		return *m.UpdatedDate
	}
	return m.PubDate
}

// JSONSchema renders the descriptor list as a draft 2020-12 JSON Schema.
// Date fields are described as date-time strings; Validator coerces raw
// values into that form before validating.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := []string{}
	for _, f := range s.Fields {
		prop := map[string]any{}
		switch f.Type {
		case String:
			prop["type"] = "string"
			if f.MinLength > 0 {
				prop["minLength"] = f.MinLength
			}
			if f.MaxLength > 0 {
				prop["maxLength"] = f.MaxLength
			}
		case Date:
			prop["type"] = "string"
			prop["format"] = "date-time"
		case Bool:
			prop["type"] = "boolean"
		case StringList:
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"title":      s.Collection,
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Validator applies a compiled Schema to raw front-matter.
type Validator struct {
	schema   Schema
	compiled *jsonschema.Schema
}

// Compile builds a Validator for s.
func (s Schema) Compile() (*Validator, error) {
	doc, err := toJSONValue(s.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("content: encode %s schema: %w", s.Collection, err)
	}
	name := s.Collection + ".schema.json"
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("content: add %s schema: %w", s.Collection, err)
	}
	compiled, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("content: compile %s schema: %w", s.Collection, err)
	}
	return &Validator{schema: s, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. The schema is static,
// so a failure here is a programming error.
func (s Schema) MustCompile() *Validator {
	v, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate applies defaults, coerces dates, checks raw against the schema
// and decodes the result. Keys not declared by the schema are dropped.
func (v *Validator) Validate(raw map[string]any) (BlogPostMetadata, error) {
	inst := make(map[string]any, len(v.schema.Fields))
	for _, f := range v.schema.Fields {
		if val, ok := raw[f.Name]; ok {
			inst[f.Name] = val
		}
	}
	for _, f := range v.schema.Fields {
		val, ok := inst[f.Name]
		if f.Type == Date && !f.Required && ok && val == nil {
			delete(inst, f.Name)
			ok = false
		}
		if !ok {
			if f.Default != nil {
				inst[f.Name] = cloneDefault(f.Default)
			}
			continue
		}
		if f.Type == Date {
			t, err := CoerceDate(val)
			if err != nil {
				return BlogPostMetadata{}, fmt.Errorf("%w: %s: %w", ErrInvalidEntry, f.Name, err)
			}
			inst[f.Name] = t.Format(time.RFC3339Nano)
		}
	}

	doc, err := toJSONValue(inst)
	if err != nil {
		return BlogPostMetadata{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if err := v.compiled.Validate(doc); err != nil {
		return BlogPostMetadata{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return decodeMetadata(doc.(map[string]any))
}

func decodeMetadata(doc map[string]any) (BlogPostMetadata, error) {
	var m BlogPostMetadata
	m.Title, _ = doc["title"].(string)
	m.Description, _ = doc["description"].(string)
	m.Draft, _ = doc["draft"].(bool)

	pub, err := time.Parse(time.RFC3339Nano, doc["pubDate"].(string))
	if err != nil {
		return BlogPostMetadata{}, fmt.Errorf("%w: pubDate: %w", ErrInvalidEntry, err)
	}
	m.PubDate = pub
	if s, ok := doc["updatedDate"].(string); ok {
		upd, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return BlogPostMetadata{}, fmt.Errorf("%w: updatedDate: %w", ErrInvalidEntry, err)
		}
		m.UpdatedDate = &upd
	}

	tags, _ := doc["tags"].([]any)
	m.Tags = make([]string, 0, len(tags))
	for _, t := range tags {
		m.Tags = append(m.Tags, t.(string))
	}
	return m, nil
}

// toJSONValue round-trips v through encoding/json so the result only holds
// the types the validator understands.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

func cloneDefault(v any) any {
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		copy(out, list)
		return out
	}
	return v
}
