// Package importer converts loosely-structured CSV rows into canonical
// entity payloads. Accepted column aliases and positional fallbacks are
// explicit per-entity tables, not inline probing, so the import contract
// is visible and testable in one place.
package importer

// Transform is the case normalization applied to a field value after trimming.
type Transform int

const (
	KeepCase Transform = iota
	Uppercase
	Lowercase
)

// Field describes one canonical payload field and how to locate it in a
// raw CSV row.
type Field struct {
	// Name is the canonical key in the normalized record.
	Name string
	// Aliases are accepted header names, probed in order, matched
	// case-insensitively. The first alias with a non-empty value wins.
	Aliases []string
	// Required drops the whole record when the field resolves empty.
	Required bool
	// Positional is the raw column index used when no alias matched the
	// header row. -1 disables positional fallback for this field.
	Positional int
	// Transform is applied after trimming.
	Transform Transform
	// Default fills the field when it resolves empty and is not required.
	Default string
}

// Schema is the full alias table for one entity type.
type Schema struct {
	Fields []Field
}

// Canonical field names shared by schemas and their consumers.
const (
	FieldHeadword    = "headword"
	FieldCEFRLevel   = "cefr_level"
	FieldTranslation = "translation"
	FieldTopic       = "topic"
	FieldText        = "text"
	FieldDifficulty  = "difficulty"
	FieldCategory    = "category"
)

// WordSchema is the alias table for vocabulary CSV imports. It has no
// positional fallback: a file without a recognizable header yields nothing.
func WordSchema() Schema {
	return Schema{Fields: []Field{
		{
			Name:       FieldHeadword,
			Aliases:    []string{"headword", "word"},
			Required:   true,
			Positional: -1,
		},
		{
			Name:       FieldCEFRLevel,
			Aliases:    []string{"cefr", "cefr_level", "level"},
			Required:   true,
			Positional: -1,
			Transform:  Uppercase,
		},
		{
			Name:       FieldTranslation,
			Aliases:    []string{"translation", "vietnamese", "meaning"},
			Positional: -1,
		},
		{
			Name:       FieldTopic,
			Aliases:    []string{"topic", "category"},
			Positional: -1,
		},
	}}
}

// SentenceSchema is the alias table for speech-practice CSV imports. It is
// the permissive variant: the sentence and translation fields fall back to
// the first and second raw columns when no alias matches.
func SentenceSchema() Schema {
	return Schema{Fields: []Field{
		{
			Name:       FieldText,
			Aliases:    []string{"sentence", "text", "content"},
			Required:   true,
			Positional: 0,
		},
		{
			Name:       FieldTranslation,
			Aliases:    []string{"translation", "vietnamese", "meaning"},
			Positional: 1,
		},
		{
			Name:       FieldDifficulty,
			Aliases:    []string{"difficulty", "level"},
			Positional: -1,
			Transform:  Lowercase,
			Default:    "medium",
		},
		{
			Name:       FieldCategory,
			Aliases:    []string{"category", "topic"},
			Positional: -1,
			Transform:  Lowercase,
			Default:    "general",
		},
	}}
}
