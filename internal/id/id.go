// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used across the server. The prefix makes an ID self-describing
// in logs and URLs.
const (
	PrefixUser       = "usr"
	PrefixSession    = "ses"
	PrefixRecipe     = "rcp"
	PrefixTag        = "tag"
	PrefixIngredient = "ing"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g. "rcp-V1StGXR8_Z5jdHi6B-myT").
//
// NanoIDs are URL-friendly and shorter than UUIDs while keeping
// comparable collision resistance.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure. Failure means the
// system entropy source is broken, which is not recoverable anyway.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
