package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SanitizeFilename replaces runs of whitespace with a single underscore and
// strips every other character that is unsafe in a storage key. The result
// contains only [A-Za-z0-9._-] and may be empty for fully exotic names.
func SanitizeFilename(name string) string {
	name = whitespaceRe.ReplaceAllString(name, "_")
	return disallowedRe.ReplaceAllString(name, "")
}

// StorageKey derives a collision-resistant object key for an uploaded file.
// Each call draws a fresh random identifier, so repeated original names never
// collide, within one request or across requests.
func StorageKey(originalName string) string {
	return uuid.New().String() + "_" + SanitizeFilename(originalName)
}

// ContentTypeForFilename is the fallback when the browser sends no Content-Type
// for a file part.
func ContentTypeForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
