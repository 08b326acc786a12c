package core

import (
	"path"
	"strings"
)

// NormalizeScope strips leading and trailing path separators from a folder scope.
func NormalizeScope(scope string) string {
	return strings.Trim(scope, "/")
}

// containingFolder returns the folder holding filePath, or "" for top-level files.
func containingFolder(filePath string) string {
	dir := path.Dir(strings.TrimPrefix(filePath, "/"))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// IsInScope reports whether filePath lies within the monitored scope.
//
// An empty scope means no restriction. A scope that is set but normalizes to
// the empty string (e.g. "/") means the root folder only. Otherwise a file is
// in scope when its folder equals the scope or descends from it.
func IsInScope(filePath, scope string) bool {
	if scope == "" {
		return true
	}

	normalized := NormalizeScope(scope)
	folder := containingFolder(filePath)

	if normalized == "" {
		return folder == ""
	}
	return folder == normalized || strings.HasPrefix(folder, normalized+"/")
}
