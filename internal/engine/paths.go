package engine

import (
	"path"
	"strings"
)

// Path predicates classify a file by its repository-relative path. Each
// predicate is independent; a path may satisfy several. All comparisons are
// case-insensitive.

func lowerBase(p string) string {
	return strings.ToLower(path.Base(p))
}

func lowerExt(p string) string {
	return strings.ToLower(path.Ext(p))
}

// hasSegment reports whether any directory segment of p equals one of the
// given names.
func hasSegment(p string, names ...string) bool {
	for _, seg := range strings.Split(strings.ToLower(path.Dir(p)), "/") {
		for _, name := range names {
			if seg == name {
				return true
			}
		}
	}
	return false
}

func isTestPath(p string) bool {
	base := lowerBase(p)
	for _, marker := range []string{".test.", ".spec.", "_test.", "_spec."} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return hasSegment(p, "test", "tests", "__tests__", "spec")
}

func isDocPath(p string) bool {
	switch lowerExt(p) {
	case ".md", ".mdx", ".rst", ".adoc":
		return true
	}
	return hasSegment(p, "docs", "doc")
}

func isConfigPath(p string) bool {
	if strings.Contains(strings.ToLower(p), "config") {
		return true
	}
	switch lowerExt(p) {
	case ".json", ".yml", ".yaml", ".toml", ".ini", ".env", ".properties":
		return true
	}
	return false
}

func isStylePath(p string) bool {
	switch lowerExt(p) {
	case ".css", ".scss", ".sass", ".less", ".styl":
		return true
	}
	return false
}

// isUIExt matches only markup-bearing extensions; the extractor uses it to
// gate component and tag detection.
func isUIExt(p string) bool {
	switch lowerExt(p) {
	case ".jsx", ".tsx", ".vue", ".svelte":
		return true
	}
	return false
}

// isUIPath matches component-flavored files: markup-bearing extensions or
// anything under a components directory.
func isUIPath(p string) bool {
	return isUIExt(p) || hasSegment(p, "components", "component")
}

func isAPIPath(p string) bool {
	if hasSegment(p, "api", "routes", "controllers", "handlers", "endpoints") {
		return true
	}
	base := lowerBase(p)
	for _, marker := range []string{"route", "controller", "endpoint", "handler"} {
		if strings.HasPrefix(base, marker) {
			return true
		}
	}
	return false
}

func isCLIPath(p string) bool {
	return hasSegment(p, "cli", "cmd", "bin")
}

func isBuildPath(p string) bool {
	base := lowerBase(p)
	switch base {
	case "makefile", "dockerfile", "justfile", "rakefile",
		"package.json", "go.mod", "go.sum", "pom.xml", "build.gradle":
		return true
	}
	for _, marker := range []string{"webpack", "rollup", "vite.config", "babel", "tsconfig", "gulpfile", "gruntfile"} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return hasSegment(p, "build", "scripts")
}

// isGeneratedPath matches files nobody writes by hand: lockfiles, minified
// bundles, source maps and build output.
func isGeneratedPath(p string) bool {
	base := lowerBase(p)
	for _, marker := range []string{"-lock.", "lock.json", ".min.", ".map", ".snap", "generated"} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return hasSegment(p, "dist", "node_modules", "vendor")
}

// stemOf returns the base name without its extension chain ("a.test.ts"
// yields "a.test"; a second call is never needed by callers).
func stemOf(p string) string {
	base := path.Base(p)
	if ext := path.Ext(base); ext != "" {
		return strings.TrimSuffix(base, ext)
	}
	return base
}
