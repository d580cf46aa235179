package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Caps applied to each signal set after deduplication.
const (
	maxSignalNames = 5
	maxTypeNames   = 3
)

// Line predicates over added diff lines. Each is independent and a single
// line may feed several sets; preserving that independence keeps new signal
// kinds cheap to add.
var (
	funcDeclRe  = regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	arrowFnRe   = regexp.MustCompile(`^(?:export\s+)?const\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\(`)
	classRe     = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	compDeclRe  = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:function|const)\s+([A-Z][\w$]*)`)
	uiTagRe     = regexp.MustCompile(`<([A-Z][\w]*)`)
	importRe    = regexp.MustCompile(`^import\s+(?:[^'"]*\s+from\s+)?['"]([^'"./][^'"]*)['"]`)
	requireRe   = regexp.MustCompile(`require\(\s*['"]([^'"./][^'"]*)['"]`)
	configKeyRe = regexp.MustCompile(`^['"]([\w.-]+)['"]\s*:`)
	httpVerbRe  = regexp.MustCompile(`\.(get|post|put|delete|patch|head|options)\s*\(`)
)

// signalBag accumulates raw matches before deduplication and capping.
type signalBag struct {
	functions    []string
	types        []string
	components   []string
	dependencies []string
	configKeys   []string
	uiTags       []string
	httpVerbs    []string
}

// Extract scans every added line of every file's diff text and collects
// shallow structural signals. It never fails: files with empty or malformed
// diff text simply contribute nothing.
func Extract(cs *ChangeSet) DiffSignals {
	var bag signalBag
	for _, f := range cs.Files {
		if f.DiffText == "" {
			continue
		}
		ui := isUIExt(f.Path)
		config := isConfigPath(f.Path)
		api := isAPIPath(f.Path)
		for _, raw := range strings.Split(f.DiffText, "\n") {
			if !strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "+++") {
				continue
			}
			line := strings.TrimSpace(raw[1:])
			if line == "" {
				continue
			}
			bag.scan(line, ui, config, api)
		}
	}

	functions := dedupe(bag.functions)
	types := dedupe(bag.types)
	components := dedupe(bag.components)
	uiTags := dedupe(bag.uiTags)
	dependencies := dedupe(bag.dependencies)
	configKeys := dedupe(bag.configKeys)

	sig := DiffSignals{
		Functions:       capNames(functions, maxSignalNames),
		Types:           capNames(types, maxTypeNames),
		Components:      capNames(components, maxSignalNames),
		Dependencies:    capNames(dependencies, maxSignalNames),
		ConfigKeys:      capNames(configKeys, maxSignalNames),
		UITags:          capNames(uiTags, maxSignalNames),
		HTTPVerbs:       capNames(dedupe(bag.httpVerbs), maxSignalNames),
		FunctionCount:   len(functions),
		TypeCount:       len(types),
		ComponentCount:  len(components),
		UITagCount:      len(uiTags),
		DependencyCount: len(dependencies),
		ConfigKeyCount:  len(configKeys),
	}
	sig.DominantPurpose = dominantPurpose(sig)
	return sig
}

// scan applies every line predicate to one added line. All predicates are
// tried; a line may match several.
func (b *signalBag) scan(line string, ui, config, api bool) {
	if m := funcDeclRe.FindStringSubmatch(line); m != nil {
		b.functions = append(b.functions, m[1])
	}
	if m := arrowFnRe.FindStringSubmatch(line); m != nil {
		b.functions = append(b.functions, m[1])
	}
	if m := classRe.FindStringSubmatch(line); m != nil {
		b.types = append(b.types, m[1])
	}
	if ui {
		if m := compDeclRe.FindStringSubmatch(line); m != nil {
			b.components = append(b.components, m[1])
		}
		if m := uiTagRe.FindStringSubmatch(line); m != nil {
			b.uiTags = append(b.uiTags, m[1])
		}
	}
	if m := importRe.FindStringSubmatch(line); m != nil {
		b.dependencies = append(b.dependencies, moduleRoot(m[1]))
	}
	if m := requireRe.FindStringSubmatch(line); m != nil {
		b.dependencies = append(b.dependencies, moduleRoot(m[1]))
	}
	if config {
		if m := configKeyRe.FindStringSubmatch(line); m != nil {
			b.configKeys = append(b.configKeys, m[1])
		}
	}
	if api {
		if m := httpVerbRe.FindStringSubmatch(line); m != nil {
			b.httpVerbs = append(b.httpVerbs, strings.ToUpper(m[1]))
		}
	}
}

// moduleRoot reduces an imported module path to its first path segment.
func moduleRoot(module string) string {
	if i := strings.Index(module, "/"); i > 0 {
		return module[:i]
	}
	return module
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func capNames(names []string, limit int) []string {
	if len(names) > limit {
		return names[:limit]
	}
	return names
}

// dominantPurpose picks the single best-guess intent phrase by fixed
// category priority. Ties across categories are broken by this order, never
// by magnitude.
func dominantPurpose(sig DiffSignals) string {
	switch {
	case sig.ComponentCount > 3:
		return fmt.Sprintf("implementing %d new UI components", sig.ComponentCount)
	case sig.ComponentCount > 0:
		return fmt.Sprintf("adding %s component%s",
			joinNames(sig.Components, 3), plural(sig.ComponentCount))
	case sig.FunctionCount > 5:
		return "implementing multiple utility functions and helpers"
	case sig.FunctionCount > 0:
		return fmt.Sprintf("adding %s function%s",
			joinNames(sig.Functions, 3), plural(sig.FunctionCount))
	case sig.TypeCount > 0:
		return fmt.Sprintf("implementing %s class%s",
			joinNames(sig.Types, 3), pluralES(sig.TypeCount))
	case len(sig.HTTPVerbs) > 0:
		return fmt.Sprintf("adding %s API endpoint%s",
			strings.Join(sig.HTTPVerbs, "/"), plural(len(sig.HTTPVerbs)))
	case sig.UITagCount > 5:
		return "enhancing UI with multiple component updates"
	case len(sig.ConfigKeys) > 0:
		return "updating configuration settings"
	case len(sig.Dependencies) > 0:
		return fmt.Sprintf("integrating %s dependencies", joinNames(sig.Dependencies, 2))
	}
	return ""
}

// joinNames joins up to max names with commas.
func joinNames(names []string, max int) string {
	if len(names) > max {
		names = names[:max]
	}
	return strings.Join(names, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pluralES(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}
