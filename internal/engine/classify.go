package engine

import "sort"

// Thresholds used by the classification rules.
const (
	configFileLimit   = 3
	largeAdditionBar  = 50
	notableDocAdds    = 10
	notableUIChurn    = 20
	notableOtherChurn = 30
)

// Classify assigns exactly one commit category to a change set. The rules
// are aggregates over the whole file set, so permuting the files never
// changes the verdict. The first matching rule wins:
//
//  1. test files           -> test / "testing"
//  2. docs, no UI or API   -> docs / "documentation"
//  3. config, <= 3 files   -> chore / "configuration"
//  4. build or CLI paths   -> build / "build" or "cli"
//  5. styles, no UI or API -> style / "styling"
//  6. API paths            -> feat or fix by addition volume / "API"
//  7. UI paths             -> feat or fix by addition volume / "components"
//  8. addition/deletion ratio fallback
func Classify(cs *ChangeSet) CommitCategory {
	var (
		hasTest, hasDocs, hasConfig bool
		hasBuild, hasCLI, hasStyle  bool
		hasAPI, hasUI               bool
		additions, deletions        int
		notable                     []string
	)

	for _, f := range cs.Files {
		additions += f.Additions
		deletions += f.Deletions

		test := isTestPath(f.Path)
		docs := isDocPath(f.Path)
		ui := isUIPath(f.Path)
		api := isAPIPath(f.Path)

		hasTest = hasTest || test
		hasDocs = hasDocs || docs
		hasConfig = hasConfig || isConfigPath(f.Path)
		hasBuild = hasBuild || isBuildPath(f.Path)
		hasCLI = hasCLI || isCLIPath(f.Path)
		hasStyle = hasStyle || isStylePath(f.Path)
		hasAPI = hasAPI || api
		hasUI = hasUI || ui

		churn := f.Additions + f.Deletions
		switch {
		case docs && f.Additions > notableDocAdds:
			notable = append(notable, f.Path)
		case ui && churn > notableUIChurn:
			notable = append(notable, f.Path)
		case api:
			notable = append(notable, f.Path)
		case churn > notableOtherChurn:
			notable = append(notable, f.Path)
		}
	}
	sort.Strings(notable)

	category := func(t CommitType, label string) CommitCategory {
		return CommitCategory{Type: t, Category: label, NotableFiles: notable}
	}

	featOrFix := TypeFix
	if additions > largeAdditionBar {
		featOrFix = TypeFeat
	}

	switch {
	case hasTest:
		return category(TypeTest, "testing")
	case hasDocs && !hasUI && !hasAPI:
		return category(TypeDocs, "documentation")
	case hasConfig && len(cs.Files) <= configFileLimit:
		return category(TypeChore, "configuration")
	case hasCLI:
		return category(TypeBuild, "cli")
	case hasBuild:
		return category(TypeBuild, "build")
	case hasStyle && !hasUI && !hasAPI:
		return category(TypeStyle, "styling")
	case hasAPI:
		return category(featOrFix, "API")
	case hasUI:
		return category(featOrFix, "components")
	case additions > 2*deletions:
		return category(TypeFeat, "features")
	case deletions > 2*additions:
		return category(TypeRefactor, "refactoring")
	default:
		return category(TypeFix, "fixes")
	}
}
