package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTestFilesWinOverEverything(t *testing.T) {
	cs := NewChangeSet([]FileChange{
		{Path: "src/a.test.ts", Status: StatusModified, Additions: 5, Deletions: 1},
		{Path: "src/api/users/route.ts", Status: StatusModified, Additions: 40},
		{Path: "docs/guide.md", Status: StatusModified, Additions: 12},
	}, nil)

	cat := Classify(cs)
	require.Equal(t, TypeTest, cat.Type)
	require.Equal(t, "testing", cat.Category)
}

func TestClassifySingleTestFile(t *testing.T) {
	cs := NewChangeSet([]FileChange{
		{Path: "src/a.test.ts", Status: StatusModified, Additions: 5, Deletions: 1},
	}, nil)

	cat := Classify(cs)
	require.Equal(t, TypeTest, cat.Type)
	require.Equal(t, "testing", cat.Category)
	require.Empty(t, cat.NotableFiles)
}

func TestClassifyDocsRequireNoCodeAlongside(t *testing.T) {
	docsOnly := NewChangeSet([]FileChange{
		{Path: "docs/setup.md", Status: StatusModified, Additions: 8},
		{Path: "README.md", Status: StatusModified, Additions: 3},
	}, nil)
	cat := Classify(docsOnly)
	require.Equal(t, TypeDocs, cat.Type)
	require.Equal(t, "documentation", cat.Category)

	withUI := NewChangeSet([]FileChange{
		{Path: "docs/setup.md", Status: StatusModified, Additions: 8},
		{Path: "src/components/Nav.tsx", Status: StatusModified, Additions: 4},
	}, nil)
	cat = Classify(withUI)
	require.Equal(t, "components", cat.Category)
}

func TestClassifyConfigLimitedToSmallSets(t *testing.T) {
	small := NewChangeSet([]FileChange{
		{Path: "config/app.json", Status: StatusModified, Additions: 4},
		{Path: ".env", Status: StatusModified, Additions: 1},
	}, nil)
	cat := Classify(small)
	require.Equal(t, TypeChore, cat.Type)
	require.Equal(t, "configuration", cat.Category)

	// Four config files no longer look like a pure settings tweak.
	large := NewChangeSet([]FileChange{
		{Path: "config/app.json", Status: StatusModified, Additions: 10},
		{Path: "config/db.json", Status: StatusModified, Additions: 10},
		{Path: "config/cache.json", Status: StatusModified, Additions: 10},
		{Path: "config/auth.json", Status: StatusModified, Additions: 10},
	}, nil)
	cat = Classify(large)
	require.Equal(t, TypeFeat, cat.Type)
	require.Equal(t, "features", cat.Category)
}

func TestClassifyBuildAndCLI(t *testing.T) {
	cli := NewChangeSet([]FileChange{
		{Path: "cli/run.js", Status: StatusModified, Additions: 6},
	}, nil)
	cat := Classify(cli)
	require.Equal(t, TypeBuild, cat.Type)
	require.Equal(t, "cli", cat.Category)

	build := NewChangeSet([]FileChange{
		{Path: "Dockerfile", Status: StatusModified, Additions: 6},
	}, nil)
	cat = Classify(build)
	require.Equal(t, TypeBuild, cat.Type)
	require.Equal(t, "build", cat.Category)
}

func TestClassifyStyling(t *testing.T) {
	pure := NewChangeSet([]FileChange{
		{Path: "styles/buttons.css", Status: StatusModified, Additions: 9, Deletions: 4},
	}, nil)
	cat := Classify(pure)
	require.Equal(t, TypeStyle, cat.Type)
	require.Equal(t, "styling", cat.Category)

	withUI := NewChangeSet([]FileChange{
		{Path: "styles/buttons.css", Status: StatusModified, Additions: 9},
		{Path: "src/components/Button.tsx", Status: StatusModified, Additions: 5},
	}, nil)
	cat = Classify(withUI)
	require.Equal(t, "components", cat.Category)
}

func TestClassifyAPIAdditionVolume(t *testing.T) {
	large := NewChangeSet([]FileChange{
		{Path: "src/api/users/route.ts", Status: StatusAdded, Additions: 80},
	}, nil)
	cat := Classify(large)
	require.Equal(t, TypeFeat, cat.Type)
	require.Equal(t, "API", cat.Category)
	require.Equal(t, []string{"src/api/users/route.ts"}, cat.NotableFiles)

	small := NewChangeSet([]FileChange{
		{Path: "src/api/users/route.ts", Status: StatusModified, Additions: 10, Deletions: 30},
	}, nil)
	cat = Classify(small)
	require.Equal(t, TypeFix, cat.Type)
	require.Equal(t, "API", cat.Category)
}

func TestClassifyRatioFallback(t *testing.T) {
	tests := []struct {
		name                 string
		additions, deletions int
		wantType             CommitType
		wantCategory         string
	}{
		{"mostly additions", 30, 5, TypeFeat, "features"},
		{"mostly deletions", 5, 30, TypeRefactor, "refactoring"},
		{"balanced", 20, 15, TypeFix, "fixes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewChangeSet([]FileChange{
				{Path: "core/a.ts", Status: StatusModified, Additions: tt.additions, Deletions: tt.deletions},
			}, nil)
			cat := Classify(cs)
			require.Equal(t, tt.wantType, cat.Type)
			require.Equal(t, tt.wantCategory, cat.Category)
		})
	}
}

func TestClassifyNotableFiles(t *testing.T) {
	cs := NewChangeSet([]FileChange{
		// Docs need more than 10 added lines.
		{Path: "docs/big.md", Status: StatusModified, Additions: 15},
		{Path: "docs/small.md", Status: StatusModified, Additions: 5},
		// UI needs more than 20 changed lines.
		{Path: "src/components/Busy.tsx", Status: StatusModified, Additions: 20, Deletions: 10},
		{Path: "src/components/Quiet.tsx", Status: StatusModified, Additions: 5, Deletions: 5},
		// API files always count.
		{Path: "src/api/ping.ts", Status: StatusModified, Additions: 1},
		// Everything else needs more than 30 changed lines.
		{Path: "core/engine.ts", Status: StatusModified, Additions: 25, Deletions: 10},
		{Path: "core/tiny.ts", Status: StatusModified, Additions: 2},
	}, nil)

	cat := Classify(cs)
	require.Equal(t, []string{
		"core/engine.ts",
		"docs/big.md",
		"src/api/ping.ts",
		"src/components/Busy.tsx",
	}, cat.NotableFiles)
}

func TestClassifyOrderIndependent(t *testing.T) {
	files := []FileChange{
		{Path: "docs/big.md", Status: StatusModified, Additions: 15},
		{Path: "src/api/ping.ts", Status: StatusModified, Additions: 1},
		{Path: "src/components/Busy.tsx", Status: StatusModified, Additions: 30, Deletions: 10},
		{Path: "core/engine.ts", Status: StatusModified, Additions: 40},
	}
	reversed := make([]FileChange, len(files))
	for i, f := range files {
		reversed[len(files)-1-i] = f
	}

	first := Classify(NewChangeSet(files, nil))
	second := Classify(NewChangeSet(reversed, nil))
	require.Equal(t, first, second)
}
