package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want FileStatus
	}{
		{"A", StatusAdded},
		{"M", StatusModified},
		{"D", StatusDeleted},
		{"R100", StatusRenamed},
		{"C75", StatusCopied},
		{"U", StatusUnmerged},
		{"", StatusModified},
		{"X", StatusModified},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ParseFileStatus(tt.raw), "raw %q", tt.raw)
	}
}

func TestNewChangeSetSummary(t *testing.T) {
	cs := NewChangeSet([]FileChange{
		{Path: "a.ts", Status: StatusAdded, Additions: 7},
		{Path: "b.ts", Status: StatusModified, Additions: 3, Deletions: 2},
	}, []string{"img/logo.png"})

	require.Equal(t, "2 files changed, +10 -2", cs.SummaryText)
	require.Equal(t, 10, cs.TotalAdditions())
	require.Equal(t, 2, cs.TotalDeletions())
	require.True(t, cs.HasChanges())
	require.Equal(t, []string{"img/logo.png"}, cs.DegradedFiles)

	empty := NewChangeSet(nil, nil)
	require.False(t, empty.HasChanges())
}

func TestValidCommitType(t *testing.T) {
	for _, raw := range []string{"feat", "fix", "refactor", "docs", "style", "test", "chore", "perf", "ci", "build"} {
		if !ValidCommitType(raw) {
			t.Errorf("ValidCommitType(%q) = false, want true", raw)
		}
	}

	require.True(t, ValidCommitType("FEAT"))

	if ValidCommitType("feature") {
		t.Error("ValidCommitType accepted an unknown type")
	}
}

func TestFullMessage(t *testing.T) {
	tests := []struct {
		name string
		s    Suggestion
		want string
	}{
		{
			name: "full form",
			s: Suggestion{
				Type: TypeFeat, Scope: "auth", Subject: "add session refresh",
				Body: "- handles expiry\n- Total: +10 -2 lines",
			},
			want: "feat(auth): add session refresh\n\n- handles expiry\n- Total: +10 -2 lines",
		},
		{
			name: "no scope no body",
			s:    Suggestion{Type: TypeFix, Subject: "correct retry backoff"},
			want: "fix: correct retry backoff",
		},
		{
			name: "breaking",
			s:    Suggestion{Type: TypeRefactor, Scope: "api", Subject: "drop v1 routes", Breaking: true},
			want: "refactor(api)!: drop v1 routes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.s.FullMessage())
		})
	}
}

func TestSuggestionMarshalJSON(t *testing.T) {
	s := Suggestion{
		Type: TypeFeat, Scope: "api", Subject: "add health endpoint",
		Body: "- expose /healthz", Confidence: 0.9,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "feat",
		"scope": "api",
		"subject": "add health endpoint",
		"body": "- expose /healthz",
		"confidence": 0.9,
		"fullMessage": "feat(api): add health endpoint\n\n- expose /healthz"
	}`, string(data))

	var back Suggestion
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, s, back)
}
