package config

import (
	"encoding/json"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"commitgen.dev/commitgen/testhelpers"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

func TestLoad(t *testing.T) {
	requireGit(t)
	t.Parallel()

	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		cfg, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "", cfg.GetModel())
		require.Equal(t, 0, cfg.GetMaxTokens())
		require.Equal(t, VerbosityBalanced, cfg.GetVerbosity())
		require.False(t, cfg.GetIncludeBody())
		require.Equal(t, "", cfg.GetCustomPrompt())
	})

	t.Run("reads configured values", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		content := `{
  "model": "llama3.2",
  "maxTokens": 256,
  "temperature": 0.7,
  "verbosity": "detailed",
  "includeBody": true,
  "customPrompt": "Mention ticket IDs."
}`
		err := os.WriteFile(ConfigPath(scene.Dir), []byte(content), 0600)
		require.NoError(t, err)

		cfg, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "llama3.2", cfg.GetModel())
		require.Equal(t, 256, cfg.GetMaxTokens())
		require.Equal(t, 0.7, cfg.GetTemperature())
		require.Equal(t, VerbosityDetailed, cfg.GetVerbosity())
		require.True(t, cfg.GetIncludeBody())
		require.Equal(t, "Mention ticket IDs.", cfg.GetCustomPrompt())
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		err := os.WriteFile(ConfigPath(scene.Dir), []byte("{not json"), 0600)
		require.NoError(t, err)

		_, err = Load(scene.Dir)
		require.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	requireGit(t)
	t.Parallel()

	t.Run("round trips every key", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		cfg := &Config{}
		require.NoError(t, cfg.Set("model", "qwen2.5-coder"))
		require.NoError(t, cfg.Set("maxTokens", "512"))
		require.NoError(t, cfg.Set("temperature", "0.4"))
		require.NoError(t, cfg.Set("verbosity", "concise"))
		require.NoError(t, cfg.Set("includeBody", "true"))
		require.NoError(t, cfg.Set("customPrompt", "Keep subjects under 60 chars."))
		require.NoError(t, cfg.Save(scene.Dir))

		loaded, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "qwen2.5-coder", loaded.GetModel())
		require.Equal(t, 512, loaded.GetMaxTokens())
		require.Equal(t, 0.4, loaded.GetTemperature())
		require.Equal(t, VerbosityConcise, loaded.GetVerbosity())
		require.True(t, loaded.GetIncludeBody())
		require.Equal(t, "Keep subjects under 60 chars.", loaded.GetCustomPrompt())
	})

	t.Run("preserves unknown keys across rewrite", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		content := `{
  "model": "llama3.2",
  "futureKnob": {"nested": [1, 2, 3]},
  "legacyFlag": true
}`
		err := os.WriteFile(ConfigPath(scene.Dir), []byte(content), 0600)
		require.NoError(t, err)

		cfg, err := Load(scene.Dir)
		require.NoError(t, err)
		require.NoError(t, cfg.Set("verbosity", "detailed"))
		require.NoError(t, cfg.Save(scene.Dir))

		data, err := os.ReadFile(ConfigPath(scene.Dir))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Contains(t, raw, "futureKnob")
		require.JSONEq(t, `{"nested": [1, 2, 3]}`, string(raw["futureKnob"]))
		require.JSONEq(t, `true`, string(raw["legacyFlag"]))
		require.JSONEq(t, `"llama3.2"`, string(raw["model"]))
		require.JSONEq(t, `"detailed"`, string(raw["verbosity"]))
	})

	t.Run("rejects invalid values on save", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		temp := 2.0
		cfg := &Config{Temperature: &temp}
		err := cfg.Save(scene.Dir)
		require.Error(t, err)
		require.NoFileExists(t, ConfigPath(scene.Dir))
	})

	t.Run("updates an existing file without losing other fields", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		cfg := &Config{}
		require.NoError(t, cfg.Set("model", "llama3.2"))
		require.NoError(t, cfg.Save(scene.Dir))

		cfg, err := Load(scene.Dir)
		require.NoError(t, err)
		require.NoError(t, cfg.Set("includeBody", "true"))
		require.NoError(t, cfg.Save(scene.Dir))

		loaded, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "llama3.2", loaded.GetModel())
		require.True(t, loaded.GetIncludeBody())
	})
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("rejects out-of-range numbers", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		require.Error(t, cfg.Set("temperature", "0"))
		require.Error(t, cfg.Set("temperature", "1.5"))
		require.Error(t, cfg.Set("temperature", "-0.1"))
		require.NoError(t, cfg.Set("temperature", "1"))
		require.NoError(t, cfg.Set("temperature", "0.7"))

		require.Error(t, cfg.Set("maxTokens", "0"))
		require.Error(t, cfg.Set("maxTokens", "-5"))
		require.NoError(t, cfg.Set("maxTokens", "256"))
	})

	t.Run("rejects unparseable values", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		require.Error(t, cfg.Set("maxTokens", "many"))
		require.Error(t, cfg.Set("temperature", "warm"))
		require.Error(t, cfg.Set("includeBody", "yes"))
	})

	t.Run("rejects unknown verbosity levels", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		require.Error(t, cfg.Set("verbosity", "verbose"))
		for _, level := range []string{VerbosityConcise, VerbosityBalanced, VerbosityDetailed} {
			require.NoError(t, cfg.Set("verbosity", level))
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		require.Error(t, cfg.Set("colour", "blue"))
	})

	t.Run("rejects an empty model", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		require.Error(t, cfg.Set("model", ""))
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, cfg.Set("model", "llama3.2"))
	require.NoError(t, cfg.Set("temperature", "0.25"))
	require.NoError(t, cfg.Set("includeBody", "false"))

	model, err := cfg.Get("model")
	require.NoError(t, err)
	require.Equal(t, "llama3.2", model)

	temp, err := cfg.Get("temperature")
	require.NoError(t, err)
	require.Equal(t, "0.25", temp)

	body, err := cfg.Get("includeBody")
	require.NoError(t, err)
	require.Equal(t, "false", body)

	// Unset keys render empty
	unset, err := cfg.Get("verbosity")
	require.NoError(t, err)
	require.Equal(t, "", unset)

	_, err = cfg.Get("colour")
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]string{"model", "maxTokens", "temperature", "verbosity", "includeBody", "customPrompt"},
		Keys())
}
