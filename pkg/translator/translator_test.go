package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"promanager/pkg/translator"

	"github.com/stretchr/testify/require"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`taskNotFound = "Task not found"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.toml"), []byte(`taskNotFound = "Tâche introuvable"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a translation"), 0o644))

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	require.Equal(t, "Task not found", translator.Translate("taskNotFound", translator.LanguageEn))
	require.Equal(t, "Tâche introuvable", translator.Translate("taskNotFound", translator.LanguageFr))
	require.Equal(t, "missingKey", translator.Translate("missingKey", translator.LanguageEn))
}

func TestInitTranslator_ShippedFilesAgree(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	for _, key := range []string{"taskNotFound", "invalidStatus", "unauthorized", "taskShared"} {
		require.NotEqual(t, key, translator.Translate(key, translator.LanguageEn), key)
		require.NotEqual(t, key, translator.Translate(key, translator.LanguageFr), key)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})

	require.Equal(t, "taskNotFound", translator.Translate("taskNotFound", translator.LanguageEn))
}

func TestMatchLanguage(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  t.TempDir(),
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	tests := []struct {
		header string
		want   string
	}{
		{"", translator.LanguageEn},
		{"fr", translator.LanguageFr},
		{"fr-CA,fr;q=0.9,en;q=0.8", translator.LanguageFr},
		{"en-US,en;q=0.9", translator.LanguageEn},
		{"de-DE", translator.LanguageEn},
		{";;;garbage", translator.LanguageEn},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			require.Equal(t, tt.want, translator.MatchLanguage(tt.header))
		})
	}
}
