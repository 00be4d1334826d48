package translator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var (
	supportedTags = []language.Tag{language.English, language.French}
	matcher       = language.NewMatcher(supportedTags)
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if len(cfg.SupportedLanguages) > 0 {
		tags := make([]language.Tag, 0, len(cfg.SupportedLanguages))
		for _, lang := range cfg.SupportedLanguages {
			tag, err := language.Parse(lang)
			if err != nil {
				zap.L().Warn("ignoring unsupported language", zap.String("lang", lang), zap.Error(err))
				continue
			}
			tags = append(tags, tag)
		}
		if len(tags) > 0 {
			supportedTags = tags
			matcher = language.NewMatcher(tags)
		}
	}

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		path := fmt.Sprintf("%s/%s", cfg.TranslationFolder, f.Name())

		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage picks the supported language closest to an Accept-Language
// header value. Unknown or empty input yields English.
func MatchLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}

	base, _ := supportedTags[index].Base()
	return base.String()
}

// Translate localizes msgKey, falling back to the key itself.
func Translate(msgKey, lang string) string {
	if Translator == nil {
		return msgKey
	}

	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
