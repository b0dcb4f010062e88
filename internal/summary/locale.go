package summary

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a requested language has no table.
const DefaultLanguage = "en"

// Strings is one language's text for the summary and notices.
type Strings struct {
	Welcome      string // args: tool, version
	Header       string
	Changes      string // args: from, to
	Features     string
	Improvements string
	Ready        string // args: tool, version, count
	ReadyOne     string // args: tool, version
	Versions     string // args: from, to
	Upgrade      string // args: command
	Restart      string
	Image        string // args: path
}

var locales = map[string]Strings{
	"en": {
		Welcome:      "Welcome to %s v%s!",
		Header:       "What's new",
		Changes:      "Changes from v%s to v%s",
		Features:     "New features",
		Improvements: "Improvements & fixes",
		Ready:        "%s v%s is available (%d new versions).",
		ReadyOne:     "%s v%s is available.",
		Versions:     "Current: v%s  →  Latest: v%s",
		Upgrade:      "Run %s to upgrade.",
		Restart:      "The full summary will be shown next time.",
		Image:        "Release card saved to %s",
	},
	"zh": {
		Welcome:      "欢迎使用 %s v%s！",
		Header:       "更新内容",
		Changes:      "从 v%s 更新到 v%s 的变化",
		Features:     "新功能",
		Improvements: "改进与修复",
		Ready:        "%s v%s 已发布（共 %d 个新版本）。",
		ReadyOne:     "%s v%s 已发布。",
		Versions:     "当前: v%s  →  最新: v%s",
		Upgrade:      "运行 %s 进行升级。",
		Restart:      "下次启动时将显示完整摘要。",
		Image:        "版本卡片已保存到 %s",
	},
	"ja": {
		Welcome:      "%s v%s へようこそ！",
		Header:       "新機能と変更点",
		Changes:      "v%s から v%s への変更",
		Features:     "新機能",
		Improvements: "改善と修正",
		Ready:        "%s v%s が利用可能です（新しいバージョン %d 件）。",
		ReadyOne:     "%s v%s が利用可能です。",
		Versions:     "現在: v%s  →  最新: v%s",
		Upgrade:      "%s を実行してアップグレードしてください。",
		Restart:      "次回起動時に概要を表示します。",
		Image:        "リリースカードを %s に保存しました",
	},
	"es": {
		Welcome:      "¡Bienvenido a %s v%s!",
		Header:       "Novedades",
		Changes:      "Cambios de v%s a v%s",
		Features:     "Nuevas funciones",
		Improvements: "Mejoras y correcciones",
		Ready:        "%s v%s está disponible (%d versiones nuevas).",
		ReadyOne:     "%s v%s está disponible.",
		Versions:     "Actual: v%s  →  Última: v%s",
		Upgrade:      "Ejecuta %s para actualizar.",
		Restart:      "El resumen completo se mostrará la próxima vez.",
		Image:        "Tarjeta de la versión guardada en %s",
	},
	"ko": {
		Welcome:      "%s v%s에 오신 것을 환영합니다!",
		Header:       "업데이트 요약",
		Changes:      "v%s → v%s 주요 변경 사항",
		Features:     "새 기능",
		Improvements: "개선 및 수정",
		Ready:        "%s v%s을(를) 사용할 수 있습니다 (새 버전 %d개).",
		ReadyOne:     "%s v%s을(를) 사용할 수 있습니다.",
		Versions:     "현재: v%s  →  최신: v%s",
		Upgrade:      "업그레이드하려면 %s 을(를) 실행하세요.",
		Restart:      "다음 실행 시 전체 요약이 표시됩니다.",
		Image:        "릴리스 카드가 %s에 저장되었습니다",
	},
}

// supported lists the table keys in matcher order; the first entry is the fallback.
var supported = []string{"en", "zh", "ja", "ko", "es"}

var matcher = language.NewMatcher(tags(supported))

func tags(codes []string) []language.Tag {
	out := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		out = append(out, language.MustParse(c))
	}

	return out
}

// Languages returns the supported language codes, fallback first.
func Languages() []string {
	return append([]string(nil), supported...)
}

// ResolveLanguage maps a language code or POSIX locale ("zh_CN.UTF-8") to a
// supported table key, falling back to DefaultLanguage.
func ResolveLanguage(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexAny(code, ".@"); i >= 0 {
		code = code[:i]
	}
	code = strings.ReplaceAll(code, "_", "-")
	if code == "" {
		return DefaultLanguage
	}

	_, idx := language.MatchStrings(matcher, code)
	if idx < 0 || idx >= len(supported) {
		return DefaultLanguage
	}

	return supported[idx]
}

// For returns the string table for lang, falling back to DefaultLanguage.
func For(lang string) Strings {
	if s, ok := locales[lang]; ok {
		return s
	}

	return locales[ResolveLanguage(lang)]
}
