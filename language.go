package pdfoutline

import (
	"strings"
	"unicode"
)

// languageSampleLines caps how much of the document the detector reads.
const languageSampleLines = 100

// DetectLanguage guesses the dominant document language from a sample of
// the line stream. It only needs to be right enough to select auxiliary
// pattern and keyword sets; the default English sets always apply.
// Returns a two-letter code: en, zh, ja, es, fr, de, ru, or ar.
func DetectLanguage(lines []TextLine) string {
	var han, kana, arabic, cyrillic, letters int
	var sample strings.Builder

	count := len(lines)
	if count > languageSampleLines {
		count = languageSampleLines
	}

	for _, line := range lines[:count] {
		sample.WriteString(line.Text)
		sample.WriteByte(' ')
		for _, r := range line.Text {
			switch {
			case unicode.Is(unicode.Han, r):
				han++
			case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
				kana++
			case unicode.Is(unicode.Arabic, r):
				arabic++
			case unicode.Is(unicode.Cyrillic, r):
				cyrillic++
			}
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}

	if letters == 0 {
		return "en"
	}

	// Script-based languages first: a small share of kana marks Japanese
	// even though most characters are Han.
	if float64(kana)/float64(letters) > 0.05 {
		return "ja"
	}
	if float64(han)/float64(letters) > 0.2 {
		return "zh"
	}
	if float64(arabic)/float64(letters) > 0.2 {
		return "ar"
	}
	if float64(cyrillic)/float64(letters) > 0.2 {
		return "ru"
	}

	// Latin-script languages: count marker words.
	text := strings.ToLower(sample.String())
	best := "en"
	bestCount := 1
	for code, markers := range latinMarkers {
		count := 0
		for _, marker := range markers {
			count += strings.Count(text, marker)
		}
		if count > bestCount {
			best = code
			bestCount = count
		}
	}

	return best
}

// latinMarkers are words that distinguish Latin-script languages from the
// English default. Accented forms keep false positives low.
var latinMarkers = map[string][]string{
	"es": {"capítulo", "introducción", "resumen", "conclusión", "metodología", "índice"},
	"fr": {"chapitre", "résumé", "méthodologie", "conclusion", "références", "sommaire"},
	"de": {"kapitel", "einführung", "zusammenfassung", "ergebnisse", "einleitung", "inhaltsverzeichnis"},
}

// languagePack carries the auxiliary structural patterns and heading
// indicator words for one language. Packs extend the defaults, never
// replace them.
type languagePack struct {
	patterns []headingPattern
	keywords []string
}

// packForLanguage returns the auxiliary pack for a language code, or an
// empty pack for English and unknown codes.
func packForLanguage(code string) languagePack {
	return languagePacks[code]
}

var languagePacks = map[string]languagePack{
	"zh": {
		patterns: compilePatterns([]patternSpec{
			{`^第[一二三四五六七八九十百\d]+[章部]`, LevelH1},
			{`^第[一二三四五六七八九十百\d]+[节節]`, LevelH2},
			{`^[一二三四五六七八九十]+[、.]`, LevelH2},
		}),
		keywords: []string{"引言", "介绍", "方法", "结果", "讨论", "结论", "摘要", "参考文献", "附录", "致谢"},
	},
	"ja": {
		patterns: compilePatterns([]patternSpec{
			{`^第[一二三四五六七八九十百\d]+章`, LevelH1},
			{`^第[一二三四五六七八九十百\d]+節`, LevelH2},
			{`^[一二三四五六七八九十]+[、.]`, LevelH2},
		}),
		keywords: []string{"はじめに", "序論", "方法", "結果", "考察", "結論", "要約", "参考文献", "付録", "謝辞"},
	},
	"es": {
		patterns: compilePatterns([]patternSpec{
			{`(?i)^cap[ií]tulo\s+\d+`, LevelH1},
			{`(?i)^secci[oó]n\s+\d+`, LevelH2},
		}),
		keywords: []string{"introducción", "resumen", "antecedentes", "metodología", "resultados", "discusión", "conclusión", "conclusiones", "referencias", "bibliografía", "apéndice"},
	},
	"fr": {
		patterns: compilePatterns([]patternSpec{
			{`(?i)^chapitre\s+\d+`, LevelH1},
			{`(?i)^section\s+\d+`, LevelH2},
		}),
		keywords: []string{"introduction", "résumé", "contexte", "méthodologie", "résultats", "discussion", "conclusion", "références", "bibliographie", "annexe"},
	},
	"de": {
		patterns: compilePatterns([]patternSpec{
			{`(?i)^kapitel\s+\d+`, LevelH1},
			{`(?i)^abschnitt\s+\d+`, LevelH2},
		}),
		keywords: []string{"einführung", "einleitung", "zusammenfassung", "hintergrund", "methodik", "ergebnisse", "diskussion", "fazit", "schlussfolgerung", "literaturverzeichnis", "anhang"},
	},
	"ru": {
		patterns: compilePatterns([]patternSpec{
			{`(?i)^глава\s+\d+`, LevelH1},
			{`(?i)^раздел\s+\d+`, LevelH2},
		}),
		keywords: []string{"введение", "обзор", "методология", "результаты", "обсуждение", "заключение", "резюме", "список литературы", "приложение"},
	},
	"ar": {
		patterns: compilePatterns([]patternSpec{
			{`^الفصل\s+`, LevelH1},
			{`^القسم\s+`, LevelH2},
		}),
		keywords: []string{"مقدمة", "خلفية", "منهجية", "نتائج", "مناقشة", "خاتمة", "ملخص", "مراجع", "ملحق"},
	},
}
