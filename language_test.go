package pdfoutline

import (
	"testing"
)

// TestDetectLanguage tests script and marker-word detection
func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"english", []string{"The Annual Report", "Figures cover the last fiscal year"}, "en"},
		{"chinese", []string{"数据处理系统概述", "本章介绍系统的整体结构"}, "zh"},
		{"japanese", []string{"データ処理の概要", "この章ではシステムを説明する"}, "ja"},
		{"russian", []string{"Обзор системы обработки данных", "Глава описывает архитектуру"}, "ru"},
		{"spanish", []string{"Capítulo 1", "Introducción", "Resumen del proyecto"}, "es"},
		{"french", []string{"Chapitre 1", "Résumé des travaux", "Conclusion générale"}, "fr"},
		{"german", []string{"Kapitel 2", "Einleitung und Zusammenfassung", "Ergebnisse der Studie"}, "de"},
		{"empty", nil, "en"},
		{"digits only", []string{"123 456", "789"}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]TextLine, 0, len(tt.texts))
			for _, text := range tt.texts {
				lines = append(lines, TextLine{Text: text})
			}
			if got := DetectLanguage(lines); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDetectLanguage_KanaOverHan tests that a kana share marks Japanese
// even when Han characters dominate
func TestDetectLanguage_KanaOverHan(t *testing.T) {
	lines := []TextLine{
		{Text: "第一章 序論の構成について"},
		{Text: "研究の背景と目的を述べる"},
	}
	if got := DetectLanguage(lines); got != "ja" {
		t.Errorf("DetectLanguage() = %q, want ja", got)
	}
}

// TestPackForLanguage tests pack lookup for known and unknown codes
func TestPackForLanguage(t *testing.T) {
	for _, code := range []string{"zh", "ja", "es", "fr", "de", "ru", "ar"} {
		pack := packForLanguage(code)
		if len(pack.keywords) == 0 {
			t.Errorf("pack %q has no keywords", code)
		}
		if len(pack.patterns) == 0 {
			t.Errorf("pack %q has no patterns", code)
		}
	}

	for _, code := range []string{"en", "", "xx"} {
		pack := packForLanguage(code)
		if len(pack.keywords) != 0 || len(pack.patterns) != 0 {
			t.Errorf("pack %q should be empty", code)
		}
	}
}
