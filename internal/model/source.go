// Package model defines the data structures shared by the augmentation workflow.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// Language identifies the source language of a method.
type Language string

const (
	// LanguageGo is Go source: one function or method declaration.
	LanguageGo Language = "go"
	// LanguageJava is Java source: one method or constructor declaration.
	LanguageJava Language = "java"
)

// Languages lists every supported language.
func Languages() []Language {
	return []Language{LanguageGo, LanguageJava}
}

// ParseLanguage resolves a language name case-insensitively.
func ParseLanguage(value string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Languages() {
		if lang == known {
			return lang, nil
		}
	}

	return "", fmt.Errorf("unsupported language %q", value)
}
