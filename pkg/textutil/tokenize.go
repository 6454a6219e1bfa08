// Package textutil 提供向量化前的文本归一化：分词、小写化、停用词过滤。
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLen 是保留词的最小字符数，单字符词（"a"、"x"）不进入词表。
const MinTokenLen = 2

// Tokenize 把文本切成小写词，按出现顺序返回。
//
// 词由连续的字母、数字、下划线组成；其余字符（空白、标点、连字符）都视为分隔符，
// 所以 "Sci-Fi" 切成 "sci"、"fi"。长度小于 MinTokenLen 的词被丢弃。
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLen {
			out = append(out, f)
		}
	}
	return out
}

// Terms 在 Tokenize 的基础上剔除英文停用词。
func Terms(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
