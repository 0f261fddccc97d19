package seo

import (
	"regexp"
	"strings"
)

// Readability follows a Flesch-style formula adapted for Portuguese, driven
// by a heuristic syllable counter. The goal is a stable comparative score,
// not phonological accuracy.

const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
)

// complexWordSyllables is the minimum syllable count that marks a word complex.
const complexWordSyllables = 3

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]+`)

	// Copula or auxiliary followed by a participle ending. Naive: catches
	// "foi pintado", "são aplicadas"; misses clefts and misparses some
	// adjectives, which is acceptable for a writing-style signal.
	passiveRe = regexp.MustCompile(`(?i)\b(foi|foram|é|sao|são|era|eram|ser|sendo|sido|está|estão|estava|estavam)\s+\p{L}+(?:ado|ada|ados|adas|ido|ida|idos|idas)\b`)

	nonLetterRe = regexp.MustCompile(`[^a-zà-ü]`)
)

// Portuguese vowel clusters that sound as one syllable. Matched against the
// diacritic-folded word; longer clusters first so triphthongs win.
var triphthongs = []string{"uai", "uei", "uiu", "uou", "iai", "iei"}
var diphthongs = []string{
	"ai", "au", "ei", "eu", "iu", "oi", "ou", "ui",
	"ae", "ao", "oe",
	"ia", "ie", "io", "ua", "ue", "uo",
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", r)
}

// CountSyllables estimates the syllable count of one Portuguese word: count
// vowel-group runs, subtract one per diphthong/triphthong occurrence, add one
// back when the word ends in vowel+l/r/z. Never less than 1 for non-empty
// input.
func CountSyllables(word string) int {
	w := nonLetterRe.ReplaceAllString(fold(word), "")
	if w == "" {
		if strings.TrimSpace(word) == "" {
			return 0
		}
		return 1 // digits or symbols still read as one beat
	}

	runs := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			runs++
		}
		prevVowel = v
	}

	count := runs
	rest := w
	for _, t := range triphthongs {
		for strings.Contains(rest, t) {
			count--
			rest = strings.Replace(rest, t, "-", 1)
		}
	}
	for _, d := range diphthongs {
		for strings.Contains(rest, d) {
			count--
			rest = strings.Replace(rest, d, "-", 1)
		}
	}

	if n := len(w); n >= 2 {
		last := rune(w[n-1])
		if (last == 'l' || last == 'r' || last == 'z') && isVowel(rune(w[n-2])) {
			count++
		}
	}

	if count < 1 {
		count = 1
	}
	return count
}

// SentenceCount splits on sentence terminators and counts non-empty parts.
func SentenceCount(content string) int {
	count := 0
	for _, part := range sentenceEndRe.Split(content, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// measureReadability fills the readability family of metrics from the
// pre-tokenized word list.
func measureReadability(content string, words []string, m *Metrics) {
	m.SentenceCount = SentenceCount(content)

	totalSyllables := 0
	complexWords := 0
	for _, w := range words {
		s := CountSyllables(w)
		totalSyllables += s
		if s >= complexWordSyllables {
			complexWords++
		}
	}
	if len(words) > 0 {
		m.SyllablesPerWord = float64(totalSyllables) / float64(len(words))
		m.ComplexWordRatio = float64(complexWords) / float64(len(words))
	}
	if m.SentenceCount > 0 && len(words) > 0 {
		m.AvgSentenceWords = float64(len(words)) / float64(m.SentenceCount)
	}

	score := fleschBase - fleschSentenceWeight*m.AvgSentenceWords - fleschSyllableWeight*m.SyllablesPerWord
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	m.FleschScore = score

	m.PassiveVoiceCount = len(passiveRe.FindAllString(content, -1))
}
