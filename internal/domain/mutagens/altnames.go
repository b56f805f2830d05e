package mutagens

import (
	"math/rand/v2"
	"strings"
)

func isUpper(ch byte) bool { return 'A' <= ch && ch <= 'Z' }
func isLower(ch byte) bool { return 'a' <= ch && ch <= 'z' }
func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func toUpper(ch byte) byte {
	if isLower(ch) {
		return ch - 'a' + 'A'
	}

	return ch
}

func toLower(ch byte) byte {
	if isUpper(ch) {
		return ch - 'A' + 'a'
	}

	return ch
}

// splitWords cuts an identifier into words at underscores, lower-to-upper
// case changes, the last capital of an acronym and the start of a digit run.
// Characters other than ASCII letters and digits are dropped.
func splitWords(name string) []string {
	var (
		words   []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(name); i++ {
		ch := name[i]

		switch {
		case ch == '_':
			flush()
		case isUpper(ch) && (i == 0 || !isUpper(name[i-1]) || (i+1 < len(name) && !isUpper(name[i+1]))):
			flush()
		case isDigit(ch) && (i == 0 || !isDigit(name[i-1])):
			flush()
		}

		if isLower(ch) || isUpper(ch) || isDigit(ch) {
			current.WriteByte(ch)
		}
	}

	flush()

	return words
}

func joinCamel(words []string, joinOneLetter, pascal bool) string {
	var b strings.Builder

	separate := pascal

	for i, word := range words {
		lower := []byte(strings.ToLower(word))
		if separate || (i != 0 && len(word) > 1) {
			lower[0] = toUpper(lower[0])
		}

		b.Write(lower)

		separate = !joinOneLetter || len(word) > 1
	}

	return b.String()
}

func joinSnake(words []string, joinOneLetter, screaming bool) string {
	var b strings.Builder

	separate := false

	for i, word := range words {
		if separate || (i != 0 && len(word) > 1) {
			b.WriteByte('_')
		}

		if screaming {
			b.WriteString(strings.ToUpper(word))
		} else {
			b.WriteString(strings.ToLower(word))
		}

		separate = !joinOneLetter || len(word) > 1
	}

	return b.String()
}

// Count word placements, in the order the alternatives are drawn.
const (
	countSuffix = iota
	counterSuffix
	numberPrefix
	numberOfPrefix
	numPrefix
	nPrefix
	numberSuffix
)

func isCountName(words []string) bool {
	first := strings.ToLower(words[0])
	last := strings.ToLower(words[len(words)-1])

	return last == "count" || last == "counter" || first == "number" || first == "num" || first == "n"
}

// recount replaces the counting word of a count name ("itemCount",
// "numberOfItems", "nItems"...) by another counting form.
func recount(words []string, rng *rand.Rand) []string {
	if len(words) == 0 {
		return words
	}

	var kind int

	first := strings.ToLower(words[0])
	last := strings.ToLower(words[len(words)-1])

	switch {
	case last == "count":
		kind = countSuffix
		words = words[:len(words)-1]
	case last == "counter":
		kind = counterSuffix
		words = words[:len(words)-1]
	case first == "number":
		kind = numberPrefix
		words = words[1:]

		if len(words) > 0 && strings.EqualFold(words[0], "of") {
			kind = numberOfPrefix
			words = words[1:]
		}
	case first == "num":
		kind = numPrefix
		words = words[1:]
	case first == "n":
		kind = nPrefix
		words = words[1:]
	default:
		return words
	}

	out := make([]string, 0, len(words)+2)

	selector := rng.IntN(6)
	if selector >= kind {
		selector++
	}

	switch selector {
	case countSuffix:
		out = append(append(out, words...), "count")
	case counterSuffix:
		out = append(append(out, words...), "counter")
	case numberPrefix:
		out = append(append(out, "number"), words...)
	case numberOfPrefix:
		out = append(append(out, "number", "of"), words...)
	case numPrefix:
		out = append(append(out, "num"), words...)
	case nPrefix:
		out = append(append(out, "n"), words...)
	case numberSuffix:
		out = append(append(out, words...), "number")
	}

	return out
}

func initials(words []string, upper bool) string {
	var b strings.Builder

	for _, word := range words {
		switch {
		case isDigit(word[0]):
			b.WriteString(word)
		case upper:
			b.WriteByte(toUpper(word[0]))
		default:
			b.WriteByte(toLower(word[0]))
		}
	}

	return b.String()
}

func noLeadingDigit(name string) string {
	if name != "" && isDigit(name[0]) {
		return "_" + name
	}

	return name
}

// AlternativeName proposes another plausible name for an identifier: a
// single letter, its initials, or its words reshuffled, abbreviated and
// rejoined under a random naming convention. The result may equal name.
//
//nolint:cyclop,funlen // mirrors the naming distribution step by step
func AlternativeName(name string, rng *rand.Rand) string {
	selector := rng.Float64()

	if selector < 0.1 {
		if rng.Float64() < 0.8 {
			return string(rune('a' + rng.IntN(26)))
		}

		return string(rune('A' + rng.IntN(26)))
	}

	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	if selector < 0.3 {
		return noLeadingDigit(initials(words, rng.Float64() >= 0.75))
	}

	if isCountName(words) && rng.Float64() < 0.5 {
		words = recount(words, rng)
	}

	if len(words) > 1 && rng.Float64() < 0.3 {
		for rng.Float64() < 0.75 {
			i := rng.IntN(len(words))

			j := rng.IntN(len(words) - 1)
			if j >= i {
				j++
			}

			words[i], words[j] = words[j], words[i]
		}
	}

	if rng.Float64() < 0.4 {
		short := make([]string, 0, len(words))

		for _, word := range words {
			if rng.IntN(2) == 0 && !isDigit(word[0]) {
				short = append(short, word[:1])
			} else {
				short = append(short, word)
			}
		}

		words = short
	}

	joinOneLetter := rng.Float64() < 0.75

	var result string

	switch convention := rng.Float64(); {
	case convention < 0.5:
		result = joinCamel(words, joinOneLetter, false)
	case convention < 0.75:
		result = joinSnake(words, joinOneLetter, false)
	case convention < 0.9:
		result = joinSnake(words, joinOneLetter, true)
	default:
		result = joinCamel(words, joinOneLetter, true)
	}

	return noLeadingDigit(result)
}
