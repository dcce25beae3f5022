package emit

import "regexp"

// tokenPattern approximates how code tokenizers split source text:
// identifiers, numbers with optional decimals and percent signs, operator
// runs, brackets, punctuation, quotes and a few special symbols.
var tokenPattern = regexp.MustCompile("\\b[A-Za-z_][A-Za-z0-9_]*\\b" +
	"|\\b\\d+\\.?\\d*%?\\b" +
	"|[+\\-*/=<>!&|^~]+=?" +
	"|[(){}\\[\\]]" +
	"|[.,;:]" +
	"|['\"`]" +
	"|[@#$%\\\\]")

// CountTokens counts code-ish tokens in text. The count is an estimate used
// for sizing output, not a lexer.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(tokenPattern.FindAllString(text, -1))
}
