package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// The board renders minus with several Unicode variants depending on
// the widget: U+2212 minus, en dash, em dash. All collapse to ASCII '-'.
var minusNormalizer = strings.NewReplacer("−", "-", "–", "-", "—", "-")

var signedIntRe = regexp.MustCompile(`[+-]?\d+`)

// ParseAmericanOdds extracts an American price from cell text such as
// "−110" or "+150". Returns nil when no signed integer token is present.
func ParseAmericanOdds(text string) *int {
	if text == "" {
		return nil
	}
	text = minusNormalizer.Replace(text)
	token := signedIntRe.FindString(text)
	if token == "" {
		return nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil
	}
	return &n
}

// ParseLineValue extracts a line value from cell text such as "+3.5" or
// "O 45.5". Over/under markers and an explicit plus are stripped before
// parsing; anything unparseable yields nil rather than an error.
func ParseLineValue(text string) *float64 {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "O", "")
	text = strings.ReplaceAll(text, "U", "")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "+", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}
