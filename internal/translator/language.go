package translator

import (
	"fmt"

	"textkit/internal/domain"
)

// ValidateLanguageCode accepts exactly two ASCII letters, e.g. "en" or "hi".
// Whether the service supports the pair is left to the service.
func ValidateLanguageCode(code string) error {
	if len(code) != 2 || !isASCIILetter(code[0]) || !isASCIILetter(code[1]) {
		return fmt.Errorf("%w: language codes should be exactly two letters, got %q", domain.ErrInput, code)
	}
	return nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// LanguageCodeHelp is the reminder of common codes shown before prompting.
var LanguageCodeHelp = []string{
	"Indian Languages: Hindi (hi), Bengali (bn), Tamil (ta), Telugu (te), Marathi (mr), Gujarati (gu), Kannada (kn)",
	"International Languages: Spanish (es), French (fr), German (de), Japanese (ja), Arabic (ar), Russian (ru)",
}
