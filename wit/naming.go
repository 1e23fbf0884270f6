package wit

import (
	"strings"
	"unicode"

	"github.com/teranos/witgen/errors"
)

// Category labels passed to Validate. They appear in naming error messages.
const (
	KindInterface = "interface"
	KindRecord    = "record"
	KindVariant   = "variant"
	KindCase      = "case"
	KindField     = "field"
	KindType      = "type"
	KindFunction  = "function"
	KindParameter = "parameter"
)

const stateSuffix = "State"

// Validate rejects identifiers containing a decimal digit or, in any case,
// the word "stream". kind labels the identifier in the error message.
func Validate(name, kind string) error {
	if strings.IndexFunc(name, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
		return errors.NewNamingError(name, kind, "numbers")
	}
	if strings.Contains(strings.ToLower(name), "stream") {
		return errors.NewNamingError(name, kind, "'stream'")
	}
	return nil
}

// Normalize converts an identifier to WIT kebab-case.
//
// Names containing an underscore only have underscores replaced by hyphens.
// Otherwise a hyphen goes before every uppercase letter (except the first
// character) that follows a lowercase letter or precedes one, and uppercase
// letters are lowered: HTMLPage -> html-page, OrderTotal -> order-total.
func Normalize(name string) string {
	if strings.Contains(name, "_") {
		return strings.ReplaceAll(name, "_", "-")
	}

	runes := []rune(name)
	var result strings.Builder
	result.Grow(len(name) + 4)

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			result.WriteRune(r)
			continue
		}
		if i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				result.WriteRune('-')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// StripStateSuffix removes a trailing "State": OrderState -> Order.
func StripStateSuffix(name string) string {
	return strings.TrimSuffix(name, stateSuffix)
}

// InterfaceName derives the interface name of an implementation block type.
func InterfaceName(typeName string) (string, error) {
	if err := Validate(typeName, KindInterface); err != nil {
		return "", err
	}
	return Normalize(StripStateSuffix(typeName)), nil
}

func validateAndNormalize(name, kind string) (string, error) {
	if err := Validate(name, kind); err != nil {
		return "", err
	}
	return Normalize(name), nil
}
