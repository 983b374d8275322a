package service

import "regexp"

// RedactionMarker replaces every detected contact token in a filtered
// message. The marker itself matches none of the patterns below, so
// repeated passes are stable.
const RedactionMarker = "[CONTATO BLOQUEADO]"

// contactPatterns are applied in order, each on the output of the
// previous one. Cascaded redaction is fine: a partial handle eaten by an
// earlier pattern just means the full-email pattern has nothing left to
// match.
var contactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{10,11}\b`),              // bare Brazilian phone numbers
	regexp.MustCompile(`\(\d{2}\)\s*\d{4,5}-?\d{4}`), // (XX) XXXXX-XXXX
	regexp.MustCompile(`(?i)whats?app`),
	regexp.MustCompile(`(?i)zap`),
	regexp.MustCompile(`(?i)tel(?:efone)?`),
	regexp.MustCompile(`(?i)email`),
	regexp.MustCompile(`@\w+`),                                          // partial handles
	regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`), // full emails
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b`), // URLs
}

// FilterContactInfo scans content for contact information and redacts
// every match. Unlocked conversations pass through untouched. Pure and
// deterministic: same input always yields the same output.
func FilterContactInfo(content string, isUnlocked bool) (string, bool) {
	if isUnlocked {
		return content, false
	}

	filtered := content
	wasFiltered := false

	for _, pattern := range contactPatterns {
		if pattern.MatchString(filtered) {
			filtered = pattern.ReplaceAllString(filtered, RedactionMarker)
			wasFiltered = true
		}
	}

	return filtered, wasFiltered
}
