// sanitize.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package sanitize turns untrusted query parameters and free text into bounded values.
// Tag stripping is a simple regular expression pass, not an HTML parser.
package sanitize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultPage      = 1
	DefaultPageSize  = 12
	MaxPageSize      = 50
	MaxKeywordLength = 100

	// Field limits for stored free text
	MaxNameLength        = 100
	MaxTitleLength       = 200
	MaxTextLength        = 5000
	MaxDescriptionLength = 10000
	MaxMessageLength     = 2000
	MaxReasonLength      = 200
	MaxDetailsLength     = 2000
	MaxAddressLength     = 500
	MaxPhoneLength       = 30
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	anyTag      = regexp.MustCompile(`<[^>]*>`)
)

// leadingInt reads the signed integer at the start of raw and ignores the rest, so "2.5" is 2 and "3abc" is 3.
func leadingInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Page parses a 1-based page number from its leading integer. Anything unparsable or below 1 yields 1.
func Page(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return DefaultPage
	}
	return n
}

// PageSize parses a page size from its leading integer, defaulting invalid input and clamping to MaxPageSize.
func PageSize(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Keyword trims and truncates a search keyword
func Keyword(raw string) string {
	return Truncate(strings.TrimSpace(raw), MaxKeywordLength)
}

// Text strips script blocks and markup, trims, then truncates to maxLen runes.
// A maxLen <= 0 uses MaxTextLength.
func Text(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxTextLength
	}
	s := scriptBlock.ReplaceAllString(raw, "")
	s = anyTag.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return Truncate(s, maxLen)
}

// OptionalText applies Text to a pointer, keeping nil as nil
func OptionalText(raw *string, maxLen int) *string {
	if raw == nil {
		return nil
	}
	s := Text(*raw, maxLen)
	return &s
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Email trims and lower-cases an address
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Float parses an optional numeric filter. Empty or non-numeric input yields nil.
func Float(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int parses an optional integer filter. Empty or non-numeric input yields nil.
func Int(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
