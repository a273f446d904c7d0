package extract

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	// phoneCandidatePattern は、空白(1文字)・ハイフン・括弧で区切られた数字列の候補です。
	// 改行や連続した空白はまたがりません。
	phoneCandidatePattern = regexp.MustCompile(`(?:\(?\+|\()?\d(?:[\d()\-]| [\d(])*`)

	datePattern      = regexp.MustCompile(`^(?:\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4})$`)
	yearRangePattern = regexp.MustCompile(`^(?:19|20)\d{2} ?- ?(?:19|20)\d{2}$`)
)

// ExtractPhones は、テキストから電話番号らしい文字列を出現順に抽出します。
// 区切り文字 (空白・ハイフン・括弧) か先頭の + がないものは ID や時刻とみなして除外します。
func ExtractPhones(text string) []string {
	phones := []string{}
	seen := make(map[string]struct{})

	for _, loc := range phoneCandidatePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		candidate := strings.TrimRight(text[start:end], " -(")
		end = start + len(candidate)
		if candidate == "" || !isStandalone(text, start, end) {
			continue
		}
		if !looksLikePhone(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		phones = append(phones, candidate)
	}
	return phones
}

// looksLikePhone は、桁数・区切り文字・日付パターンを検証します。
func looksLikePhone(candidate string) bool {
	digits := countDigits(candidate)
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return false
	}
	if datePattern.MatchString(candidate) || yearRangePattern.MatchString(candidate) {
		return false
	}
	if strings.Count(candidate, "(") != strings.Count(candidate, ")") {
		return false
	}
	hasPlus := strings.HasPrefix(strings.TrimLeft(candidate, "("), "+")
	hasSeparator := strings.ContainsAny(candidate, " -()")
	return hasPlus || hasSeparator
}

// isStandalone は、候補の前後が英数字や小数点に接していないことを確認します。
// "v1.2.3-4567890" や "id=12345678" のような一部分の一致を防ぎます。
func isStandalone(text string, start, end int) bool {
	if start > 0 {
		prev := text[start-1]
		if isWordByte(prev) || prev == '.' || prev == '/' || prev == '=' || prev == '#' || prev == '-' {
			return false
		}
	}
	if end < len(text) {
		next := text[end]
		if isWordByte(next) {
			return false
		}
		if next == '.' && end+1 < len(text) && isDigit(text[end+1]) {
			return false
		}
	}
	return true
}

// telLinkPhones は、tel: リンクの値を電話番号として扱います。
// 明示的な電話番号リンクなので区切り文字の要件は課しません。
func telLinkPhones(hrefs []string) []string {
	var phones []string
	for _, href := range hrefs {
		if len(href) < 4 || !strings.EqualFold(href[:4], "tel:") {
			continue
		}
		value := href[4:]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		if i := strings.IndexAny(value, "?;"); i >= 0 {
			value = value[:i]
		}
		value = strings.TrimSpace(value)
		digits := countDigits(value)
		if digits < minPhoneDigits || digits > maxPhoneDigits {
			continue
		}
		phones = append(phones, value)
	}
	return phones
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordByte(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
