package extract

import (
	"regexp"
	"strings"
)

// emailPattern は local-part@domain.tld 形式に一致します。TLD は英字のみです。
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)

// assetExtensions は、"logo@2x.png" のようなアセット名をメールアドレスと誤認しないための除外リストです。
var assetExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"svg":  {},
	"webp": {},
	"bmp":  {},
	"ico":  {},
}

// ExtractEmails は、テキストからメールアドレスを出現順に抽出します。
// 重複判定は大文字小文字を区別せず、最初に見つかった表記を保持します。
func ExtractEmails(text string) []string {
	emails := []string{}
	seen := make(map[string]struct{})

	for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
		// "info@example.com2024" のように TLD の直後に英数字が続くものは、短縮せずに除外する
		if loc[1] < len(text) && isDomainByte(text[loc[1]]) {
			continue
		}
		email, ok := cleanEmail(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

// cleanEmail は、ローカル部の前後のドットを取り除き、アセット名を除外します。
func cleanEmail(match string) (string, bool) {
	at := strings.LastIndex(match, "@")
	if at < 0 {
		return "", false
	}
	local := strings.Trim(match[:at], ".")
	domain := strings.Trim(match[at+1:], ".-")
	if local == "" || domain == "" {
		return "", false
	}

	tld := strings.ToLower(domain[strings.LastIndex(domain, ".")+1:])
	if _, isAsset := assetExtensions[tld]; isAsset {
		return "", false
	}
	return local + "@" + domain, true
}

func isDomainByte(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '-'
}
