package target

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shouni/go-web-contact/pkg/types"
)

// Normalize は、入力文字列から ScrapeTarget を生成します。
// スキームがない場合は https:// を補完し、http/https 以外のスキームはエラーにします。
func Normalize(raw string) (types.ScrapeTarget, error) {
	trimmed := strings.TrimSpace(raw)
	target := types.ScrapeTarget{Raw: trimmed}
	if trimmed == "" {
		return target, fmt.Errorf("空のターゲットです")
	}

	normalized := trimmed
	if !hasScheme(trimmed) {
		normalized = "https://" + strings.TrimPrefix(trimmed, "//")
	}

	parsedURL, err := url.Parse(normalized)
	if err != nil {
		return target, fmt.Errorf("URLのパースエラー: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return target, fmt.Errorf("無効なURLスキームです。httpまたはhttpsを指定してください: %s", trimmed)
	}
	if parsedURL.Host == "" {
		return target, fmt.Errorf("ホスト名がありません: %s", trimmed)
	}

	target.URL = normalized
	return target, nil
}

// hasScheme は、"scheme://" 形式で始まるかどうかを判定します。
// "example.com:8080" のようなホスト:ポートはスキームとみなしません。
func hasScheme(s string) bool {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return false
	}
	for i, r := range s[:idx] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !(r >= '0' && r <= '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// ParseList は、カンマ区切りの入力行をターゲット文字列のリストに分割します。
// 空の要素は除外され、入力順は保持されます。
func ParseList(line string) []string {
	var targets []string
	for _, part := range strings.Split(line, ",") {
		if s := strings.TrimSpace(part); s != "" {
			targets = append(targets, s)
		}
	}
	return targets
}
