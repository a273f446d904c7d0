package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-web-contact/pkg/types"
)

var descriptionKeys = map[string]struct{}{
	"description":    {},
	"og:description": {},
}

// ExtractMeta は、<title> と説明文の meta タグを抽出します。
// タグがない、または内容が空の場合は nil のままにします。
func ExtractMeta(doc *goquery.Document) types.MetaInfo {
	var meta types.MetaInfo
	if doc == nil {
		return meta
	}

	if title := textUtils.NormalizeText(doc.Find("title").First().Text()); title != "" {
		meta.Title = types.StringPtr(title)
	}

	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		property := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))
		_, byName := descriptionKeys[name]
		_, byProperty := descriptionKeys[property]
		if !byName && !byProperty {
			return true
		}
		content := textUtils.NormalizeText(s.AttrOr("content", ""))
		if content == "" {
			return true
		}
		meta.Description = types.StringPtr(content)
		return false
	})
	return meta
}
