package extract

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/shouni/go-web-contact/pkg/types"
)

// invisibleElements は、可視テキストの収集時に読み飛ばす要素です。
var invisibleElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"head":     {},
}

// Extractor は、HTMLから連絡先情報を抽出します。
// 状態を持たないため、複数のページに対して使い回せます。
type Extractor struct{}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract は、生のHTMLとその取得元URLから連絡先情報を抽出します。
// 入出力を伴わない純粋な処理で、壊れたHTMLに対しても失敗しません。
func (e *Extractor) Extract(rawHTML, sourceURL string) types.Contacts {
	// 1. 文字参照 (&#64; など) を展開した生テキスト。正規表現系のルールはこれを走査する
	unescaped := html.UnescapeString(rawHTML)

	// 2. DOM の構築。失敗しても正規表現系のルールは実行する
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		doc = nil
	}

	base, err := url.Parse(sourceURL)
	if err != nil || sourceURL == "" {
		base = nil
	}

	// 3. 各ルールの実行
	phones := ExtractPhones(visibleText(doc))
	phones = appendUnique(phones, telLinkPhones(hrefs(doc))...)

	links := CollectLinks(doc, unescaped, base)
	linkedIn := FindLinkedIn(links)

	return types.Contacts{
		Emails:       ExtractEmails(unescaped),
		PhoneNumbers: phones,
		LinkedIn:     linkedIn,
		SocialMedia:  FindSocialMedia(links, linkedIn),
		MetaInfo:     ExtractMeta(doc),
	}
}

// blockElements は、前後で行を分ける要素です。それ以外の要素 (b, span, a など) は同じ行に連結します。
var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "body": {},
	"br": {}, "dd": {}, "div": {}, "dl": {}, "dt": {}, "footer": {}, "form": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {},
	"hr": {}, "li": {}, "main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "td": {}, "th": {}, "tr": {}, "ul": {},
}

// textWriter は、ブラウザの表示に近い形で空白をまとめながらテキストを連結します。
type textWriter struct {
	sb           strings.Builder
	pendingSpace bool
}

func (w *textWriter) atLineStart() bool {
	s := w.sb.String()
	return s == "" || s[len(s)-1] == '\n'
}

func (w *textWriter) writeText(text string) {
	for _, r := range text {
		if unicode.IsSpace(r) {
			w.pendingSpace = true
			continue
		}
		if w.pendingSpace && !w.atLineStart() {
			w.sb.WriteByte(' ')
		}
		w.pendingSpace = false
		w.sb.WriteRune(r)
	}
}

func (w *textWriter) breakLine() {
	if !w.atLineStart() {
		w.sb.WriteByte('\n')
	}
	w.pendingSpace = false
}

// visibleText は、スクリプトやスタイルを除いたテキストを返します。
// ブロック要素の境界は改行、インライン要素の境界は元の空白のまま連結するため、
// "<b>+1</b> 555 123 4567" は1つの電話番号として、別々の段落の数字は別の行として扱われます。
func visibleText(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	w := &textWriter{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if _, skip := invisibleElements[n.Data]; skip {
				return
			}
		case html.TextNode:
			w.writeText(n.Data)
		}
		_, block := blockElements[n.Data]
		block = block && n.Type == html.ElementNode
		if block {
			w.breakLine()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			w.breakLine()
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return w.sb.String()
}

// hrefs は、a 要素の href 属性を文書順に返します。
func hrefs(doc *goquery.Document) []string {
	if doc == nil {
		return nil
	}
	var values []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.AttrOr("href", "")))
	})
	return values
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
