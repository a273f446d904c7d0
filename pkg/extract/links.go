package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/shouni/go-web-contact/pkg/types"
)

const linkedInDomain = "linkedin.com"

// Platform は、SNSプラットフォーム名とその登録ドメインの対応です。
type Platform struct {
	Name    string
	Domains []string
}

// Platforms は、検出対象のSNSプラットフォームです。
var Platforms = []Platform{
	{Name: "twitter", Domains: []string{"twitter.com", "x.com"}},
	{Name: "facebook", Domains: []string{"facebook.com", "fb.com"}},
	{Name: "instagram", Domains: []string{"instagram.com"}},
	{Name: "youtube", Domains: []string{"youtube.com", "youtu.be"}},
	{Name: "github", Domains: []string{"github.com"}},
}

var (
	// rawURLPattern は、href 以外 (JSON-LD の sameAs やインラインスクリプト、本文中のURL) に埋め込まれた絶対URLです。
	rawURLPattern = regexp.MustCompile(`https?://[^\s"'<>()\[\]{}\\|^` + "`" + `]+`)

	linkElements = map[string]struct{}{
		"a":    {},
		"link": {},
		"area": {},
	}

	// rawTextElements の子テキストは、パーサーが文字参照を展開しないため自前で展開します。
	rawTextElements = map[string]struct{}{
		"script": {},
		"style":  {},
	}
)

// linkCollector は、出現順と重複排除を保ちながらリンクを集めます。
type linkCollector struct {
	base  *url.URL
	links []string
	seen  map[string]struct{}
}

func (c *linkCollector) add(base *url.URL, href string) {
	resolved, ok := resolveLink(base, href)
	if !ok {
		return
	}
	if _, dup := c.seen[resolved]; dup {
		return
	}
	c.seen[resolved] = struct{}{}
	c.links = append(c.links, resolved)
}

// addRaw は、テキスト中の絶対URLを出現順に追加します。
func (c *linkCollector) addRaw(text string) {
	for _, match := range rawURLPattern.FindAllString(text, -1) {
		c.add(nil, strings.TrimRight(match, ".,;:!?"))
	}
}

// CollectLinks は、ページ内のリンク先を文書順に収集します。
// a/link/area の href は base を基準に絶対URLへ解決し、それ以外の属性値やテキスト
// (JSON-LD、インラインスクリプト、本文) に現れる絶対URLも同じ走査の中で出現位置どおりに並べます。
// http/https 以外は除外し、重複は最初の1件のみ残します。
// doc が nil の場合は rawText を走査します。
func CollectLinks(doc *goquery.Document, rawText string, base *url.URL) []string {
	c := &linkCollector{base: base, seen: make(map[string]struct{})}
	if doc == nil {
		c.addRaw(rawText)
		return c.links
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			_, linkable := linkElements[n.Data]
			for _, attr := range n.Attr {
				if linkable && strings.EqualFold(attr.Key, "href") {
					c.add(c.base, attr.Val)
					continue
				}
				c.addRaw(attr.Val)
			}
		case html.TextNode, html.CommentNode:
			data := n.Data
			if p := n.Parent; p != nil && p.Type == html.ElementNode {
				if _, raw := rawTextElements[p.Data]; raw {
					data = html.UnescapeString(data)
				}
			}
			c.addRaw(data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return c.links
}

// resolveLink は、href を絶対URLに解決します。
func resolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Hostname() == "" {
		return "", false
	}
	return u.String(), true
}

// registrableDomain は、ホスト名から登録ドメイン (eTLD+1) を求めます。
// "mobile.twitter.com" は "twitter.com" になります。
func registrableDomain(u *url.URL) string {
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// isShareLink は、"このページを共有" 系のウィジェットリンクかどうかを判定します。
func isShareLink(u *url.URL) bool {
	path := strings.ToLower(u.EscapedPath())
	return strings.Contains(path, "/share") || strings.Contains(path, "/intent")
}

// FindLinkedIn は、最初に見つかった LinkedIn のリンクを返します。見つからない場合は nil です。
func FindLinkedIn(links []string) *string {
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		if registrableDomain(u) == linkedInDomain && !isShareLink(u) {
			return types.StringPtr(link)
		}
	}
	return nil
}

// FindSocialMedia は、プラットフォームごとに最初のプロフィールリンクを返します。
// 共有ウィジェット、LinkedIn と同じドメインのリンク、パスのないトップページへのリンクは除外します。
func FindSocialMedia(links []string, linkedIn *string) types.SocialMedia {
	var social types.SocialMedia

	excludedDomain := ""
	if linkedIn != nil {
		if u, err := url.Parse(*linkedIn); err == nil {
			excludedDomain = registrableDomain(u)
		}
	}

	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		domain := registrableDomain(u)
		if domain == excludedDomain || isShareLink(u) || strings.Trim(u.Path, "/") == "" {
			continue
		}
		platform := platformFor(domain)
		if platform == "" || social.Get(platform) != nil {
			continue
		}
		social.Set(platform, types.StringPtr(link))
	}
	return social
}

func platformFor(domain string) string {
	for _, p := range Platforms {
		for _, d := range p.Domains {
			if domain == d {
				return p.Name
			}
		}
	}
	return ""
}
