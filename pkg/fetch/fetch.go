package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout は、1リクエストあたりのデフォルトのタイムアウトです。
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBodySize は、読み込むレスポンスボディの上限です。
	DefaultMaxBodySize = int64(10 * 1024 * 1024) // 10MB

	// DefaultUserAgent は、単純なボット判定で弾かれないためのブラウザ相当のUser-Agentです。
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
)

// errorBodySnippetSize は、StatusError に保持するボディの最大バイト数です。
const errorBodySnippetSize = 1024

// ErrBodyTooLarge は、レスポンスボディが MaxBodySize を超えたことを示します。
var ErrBodyTooLarge = errors.New("レスポンスボディがサイズ上限を超えています")

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースです。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config は、Client の不変な設定です。
type Config struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// Response は、1回のGETで取得したページです。Body はUTF-8に変換済みです。
type Response struct {
	StatusCode  int
	URL         string // リダイレクト後の最終URL
	ContentType string
	Body        string
}

// StatusError は、2xx 以外のステータスコードを示すエラーです。
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "unexpected status"
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, text)
}

// IsStatusError は、err が StatusError を含むかどうかを判定し、含む場合はそのステータスコードを返します。
func IsStatusError(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// Client は、タイムアウトとUser-Agentを設定した単発のGETを実行します。リトライは行いません。
type Client struct {
	httpClient Doer
	config     Config
}

// Option は Client の設定を行うための関数型です。
type Option func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// New は、新しいClientを生成します。ゼロ値の設定項目にはデフォルト値を使います。
func New(cfg Config, options ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Config は、適用済みの設定を返します。
func (c *Client) Config() Config {
	return c.config
}

// Fetch は、url に対して1回だけGETリクエストを実行し、本文をUTF-8のテキストとして返します。
// 2xx 以外のレスポンスは StatusError として返します。
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)
	}
	c.addCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// エラーレスポンスのボディは診断用に先頭だけ保持する
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodySnippetSize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	// 上限を1バイト超えて読み、途中で切れたページを抽出に回さない
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
	}
	if int64(len(raw)) > c.config.MaxBodySize {
		return nil, fmt.Errorf("%w (上限 %d バイト)", ErrBodyTooLarge, c.config.MaxBodySize)
	}

	contentType := resp.Header.Get("Content-Type")
	body := decodeBody(raw, contentType)

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		URL:         finalURL,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// addCommonHeaders は共通のHTTPヘッダーを設定します。
func (c *Client) addCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
}

// decodeBody は、Content-Type と <meta charset> を手がかりにボディをUTF-8へ変換します。
// 文字コードを判別できない場合は読み込んだバイト列をそのまま使います。
func decodeBody(raw []byte, contentType string) string {
	decoder, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(decoder)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
