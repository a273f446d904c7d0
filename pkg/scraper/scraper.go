package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shouni/go-web-contact/pkg/extract"
	"github.com/shouni/go-web-contact/pkg/fetch"
	"github.com/shouni/go-web-contact/pkg/target"
	"github.com/shouni/go-web-contact/pkg/types"
)

// DefaultPolitenessDelay は、連続する取得の間に挟むデフォルトの待機時間です。
const DefaultPolitenessDelay = 2 * time.Second

// Fetcher は、1つのURLからページを取得する機能のインターフェースです。
// *fetch.Client がこれを満たします。
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Response, error)
}

// ProgressFunc は、各ターゲットの処理開始時に呼び出されます。index は0始まりです。
type ProgressFunc func(index, total int, raw string)

// Scraper は、ターゲットを入力順に1件ずつ取得・抽出します。並列処理は行いません。
type Scraper struct {
	fetcher   Fetcher
	extractor *extract.Extractor
	delay     time.Duration
	logger    *log.Logger
	progress  ProgressFunc
}

// Option は Scraper の設定を行うための関数型です。
type Option func(*Scraper)

// WithDelay は、連続する取得の間の待機時間を設定します。0 で待機しません。
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger は、ロガーを設定します。
func WithLogger(logger *log.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress は、進捗通知のコールバックを設定します。
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scraper) {
		s.progress = fn
	}
}

// New は Scraper を初期化します。
func New(fetcher Fetcher, extractor *extract.Extractor, options ...Option) (*Scraper, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("scraper.New: Fetcher cannot be nil")
	}
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	s := &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		delay:     DefaultPolitenessDelay,
		logger:    log.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// ScrapeOne は、1つのターゲットを正規化・取得・抽出し、結果レコードを返します。
// 取得に失敗した場合は抽出を行わず、エラーレコードを返します。
func (s *Scraper) ScrapeOne(ctx context.Context, raw string) types.ScrapeResult {
	tgt, err := target.Normalize(raw)
	if err != nil {
		s.logger.Warn("ターゲットが不正です", "target", raw, "err", err)
		return types.NewFailure(tgt, 0, err)
	}

	s.logger.Debug("取得開始", "target", tgt.Raw, "url", tgt.URL)
	resp, err := s.fetcher.Fetch(ctx, tgt.URL)
	if err != nil {
		statusCode, _ := fetch.IsStatusError(err)
		s.logger.Warn("取得に失敗しました", "url", tgt.URL, "status", statusCode, "err", err)
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) && len(statusErr.Body) > 0 {
			s.logger.Debug("エラーレスポンスの本文", "url", tgt.URL, "body", string(statusErr.Body))
		}
		return types.NewFailure(tgt, statusCode, err)
	}
	s.logger.Debug("取得完了", "url", resp.URL, "status", resp.StatusCode, "content_type", resp.ContentType, "bytes", len(resp.Body))

	sourceURL := resp.URL
	if sourceURL == "" {
		sourceURL = tgt.URL
	}
	contacts := s.extractor.Extract(resp.Body, sourceURL)
	s.logger.Info("抽出完了",
		"url", tgt.URL,
		"emails", len(contacts.Emails),
		"phones", len(contacts.PhoneNumbers),
		"linkedin", contacts.LinkedIn != nil,
		"social", contacts.SocialMedia.Count(),
	)
	return types.NewSuccess(tgt, resp.StatusCode, contacts)
}

// ScrapeAll は、ターゲットを入力順に処理し、同じ順序で結果を返します。
// 取得と取得の間には待機時間を挟みます (最初の取得の前と最後の取得の後には挟みません)。
// ctx がキャンセルされた場合、残りのターゲットはエラーレコードになります。
func (s *Scraper) ScrapeAll(ctx context.Context, raws []string) []types.ScrapeResult {
	results := make([]types.ScrapeResult, 0, len(raws))

	for i, raw := range raws {
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				results = append(results, s.cancelled(raws[i:], err)...)
				break
			}
		}
		if s.progress != nil {
			s.progress(i, len(raws), raw)
		}
		results = append(results, s.ScrapeOne(ctx, raw))
	}
	return results
}

// wait は、待機時間が経過するか ctx がキャンセルされるまでブロックします。
func (s *Scraper) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scraper) cancelled(raws []string, cause error) []types.ScrapeResult {
	results := make([]types.ScrapeResult, 0, len(raws))
	for _, raw := range raws {
		tgt, err := target.Normalize(raw)
		if err != nil {
			results = append(results, types.NewFailure(tgt, 0, err))
			continue
		}
		results = append(results, types.NewFailure(tgt, 0, fmt.Errorf("処理が中断されました: %w", cause)))
	}
	return results
}
