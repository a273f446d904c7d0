package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"github.com/shouni/go-web-contact/pkg/config"
	"github.com/shouni/go-web-contact/pkg/extract"
	"github.com/shouni/go-web-contact/pkg/fetch"
	"github.com/shouni/go-web-contact/pkg/report"
	"github.com/shouni/go-web-contact/pkg/scraper"
	"github.com/shouni/go-web-contact/pkg/types"
)

// Options は、Run の入出力先を指定します。ゼロ値のフィールドにはデフォルトを使います。
type Options struct {
	Logger       *log.Logger
	Out          io.Writer // サマリーの出力先 (デフォルト: 標準出力)
	ShowProgress bool      // 標準エラー出力にスピナーを表示する
	Fetcher      scraper.Fetcher
}

// Run は、ターゲットを順に取得・抽出し、結果をJSONファイルへ書き出してサマリーを表示するメインの処理パイプラインです。
// ターゲット単位の失敗は結果に記録されるだけで、エラーとしては返しません。
// 出力ファイルに書き込めない場合のみエラーを返します。
func Run(ctx context.Context, cfg config.Config, raws []string, opts Options) ([]types.ScrapeResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("処理対象のターゲットが一つも指定されていません")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// 1. 依存性の初期化 (Fetcher -> Extractor -> Scraper)
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.New(cfg.FetchConfig())
	}

	var spin *spinner.Spinner
	scraperOpts := []scraper.Option{
		scraper.WithDelay(cfg.PolitenessDelay()),
		scraper.WithLogger(logger),
	}
	if opts.ShowProgress {
		spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		scraperOpts = append(scraperOpts, scraper.WithProgress(func(index, total int, raw string) {
			spin.Suffix = fmt.Sprintf(" [%d/%d] %s", index+1, total, raw)
			if !spin.Active() {
				spin.Start()
			}
		}))
	}

	s, err := scraper.New(fetcher, extract.NewExtractor(), scraperOpts...)
	if err != nil {
		return nil, fmt.Errorf("Scraperの初期化エラー: %w", err)
	}

	logger.Info("スクレイピング開始",
		"targets", len(raws),
		"timeout", cfg.Timeout(),
		"delay", cfg.PolitenessDelay(),
		"output", cfg.OutputFile,
	)

	// 2. メインロジックの実行
	results := s.ScrapeAll(ctx, raws)
	if spin != nil {
		spin.Stop()
	}

	// 3. 結果の保存と出力
	if err := report.WriteJSON(cfg.OutputFile, results); err != nil {
		return results, err
	}
	report.PrintSummary(out, results)
	fmt.Fprintf(out, "結果を %s に保存しました\n", cfg.OutputFile)

	success, failed := report.Counts(results)
	logger.Info("スクレイピング完了", "success", success, "failed", failed, "output", cfg.OutputFile)
	return results, nil
}
