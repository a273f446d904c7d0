package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-web-contact/internal/pipeline"
	"github.com/shouni/go-web-contact/pkg/target"
)

const promptMessage = "Enter websites (comma-separated): "

// inputURLs は --urls フラグで受け取るカンマ区切りのターゲットリスト
var inputURLs string

// readTargets は、フラグの値、またはプロンプトに対する1行の入力からターゲットのリストを作ります。
func readTargets(flagValue string, in io.Reader, out io.Writer) ([]string, error) {
	line := flagValue
	if strings.TrimSpace(line) == "" {
		fmt.Fprint(out, promptMessage)
		reader := bufio.NewReader(in)
		text, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("標準入力の読み取りエラー: %w", err)
		}
		line = text
	}

	targets := target.ParseList(line)
	if len(targets) == 0 {
		return nil, fmt.Errorf("処理対象のターゲットが一つも指定されていません")
	}
	return targets, nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Webサイトから連絡先情報を抽出し、JSONファイルに保存します",
	Long: `--urls フラグ、またはプロンプトに入力されたカンマ区切りのドメイン/URLを1件ずつ順に取得し、
メールアドレス・電話番号・LinkedIn・SNSリンク・タイトル/説明文を抽出してJSONファイルに書き出します。
個々のサイトの取得失敗は結果ファイルに記録され、終了コードには反映されません。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := readTargets(inputURLs, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		// Ctrl+C で残りのターゲットを中断扱いにし、それまでの結果は保存する
		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt)
		defer stop()

		_, err = pipeline.Run(ctx, GetConfig(), targets, pipeline.Options{
			Logger:       logger,
			Out:          cmd.OutOrStdout(),
			ShowProgress: true,
		})
		if err != nil {
			return fmt.Errorf("スクレイピングパイプラインの実行エラー: %w", err)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&inputURLs, "urls", "u", "",
		"抽出対象のカンマ区切りドメイン/URLリスト (例: example.com,https://example.org)")
}

// contextOrBackground は、cobra のコンテキストが未設定の場合に Background を返します。
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
