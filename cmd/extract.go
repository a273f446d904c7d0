package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-web-contact/pkg/extract"
	"github.com/shouni/go-web-contact/pkg/target"
	"github.com/shouni/go-web-contact/pkg/types"
)

var (
	htmlFile  string
	sourceURL string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "ローカルのHTMLファイルから連絡先情報を抽出して表示します",
	Long:  `ネットワークにアクセスせず、--file で指定したHTMLファイルに抽出ルールを適用し、結果をJSONで標準出力に表示します。相対リンクは --url を基準に解決します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return fmt.Errorf("HTMLファイルの読み込みに失敗しました: %w", err)
		}

		tgt := types.ScrapeTarget{Raw: htmlFile}
		if sourceURL != "" {
			normalized, err := target.Normalize(sourceURL)
			if err != nil {
				return fmt.Errorf("URLスキームの処理エラー: %w", err)
			}
			tgt.URL = normalized.URL
		}

		contacts := extract.NewExtractor().Extract(string(data), tgt.URL)
		logger.Debug("抽出完了", "file", htmlFile, "emails", len(contacts.Emails), "phones", len(contacts.PhoneNumbers))

		out, err := json.MarshalIndent(types.NewSuccess(tgt, 0, contacts), "", "  ")
		if err != nil {
			return fmt.Errorf("結果のJSON変換に失敗しました: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&htmlFile, "file", "f", "", "抽出対象のHTMLファイル")
	extractCmd.Flags().StringVarP(&sourceURL, "url", "u", "", "相対リンクの解決に使うページのURL")
	extractCmd.MarkFlagRequired("file")
}
