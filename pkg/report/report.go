package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shouni/go-web-contact/pkg/types"
)

// WriteJSON は、結果をインデント付きのJSON配列としてファイルに書き出します。
// 同じディレクトリの一時ファイルに書き込んでから置き換えるため、途中で失敗しても既存のファイルは壊れません。
func WriteJSON(path string, results []types.ScrapeResult) error {
	if results == nil {
		results = []types.ScrapeResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("結果のJSON変換に失敗しました: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("出力ファイルを作成できません (%s): %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功後は存在しないため失敗は無視

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("出力ファイルへの書き込みに失敗しました (%s): %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("出力ファイルのクローズに失敗しました (%s): %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("出力ファイルの権限設定に失敗しました (%s): %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("出力ファイルの保存に失敗しました (%s): %w", path, err)
	}
	return nil
}

// Counts は、成功件数と失敗件数を返します。
func Counts(results []types.ScrapeResult) (success, failed int) {
	for _, r := range results {
		if r.Status == types.StatusSuccess {
			success++
		} else {
			failed++
		}
	}
	return success, failed
}

// PrintSummary は、ターゲットごとの結果を人が読める形式で出力します。
func PrintSummary(w io.Writer, results []types.ScrapeResult) {
	fmt.Fprintln(w, "--- 抽出結果 ---")

	for i, res := range results {
		if res.Status != types.StatusSuccess {
			fmt.Fprintf(w, "❌ [%d] %s\n", i+1, res.Website)
			fmt.Fprintf(w, "     エラー: %s\n", deref(res.ErrorMessage, "不明なエラー"))
			continue
		}

		fmt.Fprintf(w, "✅ [%d] %s (%s)\n", i+1, res.Website, res.URL)
		if res.MetaInfo != nil {
			fmt.Fprintf(w, "     タイトル: %s\n", deref(res.MetaInfo.Title, "N/A"))
		}
		fmt.Fprintf(w, "     メール: %d 件 %v\n", len(res.Emails), res.Emails)
		fmt.Fprintf(w, "     電話番号: %d 件 %v\n", len(res.PhoneNumbers), res.PhoneNumbers)
		fmt.Fprintf(w, "     LinkedIn: %s\n", deref(res.LinkedIn, "見つかりません"))
		if res.SocialMedia != nil {
			for _, p := range []struct {
				label string
				url   *string
			}{
				{"Twitter", res.SocialMedia.Twitter},
				{"Facebook", res.SocialMedia.Facebook},
				{"Instagram", res.SocialMedia.Instagram},
				{"YouTube", res.SocialMedia.YouTube},
				{"GitHub", res.SocialMedia.GitHub},
			} {
				if p.url != nil {
					fmt.Fprintf(w, "     %s: %s\n", p.label, *p.url)
				}
			}
		}
	}

	success, failed := Counts(results)
	fmt.Fprintln(w, "-------------------------------")
	fmt.Fprintf(w, "完了: 成功 %d 件, 失敗 %d 件\n", success, failed)
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
