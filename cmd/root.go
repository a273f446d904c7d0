package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-web-contact/pkg/config"
)

// --- グローバル定数 ---

const appName = "web-contact"

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	ConfigPath string // --config 設定ファイル (YAML)
	TimeoutSec int    // --timeout タイムアウト
	UserAgent  string // --user-agent
	DelayMs    int    // --delay 取得間の待機時間
	OutputFile string // --output 出力ファイル
}

var (
	Flags     AppFlags
	appConfig = config.Default()
	logger    = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
	})
)

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	defaults := config.Default()
	rootCmd.PersistentFlags().StringVar(&Flags.ConfigPath, "config", "", "設定ファイル (YAML) のパス")
	rootCmd.PersistentFlags().IntVar(&Flags.TimeoutSec, "timeout", defaults.TimeoutSeconds, "HTTPリクエストのタイムアウト時間（秒）")
	rootCmd.PersistentFlags().StringVar(&Flags.UserAgent, "user-agent", defaults.UserAgent, "HTTPリクエストのUser-Agent")
	rootCmd.PersistentFlags().IntVar(&Flags.DelayMs, "delay", defaults.PolitenessDelayMs, "連続する取得の間の待機時間（ミリ秒）")
	rootCmd.PersistentFlags().StringVarP(&Flags.OutputFile, "output", "o", defaults.OutputFile, "結果を書き出すJSONファイル")
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// 設定ファイルを読み込み、コマンドラインで明示されたフラグで上書きします。
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	if clibase.Flags.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(Flags.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = Flags.TimeoutSec
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = Flags.UserAgent
	}
	if flags.Changed("delay") {
		cfg.PolitenessDelayMs = Flags.DelayMs
	}
	if flags.Changed("output") {
		cfg.OutputFile = Flags.OutputFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定が不正です: %w", err)
	}

	appConfig = cfg
	logger.Debug("設定を読み込みました",
		"timeout", cfg.Timeout(),
		"delay", cfg.PolitenessDelay(),
		"output", cfg.OutputFile,
		"user_agent", cfg.UserAgent,
	)
	return nil
}

// GetConfig は、フラグと設定ファイルを反映した設定を返します。
func GetConfig() config.Config {
	return appConfig
}

// --- エントリポイント ---

// Execute は、clibase を使ってルートコマンドを構築し実行します。
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		scrapeCmd,
		extractCmd,
	)
}
