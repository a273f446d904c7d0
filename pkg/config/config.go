package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-web-contact/pkg/fetch"
)

const (
	DefaultTimeoutSeconds    = 10
	DefaultPolitenessDelayMs = 2000
	DefaultOutputFile        = "website_details.json"
)

// Config は、1回の実行に使う不変の設定です。
type Config struct {
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	UserAgent         string `yaml:"user_agent"`
	PolitenessDelayMs int    `yaml:"politeness_delay_ms"`
	OutputFile        string `yaml:"output_file"`
}

// Default は、デフォルト値を設定した Config を返します。
func Default() Config {
	return Config{
		TimeoutSeconds:    DefaultTimeoutSeconds,
		UserAgent:         fetch.DefaultUserAgent,
		PolitenessDelayMs: DefaultPolitenessDelayMs,
		OutputFile:        DefaultOutputFile,
	}
}

// Load は、YAMLファイルの内容をデフォルト値に重ねて読み込みます。
// path が空の場合はデフォルト値をそのまま返します。未知のキーはエラーになります。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("設定ファイルの解析に失敗しました (%s): %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("設定ファイルの値が不正です (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate は、設定値の範囲を検証します。
func (c Config) Validate() error {
	var errs []error
	if c.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds は1以上である必要があります: %d", c.TimeoutSeconds))
	}
	if c.PolitenessDelayMs < 0 {
		errs = append(errs, fmt.Errorf("politeness_delay_ms は0以上である必要があります: %d", c.PolitenessDelayMs))
	}
	if c.UserAgent == "" {
		errs = append(errs, errors.New("user_agent が空です"))
	}
	if c.OutputFile == "" {
		errs = append(errs, errors.New("output_file が空です"))
	}
	return errors.Join(errs...)
}

// Timeout は、1リクエストあたりのタイムアウトを返します。
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PolitenessDelay は、連続する取得の間に挟む待機時間を返します。
func (c Config) PolitenessDelay() time.Duration {
	return time.Duration(c.PolitenessDelayMs) * time.Millisecond
}

// FetchConfig は、Fetcher 用の設定に変換します。
func (c Config) FetchConfig() fetch.Config {
	return fetch.Config{
		Timeout:   c.Timeout(),
		UserAgent: c.UserAgent,
	}
}
