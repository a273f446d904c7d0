package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "正常ケース_テキスト中のアドレス",
			text:     "Contact us at info@example.com for details.",
			expected: []string{"info@example.com"},
		},
		{
			name:     "正常ケース_mailtoリンク",
			text:     `<a href="mailto:sales@example.co.uk?subject=hi">mail</a>`,
			expected: []string{"sales@example.co.uk"},
		},
		{
			name:     "重複は大文字小文字を区別せず最初の表記を保持",
			text:     "Info@Example.com info@example.com INFO@EXAMPLE.COM",
			expected: []string{"Info@Example.com"},
		},
		{
			name:     "出現順を保持",
			text:     "b@example.com a@example.com b@example.com",
			expected: []string{"b@example.com", "a@example.com"},
		},
		{
			name:     "画像ファイル名を除外",
			text:     `<img src="/img/logo@2x.png"><img src="icon@3x.webp"> hero@banner.JPG support@example.com`,
			expected: []string{"support@example.com"},
		},
		{
			name:     "タグの入れ子と空白に影響されない",
			text:     "<div>\n  <span>\n\tjane.doe+news@mail.example.org\n</span></div>",
			expected: []string{"jane.doe+news@mail.example.org"},
		},
		{
			name:     "TLDの後に英数字が続くものは除外",
			text:     "write info@example.com2024 or sales@example.org-old or a@b.co",
			expected: []string{"a@b.co"},
		},
		{
			name:     "ローカル部前後のドットを除去",
			text:     "...hello@example.com",
			expected: []string{"hello@example.com"},
		},
		{
			name:     "ドメインにドットがないものは除外",
			text:     "user@localhost @handle",
			expected: []string{},
		},
		{
			name:     "エッジケース_空文字",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractEmails(tt.text))
		})
	}
}
