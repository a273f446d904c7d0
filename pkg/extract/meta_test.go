package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMeta(t *testing.T) {
	tests := []struct {
		name                string
		html                string
		expectedTitle       *string
		expectedDescription *string
	}{
		{
			name:                "正常ケース_タイトルと説明文",
			html:                `<html><head><title>  Acme Corp  </title><meta name="description" content=" We build things. "></head></html>`,
			expectedTitle:       strPtr("Acme Corp"),
			expectedDescription: strPtr("We build things."),
		},
		{
			name:                "og:descriptionのproperty",
			html:                `<html><head><title>Acme</title><meta property="og:description" content="Open graph text"></head></html>`,
			expectedTitle:       strPtr("Acme"),
			expectedDescription: strPtr("Open graph text"),
		},
		{
			name:                "name属性の大文字小文字を区別しない",
			html:                `<html><head><meta name="Description" content="Upper"></head></html>`,
			expectedTitle:       nil,
			expectedDescription: strPtr("Upper"),
		},
		{
			name:                "空のcontentは読み飛ばす",
			html:                `<html><head><meta name="description" content=""><meta property="og:description" content="Second"></head></html>`,
			expectedTitle:       nil,
			expectedDescription: strPtr("Second"),
		},
		{
			name:                "titleタグがない場合はnil",
			html:                `<html><body><p>no head</p></body></html>`,
			expectedTitle:       nil,
			expectedDescription: nil,
		},
		{
			name:                "空のtitleタグもnil",
			html:                `<html><head><title>   </title></head></html>`,
			expectedTitle:       nil,
			expectedDescription: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ExtractMeta(mustDoc(t, tt.html))
			assert.Equal(t, tt.expectedTitle, meta.Title)
			assert.Equal(t, tt.expectedDescription, meta.Description)
		})
	}
}

func TestExtractMeta_NilDocument(t *testing.T) {
	meta := ExtractMeta(nil)
	assert.Nil(t, meta.Title)
	assert.Nil(t, meta.Description)
}

func strPtr(s string) *string { return &s }
