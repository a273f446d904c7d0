package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialMedia_GetSet(t *testing.T) {
	var s SocialMedia
	for _, name := range []string{"twitter", "facebook", "instagram", "youtube", "github"} {
		assert.Nil(t, s.Get(name))
		s.Set(name, StringPtr("https://"+name+".example/acme"))
		assert.Equal(t, StringPtr("https://"+name+".example/acme"), s.Get(name))
	}
	assert.Equal(t, 5, s.Count())

	s.Set("myspace", StringPtr("ignored"))
	assert.Nil(t, s.Get("myspace"))
	assert.Equal(t, 5, s.Count())
}

func TestNewSuccess(t *testing.T) {
	res := NewSuccess(ScrapeTarget{Raw: "example.com", URL: "https://example.com"}, 200, Contacts{})

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Nil(t, res.ErrorMessage)
	assert.Equal(t, []string{}, res.Emails)
	assert.Equal(t, []string{}, res.PhoneNumbers)
	require.NotNil(t, res.SocialMedia)
	require.NotNil(t, res.MetaInfo)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"website": "example.com",
		"url": "https://example.com",
		"status": "success",
		"status_code": 200,
		"emails": [],
		"phone_numbers": [],
		"linkedin": null,
		"social_media": {"twitter": null, "facebook": null, "instagram": null, "youtube": null, "github": null},
		"meta_info": {"title": null, "description": null}
	}`, string(data))
}

func TestNewFailure(t *testing.T) {
	t.Run("エラーメッセージを記録", func(t *testing.T) {
		res := NewFailure(ScrapeTarget{Raw: "unreachable.test", URL: "https://unreachable.test"}, 0, errors.New("timeout"))
		assert.Equal(t, StatusError, res.Status)
		require.NotNil(t, res.ErrorMessage)
		assert.Equal(t, "timeout", *res.ErrorMessage)
		assert.Nil(t, res.Emails)
		assert.Nil(t, res.MetaInfo)
	})

	t.Run("nilエラーでも空文字にしない", func(t *testing.T) {
		res := NewFailure(ScrapeTarget{Raw: "x"}, 0, nil)
		require.NotNil(t, res.ErrorMessage)
		assert.NotEmpty(t, *res.ErrorMessage)
	})
}
