package types

// Status は、1ターゲットの処理結果の状態を表します。
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ScrapeTarget は、正規化済みの処理対象です。target.Normalize 以外で生成しないでください。
type ScrapeTarget struct {
	Raw string // 入力されたままの文字列 (前後の空白のみ除去)
	URL string // スキーム補完済みの取得対象URL
}

// SocialMedia は、プラットフォームごとに最初に見つかったプロフィールURLを保持します。
// 見つからなかったプラットフォームは nil (JSONでは null) になります。
type SocialMedia struct {
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	YouTube   *string `json:"youtube"`
	GitHub    *string `json:"github"`
}

// Get は、プラットフォーム名に対応するURLを返します。未知の名前の場合は nil です。
func (s SocialMedia) Get(platform string) *string {
	switch platform {
	case "twitter":
		return s.Twitter
	case "facebook":
		return s.Facebook
	case "instagram":
		return s.Instagram
	case "youtube":
		return s.YouTube
	case "github":
		return s.GitHub
	}
	return nil
}

// Set は、プラットフォーム名に対応するフィールドへURLを設定します。
func (s *SocialMedia) Set(platform string, url *string) {
	switch platform {
	case "twitter":
		s.Twitter = url
	case "facebook":
		s.Facebook = url
	case "instagram":
		s.Instagram = url
	case "youtube":
		s.YouTube = url
	case "github":
		s.GitHub = url
	}
}

// Count は、設定済みのプラットフォーム数を返します。
func (s SocialMedia) Count() int {
	n := 0
	for _, v := range []*string{s.Twitter, s.Facebook, s.Instagram, s.YouTube, s.GitHub} {
		if v != nil {
			n++
		}
	}
	return n
}

// MetaInfo は、ページのタイトルと説明文です。
type MetaInfo struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Contacts は、Extractor が1ページから抽出した連絡先情報です。
// Emails と PhoneNumbers は nil になりません。
type Contacts struct {
	Emails       []string
	PhoneNumbers []string
	LinkedIn     *string
	SocialMedia  SocialMedia
	MetaInfo     MetaInfo
}

// ScrapeResult は、1ターゲット分の出力レコードです。生成後に変更しないでください。
type ScrapeResult struct {
	Website      string       `json:"website"`
	URL          string       `json:"url"`
	Status       Status       `json:"status"`
	StatusCode   int          `json:"status_code,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	Emails       []string     `json:"emails"`
	PhoneNumbers []string     `json:"phone_numbers"`
	LinkedIn     *string      `json:"linkedin"`
	SocialMedia  *SocialMedia `json:"social_media"`
	MetaInfo     *MetaInfo    `json:"meta_info"`
}

// NewSuccess は、抽出結果から成功レコードを生成します。
func NewSuccess(target ScrapeTarget, statusCode int, c Contacts) ScrapeResult {
	emails := c.Emails
	if emails == nil {
		emails = []string{}
	}
	phones := c.PhoneNumbers
	if phones == nil {
		phones = []string{}
	}
	social := c.SocialMedia
	meta := c.MetaInfo
	return ScrapeResult{
		Website:      target.Raw,
		URL:          target.URL,
		Status:       StatusSuccess,
		StatusCode:   statusCode,
		Emails:       emails,
		PhoneNumbers: phones,
		LinkedIn:     c.LinkedIn,
		SocialMedia:  &social,
		MetaInfo:     &meta,
	}
}

// NewFailure は、エラーレコードを生成します。抽出系のフィールドはすべて nil のままです。
func NewFailure(target ScrapeTarget, statusCode int, err error) ScrapeResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ScrapeResult{
		Website:      target.Raw,
		URL:          target.URL,
		Status:       StatusError,
		StatusCode:   statusCode,
		ErrorMessage: &msg,
	}
}

// StringPtr は、s へのポインタを返します。
func StringPtr(s string) *string {
	return &s
}
