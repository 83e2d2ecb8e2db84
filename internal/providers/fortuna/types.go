package fortuna

// Wire types mirror the backend's response envelopes. All payloads arrive
// as {"status": ..., "message"?: ..., "data": ...}.

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type stemPayload struct {
	KoreanName   string `json:"korean_name"`
	Element      string `json:"element"`
	ElementColor string `json:"element_color"`
	YinYang      string `json:"yin_yang"`
}

type branchPayload struct {
	KoreanName   string `json:"korean_name"`
	Element      string `json:"element"`
	ElementColor string `json:"element_color"`
	YinYang      string `json:"yin_yang"`
}

type ganjiPayload struct {
	TwoLetters string        `json:"two_letters"`
	Stem       stemPayload   `json:"stem"`
	Branch     branchPayload `json:"branch"`
}

type sajuPayload struct {
	Yearly  ganjiPayload `json:"yearly"`
	Monthly ganjiPayload `json:"monthly"`
	Daily   ganjiPayload `json:"daily"`
	Hourly  ganjiPayload `json:"hourly"`
}

type elementSharePayload struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type scorePayload struct {
	EntropyScore   float64                        `json:"entropy_score"`
	Elements       map[string]*ganjiPayload       `json:"elements"`
	Distribution   map[string]elementSharePayload `json:"element_distribution"`
	Interpretation string                         `json:"interpretation"`
}

type fortuneTextPayload struct {
	OverallFortune int    `json:"overall_fortune"`
	FortuneSummary string `json:"fortune_summary"`
	SpecialMessage string `json:"special_message"`
}

type fortuneDataPayload struct {
	Date         string             `json:"date"`
	UserID       int                `json:"user_id"`
	Fortune      fortuneTextPayload `json:"fortune"`
	FortuneScore scorePayload       `json:"fortune_score"`
	SajuDate     sajuPayload        `json:"saju_date"`
	SajuUser     sajuPayload        `json:"saju_user"`
	Daewoon      *ganjiPayload      `json:"daewoon"`
}

type fortuneResponse struct {
	envelope
	Data *fortuneDataPayload `json:"data"`
}

type profileDataPayload struct {
	Nickname      string      `json:"nickname"`
	BirthDatetime string      `json:"birth_datetime"`
	Saju          sajuPayload `json:"saju"`
}

type profileResponse struct {
	envelope
	Data *profileDataPayload `json:"data"`
}

type imagePayload struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	CapturedAt string `json:"captured_at"`
}

type imagesDataPayload struct {
	Date   string         `json:"date"`
	Images []imagePayload `json:"images"`
	Count  int            `json:"count"`
}

type imagesResponse struct {
	envelope
	Data *imagesDataPayload `json:"data"`
}
