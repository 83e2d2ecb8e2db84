package domain

// Stem describes a heavenly stem (천간) of a ganji pair.
type Stem struct {
	KoreanName   string `json:"korean_name"`
	Element      string `json:"element"`
	ElementColor string `json:"element_color"`
	YinYang      string `json:"yin_yang"`
}

// Branch describes an earthly branch (지지) of a ganji pair.
type Branch struct {
	KoreanName   string `json:"korean_name"`
	Element      string `json:"element"`
	ElementColor string `json:"element_color"`
	YinYang      string `json:"yin_yang"`
}

// Ganji is a stem-branch pair, one pillar of a saju reading.
type Ganji struct {
	TwoLetters string `json:"two_letters"`
	Stem       Stem   `json:"stem"`
	Branch     Branch `json:"branch"`
}

// Saju holds the four pillars calculated from a date or birth data.
type Saju struct {
	Yearly  Ganji `json:"yearly"`
	Monthly Ganji `json:"monthly"`
	Daily   Ganji `json:"daily"`
	Hourly  Ganji `json:"hourly"`
}

// Luck period keys used in Score.Elements for the daily fortune breakdown.
const (
	PeriodDecade = "대운"
	PeriodYear   = "세운"
	PeriodMonth  = "월운"
	PeriodDay    = "일운"
)

// LuckPeriods lists the four luck cycle keys in display order.
var LuckPeriods = []string{PeriodDecade, PeriodYear, PeriodMonth, PeriodDay}

// ElementShare is the count and percentage of one of the five elements.
type ElementShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Score is the entropy-based balance score for a day.
// Elements maps pillar names (the four luck periods plus the four date
// pillars) to their ganji; absent pillars are nil.
type Score struct {
	EntropyScore   float64                 `json:"entropy_score"`
	Elements       map[string]*Ganji       `json:"elements"`
	Distribution   map[string]ElementShare `json:"element_distribution"`
	Interpretation string                  `json:"interpretation"`
}

// LuckPeriod returns the ganji for one of the named luck cycle keys.
func (s Score) LuckPeriod(name string) (*Ganji, bool) {
	g, ok := s.Elements[name]
	if !ok || g == nil {
		return nil, false
	}
	return g, true
}

// Fortune is the canonical daily fortune payload. It is immutable once
// received; the store hands out pointers that must not be mutated.
type Fortune struct {
	Date     string `json:"date"`
	UserID   int    `json:"user_id"`
	Summary  string `json:"summary"`
	Overall  int    `json:"overall_fortune"`
	Score    Score  `json:"fortune_score"`
	SajuDate Saju   `json:"saju_date"`
	SajuUser Saju   `json:"saju_user"`
	Daewoon  *Ganji `json:"daewoon,omitempty"`
}

// Profile is the user's stored birth data and its saju pillars.
type Profile struct {
	Nickname      string `json:"nickname"`
	BirthDatetime string `json:"birth_datetime"`
	Saju          Saju   `json:"saju"`
}

// ImageRef points at one uploaded chakra image for a date.
type ImageRef struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	CapturedAt string `json:"captured_at"`
}

// ImageGrid is a date's images bound to a fixed number of display slots.
type ImageGrid struct {
	Date  string     `json:"date"`
	Slots []ImageRef `json:"slots"`
}
