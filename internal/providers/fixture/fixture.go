package fixture

import (
	"context"
	"fmt"
	"hash/fnv"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/timeutil"
)

// ProviderName identifies the fixture provider in logs and metrics.
const ProviderName = "fixture"

var stems = []string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

var branches = []string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

var elements = []string{"목", "화", "토", "금", "수"}

var colors = map[string]string{"목": "청", "화": "적", "토": "황", "금": "백", "수": "흑"}

// Provider serves deterministic fortunes derived from the request date.
// The same date always yields the same reading, which makes it usable for
// local development and for exercising the cache without a backend. It
// never fails and ignores the token.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// FetchFortune synthesizes a reading for the key's date.
func (p *Provider) FetchFortune(_ context.Context, key domain.FortuneKey, _ string) (domain.Fortune, error) {
	if _, err := timeutil.ParseDate(key.Date); err != nil {
		return domain.Fortune{}, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid date %q", key.Date)}
	}
	if !key.Variant.Valid() {
		return domain.Fortune{}, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid variant %q", key.Variant)}
	}

	seed := hashOf(key.String())
	elems := make(map[string]*domain.Ganji, len(domain.LuckPeriods))
	for i, period := range domain.LuckPeriods {
		g := ganjiAt(seed + uint64(i))
		elems[period] = &g
	}

	distribution := make(map[string]domain.ElementShare, len(elements))
	for i, el := range elements {
		count := int((seed >> (uint(i) * 3)) % 4)
		distribution[el] = domain.ElementShare{
			Count:      count,
			Percentage: float64(count) * 12.5,
		}
	}

	daewoon := ganjiAt(seed + 11)
	return domain.Fortune{
		Date:    key.Date,
		UserID:  1,
		Summary: fmt.Sprintf("A steady %s reading for %s.", key.Variant, key.Date),
		Overall: int(seed%61) + 40,
		Score: domain.Score{
			EntropyScore:   float64(seed%100) / 100,
			Elements:       elems,
			Distribution:   distribution,
			Interpretation: "균형 잡힌 하루",
		},
		SajuDate: sajuAt(seed + 20),
		SajuUser: sajuAt(hashOf("fixture-user")),
		Daewoon:  &daewoon,
	}, nil
}

// FetchProfile returns a fixed local profile.
func (p *Provider) FetchProfile(_ context.Context, _ string) (domain.Profile, error) {
	return domain.Profile{
		Nickname:      "fixture",
		BirthDatetime: "1990-01-01T06:00:00",
		Saju:          sajuAt(hashOf("fixture-user")),
	}, nil
}

// FetchImages returns a small deterministic set of image refs for the date.
func (p *Provider) FetchImages(_ context.Context, date string, _ string) ([]domain.ImageRef, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid date %q", date)}
	}

	seed := hashOf(date)
	count := int(seed%3) + 1
	refs := make([]domain.ImageRef, 0, count)
	for i := 0; i < count; i++ {
		refs = append(refs, domain.ImageRef{
			ID:         int(seed%1000)*10 + i,
			URL:        fmt.Sprintf("https://fixtures.local/chakra/%s/%d.jpg", date, i),
			CapturedAt: fmt.Sprintf("%sT0%d:00:00", date, 6+i),
		})
	}
	return refs, nil
}

func hashOf(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func ganjiAt(n uint64) domain.Ganji {
	stem := stems[n%uint64(len(stems))]
	branch := branches[n%uint64(len(branches))]
	stemElement := elements[n%uint64(len(elements))]
	branchElement := elements[(n/3)%uint64(len(elements))]
	yinYang := "양"
	if n%2 == 1 {
		yinYang = "음"
	}
	return domain.Ganji{
		TwoLetters: stem + branch,
		Stem: domain.Stem{
			KoreanName:   stem,
			Element:      stemElement,
			ElementColor: colors[stemElement],
			YinYang:      yinYang,
		},
		Branch: domain.Branch{
			KoreanName:   branch,
			Element:      branchElement,
			ElementColor: colors[branchElement],
			YinYang:      yinYang,
		},
	}
}

func sajuAt(n uint64) domain.Saju {
	return domain.Saju{
		Yearly:  ganjiAt(n),
		Monthly: ganjiAt(n + 1),
		Daily:   ganjiAt(n + 2),
		Hourly:  ganjiAt(n + 3),
	}
}
