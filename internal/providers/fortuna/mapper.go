package fortuna

import (
	"fmt"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/providers"
)

func mapFortune(data fortuneDataPayload) (domain.Fortune, error) {
	if data.Date == "" {
		return domain.Fortune{}, schemaError("missing date")
	}
	// The daily breakdown is unusable without the four luck cycle keys.
	for _, period := range domain.LuckPeriods {
		if _, ok := data.FortuneScore.Elements[period]; !ok {
			return domain.Fortune{}, schemaError(fmt.Sprintf("missing %s pillar", period))
		}
	}

	return domain.Fortune{
		Date:     data.Date,
		UserID:   data.UserID,
		Summary:  data.Fortune.FortuneSummary,
		Overall:  data.Fortune.OverallFortune,
		Score:    mapScore(data.FortuneScore),
		SajuDate: mapSaju(data.SajuDate),
		SajuUser: mapSaju(data.SajuUser),
		Daewoon:  mapOptionalGanji(data.Daewoon),
	}, nil
}

func mapProfile(data profileDataPayload) (domain.Profile, error) {
	saju := mapSaju(data.Saju)
	// All four pillars must carry a ganji for the profile surface.
	for name, g := range map[string]domain.Ganji{
		"yearly": saju.Yearly, "monthly": saju.Monthly, "daily": saju.Daily, "hourly": saju.Hourly,
	} {
		if g.TwoLetters == "" {
			return domain.Profile{}, schemaError("missing " + name + " pillar")
		}
	}

	return domain.Profile{
		Nickname:      data.Nickname,
		BirthDatetime: data.BirthDatetime,
		Saju:          saju,
	}, nil
}

func mapScore(p scorePayload) domain.Score {
	elements := make(map[string]*domain.Ganji, len(p.Elements))
	for name, g := range p.Elements {
		elements[name] = mapOptionalGanji(g)
	}
	distribution := make(map[string]domain.ElementShare, len(p.Distribution))
	for name, share := range p.Distribution {
		distribution[name] = domain.ElementShare{Count: share.Count, Percentage: share.Percentage}
	}
	return domain.Score{
		EntropyScore:   p.EntropyScore,
		Elements:       elements,
		Distribution:   distribution,
		Interpretation: p.Interpretation,
	}
}

func mapSaju(p sajuPayload) domain.Saju {
	return domain.Saju{
		Yearly:  mapGanji(p.Yearly),
		Monthly: mapGanji(p.Monthly),
		Daily:   mapGanji(p.Daily),
		Hourly:  mapGanji(p.Hourly),
	}
}

func mapGanji(p ganjiPayload) domain.Ganji {
	return domain.Ganji{
		TwoLetters: p.TwoLetters,
		Stem: domain.Stem{
			KoreanName:   p.Stem.KoreanName,
			Element:      p.Stem.Element,
			ElementColor: p.Stem.ElementColor,
			YinYang:      p.Stem.YinYang,
		},
		Branch: domain.Branch{
			KoreanName:   p.Branch.KoreanName,
			Element:      p.Branch.Element,
			ElementColor: p.Branch.ElementColor,
			YinYang:      p.Branch.YinYang,
		},
	}
}

func mapOptionalGanji(p *ganjiPayload) *domain.Ganji {
	if p == nil {
		return nil
	}
	g := mapGanji(*p)
	return &g
}

func schemaError(detail string) error {
	return &providers.MalformedResponseError{
		Provider: ProviderName,
		Err:      fmt.Errorf("fortune schema: %s", detail),
	}
}
