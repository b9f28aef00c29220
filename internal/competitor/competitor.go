// Package competitor ranks the schools and domains that occupy a scope's
// search results, and grades who holds each keyword's first result.
package competitor

import (
	"net/url"
	"sort"
	"strings"

	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/model"
)

const (
	maxMentions    = 5
	maxExampleRune = 40
	nameWeight     = 2
	domainWeight   = 1
	noisePenalty   = 2
)

// Brand holds the self-brand and noise markers.
type Brand struct {
	SelfNames    []string
	SelfDomains  []string
	NoiseDomains []string
}

// BrandFromConfig copies the configured markers.
func BrandFromConfig(cfg config.BrandConfig) Brand {
	return Brand{
		SelfNames:    cfg.SelfNames,
		SelfDomains:  cfg.SelfDomains,
		NoiseDomains: cfg.NoiseDomains,
	}
}

// IsSelfTitle reports whether title names the own school.
func (b Brand) IsSelfTitle(title string) bool {
	for _, n := range b.SelfNames {
		if n != "" && strings.Contains(title, n) {
			return true
		}
	}
	return false
}

func (b Brand) isSelfHost(host string) bool {
	return containsAnyFold(host, b.SelfDomains)
}

func (b Brand) isNoiseHost(host string) bool {
	return containsAnyFold(host, b.NoiseDomains)
}

func containsAnyFold(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// schoolNames maps each recognized name variant to its canonical school.
var schoolNames = []struct {
	variant   string
	canonical string
}{
	{"國立臺北護理健康大學", "國立臺北護理健康大學"},
	{"臺北護理健康大學", "國立臺北護理健康大學"},
	{"北護", "國立臺北護理健康大學"},
	{"長庚科技大學", "長庚科技大學"},
	{"長庚科大", "長庚科技大學"},
	{"輔英科技大學", "輔英科技大學"},
	{"輔英科大", "輔英科技大學"},
	{"弘光科技大學", "弘光科技大學"},
	{"弘光科大", "弘光科技大學"},
	{"中臺科技大學", "中臺科技大學"},
	{"元培醫事科技大學", "元培醫事科技大學"},
	{"元培", "元培醫事科技大學"},
	{"慈濟科技大學", "慈濟科技大學"},
	{"嘉南藥理大學", "嘉南藥理大學"},
	{"嘉藥", "嘉南藥理大學"},
	{"美和科技大學", "美和科技大學"},
	{"大仁科技大學", "大仁科技大學"},
	{"高雄醫學大學", "高雄醫學大學"},
	{"高醫", "高雄醫學大學"},
	{"中山醫學大學", "中山醫學大學"},
	{"臺北醫學大學", "臺北醫學大學"},
	{"北醫", "臺北醫學大學"},
	{"中國醫藥大學", "中國醫藥大學"},
	{"亞洲大學", "亞洲大學"},
	{"南臺科技大學", "南臺科技大學"},
	{"正修科技大學", "正修科技大學"},
	{"馬偕醫護管理專科學校", "馬偕醫護管理專科學校"},
	{"仁德醫護管理專科學校", "仁德醫護管理專科學校"},
	{"耕莘健康管理專科學校", "耕莘健康管理專科學校"},
	{"樹人醫護管理專科學校", "樹人醫護管理專科學校"},
	{"敏惠醫護管理專科學校", "敏惠醫護管理專科學校"},
}

// MatchNames returns the canonical schools named in title, each once, in
// vocabulary order.
func MatchNames(title string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range schoolNames {
		if seen[n.canonical] || !strings.Contains(title, n.variant) {
			continue
		}
		seen[n.canonical] = true
		out = append(out, n.canonical)
	}
	return out
}

// Host returns the lower-cased host of link without a leading "www.", or ""
// when link has none.
func Host(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

type tally struct {
	name    string
	weight  int
	example string
}

// Extract ranks the competitor names and domains across every result of
// records. Titles naming the own school are skipped entirely.
func Extract(records []model.KeywordRecord, brand Brand) []model.CompetitorMention {
	byName := make(map[string]*tally)
	var order []*tally
	add := func(name string, w int, example string) {
		t, ok := byName[name]
		if !ok {
			t = &tally{name: name, example: clip(example, maxExampleRune)}
			byName[name] = t
			order = append(order, t)
		}
		t.weight += w
	}

	for _, rec := range records {
		for _, r := range rec.Results {
			if r.Rank < 1 || r.Rank > model.MaxResultRank {
				continue
			}
			if brand.IsSelfTitle(r.Title) {
				continue
			}
			for _, name := range MatchNames(r.Title) {
				add(name, nameWeight, r.Title)
			}
			host := Host(r.Link)
			if host == "" || brand.isSelfHost(host) {
				continue
			}
			w := domainWeight
			if brand.isNoiseHost(host) {
				w -= noisePenalty
			}
			add(host, w, r.Title)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].weight > order[j].weight
	})

	var out []model.CompetitorMention
	for _, t := range order {
		if t.weight <= 0 {
			break
		}
		out = append(out, model.CompetitorMention{Name: t.name, Weight: t.weight, Example: t.example})
		if len(out) == maxMentions {
			break
		}
	}
	return out
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// AssessThreat grades the first search result's title: a forum thread is a
// danger, any other non-self page a warning. Forum names match by exact case
// so they do not fire inside other words.
func AssessThreat(title string, brand Brand) model.Threat {
	switch {
	case strings.Contains(title, "Dcard") || strings.Contains(title, "PTT"):
		return model.Threat{
			Level:  model.ThreatDanger,
			Label:  "危險（社群討論中）",
			Advice: "此關鍵字首位是社群論壇，內容可能不可控。建議撰寫一篇官方澄清或懶人包文章來擠下它。",
		}
	case !brand.IsSelfTitle(title):
		return model.Threat{
			Level:  model.ThreatWarning,
			Label:  "警戒（被對手或媒體佔據）",
			Advice: "此關鍵字首位不是本校網頁。請使用 AI 提示詞生成文章，搶回排名。",
		}
	default:
		return model.Threat{
			Level:  model.ThreatExcellent,
			Label:  "優秀（本校佔據首位）",
			Advice: "目前本校佔據首位，請繼續保持更新。",
		}
	}
}
