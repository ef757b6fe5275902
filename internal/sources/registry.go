package sources

import (
	"net/url"
	"sort"
	"strings"
)

type Tier string

const (
	TierOfficial  Tier = "official"
	TierReference Tier = "reference"
)

type Kind string

const (
	KindDirect Kind = "direct"
	KindSearch Kind = "search"
)

type Lang string

const (
	LangKorean  Lang = "ko"
	LangEnglish Lang = "en"
)

// ValidCiteAliases is the alias vocabulary the answer generator is allowed
// to cite. Aliases outside this set are dropped before they reach Build.
var ValidCiteAliases = []string{"kdca", "who", "cdc", "pubmed", "medlineplus", "nice"}

// Item is one candidate reference link, fully constructed for a query.
type Item struct {
	ID               string `json:"id"`
	CiteAlias        string `json:"citeAlias"`
	Name             string `json:"name"`
	Tier             Tier   `json:"tier"`
	Kind             Kind   `json:"kind"`
	Lang             Lang   `json:"lang"`
	VisibleByDefault bool   `json:"visibleByDefault"`
	URL              string `json:"url"`
}

// entry is a registry descriptor: static metadata plus a pure URL builder
// over the already-encoded query.
type entry struct {
	id               string
	citeAlias        string
	name             string
	tier             Tier
	kind             Kind
	lang             Lang
	visibleByDefault bool
	buildURL         func(q string) string
}

// registry holds the fixed source descriptors. Declaration order is the
// tiebreaker within each lang/kind group.
var registry = []entry{
	{
		id:               "kdca_direct",
		citeAlias:        "kdca",
		name:             "질병관리청 건강정보포털",
		tier:             TierOfficial,
		kind:             KindDirect,
		lang:             LangKorean,
		visibleByDefault: true,
		buildURL: func(string) string {
			return "https://health.kdca.go.kr/healthinfo/biz/health/gnrlzHealthInfo/gnrlzHealthInfo/gnrlzHealthInfoMain.do"
		},
	},
	{
		id:               "kdca_search",
		citeAlias:        "kdca",
		name:             "질병관리청 (검색)",
		tier:             TierOfficial,
		kind:             KindSearch,
		lang:             LangKorean,
		visibleByDefault: true,
		buildURL: func(q string) string {
			return "https://www.google.com/search?q=site%3Akdca.go.kr+" + q
		},
	},
	{
		id:               "mfds_search",
		citeAlias:        "mfds",
		name:             "식품의약품안전처 (검색)",
		tier:             TierOfficial,
		kind:             KindSearch,
		lang:             LangKorean,
		visibleByDefault: true,
		buildURL: func(q string) string {
			return "https://www.google.com/search?q=site%3Amfds.go.kr+" + q
		},
	},
	{
		id:               "egen_search",
		citeAlias:        "e-gen",
		name:             "응급의료포털 (검색)",
		tier:             TierOfficial,
		kind:             KindSearch,
		lang:             LangKorean,
		visibleByDefault: true,
		buildURL: func(q string) string {
			return "https://www.google.com/search?q=site%3Ae-gen.or.kr+" + q
		},
	},
	{
		id:               "pubmed_direct",
		citeAlias:        "pubmed",
		name:             "PubMed",
		tier:             TierReference,
		kind:             KindDirect,
		lang:             LangEnglish,
		visibleByDefault: false,
		buildURL: func(q string) string {
			return "https://pubmed.ncbi.nlm.nih.gov/?term=" + q
		},
	},
	{
		id:               "who_search",
		citeAlias:        "who",
		name:             "WHO (검색)",
		tier:             TierOfficial,
		kind:             KindSearch,
		lang:             LangEnglish,
		visibleByDefault: false,
		buildURL: func(q string) string {
			return "https://www.google.com/search?q=site%3Awho.int+" + q
		},
	},
	{
		id:               "cdc_search",
		citeAlias:        "cdc",
		name:             "CDC (검색)",
		tier:             TierReference,
		kind:             KindSearch,
		lang:             LangEnglish,
		visibleByDefault: false,
		buildURL: func(q string) string {
			return "https://www.google.com/search?q=site%3Acdc.gov+" + q
		},
	},
	{
		id:               "medlineplus_search",
		citeAlias:        "medlineplus",
		name:             "MedlinePlus (검색)",
		tier:             TierReference,
		kind:             KindSearch,
		lang:             LangEnglish,
		visibleByDefault: false,
		buildURL: func(q string) string {
			return "https://vsearch.nlm.nih.gov/vivisimo/cgi-bin/query-meta?query=" + q +
				"&v%3Aproject=medlineplus&v%3Asources=medlineplus-bundle"
		},
	},
}

// Build constructs source links for a question. With no aliases it returns
// the default-visible entries; with aliases it returns the union of matched
// and default-visible entries, deduplicated by id. The question is trimmed,
// internal whitespace collapsed, and percent-encoded exactly once here;
// builders must not encode again.
// Order: ko/direct, ko/search, en/direct, en/search.
func Build(question string, citeAliases []string) []Item {
	q := url.QueryEscape(strings.Join(strings.Fields(question), " "))

	var items []Item

	if len(citeAliases) == 0 {
		for _, e := range registry {
			if e.visibleByDefault {
				items = append(items, e.item(q))
			}
		}
	} else {
		aliasSet := make(map[string]struct{}, len(citeAliases))
		for _, a := range citeAliases {
			aliasSet[a] = struct{}{}
		}

		seen := make(map[string]struct{}, len(registry))
		for _, e := range registry {
			_, cited := aliasSet[e.citeAlias]
			if !cited && !e.visibleByDefault {
				continue
			}
			if _, dup := seen[e.id]; dup {
				continue
			}
			seen[e.id] = struct{}{}
			items = append(items, e.item(q))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return sortKey(items[i]) < sortKey(items[j])
	})
	return items
}

func (e entry) item(q string) Item {
	return Item{
		ID:               e.id,
		CiteAlias:        e.citeAlias,
		Name:             e.name,
		Tier:             e.tier,
		Kind:             e.kind,
		Lang:             e.lang,
		VisibleByDefault: e.visibleByDefault,
		URL:              e.buildURL(q),
	}
}

// sortKey: ko/direct=0, ko/search=1, en/direct=2, en/search=3.
func sortKey(it Item) int {
	k := 0
	if it.Lang != LangKorean {
		k += 2
	}
	if it.Kind != KindDirect {
		k++
	}
	return k
}
