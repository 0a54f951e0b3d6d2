// Package planner turns a free-form prompt into a generation plan: it decides
// whether the caller wants a whole page, which page archetype fits, and which
// ordered sections that archetype is built from.
package planner

import (
	"regexp"
	"strings"

	"pagegen/internal/domain/entity"
)

// Intent is the result of classifying a prompt.
type Intent struct {
	IsMultiSection bool
	PageType       entity.PageType
}

var wholePageMarkers = []string{
	"landing page",
	"full page",
	"complete page",
	"entire page",
	"website",
	"web page",
	"full site",
	"complete site",
	"entire site",
}

// Explicit single-section asks. These beat the whole-page markers.
var singleSectionMarkers = []string{
	"just a",
	"only a",
	"single",
	"one section",
	"add a",
	"create a hero",
	"create a nav",
	"create a features",
	"create a pricing",
	"create a footer",
	"create a contact",
	"create a testimonial",
}

type pageTypeRule struct {
	pageType entity.PageType
	re       *regexp.Regexp
}

// Evaluated in order, first match wins.
var pageTypeRules = []pageTypeRule{
	{entity.PageTypePortfolio, keywordRegexp("portfolio", "personal", "resume", "cv")},
	{entity.PageTypeService, keywordRegexp("agency", "consulting", "consultancy", "services")},
	{entity.PageTypeCommerce, keywordRegexp("shop", "store", "ecommerce", "e-commerce", "buy", "purchase", "sell products")},
	{entity.PageTypeContent, keywordRegexp("blog", "article", "articles", "content", "news")},
}

func keywordRegexp(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Classify decides page intent and archetype. Total and side-effect free.
func Classify(prompt string) Intent {
	return Intent{
		IsMultiSection: IsMultiSection(prompt),
		PageType:       DetectPageType(prompt),
	}
}

func IsMultiSection(prompt string) bool {
	lower := strings.ToLower(prompt)
	if containsAny(lower, singleSectionMarkers) {
		return false
	}
	return containsAny(lower, wholePageMarkers)
}

func DetectPageType(prompt string) entity.PageType {
	for _, rule := range pageTypeRules {
		if rule.re.MatchString(prompt) {
			return rule.pageType
		}
	}
	return entity.PageTypeProduct
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
