package content

import "strings"

// 资讯分类
const (
	CategoryPolicy       = "policy"
	CategoryTechnology   = "technology"
	CategoryDestinations = "destinations"
	CategoryResearch     = "research"
	CategoryGeneral      = "general"
)

// 按顺序匹配，先命中者生效
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryPolicy, []string{"policy", "government", "regulation"}},
	{CategoryTechnology, []string{"technology", "innovation", "electric"}},
	{CategoryDestinations, []string{"destination", "travel", "tourism"}},
	{CategoryResearch, []string{"research", "study", "scientist"}},
}

// Categorize 根据标题和摘要中的关键词为资讯分类（不区分大小写，子串匹配）
func Categorize(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(text, kw) {
				return c.category
			}
		}
	}
	return CategoryGeneral
}
