// Package content 内置的可持续旅行内容：资讯、目的地、建议和统计数据
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CategoryAll 查询时表示不过滤
const CategoryAll = "all"

// Catalog 内容目录，加载后只读
type Catalog struct {
	Destinations []models.Destination `yaml:"destinations"`
	News         []models.NewsArticle `yaml:"news"`
	Tips         []models.Tip         `yaml:"tips"`
	Statistics   []models.Statistic   `yaml:"statistics"`
}

// Load 加载内置目录
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse 解析 YAML 目录，并为资讯计算分类
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, d := range c.Destinations {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("destination %d: %w", i, errors.New("missing name"))
		}
	}
	for i := range c.News {
		c.News[i].Category = Categorize(c.News[i].Title, c.News[i].Description)
	}
	sort.SliceStable(c.News, func(i, j int) bool {
		return c.News[i].PublishedAt.After(c.News[j].PublishedAt)
	})

	return &c, nil
}

// NewsByCategory 按分类筛选资讯（按发布时间倒序）
func (c *Catalog) NewsByCategory(category string) []models.NewsArticle {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return c.News
	}

	result := []models.NewsArticle{}
	for _, a := range c.News {
		if a.Category == category {
			result = append(result, a)
		}
	}
	return result
}

// TipsByCategory 按分类筛选建议
func (c *Catalog) TipsByCategory(category string) []models.Tip {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return c.Tips
	}

	result := []models.Tip{}
	for _, t := range c.Tips {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// TotalTipPoints 全部建议的积分总和
func (c *Catalog) TotalTipPoints() int {
	total := 0
	for _, t := range c.Tips {
		total += t.Points
	}
	return total
}
