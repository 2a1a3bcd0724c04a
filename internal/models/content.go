package models

import "time"

// Destination 环保旅行目的地
type Destination struct {
	Name                 string `json:"destination_name" yaml:"name"`
	Description          string `json:"description" yaml:"description"`
	BestSeason           string `json:"best_season" yaml:"best_season"`
	SustainablePractices string `json:"sustainable_practices" yaml:"sustainable_practices"`
	ImageID              string `json:"image_id,omitempty" yaml:"image_id,omitempty"`
}

// NewsArticle 可持续旅行资讯
type NewsArticle struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	URLToImage  string    `json:"url_to_image" yaml:"url_to_image"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	Source      string    `json:"source" yaml:"source"`
	Author      string    `json:"author" yaml:"author"`
	Category    string    `json:"category" yaml:"-"`
}

// Tip 环保出行建议
type Tip struct {
	ID          string `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"` // low | medium | high
	Points      int    `json:"points" yaml:"points"`
}

// Statistic 气候数据展示项
type Statistic struct {
	Title       string `json:"title" yaml:"title"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	Trend       string `json:"trend" yaml:"trend"` // increasing | stable | decreasing
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
}
