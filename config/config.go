// Package config 承载应用配置：数据文件位置、显著性阈值、检索与推荐参数。
// 阈值全部可配，代码里的具体数值只是默认值（显著性/正向截断的经验参数），
// 不承载更多语义。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/recall"
	"github.com/rushteam/bookrec/search"
)

// Thresholds 是推荐链路中的显著性与信号阈值。
type Thresholds struct {
	// MinRatings 目录显著性阈值：评分数必须严格大于该值才进目录
	MinRatings int64 `yaml:"min_ratings"`

	// PositiveRating 邻居判定的正向信号阈值（>=）
	PositiveRating int `yaml:"positive_rating"`

	// MinRecRating 进入候选统计的最低评分（>=）
	MinRecRating int `yaml:"min_rec_rating"`

	// MinNeighborCount 邻居计数显著性阈值：计数必须严格大于该值才保留
	MinNeighborCount int `yaml:"min_neighbor_count"`
}

// Config 是应用配置根结构。
type Config struct {
	Data struct {
		Dir          string `yaml:"dir"`
		Books        string `yaml:"books"`        // gzip JSON-lines 图书目录
		Interactions string `yaml:"interactions"` // CSV 交互记录
		IDMap        string `yaml:"id_map"`       // CSV ID 对照表
	} `yaml:"data"`

	Thresholds Thresholds `yaml:"thresholds"`

	Search struct {
		Pool int `yaml:"pool"`  // 相似度初筛候选池
		TopN int `yaml:"top_n"` // 检索返回条数
	} `yaml:"search"`

	Recommend struct {
		TopN     int      `yaml:"top_n"`    // 推荐返回条数
		Rules    []string `yaml:"rules"`    // 追加的 CEL 过滤规则（可选）
		Fallback bool     `yaml:"fallback"` // 协同数据稀疏时用热门榜单兜底
		HotKey   string   `yaml:"hot_key"`  // 热门榜单在 Store 中的 key
	} `yaml:"recommend"`

	Redis struct {
		Addr string `yaml:"addr"` // 为空时使用内存 Store
		DB   int    `yaml:"db"`
	} `yaml:"redis"`
}

// Default 返回带默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Data.Dir = "."
	cfg.Data.Books = "goodreads_books.json.gz"
	cfg.Data.Interactions = "goodreads_interactions.csv"
	cfg.Data.IDMap = "book_id_map.csv"
	cfg.Thresholds = Thresholds{
		MinRatings:       catalog.DefaultMinRatings,
		PositiveRating:   recall.DefaultPositiveRating,
		MinRecRating:     recall.DefaultMinRecRating,
		MinNeighborCount: recall.DefaultMinNeighborCount,
	}
	cfg.Search.Pool = search.DefaultPool
	cfg.Search.TopN = search.DefaultTopN
	cfg.Recommend.TopN = search.DefaultTopN
	cfg.Recommend.HotKey = "hot:books"
	return cfg
}

// Load 从 YAML 文件加载配置，未出现的字段保持默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
