// Package builders 在 init 中注册可由配置构建的内置 Node。
// 需要运行期数据结构（目录索引、交互仓库、ID 映射）的召回类 Node
// 无法从纯配置构建，由 recommender 在代码中组装。
package builders

import (
	"fmt"

	"github.com/rushteam/bookrec/config"
	"github.com/rushteam/bookrec/filter"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/conv"
	"github.com/rushteam/bookrec/rank"
	"github.com/rushteam/bookrec/rerank"
)

func init() {
	config.Register("rank.affinity", BuildAffinityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
}

func BuildAffinityNode(_ map[string]any) (pipeline.Node, error) {
	return &rank.AffinityNode{}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

// BuildFilterNode 从配置构建过滤 Node：
//
//	type: filter
//	config:
//	  liked: true          # 排除已喜欢的书
//	  rules:               # CEL 表达式，求值为 true 的候选保留
//	    - item.meta.ratings < 1000000
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	node := &filter.FilterNode{}
	if conv.ConfigGet(cfg, "liked", true) {
		node.Filters = append(node.Filters, &filter.LikedFilter{})
	}
	for _, rule := range conv.SliceAnyToString(cfg["rules"]) {
		f, err := filter.NewExprFilter(rule)
		if err != nil {
			return nil, fmt.Errorf("build filter rule: %w", err)
		}
		node.Filters = append(node.Filters, f)
	}
	return node, nil
}
