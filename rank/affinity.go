// Package rank 实现候选打分与排序。
package rank

import (
	"context"
	"sort"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
)

// AffinityNode 计算邻域亲和度分数并按分数降序排序：
//
//	score = neighbor_count² / ratings
//
// 直觉：neighbor_count/ratings 是“邻居中的热度相对全站热度的比值”，
// 再乘一次 neighbor_count 保证邻域内的绝对热度也有话语权。
// 净效果是把“邻居特别偏爱的小众书”排到“人人都在读的畅销书”前面。
//
// 缺少 neighbor_count 的候选（如热门兜底召回产出）分数记零，
// 排序稳定，它们保持原有顺序垫底。
type AffinityNode struct{}

func (n *AffinityNode) Name() string        { return "rank.affinity" }
func (n *AffinityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *AffinityNode) Process(
	_ context.Context,
	_ *core.Session,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		count, ok := it.MetaInt64("neighbor_count")
		if !ok {
			continue
		}
		ratings, ok := it.MetaInt64("ratings")
		if !ok || ratings <= 0 {
			continue
		}
		it.Score = float64(count*count) / float64(ratings)
		it.PutLabel("rank_model", utils.Label{Value: n.Name(), Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}

var _ pipeline.Node = (*AffinityNode)(nil)
