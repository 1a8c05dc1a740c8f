package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/idmap"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
	"github.com/rushteam/bookrec/store"
)

const (
	// DefaultMinRecRating 是进入候选统计的最低评分。
	// 单一阈值：不再叠加更宽松的“正向”判断，避免两层过滤语义不一致。
	DefaultMinRecRating = 3

	// DefaultMinNeighborCount 是邻居计数的显著性阈值：
	// 只被寥寥数个邻居评过的书视为噪声，计数必须严格大于该值才保留。
	DefaultMinNeighborCount = 25
)

// NeighborItems 是基于邻居的协同过滤召回源（User-CF 的 u2u → u2i 第二段）。
//
// 流程：
//  1. 过滤交互记录：用户在相似用户集中且评分达到 MinRating
//  2. 按交互空间图书 ID 计数（neighbor_count：多少条合格的邻居评分）
//  3. 显著性截断：计数不超过 MinNeighborCount 的丢弃
//  4. ID 翻译回目录空间并联接目录元数据（映射缺失向上抛 MISSING_MAPPING；
//     书未过目录热度门槛则不在目录中，内联接自然丢弃）
//
// 产出的 Item 处于目录空间，Meta 携带 neighbor_count / ratings / title / url，
// 打分交给 rank.Affinity。
type NeighborItems struct {
	Interactions *store.Interactions
	Mapper       *idmap.Map
	Catalog      *catalog.Index

	// MinRating 进入统计的最低评分，<=0 时用 DefaultMinRecRating
	MinRating int

	// MinNeighborCount 显著性阈值，<=0 时用 DefaultMinNeighborCount
	MinNeighborCount int
}

func (r *NeighborItems) Name() string        { return "recall.neighbor_items" }
func (r *NeighborItems) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *NeighborItems) Process(
	ctx context.Context,
	s *core.Session,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, s)
}

// Recall 实现 Source 接口。
// 相似用户集为空时返回 EMPTY_NEIGHBORHOOD；已累积的会话状态不受影响，
// 调用方可以补充喜欢的书、重新发现邻居后重试。
func (r *NeighborItems) Recall(
	ctx context.Context,
	s *core.Session,
) ([]*core.Item, error) {
	if s == nil || s.SimilarUserCount() == 0 {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeEmptyNeighborhood,
			"recall: no similar users in session")
	}

	minRating := r.MinRating
	if minRating <= 0 {
		minRating = DefaultMinRecRating
	}
	minCount := r.MinNeighborCount
	if minCount <= 0 {
		minCount = DefaultMinNeighborCount
	}

	// 邻居的合格评分按交互空间图书计数
	counts := make(map[string]int)
	pred := store.And(
		store.ByUser(s.HasSimilarUser),
		store.MinRating(minRating),
	)
	for rec := range r.Interactions.Filter(pred) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts[rec.ItemID]++
	}

	out := make([]*core.Item, 0, len(counts))
	for itemID, count := range counts {
		if count <= minCount {
			continue
		}
		bookID, err := r.Mapper.ToCatalog(itemID)
		if err != nil {
			return nil, err
		}
		book, ok := r.Catalog.ByID(bookID)
		if !ok {
			continue // 未过目录显著性门槛
		}

		it := core.NewItem(bookID)
		it.Meta["neighbor_count"] = count
		it.Meta["ratings"] = book.Ratings
		it.Meta["title"] = book.Title
		it.Meta["url"] = book.URL
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		it.PutLabel("neighbor_count", utils.Label{Value: strconv.Itoa(count), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*NeighborItems)(nil)
var _ pipeline.Node = (*NeighborItems)(nil)
