package recall

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/idmap"
	"github.com/rushteam/bookrec/store"
)

// DefaultPositiveRating 是邻居判定的正向信号阈值：
// 对任意一本喜欢的书打出不低于该分数的用户才算“口味相合”。
const DefaultPositiveRating = 4

// NeighborFinder 做邻居发现（User-to-User）：
// 在交互记录里寻找对当前用户喜欢的书给出过正向评分的其他用户。
//
// 发现结果累积进 Session 的相似用户集，集合在一轮内只增不减：
// 多次调用（例如用户追加喜欢的书后重试）只会补充新邻居，
// 只有 Session.ResetRound 才清空。
type NeighborFinder struct {
	Interactions *store.Interactions
	Mapper       *idmap.Map

	// PositiveRating 正向信号阈值，<=0 时用 DefaultPositiveRating。
	// 具体数值只是“正向截断”的参数，不承载更多语义。
	PositiveRating int
}

// Find 把与会话口味相合的用户并入相似用户集，返回本次新增的邻居数。
//
// 失败语义：
//   - 喜欢列表为空 → EMPTY_SELECTION，不改动任何状态
//   - 喜欢的书在 ID 映射中无对应项 → MISSING_MAPPING 向上抛出
//     （目录与交互数据集不一致，属于加载期数据问题，不静默吞掉）
func (f *NeighborFinder) Find(ctx context.Context, s *core.Session) (int, error) {
	liked := s.Liked()
	if len(liked) == 0 {
		return 0, core.NewDomainError(core.ModuleRecall, core.ErrorCodeEmptySelection,
			"recall: no liked books in session")
	}

	minRating := f.PositiveRating
	if minRating <= 0 {
		minRating = DefaultPositiveRating
	}

	// 喜欢列表从目录空间翻译到交互空间
	likedItems := make(map[string]struct{}, len(liked))
	for _, bookID := range liked {
		itemID, err := f.Mapper.ToInteraction(bookID)
		if err != nil {
			return 0, err
		}
		likedItems[itemID] = struct{}{}
	}

	added := 0
	for rec := range f.Interactions.Filter(store.ByItems(likedItems)) {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		if rec.Rating < minRating {
			continue
		}
		if s.AddSimilarUser(rec.UserID) {
			added++
		}
	}
	return added, nil
}
