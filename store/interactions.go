package store

import (
	"iter"

	"github.com/rushteam/bookrec/core"
)

// Predicate 是交互记录的过滤条件。
type Predicate func(core.Interaction) bool

// Interactions 是不可变的交互记录仓库：(用户, 图书, 评分) 三元组。
// 数据量大，过滤结果惰性产出，不做整体物化；构建后无任何可变操作，
// 可在任意多个只读 goroutine 间共享。
type Interactions struct {
	records []core.Interaction
}

// NewInteractions 从已类型化的记录构建仓库。记录切片的所有权转移给仓库。
func NewInteractions(records []core.Interaction) *Interactions {
	return &Interactions{records: records}
}

// Len 返回记录总数。
func (s *Interactions) Len() int {
	return len(s.records)
}

// Filter 惰性遍历满足 pred 的记录。
// pred 为 nil 时遍历全部记录。
func (s *Interactions) Filter(pred Predicate) iter.Seq[core.Interaction] {
	return func(yield func(core.Interaction) bool) {
		for _, rec := range s.records {
			if pred != nil && !pred(rec) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// ByItems 构造“交互空间图书 ID 在集合中”的过滤条件。
func ByItems(ids map[string]struct{}) Predicate {
	return func(rec core.Interaction) bool {
		_, ok := ids[rec.ItemID]
		return ok
	}
}

// ByUser 构造“用户 ID 满足 match”的过滤条件。
func ByUser(match func(userID string) bool) Predicate {
	return func(rec core.Interaction) bool {
		return match(rec.UserID)
	}
}

// MinRating 构造“评分不低于 r”的过滤条件。
func MinRating(r int) Predicate {
	return func(rec core.Interaction) bool {
		return rec.Rating >= r
	}
}

// And 组合多个过滤条件，全部满足才通过。
func And(preds ...Predicate) Predicate {
	return func(rec core.Interaction) bool {
		for _, p := range preds {
			if p != nil && !p(rec) {
				return false
			}
		}
		return true
	}
}
