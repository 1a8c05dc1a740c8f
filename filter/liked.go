package filter

import (
	"context"

	"github.com/rushteam/bookrec/core"
)

// LikedFilter 过滤掉用户已经喜欢的书：推荐结果不复读用户自己的输入。
// 要求候选已处于目录空间（召回阶段完成 ID 翻译之后）。
type LikedFilter struct{}

func (f *LikedFilter) Name() string {
	return "filter.liked"
}

func (f *LikedFilter) ShouldFilter(
	_ context.Context,
	s *core.Session,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if s == nil {
		return false, nil
	}
	return s.HasLiked(item.ID), nil
}

var _ Filter = (*LikedFilter)(nil)
