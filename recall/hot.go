package recall

import (
	"context"
	"encoding/json"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
)

// Hot 是热门图书召回源：协同数据过于稀疏（新用户、冷门口味）时的兜底。
// 读取优先级：
//   - Store 实现了 KeyValueStore 时，ZRange 读取离线任务维护的热门榜单
//   - 否则从普通 key 读取 JSON 数组
//   - Store 为空或读取失败时，退化为目录中评分数最高的 TopN
//
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store   core.Store
	Key     string // 榜单 key，例如 "hot:books"
	Catalog *catalog.Index

	// TopN 兜底召回条数，<=0 时取 50
	TopN int
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	s *core.Session,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, s)
}

// Recall 实现 Source 接口。产出目录空间的 Item，Meta 已联接目录元数据。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.Session,
) ([]*core.Item, error) {
	topN := r.TopN
	if topN <= 0 {
		topN = 50
	}

	var ids []string
	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, int64(topN)-1)
			if err == nil && len(members) > 0 {
				ids = members
			}
		} else {
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// 兜底：目录热度榜
	if len(ids) == 0 && r.Catalog != nil {
		ids = r.Catalog.TopByRatings(topN)
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		if r.Catalog != nil {
			book, ok := r.Catalog.ByID(id)
			if !ok {
				continue // 榜单中的书已不在目录中
			}
			it.Meta["ratings"] = book.Ratings
			it.Meta["title"] = book.Title
			it.Meta["url"] = book.URL
		}
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*Hot)(nil)
var _ pipeline.Node = (*Hot)(nil)
