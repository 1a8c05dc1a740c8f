// Package recommender 把各组件组装为面向调用方（交互循环/API 层/测试）的门面。
//
// 加载期一次构建四个不可变结构：目录索引、检索引擎、ID 映射、交互仓库；
// 交互期反复执行 检索 → 收藏 → 邻居发现 → 推荐。会话状态通过显式的
// *core.Session 传入每个操作，多个隔离会话只需各自持有实例，门面本身无状态。
package recommender

import (
	"context"
	"fmt"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/config"
	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/filter"
	"github.com/rushteam/bookrec/idmap"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/rank"
	"github.com/rushteam/bookrec/recall"
	"github.com/rushteam/bookrec/rerank"
	"github.com/rushteam/bookrec/search"
	"github.com/rushteam/bookrec/store"
)

// Recommender 是推荐系统门面。构建后内部结构全部只读，
// 可在任意多个会话间共享（每个会话独立持有自己的 Session）。
type Recommender struct {
	catalog      *catalog.Index
	engine       *search.Engine
	mapper       *idmap.Map
	interactions *store.Interactions
	finder       *recall.NeighborFinder
	kv           core.Store // 热门榜单后端，仅在启用兜底召回时打开
	pipe         *pipeline.Pipeline
}

// New 从已类型化的记录构建推荐器。cfg 为 nil 时使用默认配置。
func New(
	cfg *config.Config,
	books []core.RawBook,
	interactions []core.Interaction,
	pairs []core.IDPair,
) (*Recommender, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	idx := catalog.Build(books, cfg.Thresholds.MinRatings)
	engine := search.BuildEngine(idx)
	engine.Pool = cfg.Search.Pool
	engine.TopN = cfg.Search.TopN

	mapper, err := idmap.Build(pairs)
	if err != nil {
		return nil, fmt.Errorf("recommender: build id map: %w", err)
	}
	inter := store.NewInteractions(interactions)

	r := &Recommender{
		catalog:      idx,
		engine:       engine,
		mapper:       mapper,
		interactions: inter,
		finder: &recall.NeighborFinder{
			Interactions:   inter,
			Mapper:         mapper,
			PositiveRating: cfg.Thresholds.PositiveRating,
		},
	}

	// 召回：默认只走邻居协同过滤，相似用户集为空时 EMPTY_NEIGHBORHOOD 直接上抛。
	// 启用兜底后改为 Fanout 并发合并邻居召回与热门召回：协同数据稀疏
	// （新用户、冷门口味）时邻居召回的失败被吸收，由热门榜单补位。
	neighbor := &recall.NeighborItems{
		Interactions:     inter,
		Mapper:           mapper,
		Catalog:          idx,
		MinRating:        cfg.Thresholds.MinRecRating,
		MinNeighborCount: cfg.Thresholds.MinNeighborCount,
	}
	var recallNode pipeline.Node = neighbor
	if cfg.Recommend.Fallback {
		kv, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		r.kv = kv
		recallNode = &recall.Fanout{
			Sources: []recall.Source{
				neighbor,
				&recall.Hot{Store: kv, Key: cfg.Recommend.HotKey, Catalog: idx, TopN: cfg.Recommend.TopN},
			},
			Dedup: true,
		}
	}

	// 推荐链路：召回 → 亲和度排序 → 过滤（已喜欢 + 业务规则）→ TopN 截断
	filterNode := &filter.FilterNode{Filters: []filter.Filter{&filter.LikedFilter{}}}
	for _, rule := range cfg.Recommend.Rules {
		f, err := filter.NewExprFilter(rule)
		if err != nil {
			return nil, fmt.Errorf("recommender: build rule: %w", err)
		}
		filterNode.Filters = append(filterNode.Filters, f)
	}
	r.pipe = &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			recallNode,
			&rank.AffinityNode{},
			filterNode,
			&rerank.TopNNode{N: cfg.Recommend.TopN},
		},
	}
	return r, nil
}

// openStore 打开热门榜单后端：配置了 Redis 地址时用 Redis（多进程共享榜单），
// 否则用内存实现（此时 Hot 召回退化为目录热度榜）。
func openStore(cfg *config.Config) (core.Store, error) {
	if cfg.Redis.Addr != "" {
		s, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("recommender: connect redis: %w", err)
		}
		return s, nil
	}
	return store.NewMemoryStore(), nil
}

// Catalog 返回目录索引（只读）。
func (r *Recommender) Catalog() *catalog.Index { return r.catalog }

// Search 按自由文本检索图书标题，返回至多 TopN 条结果。
// 空查询不报错（退化为热度榜单，见 search.Engine.Search）。
func (r *Recommender) Search(query string) []core.Candidate {
	return r.engine.Search(query)
}

// AddLikedBook 把原始输入加入会话的喜欢列表。
// 校验失败返回 INVALID_INPUT / OUT_OF_RANGE / DUPLICATE，会话保持原状。
func (r *Recommender) AddLikedBook(s *core.Session, raw string) error {
	return s.AddLiked(raw)
}

// RemoveLikedBook 从喜欢列表移除，不存在时返回 NOT_FOUND。
func (r *Recommender) RemoveLikedBook(s *core.Session, id string) error {
	return s.RemoveLiked(id)
}

// FindSimilarUsers 做邻居发现，结果并入会话的相似用户集（只增不减），
// 返回本次新增的邻居数。喜欢列表为空时返回 EMPTY_SELECTION 且不改状态。
func (r *Recommender) FindSimilarUsers(ctx context.Context, s *core.Session) (int, error) {
	return r.finder.Find(ctx, s)
}

// Recommend 基于相似用户集产出至多 TopN 条推荐。
// 相似用户集为空时返回 EMPTY_NEIGHBORHOOD 与空结果，已累积状态保留，
// 调用方可补充输入后重试。启用兜底召回（Recommend.Fallback）时不返回该错误，
// 改为返回热门榜单候选。
func (r *Recommender) Recommend(ctx context.Context, s *core.Session) ([]core.Candidate, error) {
	items, err := r.pipe.Run(ctx, s, nil)
	if err != nil {
		return nil, err
	}

	out := make([]core.Candidate, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, core.Candidate{
			ID:    it.ID,
			Title: it.MetaString("title"),
			URL:   it.MetaString("url"),
			Score: it.Score,
		})
	}
	return out, nil
}

// Close 释放热门榜单后端的连接。未启用兜底召回时为空操作。
func (r *Recommender) Close() error {
	if r.kv != nil {
		return r.kv.Close()
	}
	return nil
}
