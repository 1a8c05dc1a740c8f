// Package search 实现标题模糊检索：对目录的规范化标题做 TF-IDF 向量化，
// 查询按余弦相似度选出候选池，再按全站热度重排（同一本书存在多个版本时，
// 优先返回评分数最多的权威版本）。
package search

import (
	"sort"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/core"
)

const (
	// DefaultPool 是相似度初筛的候选池大小。
	// 池内只保证集合成员资格，不保证池边界附近的严格排序。
	DefaultPool = 50

	// DefaultTopN 是最终返回的结果条数。
	DefaultTopN = 10
)

// posting 是倒排表中的一项：文档位置及其在该词上的归一化权重。
type posting struct {
	doc    int32
	weight float64
}

// Engine 是构建一次、之后无状态查询的检索引擎。
type Engine struct {
	idx        *catalog.Index
	vectorizer *Vectorizer
	postings   [][]posting // 词表索引 -> 倒排表

	// Pool 相似度初筛候选池大小，<=0 时用 DefaultPool
	Pool int

	// TopN 返回条数，<=0 时用 DefaultTopN
	TopN int
}

// BuildEngine 从目录索引构建检索引擎。词表与倒排表在此固定。
func BuildEngine(idx *catalog.Index) *Engine {
	corpus := idx.NormTitles()
	e := &Engine{
		idx:        idx,
		vectorizer: FitVectorizer(corpus),
	}
	e.postings = make([][]posting, e.vectorizer.VocabSize())
	for doc, title := range corpus {
		for termIdx, w := range e.vectorizer.Transform(title) {
			e.postings[termIdx] = append(e.postings[termIdx], posting{doc: int32(doc), weight: w})
		}
	}
	return e
}

// Search 按自由文本查询图书，返回至多 TopN 条 (ID, Title, URL)。
//
// 流程：
//  1. 查询用与目录标题相同的规则规范化、向量化（词表外词元贡献为零）
//  2. 余弦相似度初筛出 Pool 本候选
//  3. 候选池按评分数降序重排，取前 TopN
//
// 空查询（或规范化后为空）的相似度全为零，候选池退化为任意 Pool 本书
// 再按热度重排，这是文档化的退化行为，不是错误。
func (e *Engine) Search(query string) []core.Candidate {
	pool := e.Pool
	if pool <= 0 {
		pool = DefaultPool
	}
	topN := e.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	// 查询向量与全部文档向量均已 L2 归一化，点积累加即余弦相似度
	scores := make([]float64, e.idx.Len())
	for termIdx, w := range e.vectorizer.Transform(catalog.Normalize(query)) {
		for _, p := range e.postings[termIdx] {
			scores[p.doc] += w * p.weight
		}
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if pool > len(order) {
		pool = len(order)
	}
	top := order[:pool]

	// 热度重排：重复书目中优先最权威（评分最多）的版本
	sort.SliceStable(top, func(i, j int) bool {
		a, _ := e.idx.At(top[i])
		b, _ := e.idx.At(top[j])
		return a.Ratings > b.Ratings
	})

	if topN > len(top) {
		topN = len(top)
	}
	out := make([]core.Candidate, 0, topN)
	for _, doc := range top[:topN] {
		b, _ := e.idx.At(doc)
		out = append(out, core.Candidate{
			ID:    b.ID,
			Title: b.Title,
			URL:   b.URL,
			Score: scores[doc],
		})
	}
	return out
}
