// Package catalog 实现图书目录索引：加载期一次构建、之后完全只读。
//
// 构建时做两件事：
//   - 显著性过滤：评分数无法解析或不超过阈值的记录静默丢弃
//     （阈值把低热度记录当作噪声，不是正确性约束，所以不报错）
//   - 标题规范化：小写并去掉 [a-z0-9 ] 之外的字符，供检索引擎向量化
package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rushteam/bookrec/core"
)

// DefaultMinRatings 是默认的目录显著性阈值：只保留评分数严格大于该值的图书。
const DefaultMinRatings = 25

var normPattern = regexp.MustCompile(`[^a-z0-9 ]`)

// Normalize 返回规范化标题：小写，去掉字母/数字/空格之外的字符。
// 检索查询必须用同一条规则规范化，否则向量空间对不上。
func Normalize(title string) string {
	return normPattern.ReplaceAllString(strings.ToLower(title), "")
}

// Index 是不可变的目录索引，支持按位置和按 ID 两种访问方式。
type Index struct {
	books []core.Book
	byID  map[string]int
}

// Build 从原始记录构建目录索引。
// minRatings <= 0 时使用 DefaultMinRatings。
func Build(records []core.RawBook, minRatings int64) *Index {
	if minRatings <= 0 {
		minRatings = DefaultMinRatings
	}

	idx := &Index{
		books: make([]core.Book, 0, len(records)),
		byID:  make(map[string]int, len(records)),
	}
	for _, rec := range records {
		ratings, err := strconv.ParseInt(strings.TrimSpace(rec.RatingsCount), 10, 64)
		if err != nil || ratings <= minRatings {
			continue // 噪声过滤：静默丢弃
		}
		if _, ok := idx.byID[rec.ID]; ok {
			continue // 同一 ID 只保留首条
		}
		idx.byID[rec.ID] = len(idx.books)
		idx.books = append(idx.books, core.Book{
			ID:        rec.ID,
			Title:     rec.Title,
			NormTitle: Normalize(rec.Title),
			Ratings:   ratings,
			URL:       rec.URL,
		})
	}
	return idx
}

// Len 返回目录中的图书数量。
func (idx *Index) Len() int {
	return len(idx.books)
}

// At 按位置访问图书，越界时 ok 为 false。
func (idx *Index) At(i int) (core.Book, bool) {
	if i < 0 || i >= len(idx.books) {
		return core.Book{}, false
	}
	return idx.books[i], true
}

// ByID 按目录空间 ID 访问图书。
func (idx *Index) ByID(id string) (core.Book, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return core.Book{}, false
	}
	return idx.books[i], true
}

// NormTitles 返回规范化标题列（与位置索引对齐），供检索引擎构建向量空间。
func (idx *Index) NormTitles() []string {
	out := make([]string, len(idx.books))
	for i, b := range idx.books {
		out[i] = b.NormTitle
	}
	return out
}

// TopByRatings 返回全站评分数最高的 n 本书的目录 ID（热门兜底召回用）。
func (idx *Index) TopByRatings(n int) []string {
	if n <= 0 || len(idx.books) == 0 {
		return nil
	}
	type ranked struct {
		id      string
		ratings int64
	}
	all := make([]ranked, len(idx.books))
	for i, b := range idx.books {
		all[i] = ranked{id: b.ID, ratings: b.Ratings}
	}
	// 全排序；通常只在加载后执行一次，可按需缓存
	sort.Slice(all, func(i, j int) bool { return all[i].ratings > all[j].ratings })
	if n > len(all) {
		n = len(all)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = all[i].id
	}
	return out
}
