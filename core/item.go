package core

import "github.com/rushteam/bookrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、元信息、标签。
// Meta 承载候选在各阶段累积的事实（邻居计数、目录元数据等）；
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID     string // 所处阶段决定其 ID 空间：召回初期为交互空间，目录联接后为目录空间
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MetaString 读取 Meta 中的字符串字段，缺失或类型不符返回空串。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	s, _ := it.Meta[key].(string)
	return s
}

// MetaInt64 读取 Meta 中的整数字段。
func (it *Item) MetaInt64(key string) (int64, bool) {
	if it.Meta == nil {
		return 0, false
	}
	switch v := it.Meta[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
