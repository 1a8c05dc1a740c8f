// Package idmap 维护目录空间与交互空间两套图书 ID 之间的双射。
//
// 两套 ID 来自独立的数据集编号，所有跨数据集引用都必须经过这里转换。
// 双射作为单一结构一次构建、整体维护，而不是两个靠约定保持同步的字典；
// 两个方向的查询都是 O(1)。
package idmap

import (
	"fmt"

	"github.com/rushteam/bookrec/core"
)

// Map 是不可变的双向 ID 映射。
type Map struct {
	toCatalog     map[string]string // 交互空间 -> 目录空间
	toInteraction map[string]string // 目录空间 -> 交互空间
}

// Build 从 ID 对构建双向映射。
// 完全重复的对是幂等的；与已有映射冲突的对破坏双射不变式，返回错误。
func Build(pairs []core.IDPair) (*Map, error) {
	m := &Map{
		toCatalog:     make(map[string]string, len(pairs)),
		toInteraction: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		if old, ok := m.toCatalog[p.InteractionID]; ok && old != p.CatalogID {
			return nil, fmt.Errorf("idmap: interaction id %s maps to both %s and %s", p.InteractionID, old, p.CatalogID)
		}
		if old, ok := m.toInteraction[p.CatalogID]; ok && old != p.InteractionID {
			return nil, fmt.Errorf("idmap: catalog id %s maps to both %s and %s", p.CatalogID, old, p.InteractionID)
		}
		m.toCatalog[p.InteractionID] = p.CatalogID
		m.toInteraction[p.CatalogID] = p.InteractionID
	}
	return m, nil
}

// Len 返回映射中的 ID 对数量。
func (m *Map) Len() int {
	return len(m.toCatalog)
}

// ToInteraction 把目录空间 ID 转为交互空间 ID。
// 缺失即 MISSING_MAPPING：调用方必须向上抛出，不能静默吞掉。
func (m *Map) ToInteraction(catalogID string) (string, error) {
	id, ok := m.toInteraction[catalogID]
	if !ok {
		return "", core.NewDomainError(core.ModuleIDMap, core.ErrorCodeMissingMapping,
			"idmap: no interaction id for catalog id "+catalogID)
	}
	return id, nil
}

// ToCatalog 把交互空间 ID 转为目录空间 ID。
func (m *Map) ToCatalog(interactionID string) (string, error) {
	id, ok := m.toCatalog[interactionID]
	if !ok {
		return "", core.NewDomainError(core.ModuleIDMap, core.ErrorCodeMissingMapping,
			"idmap: no catalog id for interaction id "+interactionID)
	}
	return id, nil
}
