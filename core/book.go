package core

// RawBook 是图书目录数据源交付的原始记录。
// RatingsCount 保持字符串形态：脏数据（无法解析为整数）由目录构建时静默丢弃，
// 数据源本身不做任何校验。
type RawBook struct {
	ID           string // 目录空间的图书 ID
	Title        string
	RatingsCount string // 原始评分数字段，可能无法解析
	URL          string
}

// Book 是通过显著性阈值筛选后进入目录索引的图书记录。
// 构建后不可变，可在任意多个 goroutine 间只读共享。
type Book struct {
	ID        string
	Title     string
	NormTitle string // 规范化标题：小写 + 仅保留 [a-z0-9 ]
	Ratings   int64  // 总评分数（全站热度）
	URL       string
}

// Interaction 是一条 (用户, 图书, 评分) 交互记录。
// 注意 ItemID 处于交互空间，与目录空间的图书 ID 是两套独立编号，
// 跨引用必须经过 idmap 转换。
type Interaction struct {
	UserID string
	ItemID string // 交互空间的图书 ID
	Rating int    // 0–5
}

// IDPair 是一条交互空间 ID 与目录空间 ID 的对应关系。
type IDPair struct {
	InteractionID string
	CatalogID     string
}

// Candidate 是对外返回的推荐/检索结果条目。
type Candidate struct {
	ID    string // 目录空间 ID
	Title string
	URL   string
	Score float64
}
