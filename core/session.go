package core

import "strconv"

// Session 承载单次交互会话的全部可变状态，贯穿整个推荐链路透传。
//
// 两块状态：
//   - 喜欢列表：有序、去重的目录空间图书 ID，由 AddLiked / RemoveLiked 维护
//   - 相似用户集：一轮推荐内只增不减（monotonic），只有 ResetRound 才清空
//
// Session 只有一个写入者（当前会话），不做加锁；多会话扩展应当每个用户
// 独立持有一个 Session 实例，而不是共享。
type Session struct {
	liked    []string
	likedSet map[string]struct{}
	similar  map[string]struct{}
}

func NewSession() *Session {
	return &Session{
		likedSet: make(map[string]struct{}),
		similar:  make(map[string]struct{}),
	}
}

// AddLiked 把一条原始输入加入喜欢列表。
// 校验顺序：可解析为整数 → 为正数 → 未重复；任一失败都不改动已有状态。
// 存入前做数字规范化（"05" 与 "5" 是同一本书），去重在规范形态上进行。
func (s *Session) AddLiked(raw string) error {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return NewDomainError(ModuleSession, ErrorCodeInvalidInput,
			"session: input is not a book id number: "+strconv.Quote(raw))
	}
	if id <= 0 {
		return NewDomainError(ModuleSession, ErrorCodeOutOfRange,
			"session: book id must be positive: "+raw)
	}
	key := strconv.Itoa(id)
	if _, ok := s.likedSet[key]; ok {
		return NewDomainError(ModuleSession, ErrorCodeDuplicate,
			"session: book already selected: "+key)
	}
	s.likedSet[key] = struct{}{}
	s.liked = append(s.liked, key)
	return nil
}

// RemoveLiked 从喜欢列表移除一本书。输入先做与 AddLiked 相同的数字规范化。
func (s *Session) RemoveLiked(id string) error {
	if n, err := strconv.Atoi(id); err == nil {
		id = strconv.Itoa(n)
	}
	if _, ok := s.likedSet[id]; !ok {
		return NewDomainError(ModuleSession, ErrorCodeNotFound,
			"session: book not in liked list: "+id)
	}
	delete(s.likedSet, id)
	for i, v := range s.liked {
		if v == id {
			s.liked = append(s.liked[:i], s.liked[i+1:]...)
			break
		}
	}
	return nil
}

// Liked 返回喜欢列表的副本（保持插入顺序）。
func (s *Session) Liked() []string {
	out := make([]string, len(s.liked))
	copy(out, s.liked)
	return out
}

// HasLiked 判断图书是否在喜欢列表中。
func (s *Session) HasLiked(id string) bool {
	_, ok := s.likedSet[id]
	return ok
}

// AddSimilarUser 把用户加入相似用户集，返回是否为新成员。
func (s *Session) AddSimilarUser(userID string) bool {
	if _, ok := s.similar[userID]; ok {
		return false
	}
	s.similar[userID] = struct{}{}
	return true
}

// HasSimilarUser 判断用户是否已在相似用户集中。
func (s *Session) HasSimilarUser(userID string) bool {
	_, ok := s.similar[userID]
	return ok
}

// SimilarUserCount 返回相似用户集大小。
func (s *Session) SimilarUserCount() int {
	return len(s.similar)
}

// ResetLiked 只清空喜欢列表，保留已累积的相似用户集。
func (s *Session) ResetLiked() {
	s.liked = nil
	s.likedSet = make(map[string]struct{})
}

// ResetRound 结束一轮推荐：同时清空喜欢列表与相似用户集。
func (s *Session) ResetRound() {
	s.ResetLiked()
	s.similar = make(map[string]struct{})
}
