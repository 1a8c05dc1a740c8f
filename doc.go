// Package bookrec 是一个交互式图书推荐工具包（Book Recommender Kit）。
//
// 设计要点：
// - 加载期一次构建四个不可变结构：目录索引 / 检索引擎 / ID 映射 / 交互仓库
// - 推荐逻辑通过 Node 串联（Recall → Rank → Filter → ReRank），可插拔扩展
// - 会话状态显式传入每个操作，多个隔离会话互不干扰
package bookrec

import (
	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/recommender"
)

// 轻量 facade：便于用户直接 import "bookrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind
type Session = core.Session
type Candidate = core.Candidate
type Recommender = recommender.Recommender

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// NewSession 创建一个空会话。
var NewSession = core.NewSession

// New 从已类型化的记录构建推荐器，见 recommender.New。
var New = recommender.New
