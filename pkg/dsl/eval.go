// Package dsl 基于 CEL (Common Expression Language) 实现候选过滤表达式，
// 让业务规则写进配置而不是代码。CEL 类型安全、高性能、线程安全。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/bookrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("session", cel.DynType),
		)
	})
	if celEnv == nil {
		return nil, fmt.Errorf("dsl: cel env init failed: %v", err)
	}
	return celEnv, nil
}

// Program 是编译好的过滤表达式，可对任意多个候选重复求值。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "recall.hot"
//   - 数值：item.score > 0.5 / item.meta.ratings < 100000
//   - 逻辑：label.recall_source == "recall.hot" && item.score > 0.1
//   - 存在性：label.recall_source != null
//
// 示例：
//   - `item.meta.neighbor_count > 50` → 只保留邻域热度更高的候选
//   - `item.meta.ratings < 1000000` → 屏蔽超级畅销书
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。一次编译、多次 Eval；编译错误在构建期暴露。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %v", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %v", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Eval 对单个候选求值，表达式必须返回布尔。
func (p *Program) Eval(item *core.Item, s *core.Session) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, s))
	if err != nil {
		// 访问不存在的 key 时 CEL 返回错误；用 label.key != null 检查存在性
		return false, fmt.Errorf("dsl: eval %q: %v", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, s *core.Session) map[string]any {
	labels := make(map[string]any, len(item.Labels))
	labelAccessor := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = map[string]any{"value": v.Value, "source": v.Source}
		// label.recall_source 直接取 value，兼容简写
		labelAccessor[k] = v.Value
	}

	itemInput := map[string]any{
		"id":     item.ID,
		"score":  item.Score,
		"meta":   item.Meta,
		"labels": labels,
	}

	sessionInput := map[string]any{}
	if s != nil {
		sessionInput["liked"] = s.Liked()
		sessionInput["similar_users"] = s.SimilarUserCount()
	}

	return map[string]any{
		"item":    itemInput,
		"label":   labelAccessor,
		"session": sessionInput,
	}
}
