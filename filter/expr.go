package filter

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/dsl"
)

// ExprFilter 按 CEL 表达式过滤候选：表达式求值为 true 的候选被保留。
// 业务规则（如“屏蔽超级畅销书”）写进配置即可生效，无需改代码。
type ExprFilter struct {
	prog *dsl.Program
}

// NewExprFilter 编译表达式并构造过滤器。编译失败在构建期报错。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prog, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prog: prog}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// ShouldFilter 表达式为 false 时过滤。求值错误（如访问缺失字段）时保留候选，
// 错误向上返回交由 FilterNode 记录。
func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	s *core.Session,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.prog.Eval(item, s)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

var _ Filter = (*ExprFilter)(nil)
