package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 会话错误：INVALID_INPUT, OUT_OF_RANGE, DUPLICATE, NOT_FOUND
//   - 推荐流程错误：EMPTY_SELECTION, EMPTY_NEIGHBORHOOD
//   - ID 映射错误：MISSING_MAPPING（目录与交互数据集不一致，属于数据完整性问题）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "DUPLICATE", "MISSING_MAPPING"）
	Message string // 错误消息
	Module  string // 模块名称（如 "session", "idmap"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 输入无法解析为图书 ID
	ErrorCodeOutOfRange        = "OUT_OF_RANGE"       // 图书 ID 非正数
	ErrorCodeDuplicate         = "DUPLICATE"          // 图书已在喜欢列表中
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeEmptySelection    = "EMPTY_SELECTION"    // 喜欢列表为空时执行邻居发现
	ErrorCodeEmptyNeighborhood = "EMPTY_NEIGHBORHOOD" // 相似用户集为空时执行推荐
	ErrorCodeMissingMapping    = "MISSING_MAPPING"    // ID 在双向映射中无对应项
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeInternalError     = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleSession = "session" // 会话模块
	ModuleIDMap   = "idmap"   // ID 映射模块
	ModuleRecall  = "recall"  // 召回模块
	ModuleCatalog = "catalog" // 目录模块
	ModuleStore   = "store"   // 存储模块
)

func codeIs(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return codeIs(err, ErrorCodeInvalidInput) }

// IsOutOfRange 检查错误是否为 OUT_OF_RANGE
func IsOutOfRange(err error) bool { return codeIs(err, ErrorCodeOutOfRange) }

// IsDuplicate 检查错误是否为 DUPLICATE
func IsDuplicate(err error) bool { return codeIs(err, ErrorCodeDuplicate) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return codeIs(err, ErrorCodeNotFound) }

// IsEmptySelection 检查错误是否为 EMPTY_SELECTION
func IsEmptySelection(err error) bool { return codeIs(err, ErrorCodeEmptySelection) }

// IsEmptyNeighborhood 检查错误是否为 EMPTY_NEIGHBORHOOD
func IsEmptyNeighborhood(err error) bool { return codeIs(err, ErrorCodeEmptyNeighborhood) }

// IsMissingMapping 检查错误是否为 MISSING_MAPPING。
// 此类错误应当向上抛出而不是静默吞掉：它意味着加载期数据不一致，而非用户输入问题。
func IsMissingMapping(err error) bool { return codeIs(err, ErrorCodeMissingMapping) }
