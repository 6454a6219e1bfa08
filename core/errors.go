package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），对 fmt.Errorf("%w") 包装后的错误同样有效
//
// 使用场景：
//   - 排序参数错误：INVALID_INPUT（limit <= 0）
//   - 向量化退化：EMPTY_VOCABULARY（只在相似度排序内部处理，不外泄）
//   - 数据不足：NOT_ENOUGH_DATA（评分数量不足以生成个性化推荐）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "rank", "vector", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 按 Module + Code 比较，使包装后的哨兵错误可以用 errors.Is 判断。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
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
	ErrorCodeNotFound        = "NOT_FOUND"        // 资源不存在
	ErrorCodeNotSupported    = "NOT_SUPPORTED"    // 操作不支持
	ErrorCodeUnavailable     = "UNAVAILABLE"      // 服务不可用
	ErrorCodeInvalidInput    = "INVALID_INPUT"    // 输入无效
	ErrorCodeInternalError   = "INTERNAL_ERROR"   // 内部错误
	ErrorCodeEmptyVocabulary = "EMPTY_VOCABULARY" // 语料没有可用词汇
	ErrorCodeNotEnoughData   = "NOT_ENOUGH_DATA"  // 数据不足
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleVector  = "vector"  // 向量化模块
	ModuleRank    = "rank"    // 排序模块
	ModuleService = "service" // 服务模块
	ModuleConfig  = "config"  // 配置模块
)

var (
	// ErrInvalidLimit 表示 limit 不是正整数，属于调用方编程错误
	ErrInvalidLimit = NewDomainError(ModuleRank, ErrorCodeInvalidInput, "rank: limit must be a positive integer")

	// ErrEmptyVocabulary 表示语料在去停用词后没有任何词汇
	ErrEmptyVocabulary = NewDomainError(ModuleVector, ErrorCodeEmptyVocabulary, "vector: empty vocabulary; documents contain only stop words")

	// ErrNotEnoughRatings 表示评分数量不足以生成个性化推荐
	ErrNotEnoughRatings = NewDomainError(ModuleService, ErrorCodeNotEnoughData, "service: not enough rated movies for personalized recommendations")
)

// 通用错误检查函数

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsEmptyVocabulary 检查错误是否为零词汇退化
func IsEmptyVocabulary(err error) bool {
	return hasCode(err, ErrorCodeEmptyVocabulary)
}

// IsNotEnoughData 检查错误是否为 NOT_ENOUGH_DATA
func IsNotEnoughData(err error) bool {
	return hasCode(err, ErrorCodeNotEnoughData)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}
