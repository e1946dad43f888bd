package contact

// Status 表单提交状态
type Status int

const (
	StatusIdle       Status = iota // 未提交或提示已过期
	StatusSubmitting               // 请求进行中
	StatusSuccess                  // 中继返回 2xx
	StatusError                    // 中继失败或网络错误
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
