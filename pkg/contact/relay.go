package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thryce/site/pkg/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusResetAfter 成功/失败提示保留的时间，之后状态回到 Idle
const StatusResetAfter = 5 * time.Second

// maxErrorBody 错误响应最多读取的字节数
const maxErrorBody = 512

// templateParams 邮件模板变量
type templateParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	ReplyTo string `json:"reply_to"`
	Time    string `json:"time"`
}

// sendRequest 中继的请求体
type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

// RelayError 中继返回的非 2xx 响应
type RelayError struct {
	StatusCode int
	Body       string
}

func (e *RelayError) Error() string {
	msg := fmt.Sprintf("%s: status %d", ErrRelayRejected, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap 让 errors.Is(err, ErrRelayRejected) 成立
func (e *RelayError) Unwrap() error {
	return ErrRelayRejected
}

// Hint 根据状态码给出排查提示
func (e *RelayError) Hint() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return "check the template variables (name, email, subject, message, reply_to, time)"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "check the public key and service id"
	case http.StatusNotFound:
		return "template or service not found"
	case http.StatusTooManyRequests:
		return "relay rate limit reached, try again later"
	default:
		return ""
	}
}

// Submission 一次成功的提交
type Submission struct {
	ID     uuid.UUID
	SentAt time.Time
}

// Option Client 可选参数
type Option func(*Client)

// WithHTTPClient 替换 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger.Named("Contact") }
}

// WithClock 替换时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client 邮件中继客户端
//
// 同一时间只允许一个提交；两次提交之间至少间隔 MinInterval。
type Client struct {
	cfg     config.ContactConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	status     Status
	finishedAt time.Time
}

// NewClient 创建中继客户端
func NewClient(cfg config.ContactConfig, opts ...Option) *Client {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status 返回当前提交状态
// 成功/失败状态在 StatusResetAfter 之后自动回到 Idle
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if (c.status == StatusSuccess || c.status == StatusError) &&
		c.now().Sub(c.finishedAt) >= StatusResetAfter {
		c.status = StatusIdle
	}
	return c.status
}

// Send 校验并提交表单
//
// 错误：
//   - ErrInvalidForm: 字段校验失败（不消耗提交配额）
//   - ErrNotConfigured: 缺少中继配置
//   - ErrThrottled: 提交太频繁或已有提交进行中
//   - ErrRelayRejected: 中继返回非 2xx（*RelayError）
func (c *Client) Send(ctx context.Context, form Form) (Submission, error) {
	if err := form.Validate(); err != nil {
		return Submission{}, err
	}
	if c.cfg.ServiceID == "" || c.cfg.TemplateID == "" || c.cfg.PublicKey == "" {
		return Submission{}, ErrNotConfigured
	}

	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return Submission{}, fmt.Errorf("%w: a submission is already in flight", ErrThrottled)
	}
	now := c.now()
	if !c.limiter.AllowN(now, 1) {
		c.mu.Unlock()
		return Submission{}, fmt.Errorf("%w: wait %s between submissions", ErrThrottled, c.cfg.MinInterval)
	}
	c.status = StatusSubmitting
	c.mu.Unlock()

	sub := Submission{ID: uuid.New(), SentAt: now}
	logger := c.logger.With(zap.String("submission", sub.ID.String()))
	logger.Info("sending contact form", zap.String("subject", form.Normalize().Subject))

	err := c.post(ctx, form.Normalize(), now)

	c.mu.Lock()
	c.finishedAt = c.now()
	if err != nil {
		c.status = StatusError
	} else {
		c.status = StatusSuccess
	}
	c.mu.Unlock()

	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var re *RelayError
		if errors.As(err, &re) && re.Hint() != "" {
			fields = append(fields, zap.String("hint", re.Hint()))
		}
		logger.Warn("contact form failed", fields...)
		return Submission{}, err
	}
	logger.Info("contact form sent")
	return sub, nil
}

func (c *Client) post(ctx context.Context, form Form, now time.Time) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: templateParams{
			Name:    form.Name,
			Email:   form.Email,
			Subject: form.Subject,
			Message: form.Message,
			ReplyTo: form.Email,
			Time:    now.Format(time.RFC1123),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode contact payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RelayError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
