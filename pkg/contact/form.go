// Package contact 实现联系表单的校验和邮件中继提交
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// 哨兵错误，调用方用 errors.Is 判断
var (
	// ErrInvalidForm 表单字段缺失或格式错误
	ErrInvalidForm = errors.New("invalid contact form")
	// ErrThrottled 距离上一次提交太近
	ErrThrottled = errors.New("contact submission throttled")
	// ErrRelayRejected 中继返回了非 2xx 响应
	ErrRelayRejected = errors.New("contact relay rejected submission")
	// ErrNotConfigured 缺少中继的 service/template/public key
	ErrNotConfigured = errors.New("contact relay not configured")
)

// Form 联系表单的四个字段，全部必填
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ValidationError 字段级校验错误
type ValidationError struct {
	// Fields 字段名 -> 问题描述
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidForm, strings.Join(parts, "; "))
}

// Unwrap 让 errors.Is(err, ErrInvalidForm) 成立
func (e *ValidationError) Unwrap() error {
	return ErrInvalidForm
}

// Normalize 去掉字段首尾空白
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate 校验表单（先 Normalize）
func (f Form) Validate() error {
	f = f.Normalize()
	fields := map[string]string{}

	if f.Name == "" {
		fields["name"] = "required"
	}
	if f.Email == "" {
		fields["email"] = "required"
	} else if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		fields["email"] = "not a valid address"
	}
	if f.Subject == "" {
		fields["subject"] = "required"
	}
	if f.Message == "" {
		fields["message"] = "required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
