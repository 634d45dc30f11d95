package validator

import (
	"errors"
	"regexp"
	"strings"
)

// パスワードの最小文字数
const MinPasswordLength = 6

// カート1行あたりの最大数量
const MaxQuantity int64 = 999

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNameRequired       = errors.New("name required")
)

// 簡易メール形式
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 前後の空白を落として小文字に
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

// サインアップの入力を検証（emailは正規化済み）
func ValidateSignup(name string, email string, password string) error {
	// 必須チェック
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	// email形式
	if !IsEmailLike(email) {
		return ErrInvalidEmailFormat
	}

	// パスワード最低文字数
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	return nil
}

// ログインの入力を検証
func ValidateLogin(email string, password string) bool {
	return email != "" && password != ""
}

// 空白だけの値も未入力扱い
func Required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
