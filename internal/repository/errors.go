package repository

import "errors"

var (
	// ErrNotFound 目标行不存在
	ErrNotFound = errors.New("record not found")
	// ErrInvalidState 写入值违反账本约束（负余额、非正价格）
	ErrInvalidState = errors.New("invalid ledger state")
)
