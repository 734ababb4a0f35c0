package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParse              = errors.New("ingest: spreadsheet could not be parsed")
	ErrMappingMiss        = errors.New("ingest: no usable sku column")
	ErrConflictUnresolved = errors.New("ingest: conflict decision declined")
	ErrStorage            = errors.New("ingest: storage failed")
	ErrInvalidDecision    = errors.New("ingest: invalid conflict decision")
)

// 存储操作名
const (
	OpQuery  = "query"
	OpInsert = "insert"
	OpUpsert = "upsert"
)

// ParseError 文件不可读或没有数据行
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "cannot read spreadsheet: " + e.Reason
	}
	return fmt.Sprintf("cannot read spreadsheet: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MappingError 没有任何一行解析出 sku，附带检测到的表头便于排查列名
type MappingError struct {
	Headers []string
}

func (e *MappingError) Error() string {
	if len(e.Headers) == 0 {
		return "no row has a usable sku column; no headers detected"
	}
	return "no row has a usable sku column; detected headers: " + strings.Join(e.Headers, ", ")
}

func (e *MappingError) Is(target error) bool { return target == ErrMappingMiss }

// StorageError 存储调用失败，Error 原样返回底层错误信息
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage " + e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NothingWritten 判断失败是否发生在任何写入之前
func NothingWritten(err error) bool {
	if err == nil {
		return false
	}
	var se *StorageError
	if errors.As(err, &se) {
		return se.Op == OpQuery
	}
	return errors.Is(err, ErrParse) ||
		errors.Is(err, ErrMappingMiss) ||
		errors.Is(err, ErrConflictUnresolved) ||
		errors.Is(err, ErrInvalidDecision)
}
