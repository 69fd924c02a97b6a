package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 所有权存储的错误分类，编排器据此决定回滚与上抛语义.
var (
	// ErrNotFound 引用的租户/用户/文件夹不存在（404 语义）.
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation 唯一性或外键约束将被破坏（409 语义），当前事务必须回滚.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrPartialState 不变量检查失败：重新归属之后租户仍拥有行，终止于最终删除步骤之前.
	ErrPartialState = errors.New("partial state detected")
	// ErrTransient 连接/超时类故障，可从头重试整个操作，绝不从中间恢复.
	ErrTransient = errors.New("transient storage error")
)

// classify 把 gorm/driver 错误映射到本包的错误分类.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(ErrConstraintViolation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Join(ErrTransient, err)
	}

	// 驱动层未翻译的约束错误兜底（sqlite/mysql/pg 文案各异）
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "foreign key constraint") {
		return errors.Join(ErrConstraintViolation, err)
	}

	return err
}
