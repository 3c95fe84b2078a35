package logic

import (
	"errors"
)

// 账本操作的错误类别。所有操作要么完整提交，要么返回下列错误之一
// 且不留下任何部分写入；调用方用 errors.Is 匹配类别。
var (
	ErrNotFound             = errors.New("记录不存在")
	ErrUnauthorized         = errors.New("无权限执行此操作")
	ErrInvalidInput         = errors.New("参数无效")
	ErrInvalidStatus        = errors.New("当前状态不允许此操作")
	ErrAlreadyExists        = errors.New("记录已存在")
	ErrInsufficientFunds    = errors.New("资金不足")
	ErrMilestoneNotVerified = errors.New("里程碑尚未验证")
	ErrAlreadyReleased      = errors.New("里程碑资金已释放")
	ErrProjectNotActive     = errors.New("项目不在进行中")
	ErrTransferFailed       = errors.New("转账失败")
)
