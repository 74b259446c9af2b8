package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserEmailExist    = errors.New("邮箱已注册")
	ErrPasswordIncorrect = errors.New("邮箱或密码错误")
	ErrFileNotSupported  = errors.New("不支持的文件类型")

	// 发布 saga：校验失败，未发起任何远端调用
	ErrVideoAssetEmpty   = errors.New("视频文件为空")
	ErrVideoTitleBlank   = errors.New("标题不能为空")
	ErrUploaderIDInvalid = errors.New("上传者标识格式错误")

	// ErrVideoUpload 上传失败，未产生远端状态，整体重试安全
	ErrVideoUpload = errors.New("视频上传失败")
	// ErrVideoRegister 记录写入失败且补偿成功，无孤儿文件，整体重试安全
	ErrVideoRegister = errors.New("视频记录写入失败")
	// ErrVideoOrphanBlob 记录写入失败且补偿也失败，存储桶中残留孤儿文件，
	// 需要人工或清扫任务对账回收，必须与 ErrVideoRegister 区分上报
	ErrVideoOrphanBlob = errors.New("视频发布失败且清理未完成")

	ErrFollowSelf = errors.New("用户不能关注自己")
	// ErrFollowWrite 第一条记录写入失败，两端均未变更，重试安全
	ErrFollowWrite = errors.New("关注关系写入失败")
	// ErrFollowPartialWrite 第二条记录写入失败，两端关系已不对称，
	// 不做自动回滚，需要对账修复，必须与 ErrFollowWrite 区分上报
	ErrFollowPartialWrite = errors.New("关注关系部分写入")

	UnExpectedError = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrUserEmailExist:     BadRequest,
	ErrPasswordIncorrect:  Unauthorized,
	ErrFileNotSupported:   BadRequest,
	ErrVideoAssetEmpty:    BadRequest,
	ErrVideoTitleBlank:    BadRequest,
	ErrUploaderIDInvalid:  BadRequest,
	ErrVideoUpload:        InternalServerError,
	ErrVideoRegister:      InternalServerError,
	ErrVideoOrphanBlob:    Conflict,
	ErrFollowSelf:         BadRequest,
	ErrFollowWrite:        InternalServerError,
	ErrFollowPartialWrite: Conflict,
	UnExpectedError:       InternalServerError,
}

// OrphanBlobError 发布补偿失败的终态：记录插入与文件删除均失败，
// 携带孤儿对象名供对账使用
type OrphanBlobError struct {
	ObjectName  string
	RegisterErr error
	DeleteErr   error
}

func (e *OrphanBlobError) Error() string {
	return fmt.Sprintf("%s: object=%s register=%v delete=%v",
		ErrVideoOrphanBlob.Error(), e.ObjectName, e.RegisterErr, e.DeleteErr)
}

func (e *OrphanBlobError) Is(target error) bool {
	return target == ErrVideoOrphanBlob
}

// PartialWriteError 关注切换的第二条写入失败，target 端已变更而 source 端未变更
type PartialWriteError struct {
	SourceID string
	TargetID string
	Err      error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: source=%s target=%s err=%v",
		ErrFollowPartialWrite.Error(), e.SourceID, e.TargetID, e.Err)
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrFollowPartialWrite
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
