package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	// DefaultVideoName 上传文件名缺失时的占位名
	DefaultVideoName = "video"
)
