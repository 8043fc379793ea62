package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// 图片上传相关常量
const (
	MimeImage        = "image/"
	DataURIPrefix    = "data:"
	MaxPuzzleImageMB = 5
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
