package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind 区分两类上传图片的存储位置。
type Kind string

const (
	KindSetCover  Kind = "sets"
	KindCharacter Kind = "characters"
)

// maxFileSize 是单个图片的大小上限。
const maxFileSize = 5 * 1024 * 1024

// allowedImageTypes 是允许上传的图片扩展名。
var allowedImageTypes = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// baseDir 是上传文件的根目录，由Init设置。
var baseDir = "uploads"

// Init 设置上传根目录并确保子目录存在。
func Init(dir string) error {
	if dir != "" {
		baseDir = dir
	}
	for _, kind := range []Kind{KindSetCover, KindCharacter} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(kind)), 0o755); err != nil {
			return fmt.Errorf("无法创建上传目录: %w", err)
		}
	}
	return nil
}

// BaseDir 返回当前的上传根目录，供静态文件服务使用。
func BaseDir() string {
	return baseDir
}

// ValidateImageFile 校验上传文件的大小和扩展名。
func ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("File not uploaded")
	}
	if file.Size > maxFileSize {
		return errors.New("File size should not exceed 5MB")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedImageTypes {
		if ext == allowed {
			return nil
		}
	}
	return errors.New("Allowed formats: JPG, JPEG, PNG, WEBP, GIF")
}

// GenerateFileName 为上传文件生成一个不可预测的存储名。
func GenerateFileName(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

// FilePath 返回指定类型图片的磁盘路径。
func FilePath(kind Kind, filename string) string {
	return filepath.Join(baseDir, string(kind), filename)
}

// FileURL 返回指定类型图片的对外URL。
func FileURL(kind Kind, filename string) string {
	return "/uploads/" + string(kind) + "/" + filename
}

// filenameFromURL 从图片URL中还原文件名。
// URL不属于对应类型的上传目录时返回空串。
func filenameFromURL(imageURL string, kind Kind) string {
	prefix := "/uploads/" + string(kind) + "/"
	if !strings.HasPrefix(imageURL, prefix) {
		return ""
	}
	filename := strings.TrimPrefix(imageURL, prefix)
	if filename == "" || strings.Contains(filename, "/") {
		return ""
	}
	return filename
}

// ImageExists 检查图片URL对应的文件是否已经上传。
func ImageExists(imageURL string, kind Kind) bool {
	filename := filenameFromURL(imageURL, kind)
	if filename == "" {
		return false
	}
	_, err := os.Stat(FilePath(kind, filename))
	return err == nil
}

// DeleteImage 删除图片URL对应的文件。
func DeleteImage(imageURL string, kind Kind) bool {
	filename := filenameFromURL(imageURL, kind)
	if filename == "" {
		return false
	}
	return os.Remove(FilePath(kind, filename)) == nil
}
