package upload

import (
	"net/http"

	"github.com/SlpAus/fmk-game-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// UploadedFileInfo 是上传成功后的响应数据。
type UploadedFileInfo struct {
	Filename      string `json:"filename"`
	OriginalName  string `json:"originalName"`
	Size          int64  `json:"size"`
	URL           string `json:"url"`
	CharacterName string `json:"characterName,omitempty"`
}

// saveImage 是两个上传接口的公共实现。
func saveImage(c *gin.Context, field string, kind Kind) (*UploadedFileInfo, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "File not uploaded")
		return nil, false
	}

	if err := ValidateImageFile(file); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	filename := GenerateFileName(file.Filename)
	if err := c.SaveUploadedFile(file, FilePath(kind, filename)); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to store file")
		return nil, false
	}

	return &UploadedFileInfo{
		Filename:     filename,
		OriginalName: file.Filename,
		Size:         file.Size,
		URL:          FileURL(kind, filename),
	}, true
}

// UploadSetCover 处理 POST /upload/set-cover
func UploadSetCover(c *gin.Context) {
	info, ok := saveImage(c, "cover", KindSetCover)
	if !ok {
		return
	}
	response.OK(c, http.StatusCreated, info, "Cover uploaded successfully")
}

// UploadCharacterImage 处理 POST /characters/upload-image
// 表单中的name字段会被回显，方便前端把图片和角色名配对。
func UploadCharacterImage(c *gin.Context) {
	info, ok := saveImage(c, "image", KindCharacter)
	if !ok {
		return
	}
	info.CharacterName = c.PostForm("name")
	response.OK(c, http.StatusCreated, info, "Character image uploaded successfully")
}
