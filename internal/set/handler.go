package set

import (
	"errors"
	"net/http"

	"github.com/SlpAus/fmk-game-backend/internal/user"
	"github.com/SlpAus/fmk-game-backend/pkg/pagination"
	"github.com/SlpAus/fmk-game-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// ListQuery 绑定列表接口的查询参数。
type ListQuery struct {
	pagination.Query
	Search string `form:"search"`
}

// failForServiceError 将服务层错误映射为统一的HTTP响应。
func failForServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSetNotFound):
		response.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Fail(c, http.StatusForbidden, err.Error())
	default:
		response.Fail(c, http.StatusBadRequest, fallback)
	}
}

// CreateSet 处理 POST /sets
func CreateSet(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	created, err := Create(input, identity.ID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, http.StatusCreated, created, "Set created successfully")
}

// ListSets 处理 GET /sets
func ListSets(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	result, err := List(q.Query, q.Search)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve sets")
		return
	}
	response.OK(c, http.StatusOK, result, "Sets retrieved successfully")
}

// ListMySets 处理 GET /sets/my
func ListMySets(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	result, err := ListByOwner(identity.ID, q.Query, q.Search)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve sets")
		return
	}
	response.OK(c, http.StatusOK, result, "Sets retrieved successfully")
}

// GetSet 处理 GET /sets/:id
func GetSet(c *gin.Context) {
	s, err := FindByID(c.Param("id"))
	if err != nil {
		failForServiceError(c, err, "Failed to retrieve set")
		return
	}
	response.OK(c, http.StatusOK, s, "Set retrieved successfully")
}

// UpdateSet 处理 PATCH /sets/:id
func UpdateSet(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	updated, err := Update(c.Param("id"), input, identity.ID)
	if err != nil {
		failForServiceError(c, err, "Failed to update set")
		return
	}
	response.OK(c, http.StatusOK, updated, "Set updated successfully")
}

// DeleteSet 处理 DELETE /sets/:id
func DeleteSet(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	if err := Delete(c.Param("id"), identity.ID); err != nil {
		failForServiceError(c, err, "Failed to delete set")
		return
	}
	response.OK(c, http.StatusOK, nil, "Set deleted successfully")
}
