package game

import (
	"errors"
	"net/http"

	"github.com/SlpAus/fmk-game-backend/internal/user"
	"github.com/SlpAus/fmk-game-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// defaultService 是供HTTP层使用的服务实例，在PrimeModule中装配。
var defaultService *Service

// SaveResultsRequestBody 是保存游戏结果的请求体。
// 请求体中的userId会被认证身份覆盖：已登录用会话归属该用户，
// 匿名请求一律创建无归属会话。
type SaveResultsRequestBody struct {
	Choices []ChoiceInput `json:"choices" binding:"required,dive"`
	UserID  *string       `json:"userId"`
}

// SaveGameResults 处理 POST /game/save-results
func SaveGameResults(c *gin.Context) {
	var body SaveResultsRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	var userID *string
	if identity, ok := user.CurrentIdentity(c); ok {
		userID = &identity.ID
	}

	result, err := defaultService.RecordSession(userID, body.Choices)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound),
			errors.Is(err, ErrCharacterNotFound),
			errors.Is(err, ErrInvalidChoiceType):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "Failed to save game results")
		}
		return
	}
	response.OK(c, http.StatusCreated, result, "Game results saved successfully")
}

// GetUserGameHistory 处理 GET /game/history
func GetUserGameHistory(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	history, err := defaultService.GetUserGameHistory(identity.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve game history")
		return
	}
	response.OK(c, http.StatusOK, history, "Game history retrieved successfully")
}

// GetGameStats 处理 GET /game/stats
func GetGameStats(c *gin.Context) {
	identity, _ := user.CurrentIdentity(c)

	stats, err := defaultService.GetGameStats(identity.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve game stats")
		return
	}
	response.OK(c, http.StatusOK, stats, "Game stats retrieved successfully")
}

// GetCharactersWithStats 处理 GET /game/characters-with-stats/:setId
func GetCharactersWithStats(c *gin.Context) {
	characters, err := defaultService.GetCharactersWithStats(c.Param("setId"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve characters with statistics")
		return
	}
	response.OK(c, http.StatusOK, characters, "Characters with statistics retrieved successfully")
}
