package handler

import (
	"net/http"

	"market_backend/internal/api"
	"market_backend/internal/feature/marketdata/domain/entity"

	"github.com/gin-gonic/gin"
)

// TimeframeHandler はサポートする時間足一覧のHTTPリクエストを処理します。
type TimeframeHandler struct{}

// NewTimeframeHandler はTimeframeHandlerの新しいインスタンスを生成します。
func NewTimeframeHandler() *TimeframeHandler {
	return &TimeframeHandler{}
}

// GetTimeframesHandler はサポートする時間足の一覧をJSONで返します。
//
// エンドポイント例:
// GET /api/timeframes
func (h *TimeframeHandler) GetTimeframesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.TimeframeResponse{Timeframes: entity.Timeframes})
}
