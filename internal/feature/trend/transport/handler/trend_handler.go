// Package handler はtrendフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"market_backend/internal/api"
	"market_backend/internal/feature/trend/domain/entity"

	"github.com/gin-gonic/gin"
)

// TrendUsecase はトレンド解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TrendUsecase interface {
	Analyze(ctx context.Context, symbol, timeframe string, count, lookback int) (entity.TrendSignal, error)
}

// TrendHandler はトレンド解析のHTTPリクエストを処理します。
type TrendHandler struct {
	uc TrendUsecase
}

// NewTrendHandler は指定されたusecaseでTrendHandlerの新しいインスタンスを生成します。
func NewTrendHandler(uc TrendUsecase) *TrendHandler {
	return &TrendHandler{uc: uc}
}

// GetTrendHandler は銘柄と時間足を受け取り、スイングと構造ブレイクを含む
// トレンド解析結果をJSONで返します。
//
// エンドポイント例:
// GET /api/indicators/trend?symbol=AAPL&timeframe=1h&count=200&lookback=3
func (h *TrendHandler) GetTrendHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))
	lookback, _ := strconv.Atoi(c.DefaultQuery("lookback", "0"))

	signal, err := h.uc.Analyze(c.Request.Context(), symbol, timeframe, count, lookback)
	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.NewTrendResponse(signal))
}
