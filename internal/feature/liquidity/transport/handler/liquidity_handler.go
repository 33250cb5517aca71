// Package handler はliquidityフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"market_backend/internal/api"
	"market_backend/internal/feature/liquidity/domain/entity"

	"github.com/gin-gonic/gin"
)

// LiquidityUsecase はゾーン解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type LiquidityUsecase interface {
	Analyze(ctx context.Context, symbol, timeframe string, count int) (entity.LiquiditySignal, error)
}

// LiquidityHandler はゾーン解析のHTTPリクエストを処理します。
type LiquidityHandler struct {
	uc LiquidityUsecase
}

// NewLiquidityHandler は指定されたusecaseでLiquidityHandlerの新しいインスタンスを生成します。
func NewLiquidityHandler(uc LiquidityUsecase) *LiquidityHandler {
	return &LiquidityHandler{uc: uc}
}

// GetLiquidityHandler は銘柄と時間足を受け取り、検出された
// アキュミュレーションゾーンをJSONで返します。
//
// エンドポイント例:
// GET /api/indicators/liquidity?symbol=AAPL&timeframe=1h&count=200
func (h *LiquidityHandler) GetLiquidityHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	signal, err := h.uc.Analyze(c.Request.Context(), symbol, timeframe, count)
	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.NewLiquidityResponse(signal))
}
