// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"market_backend/internal/api"
	"market_backend/internal/feature/analysis/usecase"

	"github.com/gin-gonic/gin"
)

// AnalysisUsecase は複合解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, symbol, timeframe string, count int) (usecase.Analysis, error)
}

// AnalysisHandler は複合解析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// GetAnalysisHandler は銘柄と時間足を受け取り、ローソク足・トレンド・
// 流動性ゾーンをまとめたJSONを返します。上流への取得は1回だけ行われます。
//
// エンドポイント例:
// GET /api/analysis?symbol=AAPL&timeframe=1h&count=200
func (h *AnalysisHandler) GetAnalysisHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	result, err := h.uc.Analyze(c.Request.Context(), symbol, timeframe, count)
	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.AnalysisResponse{
		Symbol:    result.Symbol,
		Timeframe: result.Timeframe,
		Candles:   api.NewCandleResponses(result.Candles),
		Trend:     api.NewTrendResponse(result.Trend),
		Liquidity: api.NewLiquidityResponse(result.Liquidity),
	})
}
