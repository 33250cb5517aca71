// Package handler はtradingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"market_backend/internal/api"
	"market_backend/internal/feature/trading/domain/entity"

	"github.com/gin-gonic/gin"
)

// DecisionUsecase は売買判断のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DecisionUsecase interface {
	Decide(ctx context.Context, symbol, timeframe string, count int) ([]entity.Decision, error)
}

// DecisionHandler は売買判断のHTTPリクエストを処理します。
type DecisionHandler struct {
	uc DecisionUsecase
}

// NewDecisionHandler は指定されたusecaseでDecisionHandlerの新しいインスタンスを生成します。
func NewDecisionHandler(uc DecisionUsecase) *DecisionHandler {
	return &DecisionHandler{uc: uc}
}

// GetDecisionsHandler は銘柄と時間足を受け取り、チャートに置く売買マーカーを
// JSONで返します。判断材料がない場合は空の配列を返します。
//
// エンドポイント例:
// GET /api/bot/decisions?symbol=AAPL&timeframe=1h&count=200
func (h *DecisionHandler) GetDecisionsHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	decisions, err := h.uc.Decide(c.Request.Context(), symbol, timeframe, count)
	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.NewDecisionResponses(decisions))
}
