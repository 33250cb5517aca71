package handler

import (
	"context"
	"net/http"
	"strconv"

	"market_backend/internal/api"
	"market_backend/internal/feature/trading/usecase"

	"github.com/gin-gonic/gin"
)

// MarketDataUsecase はローソク足と売買マーカーの一括取得インターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketDataUsecase interface {
	FetchMarketData(ctx context.Context, symbol, timeframe string, count int) (usecase.MarketData, error)
}

// MarketDataHandler はチャート描画用データのHTTPリクエストを処理します。
type MarketDataHandler struct {
	uc MarketDataUsecase
}

// NewMarketDataHandler は指定されたusecaseでMarketDataHandlerの新しいインスタンスを生成します。
func NewMarketDataHandler(uc MarketDataUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc}
}

// GetMarketDataHandler は銘柄と時間足を受け取り、ローソク足と売買マーカーを
// まとめたJSONを返します。上流への取得は1回だけ行われます。
//
// エンドポイント例:
// GET /api/market-data?symbol=AAPL&timeframe=1h&count=200
func (h *MarketDataHandler) GetMarketDataHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	result, err := h.uc.FetchMarketData(c.Request.Context(), symbol, timeframe, count)
	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.MarketDataResponse{
		Symbol:    result.Symbol,
		Timeframe: result.Timeframe,
		Candles:   api.NewCandleResponses(result.Candles),
		Decisions: api.NewDecisionResponses(result.Decisions),
	})
}
