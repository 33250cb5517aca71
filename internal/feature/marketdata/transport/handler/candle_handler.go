// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"market_backend/internal/api"
	"market_backend/internal/feature/marketdata/domain/entity"

	"github.com/gin-gonic/gin"
)

// FetchUsecase はローソク足取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FetchUsecase interface {
	Latest(ctx context.Context, symbol, timeframe string, count int) ([]entity.Candle, error)
	Historical(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error)
}

// CandleHandler はローソク足データのHTTPリクエストを処理します。
type CandleHandler struct {
	uc FetchUsecase
}

// NewCandleHandler は指定されたusecaseでCandleHandlerの新しいインスタンスを生成します。
func NewCandleHandler(uc FetchUsecase) *CandleHandler {
	return &CandleHandler{uc: uc}
}

// GetCandlesHandler は銘柄と時間足を受け取り、ローソク足データを古い順のJSONで返します。
// startとendの両方が指定された場合は期間指定の取得になります。
//
// エンドポイント例:
// GET /api/candles?symbol=AAPL&timeframe=1h&count=200
// GET /api/candles?symbol=AAPL&timeframe=1day&start=2024-01-01&end=2024-06-01&limit=500
func (h *CandleHandler) GetCandlesHandler(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}
	timeframe := c.Query("timeframe")

	var candles []entity.Candle
	var err error
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, perr := parseTimeParam(startStr)
		if perr != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start: " + startStr})
			return
		}
		end, perr := parseTimeParam(endStr)
		if perr != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid end: " + endStr})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		candles, err = h.uc.Historical(c.Request.Context(), symbol, timeframe, start, end, limit)
	} else {
		count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))
		candles, err = h.uc.Latest(c.Request.Context(), symbol, timeframe, count)
	}

	if err != nil {
		c.JSON(api.StatusForError(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.NewCandleResponses(candles))
}

// parseTimeParam はRFC3339または日付のみ（YYYY-MM-DD）の時刻パラメータを解析します。
func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
