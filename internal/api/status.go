package api

import (
	"errors"
	"net/http"

	liqdomain "market_backend/internal/feature/liquidity/domain"
	mddomain "market_backend/internal/feature/marketdata/domain"
)

// StatusForError はドメインエラーをHTTPステータスコードに対応付けます。
// 入力起因のエラーは400、上流プロバイダー障害は502、それ以外は500です。
func StatusForError(err error) int {
	switch {
	case errors.Is(err, mddomain.ErrInsufficientData),
		errors.Is(err, mddomain.ErrSequenceOrder),
		errors.Is(err, mddomain.ErrUnsupportedTimeframe),
		errors.Is(err, liqdomain.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, mddomain.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
