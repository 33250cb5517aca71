// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はTwelve Data呼び出し用に調整されたHTTPクライアントを返します。
//
// http.DefaultClientはタイムアウトを持たないため使用しないこと。
// Transportは接続の安定性のために明示的に設定します:
//   - TCP接続タイムアウト5秒、KeepAlive30秒
//   - アイドル接続は最大100本を90秒保持（ポーリング時の再接続を回避）
//   - TLSハンドシェイクは5秒まで
//
// timeoutはリクエスト全体の上限で、呼び出し元の設定から渡されます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
