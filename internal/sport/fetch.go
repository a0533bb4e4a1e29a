package sport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPStatusError 表示站点返回了非 2xx 的 HTTP 状态码。
// 上层据此把“赛季页不存在”（404）归类为 skipped 而不是 failed。
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d：%s", e.StatusCode, e.URL)
}

// FetchSeason 抓取一个赛季归档的原始字节（HTML 或 xlsx）。
// 不做缓存、不做重试（重试由 http transport 层统一实现）。
func FetchSeason(ctx context.Context, c *http.Client, src Source, year int) ([]byte, string, error) {
	if c == nil {
		return nil, "", errors.New("http client 不能为空")
	}
	u := src.SeasonURL(year)
	if strings.TrimSpace(u) == "" {
		return nil, "", fmt.Errorf("%s 没有 %d 赛季的 URL", src.Name(), year)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, u, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, u, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, u, &HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, u, err
	}
	if len(b) == 0 {
		return nil, u, errors.New("empty response body")
	}
	return b, u, nil
}
