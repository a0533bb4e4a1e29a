package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/John-Robertt/SBRO/internal/app/run"
	"github.com/John-Robertt/SBRO/internal/config"
	"github.com/John-Robertt/SBRO/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端的进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 每个赛季/日期完成都有一行，抓取慢也不会长时间无输出
type progressUI struct {
	w io.Writer

	mu        sync.Mutex
	startedAt time.Time

	ok   int
	fail int
	skip int
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	fmt.Fprintf(p.w, "[%s] sbro run (%s)\n", now.Format("15:04:05"), eff.Sport)
	fmt.Fprintln(p.w, "配置（生效）:")
	if eff.Live() {
		fmt.Fprintf(p.w, "  dates_file: %s\n", eff.DatesFile)
	} else {
		fmt.Fprintf(p.w, "  seasons: %d-%d\n", eff.Start, eff.End)
		fmt.Fprintf(p.w, "  translations: %s\n", eff.Translations)
		fmt.Fprintf(p.w, "  cache: %s\n", onOff(eff.Cache))
	}
	fmt.Fprintf(p.w, "  format: %s\n", eff.Format)
	fmt.Fprintf(p.w, "  proxy: %s\n", formatProxy(eff.ProxyURL))
	fmt.Fprintf(p.w, "  out: %s\n", eff.OutFile())
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnSeasonDone(idx, total int, res domain.SeasonResult, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := res.Date
	if key == "" {
		key = fmt.Sprintf("%d", res.Season)
	}

	switch res.Status {
	case domain.StatusProcessed:
		p.ok++
		extra := ""
		if res.Dropped > 0 {
			extra = fmt.Sprintf(" dropped_pairs=%d", res.Dropped)
		}
		fmt.Fprintf(p.w, "[%d/%d] %s OK games=%d%s (%s)\n",
			idx, total, key, res.Games, extra, formatShortDuration(dur),
		)
	case domain.StatusSkipped:
		p.skip++
		fmt.Fprintf(p.w, "[%d/%d] %s SKIP %s: %s (%s)\n",
			idx, total, key, res.ErrorCode, truncate(res.ErrorMsg, 160), formatShortDuration(dur),
		)
	default:
		p.fail++
		fmt.Fprintf(p.w, "[%d/%d] %s FAIL %s: %s (%s)\n",
			idx, total, key, res.ErrorCode, truncate(res.ErrorMsg, 160), formatShortDuration(dur),
		)
	}
}

func (p *progressUI) OnWrite(path string, games int, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\n写出: %s games=%d (%s)\n", path, games, formatShortDuration(dur))
	fmt.Fprintf(p.w, "合计: ok=%d skip=%d fail=%d elapsed=%s\n",
		p.ok, p.skip, p.fail, formatElapsed(time.Since(p.startedAt)),
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func formatProxy(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "off"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "on (" + truncate(raw, 120) + ")"
	}
	auth := "off"
	if u.User != nil {
		auth = "on"
	}
	return fmt.Sprintf("on (%s://%s, auth=%s)", u.Scheme, u.Host, auth)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int(d.Seconds())
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
