package domain

import (
	"sort"
	"time"
)

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

const (
	ErrCodeFetchFailed    = "fetch_failed"
	ErrCodeParseFailed    = "parse_failed"
	ErrCodeWriteFailed    = "write_failed"
	ErrCodeIOFailed       = "io_failed"
	ErrCodeConfigNotFound = "config_not_found"
	ErrCodeConfigInvalid  = "config_invalid"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
// 跳过/失败的赛季以显式条目出现在 Seasons 中，而不是只写日志——
// “哪些年份被跳过、为什么”是结果的一部分，必须可独立测试。
type RunReport struct {
	Sport  string `json:"sport"`
	Format string `json:"format"`
	Output string `json:"output"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary  `json:"summary"`
	Seasons []SeasonResult `json:"seasons"`
}

type ReportSummary struct {
	Processed    int `json:"processed"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Games        int `json:"games"`
	DroppedPairs int `json:"dropped_pairs"`
}

// SeasonResult 是一个赛季（或 ncaab2h 模式下一个日期）的处理结果。
type SeasonResult struct {
	Season int    `json:"season,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`

	Games   int `json:"games"`
	Dropped int `json:"dropped_pairs"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) Seasons 稳定排序：按年份升序（合成条目 Season==0 排最前，日期条目按日期升序）
// 3) Summary 由 Seasons 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Seasons, func(i, j int) bool {
		a, b := r.Seasons[i], r.Seasons[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Date < b.Date
	})

	var s ReportSummary
	for _, it := range r.Seasons {
		switch it.Status {
		case StatusProcessed:
			s.Processed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
		s.Games += it.Games
		s.DroppedPairs += it.Dropped
	}
	r.Summary = s
}
