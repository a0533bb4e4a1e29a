package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/John-Robertt/SBRO/internal/config"
	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/export"
	"github.com/John-Robertt/SBRO/internal/extract"
	"github.com/John-Robertt/SBRO/internal/infra/cache"
	"github.com/John-Robertt/SBRO/internal/infra/httpx"
	"github.com/John-Robertt/SBRO/internal/live"
	"github.com/John-Robertt/SBRO/internal/season"
	"github.com/John-Robertt/SBRO/internal/sport"
	"github.com/John-Robertt/SBRO/internal/translate"
)

// Execute 执行一次归档抓取（一个运动、一个年份区间），返回对外稳定的 RunReport。
// 错误尽量“降级”为赛季级条目：单个赛季失败不影响其他赛季，
// 只有输出文件写不出去才以合成条目的形式让整次运行失败。
func Execute(ctx context.Context, eff config.EffectiveConfig, reg sport.Registry, tables translate.Tables, obs Observer) domain.RunReport {
	started := time.Now().UTC()
	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Sport:     eff.Sport,
		Format:    eff.Format,
		StartedAt: started,
		Seasons:   make([]domain.SeasonResult, 0, eff.End-eff.Start+1),
	}
	finish := func() domain.RunReport {
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}

	src, ok := reg.Get(eff.Sport)
	if !ok {
		rr.Seasons = append(rr.Seasons, syntheticFailed(domain.ErrCodeConfigInvalid, fmt.Sprintf("未注册的运动：%q", eff.Sport)))
		return finish()
	}

	client, err := httpx.NewArchiveClient(eff.ProxyURL)
	if err != nil {
		rr.Seasons = append(rr.Seasons, syntheticFailed(domain.ErrCodeConfigInvalid, fmt.Sprintf("proxy.url 无效：%v", err)))
		return finish()
	}

	store := cache.New(eff.Root, eff.Cache)
	tr := tables.Sport(eff.Sport)
	ext := pageExt(eff.Sport)

	total := eff.End - eff.Start + 1
	var games []domain.GameRecord

	for year := eff.Start; year <= eff.End; year++ {
		oneStarted := time.Now()
		res, seasonGames := processSeason(ctx, client, store, src, tr, year, ext)
		rr.Seasons = append(rr.Seasons, res)
		games = append(games, seasonGames...)
		if obs != nil {
			obs.OnSeasonDone(year-eff.Start+1, total, res, time.Since(oneStarted))
		}
	}

	if len(games) == 0 {
		// 一场比赛都没有时不写空文件；跳过/失败的原因已在 Seasons 里。
		return finish()
	}

	writeStarted := time.Now()
	outPath, err := writeTable(eff, export.GameTable(games))
	if err != nil {
		rr.Seasons = append(rr.Seasons, syntheticFailed(domain.ErrCodeWriteFailed, fmt.Sprintf("写出 %s 失败：%v", eff.OutFile(), err)))
		return finish()
	}
	rr.Output = outPath
	if obs != nil {
		obs.OnWrite(outPath, len(games), time.Since(writeStarted))
	}
	return finish()
}

// processSeason 处理一个赛季：缓存读穿 → 抓取 → 解析 → 组装。
// 抓取失败（含 404）归为 skipped——站点缺某些年份的归档是常态；
// 抓回来但解析不出是 failed——说明版式漂移，需要人工介入。
func processSeason(ctx context.Context, client *http.Client, store cache.Store, src sport.Source, tr extract.Translator, year int, ext string) (domain.SeasonResult, []domain.GameRecord) {
	res := domain.SeasonResult{Season: year}

	content, hit, err := store.ReadPage(src.Name(), year, ext)
	if err != nil {
		// 缓存读取错误不致命：继续走网络。
		hit = false
	}
	if !hit {
		var u string
		content, u, err = sport.FetchSeason(ctx, client, src, year)
		res.URL = u
		if err != nil {
			res.Status = domain.StatusSkipped
			res.ErrorCode = domain.ErrCodeFetchFailed
			res.ErrorMsg = humanizeFetchError(u, err)
			return res, nil
		}
		// 缓存写失败只影响下次重跑速度，不影响本次结果。
		_ = store.WritePage(src.Name(), year, ext, content)
	}

	rows, err := src.Rows(content)
	if err != nil {
		res.Status = domain.StatusFailed
		res.ErrorCode = domain.ErrCodeParseFailed
		res.ErrorMsg = fmt.Sprintf("解析 %d 赛季页面失败：%v", year, err)
		return res, nil
	}

	asm, err := season.Assemble(src.Layout(year), tr, year, rows)
	if err != nil {
		res.Status = domain.StatusFailed
		res.ErrorCode = domain.ErrCodeParseFailed
		res.ErrorMsg = fmt.Sprintf("组装 %d 赛季失败：%v", year, err)
		return res, nil
	}

	res.Status = domain.StatusProcessed
	res.Games = len(asm.Games)
	res.Dropped = asm.Dropped
	return res, asm.Games
}

// LiveFetcher 抽象“抓一个日期的实时盘口”。生产实现是 live.Scraper（chromedp），
// 测试里可以替换为纯内存实现。
type LiveFetcher interface {
	Fetch(ctx context.Context, date string) ([]live.Game, error)
}

// ExecuteLive 执行实时抓取：日期清单驱动，每个日期独立成败。
// 单个日期抓不到（比赛日没开盘、页面结构变更）记为 skipped，不中断整次运行。
func ExecuteLive(ctx context.Context, eff config.EffectiveConfig, fetcher LiveFetcher, obs Observer) domain.RunReport {
	started := time.Now().UTC()
	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Sport:     eff.Sport,
		Format:    eff.Format,
		StartedAt: started,
	}
	finish := func() domain.RunReport {
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr
	}

	dates, err := live.LoadDates(eff.DatesFile)
	if err != nil {
		rr.Seasons = append(rr.Seasons, syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("读取日期清单 %s 失败：%v", eff.DatesFile, err)))
		return finish()
	}

	var days []live.DayGames
	gamesTotal := 0
	for i, date := range dates {
		oneStarted := time.Now()
		res := domain.SeasonResult{Date: date}
		games, err := fetcher.Fetch(ctx, date)
		if err != nil {
			res.Status = domain.StatusSkipped
			res.ErrorCode = domain.ErrCodeFetchFailed
			res.ErrorMsg = fmt.Sprintf("抓取 %s 失败：%v", date, err)
		} else {
			res.Status = domain.StatusProcessed
			res.Games = len(games)
			days = append(days, live.DayGames{Date: date, Games: games})
			gamesTotal += len(games)
		}
		rr.Seasons = append(rr.Seasons, res)
		if obs != nil {
			obs.OnSeasonDone(i+1, len(dates), res, time.Since(oneStarted))
		}
	}

	if gamesTotal == 0 {
		return finish()
	}

	writeStarted := time.Now()
	outPath, err := writeTable(eff, live.Table(days))
	if err != nil {
		rr.Seasons = append(rr.Seasons, syntheticFailed(domain.ErrCodeWriteFailed, fmt.Sprintf("写出 %s 失败：%v", eff.OutFile(), err)))
		return finish()
	}
	rr.Output = outPath
	if obs != nil {
		obs.OnWrite(outPath, gamesTotal, time.Since(writeStarted))
	}
	return finish()
}

func pageExt(sportName string) string {
	if sportName == "mlb" {
		return "xlsx"
	}
	return "html"
}

func syntheticFailed(code, msg string) domain.SeasonResult {
	return domain.SeasonResult{
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}

func writeTable(eff config.EffectiveConfig, t export.Table) (string, error) {
	name := eff.OutFile()
	var err error
	if eff.Format == "json" {
		err = export.WriteJSON(eff.OutputDir, name, t)
	} else {
		err = export.WriteCSV(eff.OutputDir, name, t)
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(eff.OutputDir, name), nil
}

func humanizeFetchError(url string, err error) string {
	var hs *sport.HTTPStatusError
	if errors.As(err, &hs) {
		if hs.StatusCode == http.StatusNotFound {
			return fmt.Sprintf("站点没有该赛季的归档页（HTTP 404）：%s", url)
		}
		return fmt.Sprintf("站点返回 HTTP %d：%s", hs.StatusCode, url)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("抓取超时：%s（可在 sbro.json 配置 proxy.url）", url)
	}
	return fmt.Sprintf("抓取失败：%v", err)
}
