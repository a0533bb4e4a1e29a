package extract

import (
	"fmt"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/table"
)

// Translator 把站点短写翻译为规范全名；查不到时必须原样透传（fail open）。
type Translator interface {
	Full(raw string) string
}

// Extract 把一对原始行映射为 GameRecord。纯函数：相同输入 => 相同输出。
//
// 强制字段（日期、双方队名、双方终场比分）任一解析失败返回错误，整对丢弃；
// 可选字段解析失败只把该字段置 nil，不影响整条记录。
func Extract(l Layout, tr Translator, season int, p table.Pair) (domain.GameRecord, error) {
	away, home := p.Away, p.Home

	date, err := MakeDate(away.Cell(l.DateCol), season, l.SeasonStartMonth, l.SeasonEndMonth)
	if err != nil {
		return domain.GameRecord{}, err
	}

	awayTeam := tr.Full(away.Cell(l.TeamCol))
	homeTeam := tr.Full(home.Cell(l.TeamCol))
	if awayTeam == "" || homeTeam == "" {
		return domain.GameRecord{}, fmt.Errorf("队名为空")
	}

	awayFinal, err := ParseFinal(away.Cell(l.FinalCol))
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("客队%w", err)
	}
	homeFinal, err := ParseFinal(home.Cell(l.FinalCol))
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("主队%w", err)
	}

	g := domain.GameRecord{
		Season:    season,
		Date:      date,
		AwayTeam:  awayTeam,
		HomeTeam:  homeTeam,
		AwayFinal: awayFinal,
		HomeFinal: homeFinal,
	}

	for _, pc := range l.Periods {
		g.Periods = append(g.Periods, domain.PeriodScore{
			Label: pc.Label,
			Away:  ParseScore(away.Cell(pc.Col)),
			Home:  ParseScore(home.Cell(pc.Col)),
		})
	}

	switch l.Style {
	case StyleSpreadTotal:
		extractSpreadTotal(l, &g, away, home)
	case StyleMoneyline:
		extractMoneyline(l, &g, away, home)
	}
	return g, nil
}

// extractSpreadTotal 处理 nfl/nba/ncaab 风格的表：
// open/close/2H 列在两行中分别承载让分与大小分。
// 角色区分依赖数值大小（同一场比赛里大小分远大于让分）；
// 让分符号由收盘 money line 判定（低者为让球方，取负）。
func extractSpreadTotal(l Layout, g *domain.GameRecord, away, home domain.RawRow) {
	g.AwayCloseML = ParseMoneyline(away.Cell(l.MLCol))
	g.HomeCloseML = ParseMoneyline(home.Cell(l.MLCol))

	// 先定角色：哪一行的 open/close 承载让分。开盘缺失时退回收盘列。
	spreadOnAway, ok := spreadRole(l, away.Cell(l.OpenCol), home.Cell(l.OpenCol))
	if !ok {
		spreadOnAway, ok = spreadRole(l, away.Cell(l.CloseCol), home.Cell(l.CloseCol))
	}
	if !ok {
		return
	}

	spreadRow, totalRow := away, home
	if !spreadOnAway {
		spreadRow, totalRow = home, away
	}

	openSpread := ParseSpread(spreadRow.Cell(l.OpenCol), l.SpreadCeiling)
	closeSpread := ParseSpread(spreadRow.Cell(l.CloseCol), l.SpreadCeiling)
	g.OpenOverUnder = ParseTotal(totalRow.Cell(l.OpenCol), l.TotalCeiling)
	g.CloseOverUnder = ParseTotal(totalRow.Cell(l.CloseCol), l.TotalCeiling)

	// 让球方：money line 齐全时取低者；否则让分挂在哪行哪队就是让球方。
	homeFavored := !spreadOnAway
	if g.AwayCloseML != nil && g.HomeCloseML != nil {
		homeFavored = *g.HomeCloseML < *g.AwayCloseML
	}

	g.HomeOpenSpread, g.AwayOpenSpread = signedPair(openSpread, homeFavored)
	g.HomeCloseSpread, g.AwayCloseSpread = signedPair(closeSpread, homeFavored)

	if l.H2Col >= 0 {
		h2Spread := ParseSpread(spreadRow.Cell(l.H2Col), l.SpreadCeiling)
		g.Home2HSpread, g.Away2HSpread = signedPair(h2Spread, homeFavored)
		g.Total2H = ParseTotal(totalRow.Cell(l.H2Col), l.TotalCeiling)
	}
}

// spreadRole 判定让分挂在客队行（true）还是主队行（false）。
// 两个单元格都可比较时数值小者为让分；平手盘（PK）视作 0。
func spreadRole(l Layout, awayCell, homeCell string) (spreadOnAway, ok bool) {
	av, aok := compareValue(awayCell, l.TotalCeiling)
	hv, hok := compareValue(homeCell, l.TotalCeiling)
	if !aok || !hok {
		return false, false
	}
	return av < hv, true
}

func compareValue(s string, ceiling float64) (float64, bool) {
	if isPickem(s) {
		return 0, true
	}
	if isAbsent(s) {
		return 0, false
	}
	return parseLine(s, ceiling)
}

// signedPair 把一个无符号让分值展开为 (主队, 客队) 两侧：
// 让球方取负、对方取正；pick'em 两侧都是 0 且保留标记。
func signedPair(s *domain.Spread, homeFavored bool) (home, away *domain.Spread) {
	if s == nil {
		return nil, nil
	}
	if s.Pickem {
		return &domain.Spread{Pickem: true}, &domain.Spread{Pickem: true}
	}
	v := s.Value
	if v < 0 {
		v = -v
	}
	if homeFavored {
		return &domain.Spread{Value: -v}, &domain.Spread{Value: v}
	}
	return &domain.Spread{Value: v}, &domain.Spread{Value: -v}
}

// extractMoneyline 处理 nhl/mlb 风格的表：每个盘口都有独立列，
// 让分按行归属各队（不需要符号推断），大小分取主队行。
func extractMoneyline(l Layout, g *domain.GameRecord, away, home domain.RawRow) {
	g.AwayOpenML = ParseMoneyline(away.Cell(l.OpenMLCol))
	g.HomeOpenML = ParseMoneyline(home.Cell(l.OpenMLCol))
	g.AwayCloseML = ParseMoneyline(away.Cell(l.CloseMLCol))
	g.HomeCloseML = ParseMoneyline(home.Cell(l.CloseMLCol))

	if l.CloseSpreadCol >= 0 {
		g.AwayCloseSpread = ParseSpread(away.Cell(l.CloseSpreadCol), l.SpreadCeiling)
		g.HomeCloseSpread = ParseSpread(home.Cell(l.CloseSpreadCol), l.SpreadCeiling)
	}
	if l.CloseSpreadOddsCol >= 0 {
		g.AwayCloseSpreadOdds = ParseOdds(away.Cell(l.CloseSpreadOddsCol))
		g.HomeCloseSpreadOdds = ParseOdds(home.Cell(l.CloseSpreadOddsCol))
	}

	g.OpenOverUnder = ParseTotal(home.Cell(l.OpenOUCol), l.TotalCeiling)
	g.OpenOverUnderOdds = ParseOdds(home.Cell(l.OpenOUOddsCol))
	g.CloseOverUnder = ParseTotal(home.Cell(l.CloseOUCol), l.TotalCeiling)
	g.CloseOverUnderOdds = ParseOdds(home.Cell(l.CloseOUOddsCol))
}
