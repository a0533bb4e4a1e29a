package sport

import (
	"fmt"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/extract"
)

const archiveBase = "https://www.sportsbookreviewsonline.com/scoresoddsarchives/"

// seasonSpan 把赛季起始年转成站点的赛季段写法：2021 -> "2021-22"。
func seasonSpan(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// tableSource 是声明式的 Source 实现：列位表 + URL 规则 + 字节解码器。
// 新增运动只需要在 Defaults 里加一个值。
type tableSource struct {
	name   string
	layout extract.Layout
	url    func(year int) string
	rows   func(content []byte) ([]domain.RawRow, error)
	// special 是按赛季的列位/窗口特例（如 covid 赛季的月份窗口）；多数运动为 nil。
	special func(year int, l extract.Layout) extract.Layout
}

func (s *tableSource) Name() string { return s.name }

func (s *tableSource) Layout(year int) extract.Layout {
	l := s.layout
	if s.special != nil {
		l = s.special(year, l)
	}
	return l
}

func (s *tableSource) SeasonURL(year int) string { return s.url(year) }

func (s *tableSource) Rows(content []byte) ([]domain.RawRow, error) { return s.rows(content) }

// 未用列一律 -1，避免被 MinCells/取值误用。
func baseLayout() extract.Layout {
	return extract.Layout{
		VHCol:    -1,
		OpenCol:  -1, CloseCol: -1, MLCol: -1, H2Col: -1,
		OpenMLCol: -1, CloseMLCol: -1,
		CloseSpreadCol: -1, CloseSpreadOddsCol: -1,
		OpenOUCol: -1, OpenOUOddsCol: -1,
		CloseOUCol: -1, CloseOUOddsCol: -1,
	}
}

func nflSource() *tableSource {
	l := baseLayout()
	l.Sport = "nfl"
	l.Style = extract.StyleSpreadTotal
	l.DateCol, l.TeamCol = 0, 3
	l.Periods = []extract.PeriodCol{
		{Label: "1stQtr", Col: 4}, {Label: "2ndQtr", Col: 5},
		{Label: "3rdQtr", Col: 6}, {Label: "4thQtr", Col: 7},
	}
	l.FinalCol = 8
	l.OpenCol, l.CloseCol, l.MLCol, l.H2Col = 9, 10, 11, 12
	l.SeasonStartMonth, l.SeasonEndMonth = 8, 12
	l.SpreadCeiling, l.TotalCeiling = 60, 80
	return &tableSource{
		name:   "nfl",
		layout: l,
		url:    func(year int) string { return archiveBase + "nfl-odds-" + seasonSpan(year) },
		rows:   HTMLRows,
	}
}

func nbaSource() *tableSource {
	// 列位与 nfl 完全一致，只有赛季窗口的年份归属和大小分量级不同。
	l := nflSource().layout
	l.Sport = "nba"
	l.SeasonStartMonth, l.SeasonEndMonth = 8, 12
	l.SpreadCeiling, l.TotalCeiling = 60, 300
	return &tableSource{
		name:   "nba",
		layout: l,
		url:    func(year int) string { return archiveBase + "nba-odds-" + seasonSpan(year) },
		rows:   HTMLRows,
	}
}

func nhlSource() *tableSource {
	l := baseLayout()
	l.Sport = "nhl"
	l.Style = extract.StyleMoneyline
	l.DateCol, l.TeamCol = 0, 3
	l.Periods = []extract.PeriodCol{
		{Label: "1stPeriod", Col: 4}, {Label: "2ndPeriod", Col: 5}, {Label: "3rdPeriod", Col: 6},
	}
	l.FinalCol = 7
	l.OpenMLCol, l.CloseMLCol = 8, 9
	l.CloseSpreadCol, l.CloseSpreadOddsCol = 10, 11
	l.OpenOUCol, l.OpenOUOddsCol, l.CloseOUCol, l.CloseOUOddsCol = 12, 13, 14, 15
	// 2013-14 之前的归档没有收盘让分列，大小分整体左移两列。
	l.Legacy = &extract.LegacyRule{MaxYear: 2013, OpenOUCol: 10, OpenOUOddsCol: 11, CloseOUCol: 12, CloseOUOddsCol: 13}
	l.SeasonStartMonth, l.SeasonEndMonth = 8, 12
	l.SpreadCeiling, l.TotalCeiling = 6, 15
	return &tableSource{
		name:   "nhl",
		layout: l,
		url: func(year int) string {
			// covid 缩水赛季：2020-21 赛季的归档页叫 "2021"。
			if year == 2020 {
				return archiveBase + "nhl-odds-2021"
			}
			return archiveBase + "nhl-odds-" + seasonSpan(year)
		},
		rows: HTMLRows,
		special: func(year int, l extract.Layout) extract.Layout {
			// covid 赛季 2021 年 1 月开打：整季都落在次历年，窗口改为 1-3 月。
			if year == 2020 {
				l.SeasonStartMonth, l.SeasonEndMonth = 1, 3
			}
			return l
		},
	}
}

func mlbSource() *tableSource {
	l := baseLayout()
	l.Sport = "mlb"
	l.Style = extract.StyleMoneyline
	l.DateCol, l.TeamCol = 0, 3
	l.Periods = []extract.PeriodCol{
		{Label: "1stInn", Col: 5}, {Label: "2ndInn", Col: 6}, {Label: "3rdInn", Col: 7},
		{Label: "4thInn", Col: 8}, {Label: "5thInn", Col: 9}, {Label: "6thInn", Col: 10},
		{Label: "7thInn", Col: 11}, {Label: "8thInn", Col: 12}, {Label: "9thInn", Col: 13},
	}
	l.FinalCol = 14
	l.OpenMLCol, l.CloseMLCol = 15, 16
	l.CloseSpreadCol, l.CloseSpreadOddsCol = 17, 18
	l.OpenOUCol, l.OpenOUOddsCol, l.CloseOUCol, l.CloseOUOddsCol = 19, 20, 21, 22
	l.Legacy = &extract.LegacyRule{MaxYear: 2013, OpenOUCol: 17, OpenOUOddsCol: 18, CloseOUCol: 19, CloseOUOddsCol: 20}
	// mlb 赛季不跨年：3-10 月都归起始年。
	l.SeasonStartMonth, l.SeasonEndMonth = 3, 10
	l.SpreadCeiling, l.TotalCeiling = 6, 20
	return &tableSource{
		name:   "mlb",
		layout: l,
		url: func(year int) string {
			return fmt.Sprintf("https://www.sportsbookreviewsonline.com/wp-content/uploads/sportsbookreviewsonline_com_737/mlb-odds-%d.xlsx", year)
		},
		rows: XLSXRows,
	}
}

func ncaabSource() *tableSource {
	l := baseLayout()
	l.Sport = "ncaab"
	l.Style = extract.StyleSpreadTotal
	l.DateCol, l.TeamCol, l.VHCol = 0, 3, 2
	l.Periods = []extract.PeriodCol{{Label: "1st", Col: 4}, {Label: "2nd", Col: 5}}
	l.FinalCol = 6
	l.OpenCol, l.CloseCol, l.MLCol, l.H2Col = 7, 8, 9, 10
	l.SeasonStartMonth, l.SeasonEndMonth = 8, 12
	l.SpreadCeiling, l.TotalCeiling = 60, 300
	return &tableSource{
		name:   "ncaab",
		layout: l,
		// 站点要求 ncaa 归档 URL 以斜杠结尾，否则 404。
		url:  func(year int) string { return archiveBase + "ncaa-basketball-" + seasonSpan(year) + "/" },
		rows: HTMLRows,
	}
}

// Defaults 返回全部内建 source 的注册表。
func Defaults() (Registry, error) {
	return NewRegistry(nflSource(), nbaSource(), nhlSource(), mlbSource(), ncaabSource())
}
