package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/John-Robertt/SBRO/internal/export"
)

const pageURL = "https://www.sportsbookreview.com/betting-odds/ncaa-basketball/pointspread/2nd-half/?date=%s"

// Books 是页面固定展示的六家庄家，列顺序与页面一致。
var Books = []string{"betmgm", "fanduel", "caesars", "bet365", "draftkings", "betrivers"}

// Game 是页面内提取脚本对一场比赛的产出。
// 所有字段都是页面文本原样（缺失为空串）；不在这里做数值化。
type Game struct {
	AwayTeam   string `json:"team_away"`
	HomeTeam   string `json:"team_home"`
	AwayScore  string `json:"score_away"`
	HomeScore  string `json:"score_home"`
	AwayWagers string `json:"wagers_away"`
	HomeWagers string `json:"wagers_home"`
	AwayOpener string `json:"opener_away"`
	HomeOpener string `json:"opener_home"`
	// BookOdds 每家庄家一个 [away, home] 对，顺序与 Books 一致；缺列补空对。
	BookOdds [][]string `json:"books"`
}

// extractJS 在渲染完成的页面里执行，每场比赛产出一个 JSON 对象。
// 选择器依赖站点当前的 CSS module 类名；站点改版时只需要更新这里。
const extractJS = `
(() => {
  const txt = el => el ? el.textContent.trim() : "";
  const games = [];
  document.querySelectorAll("div[id^='game-']").forEach(game => {
    const teams = game.querySelectorAll(".OddsTableMobile_participantData__vyNNx a");
    const scores = game.querySelectorAll(".OddsTableMobile_participantScore__Nap6l div");
    const wagers = game.querySelectorAll(".OddsTableMobile_containerNumbers__BFztk .OddsTableMobile_opener__4YddM span");
    const sections = game.querySelectorAll("section.OddsTableMobile_containerNumbers__BFztk");
    const books = [];
    sections.forEach(sec => {
      const odds = sec.querySelectorAll(".OddsTableMobile_odds__thxLF span");
      books.push([txt(odds[0]), txt(odds[1])]);
    });
    games.push({
      team_away: txt(teams[0]),
      team_home: txt(teams[1]),
      score_away: txt(scores[0]),
      score_home: txt(scores[1]),
      wagers_away: txt(wagers[0]),
      wagers_home: txt(wagers[1]),
      opener_away: txt(wagers[2]),
      opener_home: txt(wagers[3]),
      books: books,
    });
  });
  return JSON.stringify(games);
})()
`

// decodeGames 把页面脚本的 JSON 产出解码为 Game 列表。
// 纯函数；双方队名都为空的条目（占位/广告卡片）被丢弃。
func decodeGames(raw []byte) ([]Game, error) {
	if len(raw) == 0 {
		return nil, errors.New("页面脚本没有产出")
	}
	var all []Game
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("页面 JSON 解码失败：%w", err)
	}
	games := make([]Game, 0, len(all))
	for _, g := range all {
		if g.AwayTeam == "" && g.HomeTeam == "" {
			continue
		}
		// 庄家列不足六家时补空对，保证行宽稳定。
		for len(g.BookOdds) < len(Books) {
			g.BookOdds = append(g.BookOdds, []string{"", ""})
		}
		games = append(games, g)
	}
	return games, nil
}

// Scraper 用 headless Chrome 渲染并提取单个日期的下半场让分页。
type Scraper struct {
	// Timeout 是单个日期的整体预算（导航 + 渲染 + 提取）。
	Timeout time.Duration
}

func (s Scraper) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 60 * time.Second
}

// Fetch 渲染一个日期的页面并提取比赛。
// 超时/无比赛返回错误，由上层按“跳过该日期”处理，绝不中断整个清单。
func (s Scraper) Fetch(ctx context.Context, date string) ([]Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var raw string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(fmt.Sprintf(pageURL, date)),
		chromedp.WaitVisible(`div[id^='game-']`, chromedp.ByQuery),
		chromedp.Evaluate(extractJS, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("渲染 %s 失败：%w", date, err)
	}
	games, err := decodeGames([]byte(raw))
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%s 没有比赛", date)
	}
	return games, nil
}

// DayGames 是一个日期的提取产物。
type DayGames struct {
	Date  string
	Games []Game
}

// Table 把多个日期的提取产物拼成输出表。
// 列固定（实时页的字段集不随日期变化），缺失值保持空串。
func Table(days []DayGames) export.Table {
	cols := []string{
		"date", "team_away", "team_home", "score_away", "score_home",
		"wagers_away", "wagers_home", "opener_away", "opener_home",
	}
	for _, b := range Books {
		cols = append(cols, b+"_away", b+"_home")
	}

	t := export.Table{Columns: cols}
	for _, day := range days {
		for _, g := range day.Games {
			row := make([]any, 0, len(cols))
			row = append(row,
				day.Date, g.AwayTeam, g.HomeTeam, g.AwayScore, g.HomeScore,
				g.AwayWagers, g.HomeWagers, g.AwayOpener, g.HomeOpener,
			)
			for i := range Books {
				away, home := "", ""
				if i < len(g.BookOdds) {
					if len(g.BookOdds[i]) > 0 {
						away = g.BookOdds[i][0]
					}
					if len(g.BookOdds[i]) > 1 {
						home = g.BookOdds[i][1]
					}
				}
				row = append(row, away, home)
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
