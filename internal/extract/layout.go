// Package extract 把一对原始行（客队行 + 主队行）映射为 GameRecord。
//
// 列位是“声明式数据”而不是逻辑：每个运动一张 Layout 表，
// 新增运动应当只需要新增一个 Layout 值（见 internal/sport/defs.go）。
package extract

import (
	"regexp"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/table"
)

// Style 决定盘口列如何映射到 GameRecord。
type Style int

const (
	// StyleSpreadTotal：open/close/2H 三列让分与大小分混排在两行中
	//（让分挂在让球方行、大小分挂在对方行），按数值大小区分角色，
	// 用收盘 money line 判定主客让分符号。nfl/nba/ncaab 使用。
	StyleSpreadTotal Style = iota
	// StyleMoneyline：开收盘 money line、让分（含水位）、大小分（含水位）
	// 都有独立列，逐列取值即可。nhl/mlb 使用。
	StyleMoneyline
)

// PeriodCol 是一个节/局/半场得分列。
type PeriodCol struct {
	Label string
	Col   int
}

// LegacyRule 描述早年表缺列时的列位修正：
// 不晚于 MaxYear 的赛季没有收盘让分列，大小分四列整体使用这里的列位。
type LegacyRule struct {
	MaxYear int

	OpenOUCol      int
	OpenOUOddsCol  int
	CloseOUCol     int
	CloseOUOddsCol int
}

// Layout 是一个运动的列位表与解析参数。未使用的列一律置 -1。
type Layout struct {
	Sport string
	Style Style

	DateCol int
	TeamCol int
	// VHCol：客/主指示列（V=客、H=主）；-1 表示该运动的表没有此列。
	VHCol int

	Periods  []PeriodCol
	FinalCol int

	// StyleSpreadTotal 专用。
	OpenCol  int
	CloseCol int
	MLCol    int
	H2Col    int

	// StyleMoneyline 专用。
	OpenMLCol          int
	CloseMLCol         int
	CloseSpreadCol     int
	CloseSpreadOddsCol int
	OpenOUCol          int
	OpenOUOddsCol      int
	CloseOUCol         int
	CloseOUOddsCol     int

	Legacy *LegacyRule

	// 日期月份窗口：月份落在 [SeasonStartMonth, SeasonEndMonth] 视为赛季起始年，
	// 否则归入次年（跨年赛季的年份回卷）。
	SeasonStartMonth int
	SeasonEndMonth   int

	// 并写半分启发式的上限：无小数点、全数字且超出上限、末位为 5 的单元格
	// 按“末位为半分”解读（如 1085 -> 108.5）。上限放在数据里，便于按运动校正。
	SpreadCeiling float64
	TotalCeiling  float64
}

// ForSeason 返回按赛季特化后的列位表（应用 LegacyRule）。
// 月份窗口等其他赛季特例由 sport 层在构造 Layout 时处理。
func (l Layout) ForSeason(year int) Layout {
	if l.Legacy == nil || year > l.Legacy.MaxYear {
		return l
	}
	out := l
	out.CloseSpreadCol = -1
	out.CloseSpreadOddsCol = -1
	out.OpenOUCol = l.Legacy.OpenOUCol
	out.OpenOUOddsCol = l.Legacy.OpenOUOddsCol
	out.CloseOUCol = l.Legacy.CloseOUCol
	out.CloseOUOddsCol = l.Legacy.CloseOUOddsCol
	return out
}

// MinCells 返回配对校验所需的最小单元格数：只看强制列
//（日期、队名、V/H 指示、终场比分）。盘口列都是可选的，行尾缺列
// 不能当作噪声（xlsx 读取会裁掉行尾的空单元格），取值时越界即视为未刊出。
func (l Layout) MinCells() int {
	max := 0
	add := func(c int) {
		if c > max {
			max = c
		}
	}
	add(l.DateCol)
	add(l.TeamCol)
	add(l.VHCol)
	add(l.FinalCol)
	return max + 1
}

var dateTokenRE = regexp.MustCompile(`^[0-9]{3,4}$`)

// PairCheck 构造该运动的配对校验：
// - 两行都至少有 MinCells 个单元格
// - 两行队名非空、日期是 3-4 位数字记号（排除表头等噪声行）
// - 有 V/H 指示列的运动：前一行必须是 V（客），后一行必须是 H（主）
func (l Layout) PairCheck() table.PairCheck {
	min := l.MinCells()
	rowOK := func(r domain.RawRow) bool {
		if len(r) < min {
			return false
		}
		if r.Cell(l.TeamCol) == "" {
			return false
		}
		return dateTokenRE.MatchString(r.Cell(l.DateCol))
	}
	return func(away, home domain.RawRow) bool {
		if !rowOK(away) || !rowOK(home) {
			return false
		}
		if l.VHCol >= 0 {
			if away.Cell(l.VHCol) != "V" || home.Cell(l.VHCol) != "H" {
				return false
			}
		}
		return true
	}
}
