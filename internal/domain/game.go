package domain

import "strings"

// RawRow 是赔率表中的一行：按文档顺序排列的单元格文本。
// 长度不保证；可能是比赛的客队/主队半场，也可能是表头等噪声行。
type RawRow []string

// Cell 返回第 i 个单元格（去除首尾空白）；越界返回空串。
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Spread 是让分盘口值。Pickem 表示平手盘（pick'em），此时 Value 恒为 0。
// 序列化约定：pick'em 在 CSV/JSON 中输出字面量 "pick'em"（所有运动一致）。
type Spread struct {
	Value  float64
	Pickem bool
}

// PeriodScore 是某一节/局/半场的双方得分。
// Label 由运动的列位表决定（1stQtr/1stPeriod/1stInn/1st 等）；
// 单元格缺失时对应指针为 nil（绝不写 0）。
type PeriodScore struct {
	Label string
	Away  *int
	Home  *int
}

// GameRecord 是规范化输出的基本单位：恰好由一对相邻原始行
//（客队行在前、主队行在后）派生而来，创建后不再修改。
//
// 可选字段用指针表达“未刊出”（nil），与数值 0 严格区分。
type GameRecord struct {
	Season int
	Date   string // YYYYMMDD

	AwayTeam string
	HomeTeam string

	Periods   []PeriodScore
	AwayFinal int
	HomeFinal int

	AwayOpenML  *int
	HomeOpenML  *int
	AwayCloseML *int
	HomeCloseML *int

	AwayOpenSpread  *Spread
	HomeOpenSpread  *Spread
	AwayCloseSpread *Spread
	HomeCloseSpread *Spread

	AwayCloseSpreadOdds *float64
	HomeCloseSpreadOdds *float64

	OpenOverUnder      *float64
	OpenOverUnderOdds  *float64
	CloseOverUnder     *float64
	CloseOverUnderOdds *float64

	Away2HSpread *Spread
	Home2HSpread *Spread
	Total2H      *float64
}
