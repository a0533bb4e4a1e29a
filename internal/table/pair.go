// Package table 把一个赛季页面抓到的原始行序列重组为比赛配对。
//
// 源站约定：每场比赛恰好占两行（客队行在前，主队行在后），
// 行序严格等于文档自上而下的顺序。
package table

import "github.com/John-Robertt/SBRO/internal/domain"

// PairCheck 判断 (away, home) 两行能否构成一场比赛的有效配对。
// 具体校验规则（最小单元格数、队名非空、V/H 指示等）由运动的列位表提供。
type PairCheck func(away, home domain.RawRow) bool

// Pair 是一场比赛对应的两行原始记录。
type Pair struct {
	Away domain.RawRow
	Home domain.RawRow
}

// Pairs 用游标扫描 rows：当前行与下一行通过校验则产出配对并前进 2；
// 否则把当前行当作噪声（表头/分隔行）丢弃并前进 1。
//
// 末尾落单的行（总行数为奇数，或最后一行残缺）直接丢弃，不算错误。
// 纯函数：赛季之间不保留任何状态。
func Pairs(rows []domain.RawRow, check PairCheck) []Pair {
	out := make([]Pair, 0, len(rows)/2)
	for i := 0; i+1 < len(rows); {
		if check(rows[i], rows[i+1]) {
			out = append(out, Pair{Away: rows[i], Home: rows[i+1]})
			i += 2
			continue
		}
		i++
	}
	return out
}
