// Package season 把单个赛季页面的原始行装配为比赛记录列表。
package season

import (
	"fmt"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/extract"
	"github.com/John-Robertt/SBRO/internal/table"
)

// Result 是一个赛季的装配产物。
type Result struct {
	Games []domain.GameRecord
	// Dropped 是通过配对但强制字段解析失败被丢弃的对数。
	Dropped int
}

// Assemble 把原始行序列装配为按文档顺序排列的比赛记录。
// 纯函数：相同行输入产出完全相同的结果，赛季之间不保留状态。
//
// 单对失败（强制字段缺失/无效）只计入 Dropped；
// 整页一对都配不出来才返回结构性错误。
func Assemble(l extract.Layout, tr extract.Translator, year int, rows []domain.RawRow) (Result, error) {
	l = l.ForSeason(year)
	pairs := table.Pairs(rows, l.PairCheck())
	if len(pairs) == 0 {
		return Result{}, fmt.Errorf("页面没有可识别的比赛行（共 %d 行）", len(rows))
	}

	res := Result{Games: make([]domain.GameRecord, 0, len(pairs))}
	for _, p := range pairs {
		g, err := extract.Extract(l, tr, year, p)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Games = append(res.Games, g)
	}
	return res, nil
}
