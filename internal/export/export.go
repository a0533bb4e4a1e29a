// Package export 把比赛记录序列化为 CSV / 行式 JSON 文件。
//
// 列顺序是固定的规范顺序；表头取“至少一条记录刊出过”的列的并集，
// 未刊出单元格在 CSV 里是空格子、在 JSON 里是 null。
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/infra/fsx"
)

// PickemLiteral 是平手盘在输出里的字面值（区别于 0 与 null）。
const PickemLiteral = "pick'em"

// Table 是序列化前的中间形态：有序列名 + 可空单元格。
// 单元格类型只会是 nil、string、int、float64。
type Table struct {
	Columns []string
	Rows    [][]any
}

type column struct {
	name string
	get  func(g domain.GameRecord) any
}

func spreadCell(s *domain.Spread) any {
	if s == nil {
		return nil
	}
	if s.Pickem {
		return PickemLiteral
	}
	return s.Value
}

func intCell(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatCell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// GameTable 按规范列顺序把记录列表装配为 Table。
// 节次列来自记录自带的标签（Qtr/Period/Inn/半场，随运动而定）。
func GameTable(games []domain.GameRecord) Table {
	cols := []column{
		{"season", func(g domain.GameRecord) any { return g.Season }},
		{"date", func(g domain.GameRecord) any { return g.Date }},
		{"home_team", func(g domain.GameRecord) any { return g.HomeTeam }},
		{"away_team", func(g domain.GameRecord) any { return g.AwayTeam }},
	}
	if len(games) > 0 {
		for i, p := range games[0].Periods {
			i := i
			cols = append(cols,
				column{"home_" + p.Label, func(g domain.GameRecord) any { return intCell(g.Periods[i].Home) }},
				column{"away_" + p.Label, func(g domain.GameRecord) any { return intCell(g.Periods[i].Away) }},
			)
		}
	}
	cols = append(cols,
		column{"home_final", func(g domain.GameRecord) any { return g.HomeFinal }},
		column{"away_final", func(g domain.GameRecord) any { return g.AwayFinal }},
	)

	// 盘口列是按运动可选的：只有至少一条记录刊出过才进入表头。
	optional := []column{
		{"home_open_ml", func(g domain.GameRecord) any { return intCell(g.HomeOpenML) }},
		{"away_open_ml", func(g domain.GameRecord) any { return intCell(g.AwayOpenML) }},
		{"home_close_ml", func(g domain.GameRecord) any { return intCell(g.HomeCloseML) }},
		{"away_close_ml", func(g domain.GameRecord) any { return intCell(g.AwayCloseML) }},
		{"home_open_spread", func(g domain.GameRecord) any { return spreadCell(g.HomeOpenSpread) }},
		{"away_open_spread", func(g domain.GameRecord) any { return spreadCell(g.AwayOpenSpread) }},
		{"home_close_spread", func(g domain.GameRecord) any { return spreadCell(g.HomeCloseSpread) }},
		{"away_close_spread", func(g domain.GameRecord) any { return spreadCell(g.AwayCloseSpread) }},
		{"home_close_spread_odds", func(g domain.GameRecord) any { return floatCell(g.HomeCloseSpreadOdds) }},
		{"away_close_spread_odds", func(g domain.GameRecord) any { return floatCell(g.AwayCloseSpreadOdds) }},
		{"home_2H_spread", func(g domain.GameRecord) any { return spreadCell(g.Home2HSpread) }},
		{"away_2H_spread", func(g domain.GameRecord) any { return spreadCell(g.Away2HSpread) }},
		{"2H_total", func(g domain.GameRecord) any { return floatCell(g.Total2H) }},
		{"open_over_under", func(g domain.GameRecord) any { return floatCell(g.OpenOverUnder) }},
		{"open_over_under_odds", func(g domain.GameRecord) any { return floatCell(g.OpenOverUnderOdds) }},
		{"close_over_under", func(g domain.GameRecord) any { return floatCell(g.CloseOverUnder) }},
		{"close_over_under_odds", func(g domain.GameRecord) any { return floatCell(g.CloseOverUnderOdds) }},
	}
	for _, c := range optional {
		present := false
		for _, g := range games {
			if c.get(g) != nil {
				present = true
				break
			}
		}
		if present {
			cols = append(cols, c)
		}
	}

	t := Table{
		Columns: make([]string, len(cols)),
		Rows:    make([][]any, 0, len(games)),
	}
	for i, c := range cols {
		t.Columns[i] = c.name
	}
	for _, g := range games {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = c.get(g)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WriteCSV 原子写出 CSV（表头 + 数据行）。
func WriteCSV(dir, name string, t Table) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range rec {
			rec[i] = formatCell(row[i])
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(dir, name, buf.Bytes())
}

// WriteJSON 原子写出行式 JSON（对象数组，每行一个字段映射）。
func WriteJSON(dir, name string, t Table) error {
	rows := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			m[col] = row[i]
		}
		rows = append(rows, m)
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return fsx.WriteFileAtomicReplace(dir, name, b)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
