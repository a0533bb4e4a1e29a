package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/John-Robertt/SBRO/internal/domain"
)

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }

func sampleGames() []domain.GameRecord {
	return []domain.GameRecord{
		{
			Season: 2022, Date: "20221203",
			AwayTeam: "Buffalo Bills", HomeTeam: "New England Patriots",
			Periods: []domain.PeriodScore{
				{Label: "1stQtr", Away: iptr(0), Home: iptr(7)},
				{Label: "2ndQtr", Away: iptr(7), Home: nil},
			},
			AwayFinal: 17, HomeFinal: 24,
			AwayCloseML:     iptr(115),
			HomeCloseML:     iptr(-135),
			HomeOpenSpread:  &domain.Spread{Value: -1.5},
			AwayOpenSpread:  &domain.Spread{Value: 1.5},
			HomeCloseSpread: &domain.Spread{Pickem: true},
			AwayCloseSpread: &domain.Spread{Pickem: true},
			OpenOverUnder:   fptr(43.5),
			CloseOverUnder:  fptr(44),
		},
	}
}

func TestGameTable_ColumnsAndCells(t *testing.T) {
	tab := GameTable(sampleGames())

	want := []string{
		"season", "date", "home_team", "away_team",
		"home_1stQtr", "away_1stQtr", "home_2ndQtr", "away_2ndQtr",
		"home_final", "away_final",
		"home_close_ml", "away_close_ml",
		"home_open_spread", "away_open_spread",
		"home_close_spread", "away_close_spread",
		"open_over_under", "close_over_under",
	}
	if len(tab.Columns) != len(want) {
		t.Fatalf("期望 %d 列，实际 %d：%v", len(want), len(tab.Columns), tab.Columns)
	}
	for i := range want {
		if tab.Columns[i] != want[i] {
			t.Fatalf("第 %d 列期望 %s，实际 %s", i, want[i], tab.Columns[i])
		}
	}

	row := tab.Rows[0]
	cell := func(name string) any {
		for i, c := range tab.Columns {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("缺少列 %s", name)
		return nil
	}
	if cell("season") != 2022 || cell("date") != "20221203" {
		t.Fatalf("基础列不符：%v / %v", cell("season"), cell("date"))
	}
	// 未刊出的节次得分必须是 null，不是 0。
	if cell("home_2ndQtr") != nil {
		t.Fatalf("期望 null，实际 %v", cell("home_2ndQtr"))
	}
	// pick'em 序列化为字面值，区别于 0。
	if cell("home_close_spread") != PickemLiteral {
		t.Fatalf("期望 %q，实际 %v", PickemLiteral, cell("home_close_spread"))
	}
	if cell("home_open_spread") != -1.5 {
		t.Fatalf("期望 -1.5，实际 %v", cell("home_open_spread"))
	}
}

func TestGameTable_Empty(t *testing.T) {
	tab := GameTable(nil)
	if len(tab.Rows) != 0 {
		t.Fatalf("空输入期望 0 行，实际 %d", len(tab.Rows))
	}
	if len(tab.Columns) == 0 {
		t.Fatalf("空输入仍需要强制列表头")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tab := GameTable(sampleGames())
	if err := WriteCSV(dir, "nfl.csv", tab); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	f, err := os.Open(filepath.Join(dir, "nfl.csv"))
	if err != nil {
		t.Fatalf("打开输出失败：%v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV 解析失败：%v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("期望表头 + 1 行，实际 %d 行", len(recs))
	}

	byName := map[string]string{}
	for i, col := range recs[0] {
		byName[col] = recs[1][i]
	}
	if byName["date"] != "20221203" || byName["home_final"] != "24" {
		t.Fatalf("强制字段不符：%v", byName)
	}
	if byName["home_close_spread"] != PickemLiteral {
		t.Fatalf("期望 %q，实际 %q", PickemLiteral, byName["home_close_spread"])
	}
	// 未刊出 => 空格子。
	if byName["home_2ndQtr"] != "" {
		t.Fatalf("期望空格子，实际 %q", byName["home_2ndQtr"])
	}
	if byName["open_over_under"] != "43.5" {
		t.Fatalf("期望 43.5，实际 %q", byName["open_over_under"])
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	tab := GameTable(sampleGames())
	if err := WriteJSON(dir, "nfl.json", tab); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "nfl.json"))
	if err != nil {
		t.Fatalf("读取输出失败：%v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		t.Fatalf("JSON 解析失败：%v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望 1 行，实际 %d", len(rows))
	}
	r := rows[0]
	if r["date"] != "20221203" {
		t.Fatalf("期望 20221203，实际 %v", r["date"])
	}
	// 未刊出 => JSON null。
	if v, ok := r["home_2ndQtr"]; !ok || v != nil {
		t.Fatalf("期望显式 null，实际 %v（存在=%v）", v, ok)
	}
	if r["home_close_spread"] != PickemLiteral {
		t.Fatalf("期望 %q，实际 %v", PickemLiteral, r["home_close_spread"])
	}
	// 临时文件不应残留。
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("残留临时文件：%s", e.Name())
		}
	}
}
