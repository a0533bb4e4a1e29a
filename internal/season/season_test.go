package season

import (
	"reflect"
	"testing"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/extract"
)

type mapTr map[string]string

func (m mapTr) Full(raw string) string {
	if v, ok := m[raw]; ok {
		return v
	}
	return raw
}

func testLayout() extract.Layout {
	return extract.Layout{
		Sport:   "nfl",
		Style:   extract.StyleSpreadTotal,
		DateCol: 0, TeamCol: 3, VHCol: -1,
		Periods:  []extract.PeriodCol{{Label: "1st", Col: 4}},
		FinalCol: 5,
		OpenCol:  6, CloseCol: 7, MLCol: 8, H2Col: -1,
		OpenMLCol: -1, CloseMLCol: -1,
		CloseSpreadCol: -1, CloseSpreadOddsCol: -1,
		OpenOUCol: -1, OpenOUOddsCol: -1, CloseOUCol: -1, CloseOUOddsCol: -1,
		SeasonStartMonth: 8, SeasonEndMonth: 12,
		SpreadCeiling: 60, TotalCeiling: 80,
	}
}

func sampleRows() []domain.RawRow {
	return []domain.RawRow{
		{"Date", "Rot", "VH", "Team", "1st", "Final", "Open", "Close", "ML"}, // 表头
		{"1203", "105", "V", "Buffalo", "7", "17", "1.5", "2.5", "115"},
		{"1203", "106", "H", "NewEngland", "7", "24", "43.5", "44", "-135"},
		{"1204", "107", "V", "Dallas", "3", "20", "41", "42", "-120"},
		{"1204", "108", "H", "Washington", "10", "27", "3", "3.5", "105"},
	}
}

func TestAssemble(t *testing.T) {
	res, err := Assemble(testLayout(), mapTr{"Buffalo": "Buffalo Bills"}, 2022, sampleRows())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(res.Games) != 2 || res.Dropped != 0 {
		t.Fatalf("期望 2 场 0 丢弃，实际 %d 场 %d 丢弃", len(res.Games), res.Dropped)
	}
	if res.Games[0].AwayTeam != "Buffalo Bills" || res.Games[0].Date != "20221203" {
		t.Fatalf("首场记录不符：%+v", res.Games[0])
	}
	// 第二场：让分挂在主队行（3 < 41 不成立 => 41 > 3，让分在主队行），主队让球。
	if res.Games[1].HomeOpenSpread == nil || res.Games[1].HomeOpenSpread.Value != -3 {
		t.Fatalf("期望主队开盘让分 -3，实际 %+v", res.Games[1].HomeOpenSpread)
	}
}

func TestAssemble_DropsBadPair(t *testing.T) {
	rows := sampleRows()
	rows[2][5] = "" // 主队终场比分缺失：该对丢弃
	res, err := Assemble(testLayout(), mapTr{}, 2022, rows)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(res.Games) != 1 || res.Dropped != 1 {
		t.Fatalf("期望 1 场 1 丢弃，实际 %d 场 %d 丢弃", len(res.Games), res.Dropped)
	}
}

func TestAssemble_TruncatedOptionalColumns(t *testing.T) {
	// xlsx 读取会裁掉行尾的空单元格：只缺可选盘口列的赛季必须正常装配，
	// 缺的字段落为 nil，而不是整页判成结构性失败。
	l := extract.Layout{
		Sport:   "mlb",
		Style:   extract.StyleMoneyline,
		DateCol: 0, TeamCol: 3, VHCol: -1,
		Periods: []extract.PeriodCol{
			{Label: "1stInn", Col: 5}, {Label: "2ndInn", Col: 6}, {Label: "3rdInn", Col: 7},
			{Label: "4thInn", Col: 8}, {Label: "5thInn", Col: 9}, {Label: "6thInn", Col: 10},
			{Label: "7thInn", Col: 11}, {Label: "8thInn", Col: 12}, {Label: "9thInn", Col: 13},
		},
		FinalCol: 14,
		OpenCol:  -1, CloseCol: -1, MLCol: -1, H2Col: -1,
		OpenMLCol: 15, CloseMLCol: 16,
		CloseSpreadCol: 17, CloseSpreadOddsCol: 18,
		OpenOUCol: 19, OpenOUOddsCol: 20, CloseOUCol: 21, CloseOUOddsCol: 22,
		SeasonStartMonth: 3, SeasonEndMonth: 10,
		SpreadCeiling: 6, TotalCeiling: 20,
	}
	rows := []domain.RawRow{
		{"0415", "901", "V", "BOS", "", "0", "1", "0", "2", "0", "0", "0", "1", "0", "4", "120", "125"},
		{"0415", "902", "H", "NYY", "", "1", "0", "0", "0", "2", "0", "0", "0", "0", "3", "-140", "-145"},
	}

	res, err := Assemble(l, mapTr{}, 2023, rows)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(res.Games) != 1 || res.Dropped != 0 {
		t.Fatalf("期望 1 场 0 丢弃，实际 %d 场 %d 丢弃", len(res.Games), res.Dropped)
	}
	g := res.Games[0]
	if g.Date != "20230415" || g.AwayFinal != 4 || g.HomeFinal != 3 {
		t.Fatalf("记录不符：%+v", g)
	}
	if g.AwayCloseML == nil || *g.AwayCloseML != 125 {
		t.Fatalf("期望客队收盘 ML 125，实际 %v", g.AwayCloseML)
	}
	if g.CloseOverUnder != nil || g.HomeCloseSpread != nil {
		t.Fatalf("被裁掉的可选列必须为 nil：%v / %+v", g.CloseOverUnder, g.HomeCloseSpread)
	}
}

func TestAssemble_NoPairsIsStructuralError(t *testing.T) {
	rows := []domain.RawRow{
		{"Date", "Rot", "VH", "Team"},
		{"noise"},
	}
	if _, err := Assemble(testLayout(), mapTr{}, 2022, rows); err == nil {
		t.Fatalf("期望结构性错误")
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	a, err := Assemble(testLayout(), mapTr{}, 2022, sampleRows())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	b, err := Assemble(testLayout(), mapTr{}, 2022, sampleRows())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("相同输入必须产出相同结果")
	}
}
