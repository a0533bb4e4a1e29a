package table

import (
	"testing"

	"github.com/John-Robertt/SBRO/internal/domain"
)

// 测试用校验：两行都至少 2 格且首格非空。
func minCheck(away, home domain.RawRow) bool {
	return len(away) >= 2 && len(home) >= 2 &&
		away.Cell(0) != "" && home.Cell(0) != ""
}

func row(cells ...string) domain.RawRow { return domain.RawRow(cells) }

func TestPairs_EvenRows(t *testing.T) {
	rows := []domain.RawRow{
		row("a1", "x"), row("h1", "x"),
		row("a2", "x"), row("h2", "x"),
	}
	got := Pairs(rows, minCheck)
	if len(got) != 2 {
		t.Fatalf("期望 2 对，实际 %d", len(got))
	}
	// 配对必须保持文档顺序。
	if got[0].Away.Cell(0) != "a1" || got[0].Home.Cell(0) != "h1" {
		t.Fatalf("第 1 对顺序不符：%v / %v", got[0].Away, got[0].Home)
	}
	if got[1].Away.Cell(0) != "a2" || got[1].Home.Cell(0) != "h2" {
		t.Fatalf("第 2 对顺序不符：%v / %v", got[1].Away, got[1].Home)
	}
}

func TestPairs_SkipsNoiseRows(t *testing.T) {
	rows := []domain.RawRow{
		row(""),            // 表头噪声：前进 1
		row("a1", "x"), row("h1", "x"),
		row("", "sep"),     // 分隔行
		row("a2", "x"), row("h2", "x"),
	}
	got := Pairs(rows, minCheck)
	if len(got) != 2 {
		t.Fatalf("期望跳过噪声后得到 2 对，实际 %d", len(got))
	}
}

func TestPairs_TrailingUnpairedDropped(t *testing.T) {
	rows := []domain.RawRow{
		row("a1", "x"), row("h1", "x"),
		row("a2", "x"), // 落单：丢弃，不算错误
	}
	got := Pairs(rows, minCheck)
	if len(got) != 1 {
		t.Fatalf("期望 1 对，实际 %d", len(got))
	}
}

func TestPairs_Empty(t *testing.T) {
	if got := Pairs(nil, minCheck); len(got) != 0 {
		t.Fatalf("空输入期望 0 对，实际 %d", len(got))
	}
	if got := Pairs([]domain.RawRow{row("a1", "x")}, minCheck); len(got) != 0 {
		t.Fatalf("单行输入期望 0 对，实际 %d", len(got))
	}
}
