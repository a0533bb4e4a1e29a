package extract

import "testing"

func TestParseSpread(t *testing.T) {
	cases := []struct {
		in      string
		ceiling float64
		want    float64
		pickem  bool
		absent  bool
	}{
		{"3.5", 60, 3.5, false, false},
		{"7", 60, 7, false, false},
		{"PK", 60, 0, true, false},
		{"pick", 60, 0, true, false},
		{"NL", 60, 0, false, true},
		{"-", 60, 0, false, true},
		{"", 60, 0, false, true},
		// 并写半分：超过上限且末位为 5 => 末位解读为半分。
		{"65", 60, 6.5, false, false},
		// 超过上限但末位不是 5 => 无法解析。
		{"64", 60, 0, false, true},
	}
	for _, c := range cases {
		got := ParseSpread(c.in, c.ceiling)
		if c.absent {
			if got != nil {
				t.Fatalf("%q 期望 nil，实际 %+v", c.in, got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("%q 期望非 nil", c.in)
		}
		if got.Value != c.want || got.Pickem != c.pickem {
			t.Fatalf("%q 期望 (%v, pickem=%v)，实际 (%v, pickem=%v)",
				c.in, c.want, c.pickem, got.Value, got.Pickem)
		}
	}
}

func TestParseTotal_ConcatHalfPoint(t *testing.T) {
	// 无小数点、全数字、超出上限、末位为 5 => 末位是半分。
	got := ParseTotal("1085", 300)
	if got == nil || *got != 108.5 {
		t.Fatalf("期望 108.5，实际 %v", got)
	}
	got = ParseTotal("48.5", 80)
	if got == nil || *got != 48.5 {
		t.Fatalf("期望 48.5，实际 %v", got)
	}
	// 末位不是 5 的超限值无法解析。
	if got := ParseTotal("1084", 300); got != nil {
		t.Fatalf("末位非 5 的超限值期望 nil，实际 %v", *got)
	}
	// 半分折算后仍然超限的值无法解析。
	if got := ParseTotal("99995", 300); got != nil {
		t.Fatalf("折算后仍超限期望 nil，实际 %v", *got)
	}
	// pick'em 哨兵对大小分无意义。
	if got := ParseTotal("PK", 80); got != nil {
		t.Fatalf("PK 对大小分期望 nil，实际 %v", *got)
	}
}

func TestParseMoneyline(t *testing.T) {
	if got := ParseMoneyline("-180"); got == nil || *got != -180 {
		t.Fatalf("期望 -180，实际 %v", got)
	}
	if got := ParseMoneyline("165"); got == nil || *got != 165 {
		t.Fatalf("期望 165，实际 %v", got)
	}
	if got := ParseMoneyline("NL"); got != nil {
		t.Fatalf("NL 期望 nil，实际 %v", *got)
	}
	if got := ParseMoneyline("a110"); got != nil {
		t.Fatalf("a110 期望 nil，实际 %v", *got)
	}
}

func TestParseScoreAndFinal(t *testing.T) {
	if got := ParseScore("17"); got == nil || *got != 17 {
		t.Fatalf("期望 17，实际 %v", got)
	}
	if got := ParseScore(""); got != nil {
		t.Fatalf("空得分期望 nil，实际 %v", *got)
	}
	if got := ParseScore("x"); got != nil {
		t.Fatalf("非数字得分期望 nil，实际 %v", *got)
	}
	if _, err := ParseFinal("24"); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if _, err := ParseFinal(""); err == nil {
		t.Fatalf("终场比分缺失期望错误")
	}
}

func TestMakeDate(t *testing.T) {
	cases := []struct {
		tok        string
		season     int
		start, end int
		want       string
		wantErr    bool
	}{
		// 赛季窗口内归起始年。
		{"1203", 2022, 8, 12, "20221203", false},
		// 窗口外回卷到次年（跨年赛季）。
		{"0108", 2022, 8, 12, "20230108", false},
		// 3 位记号补零。
		{"904", 2021, 8, 12, "20210904", false},
		// mlb 窗口 3-10：赛季不跨年。
		{"0715", 2019, 3, 10, "20190715", false},
		{"1028", 2019, 3, 10, "20191028", false},
		{"13", 2022, 8, 12, "", true},
		{"1332", 2022, 8, 12, "", true},
		{"0000", 2022, 8, 12, "", true},
	}
	for _, c := range cases {
		got, err := MakeDate(c.tok, c.season, c.start, c.end)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q 期望错误", c.tok)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q 不期望错误：%v", c.tok, err)
		}
		if got != c.want {
			t.Fatalf("%q 期望 %s，实际 %s", c.tok, c.want, got)
		}
	}
}
