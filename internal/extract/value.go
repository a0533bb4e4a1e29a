package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/John-Robertt/SBRO/internal/domain"
)

// 源站在盘口单元格里混用的“无效值”写法。
// 语义统一为“未刊出”（null），绝不折算成 0。
var absentTokens = map[string]struct{}{
	"":      {},
	"-":     {},
	"nl":    {}, // no line
	"a100":  {},
	"a105":  {},
	"a110":  {},
	".5+03": {},
	".5ev":  {},
}

func isAbsent(s string) bool {
	_, ok := absentTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// isPickem 识别平手盘哨兵（"PK"/"pick"，大小写不敏感）。
func isPickem(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pk", "pick":
		return true
	}
	return false
}

// parseLine 解析一个盘口数值单元格。
//
// 规则（按优先级）：
// 1) 含小数点：按十进制小数解析
// 2) 全数字且不超过 ceiling：按整数解析
// 3) 全数字、超过 ceiling 且末位为 5：按“末位为半分”的并写格式解析（1085 -> 108.5）
// 其余情况视为无法解析。
func parseLine(s string, ceiling float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ".") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	neg := false
	digits := s
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	}
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if ceiling > 0 && n > ceiling {
		if !strings.HasSuffix(digits, "5") || len(digits) < 2 {
			return 0, false
		}
		head, err := strconv.ParseFloat(digits[:len(digits)-1], 64)
		if err != nil {
			return 0, false
		}
		n = head + 0.5
		if ceiling > 0 && n > ceiling {
			return 0, false
		}
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseSpread 解析让分单元格；无法解析（含未刊出）返回 nil。
func ParseSpread(s string, ceiling float64) *domain.Spread {
	if isAbsent(s) {
		return nil
	}
	if isPickem(s) {
		return &domain.Spread{Value: 0, Pickem: true}
	}
	v, ok := parseLine(s, ceiling)
	if !ok {
		return nil
	}
	return &domain.Spread{Value: v}
}

// ParseTotal 解析大小分单元格；无法解析返回 nil。
func ParseTotal(s string, ceiling float64) *float64 {
	if isAbsent(s) || isPickem(s) {
		return nil
	}
	v, ok := parseLine(s, ceiling)
	if !ok {
		return nil
	}
	return &v
}

// ParseOdds 解析水位单元格（如 -110、+105、ev 之外的普通数值）。
func ParseOdds(s string) *float64 {
	if isAbsent(s) || isPickem(s) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseMoneyline 解析 money line：前导负号表示让球方（favorite），
// 裸正整数表示受让方（underdog）；缺失返回 nil。
func ParseMoneyline(s string) *int {
	if isAbsent(s) || isPickem(s) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// ParseScore 解析可选的节次得分；无法解析返回 nil（绝不写 0）。
func ParseScore(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseFinal 解析终场比分；终场比分是强制字段，失败即整对丢弃。
func ParseFinal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("终场比分不是整数：%q", s)
	}
	return n, nil
}

// MakeDate 把 3-4 位的月日记号（如 "1203"、"904"）与赛季年份组装成 YYYYMMDD。
// 月份落在 [startMonth, endMonth] 窗口内归赛季起始年，否则归次年。
func MakeDate(tok string, season, startMonth, endMonth int) (string, error) {
	tok = strings.TrimSpace(tok)
	if len(tok) == 3 {
		tok = "0" + tok
	}
	if len(tok) != 4 {
		return "", fmt.Errorf("日期记号必须是 3-4 位数字：%q", tok)
	}
	month, err := strconv.Atoi(tok[:2])
	if err != nil {
		return "", fmt.Errorf("日期记号无效：%q", tok)
	}
	day, err := strconv.Atoi(tok[2:])
	if err != nil {
		return "", fmt.Errorf("日期记号无效：%q", tok)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("日期记号超出范围：%q", tok)
	}
	year := season
	if month < startMonth || month > endMonth {
		year = season + 1
	}
	return fmt.Sprintf("%04d%02d%02d", year, month, day), nil
}
