package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ErrCodeNotFound 表示配置引用的文件不存在（翻译表/日期清单）。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// DefaultMinYear/DefaultMaxYear 是站点归档的可用年份边界。
	DefaultMinYear = 2007
	DefaultMaxYear = 2023

	DefaultOutputDir    = "data"
	DefaultTranslations = "config/translated.json"
	DefaultFormat       = "csv"
	DefaultDatesFile    = "NCAA-2ndHalf-dates.yaml"
)

// Sports 是支持的运动枚举；ncaab2h 是唯一的实时来源。
var Sports = []string{"nfl", "nba", "nhl", "mlb", "ncaab", "ncaab2h"}

// CLIArgs 只包含 CLI 暴露的入口，并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --format 必须能覆盖 sbro.json 的设置。
type CLIArgs struct {
	Sport string
	Out   string

	Start    int
	StartSet bool
	End      int
	EndSet   bool

	Format    string
	FormatSet bool

	DatesFile    string
	DatesFileSet bool
}

// FileConfig 对应 sbro.json 的解析结构（cwd 下，可选）。
type FileConfig struct {
	OutputDir    string       `json:"output_dir"`
	Translations string       `json:"translations"`
	Proxy        *ProxyConfig `json:"proxy"`
	MinYear      int          `json:"min_year"`
	MaxYear      int          `json:"max_year"`
	Cache        *bool        `json:"cache"`
	DatesFile    string       `json:"dates_file"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EffectiveConfig 是合并并校验后的最终配置（实现层直接消费，
// 不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Root 是运行根目录（cwd 的绝对路径）；缓存落在 <Root>/cache/ 下。
	Root string

	Sport string
	Start int
	End   int

	Out    string
	Format string

	OutputDir    string
	Translations string
	ProxyURL     string
	Cache        bool
	DatesFile    string

	MinYear int
	MaxYear int

	// Warnings 是非致命的配置提示（如 ncaab2h 忽略年份），由 CLI 层呈现。
	Warnings []string
}

// Live 表示该运行走实时抓取路径（日期清单驱动，不用年份范围）。
func (c EffectiveConfig) Live() bool { return c.Sport == "ncaab2h" }

// OutFile 返回带扩展名的输出文件名。
func (c EffectiveConfig) OutFile() string { return c.Out + "." + c.Format }

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到文件 %q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			if e.Path != "" {
				return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
			}
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return fmt.Sprintf("%s：配置无效", e.Code)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 <cwd>/sbro.json（可选）并与 CLI 参数合并校验。
//
// 覆盖优先级（固定）：CLI > sbro.json > 内置默认。
// 校验失败是启动级致命错误；赛季级失败属于运行报告，不在这里出现。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, "sbro.json")
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return merge(cwdAbs, cli, fc, cfgPath)
}

func merge(cwdAbs string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	invalid := func(err error) (EffectiveConfig, error) {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	sport := strings.ToLower(strings.TrimSpace(cli.Sport))
	if err := validateSport(sport); err != nil {
		return invalid(err)
	}

	out := strings.TrimSpace(cli.Out)
	if out == "" {
		return invalid(fmt.Errorf("--out 不能为空"))
	}
	if strings.ContainsAny(out, `/\`) {
		return invalid(fmt.Errorf("--out 是文件名而不是路径：%q", out))
	}

	format := DefaultFormat
	if cli.FormatSet {
		format = strings.ToLower(strings.TrimSpace(cli.Format))
	}
	if format != "csv" && format != "json" {
		return invalid(fmt.Errorf("format 只能是 csv 或 json，实际是 %q", format))
	}

	minYear := fc.MinYear
	if minYear == 0 {
		minYear = DefaultMinYear
	}
	maxYear := fc.MaxYear
	if maxYear == 0 {
		maxYear = DefaultMaxYear
	}
	if minYear > maxYear {
		return invalid(fmt.Errorf("min_year(%d) 大于 max_year(%d)", minYear, maxYear))
	}

	eff := EffectiveConfig{
		Root:    cwdAbs,
		Sport:   sport,
		Out:     out,
		Format:  format,
		Cache:   true,
		MinYear: minYear,
		MaxYear: maxYear,
	}
	if fc.Cache != nil {
		eff.Cache = *fc.Cache
	}

	eff.OutputDir = absCleanFrom(cwdAbs, firstNonEmpty(fc.OutputDir, DefaultOutputDir))
	eff.Translations = absCleanFrom(cwdAbs, firstNonEmpty(fc.Translations, DefaultTranslations))

	if fc.Proxy != nil {
		proxyURL := strings.TrimSpace(fc.Proxy.URL)
		if proxyURL != "" {
			u, err := url.Parse(proxyURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return invalid(fmt.Errorf("proxy.url 无效：%q", proxyURL))
			}
			eff.ProxyURL = proxyURL
		}
	}

	if eff.Live() {
		// 实时来源由日期清单驱动：年份参数忽略（提示但不报错）。
		if cli.StartSet || cli.EndSet {
			eff.Warnings = append(eff.Warnings, "ncaab2h 由日期清单驱动，--start/--end 被忽略")
		}
		datesFile := firstNonEmpty(cli.DatesFile, fc.DatesFile, DefaultDatesFile)
		eff.DatesFile = absCleanFrom(cwdAbs, datesFile)
		if _, err := os.Stat(eff.DatesFile); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: eff.DatesFile, Err: err}
		}
		return eff, nil
	}

	if cli.DatesFileSet {
		eff.Warnings = append(eff.Warnings, "--dates-file 只对 ncaab2h 有效，被忽略")
	}
	if !cli.StartSet || !cli.EndSet {
		return invalid(fmt.Errorf("该运动必须指定 --start 与 --end"))
	}
	if cli.Start < minYear || cli.End > maxYear {
		return invalid(fmt.Errorf("年份必须落在 [%d, %d]，实际 %d-%d", minYear, maxYear, cli.Start, cli.End))
	}
	if cli.Start > cli.End {
		return invalid(fmt.Errorf("起始年份 %d 晚于结束年份 %d", cli.Start, cli.End))
	}
	eff.Start, eff.End = cli.Start, cli.End
	return eff, nil
}

func validateSport(s string) error {
	if s == "" {
		return fmt.Errorf("--sport 不能为空")
	}
	for _, known := range Sports {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("未知运动 %q（可选：%s）", s, strings.Join(Sports, "/"))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
