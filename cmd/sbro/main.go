package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/John-Robertt/SBRO/internal/app/run"
	"github.com/John-Robertt/SBRO/internal/config"
	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/live"
	"github.com/John-Robertt/SBRO/internal/sport"
	"github.com/John-Robertt/SBRO/internal/translate"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	switch args[0] {
	case "run":
		if code := runCmd(args[1:]); code != 0 {
			os.Exit(code)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printRunUsage()
			return 0
		}
	}

	cli, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printRunUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, cli)
	if err != nil {
		emitReport(reportForConfigError(cli, err))
		return 1
	}
	for _, w := range eff.Warnings {
		fmt.Fprintf(os.Stderr, "提示：%s\n", w)
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	var rr domain.RunReport
	if eff.Live() {
		rr = run.ExecuteLive(context.Background(), eff, live.Scraper{}, obs)
	} else {
		tables, err := translate.Load(eff.Translations)
		if err != nil {
			emitReport(reportForConfigError(cli, translationsError(eff.Translations, err)))
			return 1
		}
		reg, err := sport.Defaults()
		if err != nil {
			fmt.Fprintf(os.Stderr, "初始化 source registry 失败：%v\n", err)
			return 1
		}
		rr = run.Execute(context.Background(), eff, reg, tables, obs)
	}

	emitReport(rr)
	if interactive && rr.Output != "" {
		fmt.Fprintf(progressW, "out: %s\n", rr.Output)
	}
	if rr.Summary.Failed == 0 {
		return 0
	}
	return 1
}

// translationsError 把翻译表加载失败映射为带 error_code 的配置错误。
func translationsError(path string, err error) error {
	code := config.ErrCodeInvalid
	if os.IsNotExist(err) {
		code = config.ErrCodeNotFound
	}
	return &config.Error{Code: code, Path: path, Err: err}
}

func parseRunArgs(args []string) (config.CLIArgs, error) {
	cli := config.CLIArgs{}

	// value 读取 "--flag value" 或 "--flag=value" 两种写法。
	value := func(i *int, name, inline string, hasInline bool) (string, error) {
		if hasInline {
			return inline, nil
		}
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s 需要一个值", name)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		a := args[i]
		name := a
		inline := ""
		hasInline := false
		if j := strings.IndexByte(a, '='); j >= 0 && strings.HasPrefix(a, "--") {
			name, inline, hasInline = a[:j], a[j+1:], true
		}

		switch name {
		case "--sport":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			cli.Sport = v
		case "--out":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			cli.Out = v
		case "--start":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return config.CLIArgs{}, fmt.Errorf("--start 必须是年份，实际是 %q", v)
			}
			cli.Start, cli.StartSet = n, true
		case "--end":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return config.CLIArgs{}, fmt.Errorf("--end 必须是年份，实际是 %q", v)
			}
			cli.End, cli.EndSet = n, true
		case "--format":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			cli.Format, cli.FormatSet = v, true
		case "--dates-file":
			v, err := value(&i, name, inline, hasInline)
			if err != nil {
				return config.CLIArgs{}, err
			}
			cli.DatesFile, cli.DatesFileSet = v, true
		default:
			return config.CLIArgs{}, fmt.Errorf("未知参数 %q", a)
		}
	}

	return cli, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  sbro run --sport <名称> --out <文件名> [--start 年份 --end 年份] [--format csv|json] [--dates-file 路径]

命令：
  run    抓取历史赔率归档并写出 CSV/JSON

使用 "sbro run --help" 查看详细说明。
`)
}

func printRunUsage() {
	fmt.Fprint(os.Stdout, `用法：
  sbro run --sport <名称> --out <文件名> [--start 年份 --end 年份] [--format csv|json] [--dates-file 路径]

参数：
  --sport       运动名称：nfl|nba|nhl|mlb|ncaab|ncaab2h
  --out         输出文件名（不含扩展名、不含路径；目录由 sbro.json 的 output_dir 决定）
  --start/--end 赛季年份区间（归档来源必填；ncaab2h 忽略）
  --format      输出格式 csv|json（默认 csv）
  --dates-file  ncaab2h 的日期清单（YAML，默认 NCAA-2ndHalf-dates.yaml）
  -h, --help    显示帮助
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		fmt.Fprintf(os.Stdout, "完成：processed=%d skipped=%d failed=%d games=%d dropped_pairs=%d\n",
			rr.Summary.Processed, rr.Summary.Skipped, rr.Summary.Failed,
			rr.Summary.Games, rr.Summary.DroppedPairs,
		)
		if rr.Summary.Skipped > 0 || rr.Summary.Failed > 0 {
			for _, s := range rr.Seasons {
				if s.Status == domain.StatusProcessed {
					continue
				}
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", seasonKey(s), s.ErrorCode, s.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（日志/摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：processed=%d skipped=%d failed=%d games=%d\n",
		rr.Summary.Processed, rr.Summary.Skipped, rr.Summary.Failed, rr.Summary.Games,
	)
}

func seasonKey(s domain.SeasonResult) string {
	if s.Date != "" {
		return s.Date
	}
	if s.Season != 0 {
		return strconv.Itoa(s.Season)
	}
	return "<run>"
}

func reportForConfigError(cli config.CLIArgs, err error) domain.RunReport {
	now := time.Now().UTC()
	code := config.Code(err)
	if code == "" {
		code = config.ErrCodeInvalid
	}
	rr := domain.RunReport{
		Sport:      strings.ToLower(strings.TrimSpace(cli.Sport)),
		Format:     strings.ToLower(strings.TrimSpace(cli.Format)),
		StartedAt:  now,
		FinishedAt: now,
		Seasons: []domain.SeasonResult{{
			Status:    domain.StatusFailed,
			ErrorCode: code,
			ErrorMsg:  err.Error(),
		}},
	}
	rr.Finalize()
	return rr
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}
