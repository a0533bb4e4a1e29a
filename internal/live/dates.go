// Package live 抓取站点 JS 渲染的 NCAA 篮球下半场让分实时页。
//
// 归档五个运动走静态表格；这个页面没有归档版本，只能用 headless
// 浏览器渲染后在页面里取数。页面 JSON 到行的转换是纯函数，可离线测试。
package live

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadDates 读取日期清单文件（YAML 列表，元素为 YYYY-MM-DD）。
// 日期格式在装载时整体校验：一个坏日期让整个文件失败，避免半截运行。
func LoadDates(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var dates []string
	if err := yaml.Unmarshal(b, &dates); err != nil {
		return nil, fmt.Errorf("日期清单不是 YAML 列表：%w", err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("日期清单为空：%s", path)
	}
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("非法日期 %q（要求 YYYY-MM-DD）", d)
		}
	}
	return dates, nil
}
