// Package sport 把“站点差异”限制在本包内部；核心流程只依赖统一的
// Source 接口与稳定的 Layout/RawRow。
package sport

import (
	"fmt"
	"strings"

	"github.com/John-Robertt/SBRO/internal/domain"
	"github.com/John-Robertt/SBRO/internal/extract"
)

// Source 描述一个运动的赛季归档来源。
//
// 约束：
// - SeasonURL 只做 URL 构造，不发请求
// - Rows 必须是纯函数：相同字节输入 => 相同行输出
// - 缓存/重试/限速由核心 http/cache 层统一实现
type Source interface {
	Name() string
	Layout(year int) extract.Layout
	SeasonURL(year int) string
	Rows(content []byte) ([]domain.RawRow, error)
}

// Registry 是 source 的只读注册表（按 name 索引）。
// 用 map 做 O(1) 查找；运动数量极小，保持简单即可。
type Registry struct {
	byName map[string]Source
}

func NewRegistry(sources ...Source) (Registry, error) {
	byName := make(map[string]Source, len(sources))
	for _, s := range sources {
		if s == nil {
			return Registry{}, fmt.Errorf("source 不能为空")
		}
		name := strings.ToLower(strings.TrimSpace(s.Name()))
		if name == "" {
			return Registry{}, fmt.Errorf("source.Name 不能为空")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("重复的 source：%q", name)
		}
		byName[name] = s
	}
	return Registry{byName: byName}, nil
}

func (r Registry) Get(name string) (Source, bool) {
	if r.byName == nil {
		return nil, false
	}
	name = strings.ToLower(strings.TrimSpace(name))
	s, ok := r.byName[name]
	return s, ok
}
