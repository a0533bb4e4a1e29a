// Package translate 把站点使用的队名短写翻译为规范全名。
//
// 映射表在进程启动时加载一次（config/translated.json），按运动分组。
// 站点会不定期引入新的短写，映射表“已知不完整”是设计前提：
// 查不到时原样透传输入，绝不报错。
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Map 是单个运动的 短写 -> 全名 映射。
type Map map[string]string

// Full 返回 raw 对应的规范全名；查不到时原样返回 raw（fail open）。
func (m Map) Full(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if full, ok := m[raw]; ok {
		return full
	}
	return raw
}

// Tables 是全部运动的映射表集合。
type Tables struct {
	bySport map[string]Map
}

// Sport 返回指定运动的映射；该运动没有映射时返回空 Map（同样 fail open）。
func (t Tables) Sport(name string) Map {
	m, ok := t.bySport[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Map{}
	}
	return m
}

// Load 读取并解析翻译映射文件。
//
// 文件格式：{"nfl": {"Buffalo": "Buffalo Bills", ...}, "nba": {...}, ...}
// 文件缺失/无法解析属于配置错误（启动即失败），由上层映射为 config_* 错误码。
func Load(path string) (Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, err
	}
	var raw map[string]Map
	if err := json.Unmarshal(b, &raw); err != nil {
		return Tables{}, fmt.Errorf("翻译映射文件无效：%w", err)
	}
	bySport := make(map[string]Map, len(raw))
	for sport, m := range raw {
		bySport[strings.ToLower(strings.TrimSpace(sport))] = m
	}
	return Tables{bySport: bySport}, nil
}
