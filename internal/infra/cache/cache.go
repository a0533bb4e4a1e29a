package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/John-Robertt/SBRO/internal/infra/fsx"
)

// Store 提供 <root>/cache/pages/ 下的赛季页面缓存读写。
//
// 约束：
// - Enabled=false 时读写都是空操作（读不命中、写丢弃），调用方不需要判空
// - 缓存键是 (sport, season, 扩展名)；重跑命中缓存即可完全离线
type Store struct {
	Root    string
	Enabled bool
}

func New(root string, enabled bool) Store {
	return Store{
		Root:    filepath.Clean(strings.TrimSpace(root)),
		Enabled: enabled,
	}
}

// PagePath 返回一个赛季页面缓存的绝对路径。
func (s Store) PagePath(sport string, season int, ext string) (string, error) {
	sp, err := cleanSport(sport)
	if err != nil {
		return "", err
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", fmt.Errorf("扩展名不能为空")
	}
	name := fmt.Sprintf("%d.%s", season, ext)
	return filepath.Join(s.Root, "cache", "pages", sp, name), nil
}

// ReadPage 读取赛季页面缓存；不存在（或缓存被禁用）时返回 found=false 而不是错误。
func (s Store) ReadPage(sport string, season int, ext string) ([]byte, bool, error) {
	if !s.Enabled {
		return nil, false, nil
	}
	path, err := s.PagePath(sport, season, ext)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// WritePage 原子写入赛季页面缓存；缓存被禁用时静默丢弃。
func (s Store) WritePage(sport string, season int, ext string, content []byte) error {
	if !s.Enabled {
		return nil
	}
	sp, err := cleanSport(sport)
	if err != nil {
		return err
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return fmt.Errorf("扩展名不能为空")
	}
	dir := filepath.Join(s.Root, "cache", "pages", sp)
	name := fmt.Sprintf("%d.%s", season, ext)
	return fsx.WriteFileAtomicReplace(dir, name, content)
}

var sportNameRE = regexp.MustCompile(`^[a-z0-9_]+$`)

func cleanSport(sp string) (string, error) {
	sp = strings.ToLower(strings.TrimSpace(sp))
	if sp == "" {
		return "", fmt.Errorf("sport 不能为空")
	}
	// 最小约束：避免路径穿越；sport 名称本身是枚举，这里不做更多“聪明”处理。
	if !sportNameRE.MatchString(sp) {
		return "", fmt.Errorf("非法 sport：%q", sp)
	}
	return sp, nil
}
