package sport

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/John-Robertt/SBRO/internal/domain"
)

// XLSXRows 把 xlsx 归档的 Sheet1 提取为单元格序列。
// 纯函数；单元格取展示值（与站点 HTML 版本的文本一致）。
func XLSXRows(content []byte) ([]domain.RawRow, error) {
	if len(content) == 0 {
		return nil, errors.New("xlsx 为空")
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("打开 xlsx 失败：%w", err)
	}
	defer f.Close()

	raw, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("读取 Sheet1 失败：%w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("Sheet1 没有任何行")
	}

	rows := make([]domain.RawRow, 0, len(raw))
	for _, r := range raw {
		if len(r) == 0 {
			continue
		}
		rows = append(rows, domain.RawRow(r))
	}
	if len(rows) == 0 {
		return nil, errors.New("Sheet1 没有非空行")
	}
	return rows, nil
}
