package sport

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/SBRO/internal/domain"
)

// HTMLRows 把归档页第一张 <table> 的每一行提取为单元格序列。
// 纯函数；表头/分隔行不在这里过滤（由配对校验按列位规则丢弃）。
func HTMLRows(content []byte) ([]domain.RawRow, error) {
	if len(content) == 0 {
		return nil, errors.New("html 为空")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("页面没有 <table>（赛季归档不存在或站点改版）")
	}

	var rows []domain.RawRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells domain.RawRow
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 {
		return nil, errors.New("表格没有任何行")
	}
	return rows, nil
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
