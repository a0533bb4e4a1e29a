package run

import (
	"time"

	"github.com/John-Robertt/SBRO/internal/config"
	"github.com/John-Robertt/SBRO/internal/domain"
)

// Observer 用于把“运行进度/赛季结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - 执行是单线程的，但实现仍不应假设调用顺序之外的任何东西。
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnSeasonDone 在一个赛季（或一个日期）处理完成时调用。
	OnSeasonDone(idx, total int, res domain.SeasonResult, dur time.Duration)
	// OnWrite 在输出文件落盘后调用。
	OnWrite(path string, games int, dur time.Duration)
}
