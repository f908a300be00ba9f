package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Pipe state machine (info)
		"streaming: crop %s compose %s -> %s @ %s": "ストリーミング中: クロップ %s コンポーズ %s -> %s @ %s",
		"stopped": "停止しました",

		// Pipe errors
		"stream start failed: %v": "ストリーム開始に失敗しました: %v",

		// Negotiation facade
		"Negotiating %s pipe":  "%s パイプをネゴシエート中",
		"Sink format: %s":      "シンクフォーマット: %s",
		"Crop: %s":             "クロップ: %s",
		"Compose: %s":          "コンポーズ: %s",
		"Source format: %s":    "ソースフォーマット: %s",
		"Sink interval: %s":    "シンクのフレーム間隔: %s",
		"Source interval: %s":  "ソースのフレーム間隔: %s",
		"Negotiated %s: %s -> %s, keeping 1 frame in %d": "%s のネゴシエート完了: %s -> %s、%d フレームにつき1フレーム",
	})
}
