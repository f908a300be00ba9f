// Package main provides localization for the pixelproc CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Negotiate and program the camera pixel processing pipes": "カメラのピクセル処理パイプをネゴシエートしてプログラムします",

		// Command descriptions
		"List the encodings each pad accepts":                "各パッドが受け付けるエンコーディングを一覧表示",
		"Negotiate a scenario and print the result":          "シナリオをネゴシエートして結果を表示",
		"Negotiate a scenario and program the register file": "シナリオをネゴシエートしてレジスタファイルをプログラム",
		"Render the negotiated geometry as a PNG image":      "ネゴシエート済みのジオメトリをPNG画像として描画",

		// Scenario flags
		"Pipe scenario YAML file":   "パイプシナリオのYAMLファイル",
		"Pipe to drive (main, aux)": "対象のパイプ（main, aux）",

		// Formats flags
		"Pad to list (sink, source)": "一覧表示するパッド（sink, source）",

		// Output flags
		"Write the Markdown summary to a file": "Markdownサマリーをファイルに出力",
		"Directory for debug output":           "デバッグ出力のディレクトリ",
		"Output PNG file path":                 "出力PNGファイルパス",
		"Bound the preview width in pixels":    "プレビューの幅の上限（ピクセル）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",
		"Disable colored log output":           "ログのカラー出力を無効化",

		// Runtime messages
		"%d encodings, %dx%d to %dx%d frames:": "%d個のエンコーディング、フレームサイズは %dx%d から %dx%d まで:",
		"Interrupted, shutting down...":        "中断されました。シャットダウン中...",
		"Summary saved to %s":                  "サマリーを %s に保存しました",
		"Failed to write summary: %s":          "サマリーの書き込みに失敗しました: %s",
		"Preview saved to %s":                  "プレビューを %s に保存しました",
		"Debug artifacts saved to %s":          "デバッグ成果物を %s に保存しました",
	})
}
