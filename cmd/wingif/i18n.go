// Package main provides localization for the wingif CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Record a terminal window as an animated GIF": "ターミナルウィンドウをアニメーションGIFとして記録",

		// List command
		"No capturable windows found.": "記録できるウィンドウが見つかりません。",

		// Version command
		"wingif version %s": "wingif バージョン %s",

		// Summary headings
		"Recording Summary": "録画サマリー",
		"Session":           "セッション",
		"Capture":           "キャプチャ",
		"Output":            "出力",
		"Settings":          "設定",
		"Item":              "項目",
		"Value":             "値",

		// Summary labels
		"Session ID":       "セッションID",
		"Window":           "ウィンドウ",
		"Geometry":         "サイズ",
		"Frame Rate":       "フレームレート",
		"Started At":       "開始時刻",
		"Frames":           "フレーム数",
		"Discarded Frames": "破棄フレーム数",
		"Duration":         "再生時間",
		"GIF":              "GIF",
		"Video":            "動画",
		"Not requested":    "なし",
		"Failed":           "失敗",
		"Native":           "元のサイズ",
		"Shell":            "シェル",
		"Max Width":        "最大幅",
		"Dithering":        "ディザリング",
		"Frame Buffer":     "フレームバッファ",
		"On":               "オン",
		"Off":              "オフ",
		"Generated at":     "生成日時",
	})
}
