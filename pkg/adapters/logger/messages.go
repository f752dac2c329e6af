package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration
		"Recording window %d at %d fps (session %s)":          "ウィンドウ %d を %d fps で録画します (セッション %s)",
		"Window geometry: %s":                                 "ウィンドウサイズ: %s",
		"Recording started, exit the shell to stop":           "録画を開始しました。シェルを終了すると停止します",
		"Recording stopped early: %s":                         "録画が途中で停止しました: %s",
		"Shell exited after %s":                               "シェルが %s 後に終了しました",
		"Wrote %d frames to %s (%d bytes)":                    "%d フレームを %s に書き込みました (%d バイト)",
		"Removed incomplete output %s":                        "不完全な出力 %s を削除しました",
		"Converting GIF to video":                             "GIF を動画に変換中",
		"Video saved to %s":                                   "動画を %s に保存しました",
		"GIF kept at %s":                                      "GIF は %s に残っています",
		"Output saved to %s":                                  "%s に保存しました",
		"Interrupt ignored, exit the shell to stop recording": "割り込みは無視されます。シェルを終了して録画を停止してください",
		"Video conversion unavailable: %s":                    "動画変換は利用できません: %s",

		// Session
		"Shell session %s started":     "シェルセッション %s を開始しました",
		"Shell session ended after %v": "シェルセッションが %v 後に終了しました",

		// Capture
		"Capturing window %d at %d fps (%s, %v interval)": "ウィンドウ %d を %d fps でキャプチャ中 (%s, 間隔 %v)",
		"Discarded frame: %s":                             "フレームを破棄しました: %s",
		"Captured %d frames, discarded %d":                "%d フレームをキャプチャ、%d フレームを破棄しました",
		"Failed to save debug frame %d: %s":               "デバッグフレーム %d の保存に失敗しました: %s",
		"Selected window %d (%s)":                         "ウィンドウ %d (%s) を選択しました",

		// Encode
		"Encoding %s frames (max width %d, dither %t)": "%s のフレームをエンコード中 (最大幅 %d, ディザ %t)",
		"Encoded frame %d at %v":                       "フレーム %d (%v) をエンコードしました",

		// Transcode
		"Using %s (%s)":                       "%s (%s) を使用します",
		"Running %s %s":                       "%s %s を実行中",
		"Converting %s to %s":                 "%s を %s に変換中",
		"Could not detect codec of %s: %s":    "%s のコーデックを検出できませんでした: %s",
		"Expected h264 video in %s, found %s": "%s には h264 動画が必要ですが %s でした",

		// Errors
		"Failed to capture window: %s":        "ウィンドウのキャプチャに失敗しました: %s",
		"Failed to encode GIF: %s":            "GIF のエンコードに失敗しました: %s",
		"Failed to convert video: %s":         "動画の変換に失敗しました: %s",
		"Failed to write summary: %s":         "サマリーの書き込みに失敗しました: %s",
		"Failed to save session metadata: %s": "セッション情報の保存に失敗しました: %s",
		"Recording failed: %s":                "録画に失敗しました: %s",
	})
}
