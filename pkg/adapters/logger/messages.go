package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Generating offer for %q":       "%q のオファーを生成中",
		"Offer text: %s":                "オファー文: %s",
		"Saved initial image to %s":     "元画像を %s に保存しました",
		"Saved final image to %s":       "最終画像を %s に保存しました",
		"Offer generated successfully":  "オファーの生成が完了しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Server listening on %s":        "%s で待ち受けています",
		"%s %s -> %d (%s)":              "%s %s -> %d (%s)",

		// Caption stage
		"Generating offer text (%d words)": "オファー文を生成中 (%d 語)",
		"Text generation failed: %s":       "テキスト生成に失敗しました: %s",

		// Background stage
		"Generating background image": "背景画像を生成中",
		"Image generation failed: %s": "画像生成に失敗しました: %s",
		"Background generated: %dx%d": "背景画像生成完了: %dx%d",

		// Overlay stage
		"Applying text overlay":                       "テキストを重ねています",
		"Font %s not found, using default font: %s":   "フォント %s が見つかりません。既定のフォントを使用します: %s",
		"Layout: origin (%d, %d), box %v, padding %d": "レイアウト: 原点 (%d, %d), 枠 %v, 余白 %d",
		"Error in overlaying text: %s":                "テキストの重ね合わせに失敗しました: %s",

		// Fonts
		"Font %s uploaded successfully": "フォント %s をアップロードしました",

		// Errors
		"Failed to generate offer: %s": "オファーの生成に失敗しました: %s",
		"Failed to write output: %s":   "出力の書き込みに失敗しました: %s",
		"Failed to write summary: %s":  "サマリーの書き込みに失敗しました: %s",
	})
}
