// Package main provides localization for the offergen CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",
		"Offer":         "オファー",
		"Style":         "スタイル",
		"Output":        "出力",
		"Debug":         "デバッグ",
		"Server":        "サーバー",

		// Root command
		"Generate promotional offer images with captioned text":                                                            "テキスト付きのプロモーション画像を生成",
		"offergen writes offer copy and a background image with a generative service, then draws the copy onto the image.": "offergenは生成サービスでオファー文と背景画像を作成し、文を画像に描画します。",
		"YAML configuration file":              "YAML設定ファイル",
		"Log level (debug, info, warn, error)": "ログレベル (debug, info, warn, error)",
		"Suppress all log output":              "すべてのログ出力を抑制",

		// Commands
		"Generate an offer image from a prompt": "プロンプトからオファー画像を生成",
		"Generate offer text and a background image, then overlay the text. Unset options are asked for interactively on a terminal.": "オファー文と背景画像を生成し、文を重ねます。未指定のオプションは端末で対話的に尋ねます。",
		"Overlay text onto an existing image":         "既存の画像にテキストを重ねる",
		"List fonts available in the fonts directory": "フォントディレクトリ内のフォントを一覧表示",
		"Run the HTTP API server":                     "HTTP APIサーバーを起動",
		"Show version information":                    "バージョン情報を表示",
		"offergen version %s":                         "offergen バージョン %s",
		"<input image>":                               "<入力画像>",

		// Flags
		"What the offer is about":                      "オファーの題材",
		"Maximum number of words in the offer (1-100)": "オファー文の最大単語数 (1-100)",
		"Directory for generated images":               "生成画像の出力ディレクトリ",
		"Write a Markdown summary to this path":        "Markdownサマリーの出力パス",
		"Text to draw":                                 "描画するテキスト",
		"Output image path (required)":                 "出力画像パス（必須）",
		"Font file name in the fonts directory":        "フォントディレクトリ内のフォントファイル名",
		"Font size in pixels":                          "フォントサイズ（ピクセル）",
		"Text position, e.g. center or bottom-right":   "テキスト位置（例: center, bottom-right）",
		"Text color name or #rrggbb":                   "テキスト色の名前または #rrggbb",
		"Panel color name or #rrggbb":                  "背景パネル色の名前または #rrggbb",
		"Panel opacity from 0 to 1":                    "背景パネルの不透明度 (0-1)",
		"Image format (jpg, png)":                      "画像形式 (jpg, png)",
		"JPEG quality (1-100)":                         "JPEG品質 (1-100)",
		"Write layout and intermediate images":         "レイアウトと中間画像を出力",
		"Directory for debug output":                   "デバッグ出力ディレクトリ",
		"Listen address":                               "待ち受けアドレス",

		// Prompts
		"Enter the offer prompt":                   "オファーのプロンプトを入力",
		"Enter word limit":                         "最大単語数を入力",
		"Available fonts:":                         "利用可能なフォント:",
		"Available font sizes:":                    "利用可能なフォントサイズ:",
		"Available positions:":                     "利用可能な位置:",
		"Available text colors:":                   "利用可能なテキスト色:",
		"Available background colors:":             "利用可能な背景色:",
		"Background opacity (0-1)":                 "背景の不透明度 (0-1)",
		"Choice":                                   "選択",
		"Invalid choice %q, try again.":            "無効な選択です: %q もう一度入力してください。",
		"Please enter a number between %d and %d.": "%d から %d までの数値を入力してください。",
		"Please enter a number between %v and %v.": "%v から %v までの数値を入力してください。",

		// Results
		"Initial image: %s":    "初期画像: %s",
		"Final image: %s":      "最終画像: %s",
		"No fonts found in %s": "%s にフォントが見つかりません",
		"Text could not be drawn, the image was saved unchanged: %s": "テキストを描画できなかったため、画像をそのまま保存しました: %s",

		// Summary
		"Offer Summary":     "オファーサマリー",
		"Layout":            "レイアウト",
		"Prompt":            "プロンプト",
		"Offer Text":        "オファー文",
		"Word Limit":        "最大単語数",
		"Font":              "フォント",
		"Position":          "位置",
		"Text Color":        "テキスト色",
		"Background":        "背景",
		"Text Origin":       "テキスト原点",
		"Text Size":         "テキストサイズ",
		"Padding":           "余白",
		"Panel":             "パネル",
		"Initial Image":     "初期画像",
		"Final Image":       "最終画像",
		"Image Size":        "画像サイズ",
		"Format":            "形式",
		"File Size":         "ファイルサイズ",
		"Compositing Error": "合成エラー",
		"Generated at":      "生成日時",
		"fallback":          "代替文",
		"default font used": "既定フォントを使用",
		"blank background":  "空白の背景",
	})
}
