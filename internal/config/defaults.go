package config

import (
	_ "embed"
)

//go:embed defaults/boardtool.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			CeilingZ:       -16384,
			FloorZ:         0,
			WallRepeat:     8,
			SpriteRepeat:   64,
			HullDepth:      256,
			HitscanSprites: true,
		},
		Render: RenderConfig{
			Size:       1024,
			Margin:     32,
			LineWidth:  2,
			SpriteSize: 4,
			Background: "#101418",
			SolidWall:  "#e8e8e8",
			PortalWall: "#d04040",
			Sprite:     "#40a0ff",
		},
		History: HistoryConfig{
			DBPath: "~/.boardtool/history.db",
			Keep:   100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
