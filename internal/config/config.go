// Package config provides YAML-based configuration loading for boardtool.
package config

import (
	"github.com/charmbracelet/log"

	"github.com/stuarthighley/board"
)

// Config contains all boardtool settings.
type Config struct {
	Editor   EditorConfig  `yaml:"editor"`
	ArtFiles []string      `yaml:"art_files"`
	Art      []ArtEntry    `yaml:"art"`
	Render   RenderConfig  `yaml:"render"`
	History  HistoryConfig `yaml:"history"`
	Log      LogConfig     `yaml:"log"`
}

// EditorConfig holds the templates new sectors, walls and sprites start from.
type EditorConfig struct {
	CeilingZ       int  `yaml:"ceiling_z"`
	FloorZ         int  `yaml:"floor_z"`
	WallPicnum     int  `yaml:"wall_picnum"`
	WallRepeat     int  `yaml:"wall_repeat"`
	SpritePicnum   int  `yaml:"sprite_picnum"`
	SpriteRepeat   int  `yaml:"sprite_repeat"`
	HullDepth      int  `yaml:"hull_depth"`
	HitscanSprites bool `yaml:"hitscan_sprites"`
}

// ArtEntry is the size of one tile.
type ArtEntry struct {
	Picnum int `yaml:"picnum"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig defines the overview image.
type RenderConfig struct {
	Size       int     `yaml:"size"`
	Margin     int     `yaml:"margin"`
	LineWidth  float64 `yaml:"line_width"`
	SpriteSize float64 `yaml:"sprite_size"`
	Background string  `yaml:"background"`
	SolidWall  string  `yaml:"solid_wall"`
	PortalWall string  `yaml:"portal_wall"`
	Sprite     string  `yaml:"sprite"`
}

// HistoryConfig locates the snapshot database.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
	Keep   int    `yaml:"keep"`
}

// LogConfig sets the log level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `yaml:"level"`
}

// ArtTable returns the configured tiles as an art provider.
func (c Config) ArtTable() board.StaticArt {
	art := make(board.StaticArt, len(c.Art))
	for _, e := range c.Art {
		art[e.Picnum] = board.ArtInfo{W: e.Width, H: e.Height}
	}
	return art
}

// LoadArt reads ArtFiles and lays the Art entries over them.
func (c Config) LoadArt() (board.StaticArt, error) {
	art, err := board.LoadArt(c.ArtFiles...)
	if err != nil {
		return nil, err
	}
	for k, v := range c.ArtTable() {
		art[k] = v
	}
	return art, nil
}

// Factory returns a factory seeded with the editor templates. Zero repeats
// keep the built-in defaults.
func (c Config) Factory() board.TemplateFactory {
	f := board.DefaultFactory
	f.Sector.Ceiling.Z = c.Editor.CeilingZ
	f.Sector.Floor.Z = c.Editor.FloorZ
	f.Wall.Picnum = c.Editor.WallPicnum
	if c.Editor.WallRepeat > 0 {
		f.Wall.XRepeat, f.Wall.YRepeat = c.Editor.WallRepeat, c.Editor.WallRepeat
	}
	f.Sprite.Picnum = c.Editor.SpritePicnum
	if c.Editor.SpriteRepeat > 0 {
		f.Sprite.XRepeat, f.Sprite.YRepeat = c.Editor.SpriteRepeat, c.Editor.SpriteRepeat
	}
	return f
}

// LogLevel parses Log.Level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
