package assets

import (
	"fmt"
	"image"

	"gopkg.in/yaml.v3"
)

// TileSet splits an image into a rows x cols grid. Tile ids grow left to
// right, then top to bottom.
type TileSet struct {
	Image      image.Image
	Rows, Cols int
	TileWidth  int
	TileHeight int
}

// NewTileSet slices img into rows x cols tiles.
func NewTileSet(img image.Image, rows, cols int) (*TileSet, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("tile set grid %dx%d must be positive", rows, cols)
	}
	b := img.Bounds()
	ts := &TileSet{
		Image:      img,
		Rows:       rows,
		Cols:       cols,
		TileWidth:  b.Dx() / cols,
		TileHeight: b.Dy() / rows,
	}
	if ts.TileWidth == 0 || ts.TileHeight == 0 {
		return nil, fmt.Errorf("image %dx%d too small for %dx%d tiles", b.Dx(), b.Dy(), rows, cols)
	}
	return ts, nil
}

// Len returns the number of tiles.
func (t *TileSet) Len() int {
	return t.Rows * t.Cols
}

// Rect returns the source rectangle of tile id.
func (t *TileSet) Rect(id int) (image.Rectangle, error) {
	if id < 0 || id >= t.Len() {
		return image.Rectangle{}, fmt.Errorf("tile %d out of range [0, %d)", id, t.Len())
	}
	origin := t.Image.Bounds().Min
	x := origin.X + (id%t.Cols)*t.TileWidth
	y := origin.Y + (id/t.Cols)*t.TileHeight
	return image.Rect(x, y, x+t.TileWidth, y+t.TileHeight), nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Tile returns tile id as an image sharing pixels with the sheet.
func (t *TileSet) Tile(id int) (image.Image, error) {
	r, err := t.Rect(id)
	if err != nil {
		return nil, err
	}
	si, ok := t.Image.(subImager)
	if !ok {
		return nil, fmt.Errorf("image type %T cannot be sliced", t.Image)
	}
	return si.SubImage(r), nil
}

// TileSet loads an image and slices it.
func (m *Manager) TileSet(path string, rows, cols int) (*TileSet, error) {
	img, err := m.Image(path)
	if err != nil {
		return nil, err
	}
	return NewTileSet(img, rows, cols)
}

// TileMap is a grid of tile ids read from a YAML map file:
//
//	tileset: tiles/ground.png
//	rows: 2
//	cols: 4
//	tiles:
//	  - [0, 1, 1, 2]
//	  - [4, 5, 5, 6]
//
// An id of -1 marks an empty cell.
type TileMap struct {
	TileSet string  `yaml:"tileset"`
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Tiles   [][]int `yaml:"tiles"`
}

// At returns the tile id at row, col, or -1 outside the map.
func (tm *TileMap) At(row, col int) int {
	if row < 0 || row >= len(tm.Tiles) || col < 0 || col >= len(tm.Tiles[row]) {
		return -1
	}
	return tm.Tiles[row][col]
}

// Height returns the number of map rows.
func (tm *TileMap) Height() int {
	return len(tm.Tiles)
}

// Width returns the number of map columns.
func (tm *TileMap) Width() int {
	if len(tm.Tiles) == 0 {
		return 0
	}
	return len(tm.Tiles[0])
}

// Map loads a YAML tile map.
func (m *Manager) Map(path string) (*TileMap, error) {
	return loadDecoded(m, "map:"+path, func() (*TileMap, error) {
		data, err := m.Load(path)
		if err != nil {
			return nil, err
		}
		var tm TileMap
		if err := yaml.Unmarshal(data, &tm); err != nil {
			return nil, fmt.Errorf("parsing map %s: %w", path, err)
		}
		for i, row := range tm.Tiles {
			if len(row) != tm.Width() {
				return nil, fmt.Errorf("map %s: row %d has %d cells, want %d", path, i, len(row), tm.Width())
			}
		}
		return &tm, nil
	})
}
