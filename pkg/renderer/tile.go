package renderer

// Tile is a rectangular region of the image owned by exactly one worker at a
// time. Boundary tiles are clipped to the image, so widths and heights vary.
type Tile struct {
	ID     int // Index in row-major tile order
	X      int // Left pixel column, inclusive
	Y      int // Top pixel row, inclusive
	Width  int
	Height int
}

// TileGrid partitions an image into tiles of at most tileSize pixels per side
func TileGrid(imageWidth, imageHeight, tileSize int) []Tile {
	tilesX := (imageWidth + tileSize - 1) / tileSize
	tilesY := (imageHeight + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x := tx * tileSize
			y := ty * tileSize
			tiles = append(tiles, Tile{
				ID:     len(tiles),
				X:      x,
				Y:      y,
				Width:  min(tileSize, imageWidth-x),
				Height: min(tileSize, imageHeight-y),
			})
		}
	}
	return tiles
}

// tileSeed derives a per-tile RNG seed from the render seed and the tile ID.
// The derivation depends only on the tile's identity, never on which worker
// picks it up or when, so renders reproduce across thread counts.
func tileSeed(renderSeed int64, tileID int) int64 {
	x := uint64(renderSeed) ^ (uint64(tileID)+1)*0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return int64(x ^ (x >> 31))
}
