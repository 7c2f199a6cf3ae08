package board

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// binArtHeader is the head of a TILESnnn.ART archive.
type binArtHeader struct {
	Version   int32
	NumTiles  int32
	LocalFrom int32
	LocalTo   int32
}

const maxArtTiles = 1 << 16

// ReadArt reads the tile sizes of one ART archive into a table. Pixel data
// is not loaded.
func ReadArt(r io.Reader) (StaticArt, error) {
	var hdr binArtHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("reading art header: %w", err)
	}
	if hdr.Version != 1 {
		return nil, fmt.Errorf("bad art version: %d", hdr.Version)
	}
	n := int(hdr.LocalTo) - int(hdr.LocalFrom) + 1
	if hdr.LocalFrom < 0 || n <= 0 || n > maxArtTiles {
		return nil, fmt.Errorf("bad art tile range %d..%d", hdr.LocalFrom, hdr.LocalTo)
	}

	sizeX := make([]int16, n)
	sizeY := make([]int16, n)
	if err := binary.Read(r, binary.LittleEndian, sizeX); err != nil {
		return nil, fmt.Errorf("reading tile widths: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, sizeY); err != nil {
		return nil, fmt.Errorf("reading tile heights: %w", err)
	}

	art := make(StaticArt, n)
	for i := range n {
		if sizeX[i] <= 0 || sizeY[i] <= 0 {
			continue
		}
		art[int(hdr.LocalFrom)+i] = ArtInfo{W: int(sizeX[i]), H: int(sizeY[i])}
	}
	logger.Debug("read art", "from", hdr.LocalFrom, "to", hdr.LocalTo, "tiles", len(art))
	return art, nil
}

// LoadArt reads the named ART archives in order into one table. Later files
// override earlier ones.
func LoadArt(paths ...string) (StaticArt, error) {
	art := StaticArt{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		a, err := ReadArt(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for k, v := range a {
			art[k] = v
		}
	}
	return art, nil
}
