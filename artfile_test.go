package board

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func artArchive(t *testing.T, from int32, sizes [][2]int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	hdr := binArtHeader{Version: 1, LocalFrom: from, LocalTo: from + int32(len(sizes)) - 1}
	binary.Write(&buf, binary.LittleEndian, hdr)
	for _, s := range sizes {
		binary.Write(&buf, binary.LittleEndian, s[0])
	}
	for _, s := range sizes {
		binary.Write(&buf, binary.LittleEndian, s[1])
	}
	binary.Write(&buf, binary.LittleEndian, make([]int32, len(sizes)))
	return buf.Bytes()
}

func TestReadArt(t *testing.T) {
	data := artArchive(t, 256, [][2]int16{{64, 64}, {0, 0}, {32, 128}})
	art, err := ReadArt(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadArt() failed: %v", err)
	}
	if len(art) != 2 {
		t.Errorf("got %d tiles, want 2", len(art))
	}
	if got := art.Info(258); got != (ArtInfo{W: 32, H: 128}) {
		t.Errorf("Info(258) = %+v", got)
	}
	if got := art.Info(257); got != (ArtInfo{}) {
		t.Errorf("empty tile = %+v, want zero", got)
	}
}

func TestReadArtRejects(t *testing.T) {
	bad := artArchive(t, 0, [][2]int16{{8, 8}})
	bad[0] = 2
	if _, err := ReadArt(bytes.NewReader(bad)); err == nil {
		t.Error("ReadArt() accepted version 2")
	}
	short := artArchive(t, 0, [][2]int16{{8, 8}, {8, 8}})[:20]
	if _, err := ReadArt(bytes.NewReader(short)); err == nil {
		t.Error("ReadArt() accepted a truncated archive")
	}
}

func TestLoadArtMerges(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "TILES000.ART")
	b := filepath.Join(dir, "TILES001.ART")
	os.WriteFile(a, artArchive(t, 0, [][2]int16{{16, 16}, {16, 16}}), 0o644)
	os.WriteFile(b, artArchive(t, 1, [][2]int16{{64, 32}}), 0o644)

	art, err := LoadArt(a, b)
	if err != nil {
		t.Fatalf("LoadArt() failed: %v", err)
	}
	if art.Info(0).W != 16 || art.Info(1).W != 64 {
		t.Errorf("LoadArt() = %+v", art)
	}
	if _, err := LoadArt(filepath.Join(dir, "missing.ART")); err == nil {
		t.Error("LoadArt() of a missing file succeeded")
	}
}
