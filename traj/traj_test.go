package traj

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestPlainTrajectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "traj.xyz")
	w, err := NewWriter(name, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WNext(2, []float64{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := w.WNext(2, []float64{5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	w.Close()

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) != 8 {
		t.Fatal("wrong number of lines:", len(lines))
	}
	if lines[0] != "2" {
		t.Error("wrong atom count line:", lines[0])
	}
	//2D frames pad z with zero
	if !strings.HasSuffix(lines[2], "0.0000") {
		t.Error("z not padded:", lines[2])
	}
	if lines[6] != "0 5.0000 6.0000 0.0000" {
		t.Error("wrong coordinate line:", lines[6])
	}
}

func TestCompressedTrajectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "traj.xyz.zst")
	w, err := NewWriter(name, 1)
	if err != nil {
		t.Fatal(err)
	}
	const frames = 10
	for i := 0; i < frames; i++ {
		if err := w.WNext(3, []float64{float64(i), 0, 0}); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	sc := bufio.NewScanner(zr)
	var coords []string
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "0 ") {
			coords = append(coords, line)
		}
	}
	if len(coords) != frames {
		t.Fatal("wrong number of frames:", len(coords))
	}
	for i, line := range coords {
		want := fmt.Sprintf("0 %5.4f 0.0000 0.0000", float64(i))
		if line != want {
			t.Errorf("frame %d mismatch: %q vs %q", i, line, want)
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	name := filepath.Join(t.TempDir(), "traj.xyz")
	w, err := NewWriter(name, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.WNext(2, []float64{1, 2}); err == nil {
		t.Error("short frame accepted")
	}
}

func TestVMDScript(t *testing.T) {
	dir := t.TempDir()
	if err := VMDScript(dir, []float64{10, 10, 10}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "vmd.tcl"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !strings.Contains(s, "display projection orthographic") {
		t.Error("missing view setup")
	}
	if strings.Count(s, "draw line") != 12 {
		t.Error("3D box wireframe should have 12 edges, got", strings.Count(s, "draw line"))
	}
}
