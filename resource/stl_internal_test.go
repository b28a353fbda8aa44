package resource

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/soypat/softrast/vmath"
)

func stlStream(t *testing.T, tris ...stlTriangle) *bytes.Buffer {
	t.Helper()
	var b bytes.Buffer
	if err := binary.Write(&b, binary.LittleEndian, &stlHeader{Count: uint32(len(tris))}); err != nil {
		t.Fatal(err)
	}
	for _, tri := range tris {
		var buf [50]byte
		tri.put(buf[:])
		b.Write(buf[:])
	}
	return &b
}

func TestSTLValidate(t *testing.T) {
	good := stlTriangle{
		Normal:  vmath.V3(0, 0, 1),
		Vertex1: vmath.V3(0, 0, 0),
		Vertex2: vmath.V3(1, 0, 0),
		Vertex3: vmath.V3(0, 1, 0),
	}
	if err := good.validate(); err != nil {
		t.Fatal(err)
	}
	flipped := good
	flipped.Normal = vmath.V3(0, 0, -1)
	if err := flipped.validate(); !errors.Is(err, errCalculatedNormalMismatch) {
		t.Errorf("flipped normal: got %v. want normal mismatch", err)
	}
	degenerate := good
	degenerate.Vertex3 = degenerate.Vertex2
	if err := degenerate.validate(); !errors.Is(err, errDegenerateTriangle) {
		t.Errorf("got %v. want degenerate", err)
	}
	nan := good
	nan.Vertex1[0] = float32(math.NaN())
	if err := nan.validate(); err == nil {
		t.Error("expected NaN vertex error")
	}
}

func TestReadSTLRepairsNormals(t *testing.T) {
	zeroNormal := stlTriangle{
		Vertex1: vmath.V3(0, 0, 0),
		Vertex2: vmath.V3(0, 1, 0),
		Vertex3: vmath.V3(1, 0, 0),
	}
	degenerate := stlTriangle{
		Normal:  vmath.V3(0, 0, 1),
		Vertex1: vmath.V3(1, 1, 1),
		Vertex2: vmath.V3(1, 1, 1),
		Vertex3: vmath.V3(2, 1, 1),
	}
	m, err := ReadSTL(stlStream(t, zeroNormal, degenerate))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Fatalf("got %d triangles. want degenerate triangle dropped", m.Len())
	}
	for _, v := range m.Vertices {
		if !vmath.EqualWithin(v.Normal, vmath.V3(0, 0, -1), 1e-6) {
			t.Errorf("normal %v. want calculated -z", v.Normal)
		}
	}
}

func TestReadSTLTruncated(t *testing.T) {
	b := stlStream(t, stlTriangle{
		Normal:  vmath.V3(0, 0, 1),
		Vertex1: vmath.V3(0, 0, 0),
		Vertex2: vmath.V3(1, 0, 0),
		Vertex3: vmath.V3(0, 1, 0),
	})
	b.Truncate(b.Len() - 10)
	if _, err := ReadSTL(b); err == nil {
		t.Error("expected error reading truncated stream")
	}
}

func TestWrap(t *testing.T) {
	for _, test := range []struct {
		i, n, want int
	}{
		{5, 4, 1},
		{-1, 4, 3},
		{-1, 3, 2},
		{-3, 3, 0},
		{7, 1, 0},
		{-7, 5, 3},
	} {
		if got := wrap(test.i, test.n); got != test.want {
			t.Errorf("wrap(%d,%d) = %d. want %d", test.i, test.n, got, test.want)
		}
	}
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128} {
		if got := nextPow2(n); got != want {
			t.Errorf("nextPow2(%d) = %d. want %d", n, got, want)
		}
	}
}
