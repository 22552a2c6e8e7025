package canopy

import "testing"

func TestAddQuadVertexOrder(t *testing.T) {
	d := NewDrawList("tiles")
	d.AddQuad(1, 2, 3, 4, 0, 0, 0.5, 0.25)
	if d.NumQuads() != 1 || len(d.Vertices) != 4 {
		t.Fatalf("quads = %d, vertices = %d", d.NumQuads(), len(d.Vertices))
	}
	want := []Vertex{
		{1, 2, 0, 0},
		{4, 2, 0.5, 0},
		{1, 6, 0, 0.25},
		{4, 6, 0.5, 0.25},
	}
	for i, v := range want {
		if d.Vertices[i] != v {
			t.Errorf("vertex %d = %v, want %v", i, d.Vertices[i], v)
		}
	}
	if d.Color != ColorWhite || d.ScaleX != 1 || d.ScaleY != 1 {
		t.Error("defaults should be white, unit scale")
	}
}

func TestAppendSameTexture(t *testing.T) {
	a := NewDrawList("sheet")
	a.AddTextureQuad(0, 0, 1, 1)
	b := NewDrawList("sheet")
	b.AddTextureQuad(1, 0, 1, 1)
	b.AddTextureQuad(2, 0, 1, 1)
	if !a.Append(b) {
		t.Fatal("append should succeed")
	}
	if a.NumQuads() != 3 {
		t.Errorf("quads = %d, want 3", a.NumQuads())
	}
}

func TestAppendDifferentTextureRejected(t *testing.T) {
	captureLogs(t)
	a := NewDrawList("sheet")
	a.AddTextureQuad(0, 0, 1, 1)
	b := NewDrawList("other")
	b.AddTextureQuad(0, 0, 1, 1)
	if a.Append(b) {
		t.Fatal("append of different texture should fail")
	}
	if a.NumQuads() != 1 {
		t.Errorf("quads = %d, want 1", a.NumQuads())
	}
}

func TestAppendToEmptyAdoptsTexture(t *testing.T) {
	a := NewDrawList("")
	b := NewDrawList("sheet")
	b.AddTextureQuad(0, 0, 1, 1)
	if !a.Append(b) || a.TextureID != "sheet" {
		t.Errorf("empty list should adopt texture, got %q", a.TextureID)
	}
	if !a.Append(nil) {
		t.Error("appending nil is a no-op")
	}
}

func TestSpriteTexCoords(t *testing.T) {
	s := &Sprite{ID: "grass", SheetID: "tiles", X: 16, Y: 32, Width: 16, Height: 16, SheetW: 64, SheetH: 64}
	u0, v0, u1, v1 := s.TexCoords()
	if u0 != 0.25 || v0 != 0.5 || u1 != 0.5 || v1 != 0.75 {
		t.Errorf("tex coords = %v %v %v %v", u0, v0, u1, v1)
	}
	d := NewSpriteDrawList(s, 0, 0, 1, 1)
	if d.TextureID != "tiles" || d.NumQuads() != 1 {
		t.Errorf("draw list = %+v", d)
	}

	captureLogs(t)
	other := &Sprite{ID: "x", SheetID: "other", Width: 1, Height: 1}
	if other.AppendTo(d, 0, 0, 1, 1) {
		t.Error("sprite from another sheet should be rejected")
	}
}

func TestQuadIndicesPattern(t *testing.T) {
	if QuadIndices != [6]uint16{0, 1, 2, 1, 3, 2} {
		t.Errorf("QuadIndices = %v", QuadIndices)
	}
}
