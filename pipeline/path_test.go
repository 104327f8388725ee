package pipeline

import (
	"path/filepath"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	in := filepath.Join("src", "images")
	out := filepath.Join("public", "images")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"top level", filepath.Join(in, "icon.svg"), filepath.Join(out, "icon.svg"), false},
		{"nested", filepath.Join(in, "a", "b.jpg"), filepath.Join(out, "a", "b.jpg"), false},
		{"outside", filepath.Join("src", "other", "c.png"), "", true},
		{"parent", "src", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOutputPath(tt.input, in, out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutputPathMixedAbsRel(t *testing.T) {
	if _, err := ResolveOutputPath("/abs/a.jpg", "rel", "out"); err == nil {
		t.Fatal("expected error for absolute input against relative dir")
	}
}
