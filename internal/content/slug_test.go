package content

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello-world.md", "hello-world"},
		{"Hello World.mdx", "hello-world"},
		{"Building a Neural Network", "building-a-neural-network"},
		{"--C++ & Go: 2024!--.md", "c-go-2024"},
		{"already-a-slug", "already-a-slug"},
		{"multiple   spaces___here.md", "multiple-spaces-here"},
		{"Café au lait.md", "caf-au-lait"},
		{"notes.markdown", "notes-markdown"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugIdempotent(t *testing.T) {
	for _, s := range []string{"Some Title!", "a--b", "X.md"} {
		once := Slug(s)
		if twice := Slug(once); twice != once {
			t.Errorf("Slug(Slug(%q)) = %q, want %q", s, twice, once)
		}
	}
}
