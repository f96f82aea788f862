package pkguid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerateIsVersion7(t *testing.T) {
	gen := NewUUID()

	first, err := uuid.Parse(gen.Generate())
	if err != nil {
		t.Fatalf("expected valid uuid: %v", err)
	}
	if first.Version() != 7 {
		t.Fatalf("expected version 7, got %d", first.Version())
	}

	second := gen.Generate()
	if second == first.String() {
		t.Fatalf("expected distinct ids")
	}
	if second < first.String() {
		t.Fatalf("expected time ordered ids, got %s after %s", second, first)
	}
}

func TestIsUUID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{NewUUID().Generate(), true},
		{"0192f3c4-5e6a-7b8c-9d0e-1f2a3b4c5d6e", true},
		{"0192f3c45e6a7b8c9d0e1f2a3b4c5d6e", false},
		{"{0192f3c4-5e6a-7b8c-9d0e-1f2a3b4c5d6e}", false},
		{"urn:uuid:0192f3c4-5e6a-7b8c-9d0e-1f2a3b4c", false},
		{"cli", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsUUID(tc.in); got != tc.want {
			t.Fatalf("IsUUID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
