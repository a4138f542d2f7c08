package naming

import (
	"regexp"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Front Door", "Front_Door"},
		{"Back-Yard", "Back_Yard"},
		{"  Driveway  ", "Driveway"},
		{"Shed   /  Barn", "Shed_Barn"},
		{"Porch__Cam", "Porch_Cam"},
		{"_Garage_", "Garage"},
		{"Caméra Été", "Camra_t"},
		{"###", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.raw); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestResolve_DeduplicatesInOrder(t *testing.T) {
	got := Resolve([]string{"Garage", "Garage", "Garage"})
	if got[0].SafeName != "Garage" || got[0].Renamed {
		t.Fatalf("first occurrence should keep its name, got %+v", got[0])
	}
	if got[1].SafeName != "Garage_2" || !got[1].Renamed {
		t.Fatalf("expected Garage_2, got %+v", got[1])
	}
	if got[2].SafeName != "Garage_3" || !got[2].Renamed {
		t.Fatalf("expected Garage_3, got %+v", got[2])
	}
}

func TestResolve_LowestUnusedSuffix(t *testing.T) {
	// Garage_2 is already claimed by an explicit name, so the duplicate
	// Garage skips to the next free suffix.
	got := Resolve([]string{"Garage", "Garage_2", "Garage"})
	if got[1].SafeName != "Garage_2" {
		t.Fatalf("explicit Garage_2 should keep its name, got %q", got[1].SafeName)
	}
	if got[2].SafeName != "Garage_3" {
		t.Fatalf("expected Garage_3, got %q", got[2].SafeName)
	}
}

func TestResolve_CaseSensitiveCollisions(t *testing.T) {
	got := Resolve([]string{"Garage", "garage"})
	if got[0].SafeName != "Garage" || got[1].SafeName != "garage" {
		t.Fatalf("case-differing names are distinct, got %q and %q", got[0].SafeName, got[1].SafeName)
	}
}

func TestResolve_PlaceholderForEmptyNames(t *testing.T) {
	got := Resolve([]string{"!!!", "Porch", ""})
	if got[0].SafeName != "Camera_1" || !got[0].Renamed {
		t.Fatalf("expected Camera_1, got %+v", got[0])
	}
	if got[2].SafeName != "Camera_3" || !got[2].Renamed {
		t.Fatalf("expected Camera_3, got %+v", got[2])
	}
}

func TestResolve_TrimmedNamesAreNotRenames(t *testing.T) {
	got := Resolve([]string{"  Porch  "})
	if got[0].SafeName != "Porch" {
		t.Fatalf("expected Porch, got %q", got[0].SafeName)
	}
	if got[0].Renamed {
		t.Fatalf("pure whitespace trimming should not count as a rename")
	}
}

func TestResolve_UniqueAndGrammatical(t *testing.T) {
	ident := regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	raws := []string{
		"Front Door", "Front Door", "front-door", "###", "", "Garage",
		"Garage", "Garage_2", "Côté Jardin", "A", "A ", " A",
	}
	got := Resolve(raws)
	if len(got) != len(raws) {
		t.Fatalf("expected %d results, got %d", len(raws), len(got))
	}
	seen := map[string]int{}
	for i, r := range got {
		if !ident.MatchString(r.SafeName) {
			t.Fatalf("safe name %q at %d violates identifier grammar", r.SafeName, i)
		}
		if prev, dup := seen[r.SafeName]; dup {
			t.Fatalf("duplicate safe name %q at %d and %d", r.SafeName, prev, i)
		}
		seen[r.SafeName] = i
	}
}
