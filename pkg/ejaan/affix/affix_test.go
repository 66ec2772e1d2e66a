package affix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

func TestRuleApply(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		token  string
		want   string
		wantOK bool
	}{
		{"prefix", Rule{Kind: Prefix, Prefix: "ber"}, "berlari", "lari", true},
		{"prefix missing", Rule{Kind: Prefix, Prefix: "ber"}, "lari", "", false},
		{"prefix whole token", Rule{Kind: Prefix, Prefix: "di"}, "di", "", false},
		{"prefix longer than token", Rule{Kind: Prefix, Prefix: "ber"}, "be", "", false},
		{"suffix", Rule{Kind: Suffix, Suffix: "kan"}, "makankan", "makan", true},
		{"suffix nya", Rule{Kind: Suffix, Suffix: "nya"}, "rumahnya", "rumah", true},
		{"suffix whole token", Rule{Kind: Suffix, Suffix: "i"}, "i", "", false},
		{"infix offset 1", Rule{Kind: Infix, Infix: "em", Offset: 1, MinLen: 4}, "gemetar", "getar", true},
		{"infix offset 0", Rule{Kind: Infix, Infix: "el", Offset: 0, MinLen: 4}, "elapan", "apan", true},
		{"infix too short", Rule{Kind: Infix, Infix: "er", Offset: 1, MinLen: 4}, "gera", "", false},
		{"infix not at anchor", Rule{Kind: Infix, Infix: "in", Offset: 1, MinLen: 4}, "makanin", "", false},
		{"circumfix", Rule{Kind: Circumfix, Prefix: "ke", Suffix: "an"}, "kebaikan", "baik", true},
		{"circumfix overlap", Rule{Kind: Circumfix, Prefix: "ke", Suffix: "an"}, "kean", "", false},
		{"circumfix overlapping letters", Rule{Kind: Circumfix, Prefix: "se", Suffix: "nya"}, "senya", "", false},
		{"prefix+suffix", Rule{Kind: PrefixSuffix, Prefix: "di", Suffix: "i"}, "dicintai", "cinta", true},
		{"nasal width 3", Rule{Kind: NasalPrefix, Prefix: "pe", Width: 3}, "pembaca", "baca", true},
		{"nasal width 4 with suffix", Rule{Kind: NasalPrefix, Prefix: "pe", Width: 4, Suffix: "an"}, "pengajaran", "ajar", true},
		{"nasal too short", Rule{Kind: NasalPrefix, Prefix: "pe", Width: 3}, "pen", "", false},
		{"nasal wrong prefix", Rule{Kind: NasalPrefix, Prefix: "pe", Width: 2}, "mengajar", "", false},
		{"nasal suffix consumes rest", Rule{Kind: NasalPrefix, Prefix: "pe", Width: 2, Suffix: "an"}, "pean", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rule.Apply(tt.token)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("%s.Apply(%q) = (%q, %v), want (%q, %v)",
					tt.rule, tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Kind: Prefix, Prefix: "ber"}, "prefix ber-"},
		{Rule{Kind: Suffix, Suffix: "kan"}, "suffix -kan"},
		{Rule{Kind: Infix, Infix: "em", Offset: 1}, "infix -em-@1"},
		{Rule{Kind: Circumfix, Prefix: "ke", Suffix: "an"}, "circumfix ke-...-an"},
		{Rule{Kind: PrefixSuffix, Prefix: "di", Suffix: "i"}, "prefix+suffix di-...-i"},
		{Rule{Kind: NasalPrefix, Prefix: "pe", Width: 4, Suffix: "an"}, "nasal pe/4...-an"},
	}
	for _, tt := range tests {
		if got := tt.rule.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCandidatesNeverEmpty(t *testing.T) {
	cat := Default()
	tokens := []string{"", "i", "an", "di", "ber", "pe", "pen", "peng", "kean", "senya", "berkan", "pengajaran"}

	for _, tok := range tokens {
		for _, c := range cat.Candidates(tok) {
			if c.Root == "" {
				t.Errorf("Candidates(%q) produced empty root via %s", tok, c.Rule)
			}
			if len(c.Root) >= len(tok) {
				t.Errorf("Candidates(%q) produced %q which is not shorter", tok, c.Root)
			}
		}
	}
}

func TestCandidatesDistinctAndOrdered(t *testing.T) {
	cat := Default()
	cands := cat.Candidates("berlarian")

	seen := make(map[string]bool)
	for _, c := range cands {
		if seen[c.Root] {
			t.Errorf("duplicate root %q", c.Root)
		}
		seen[c.Root] = true
	}

	if len(cands) == 0 || cands[0].Root != "larian" || cands[0].Rule.Kind != Prefix {
		t.Fatalf("first candidate should come from the ber- prefix rule, got %+v", cands)
	}
	if !seen["lari"] {
		t.Error("circumfix ber-...-an should recover lari")
	}
	for _, c := range cands {
		if c.Root == "lari" && c.Rule.Kind != Circumfix {
			t.Errorf("lari should be attributed to the circumfix rule, got %s", c.Rule)
		}
	}
}

func TestCandidatesPengajaran(t *testing.T) {
	found := false
	for _, c := range Default().Candidates("pengajaran") {
		if c.Root == "ajar" {
			found = true
			if c.Rule.Kind != NasalPrefix {
				t.Errorf("ajar should come from the nasal rule, got %s", c.Rule)
			}
		}
	}
	if !found {
		t.Error("pengajaran should yield ajar")
	}
}

func TestRulesOrder(t *testing.T) {
	rules := Default().Rules()
	last := Prefix
	for i, r := range rules {
		if r.Kind < last {
			t.Fatalf("rule %d (%s) breaks kind order", i, r)
		}
		last = r.Kind
	}

	// 7 prefixes, 4 suffixes, 4 infixes x 2 offsets, 6 circumfixes,
	// 7x4 prefix+suffix pairs, 3 nasal widths alone and with each suffix
	want := 7 + 4 + 8 + 6 + 28 + 3 + 12
	if len(rules) != want {
		t.Errorf("len(Rules()) = %d, want %d", len(rules), want)
	}
}

func TestStripPrefixes(t *testing.T) {
	cat := Default()

	got := cat.StripPrefixes("pemakan")
	if len(got) != 1 || got[0] != "makan" {
		t.Errorf("StripPrefixes(pemakan) = %v, want [makan]", got)
	}

	if got := cat.StripPrefixes("di"); len(got) != 0 {
		t.Errorf("StripPrefixes(di) = %v, want none", got)
	}

	got = cat.StripPrefixes("termakan")
	if len(got) != 1 || got[0] != "makan" {
		t.Errorf("StripPrefixes(termakan) = %v, want [makan]", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default catalog should be valid: %v", err)
	}

	bad := []*Catalog{
		{Prefixes: []string{"ber", ""}},
		{Suffixes: []string{""}},
		{Infixes: []string{""}},
		{InfixMinLen: -1},
		{Circumfixes: []Pair{{Prefix: "ke"}}},
		{Nasals: []Nasal{{Prefix: "", Widths: []int{2}}}},
		{Nasals: []Nasal{{Prefix: "pe", Widths: []int{0}}}},
	}
	for i, c := range bad {
		if err := c.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("case %d: Validate() = %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affixes.yaml")
	content := `prefixes: [Ber, me]
suffixes: [kan]
infixes: []
infix_min_len: 4
circumfixes:
  - {prefix: me, suffix: kan}
nasals:
  - {prefix: me, widths: [3, 4]}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Prefixes[0] != "ber" {
		t.Errorf("prefixes should be lowercased, got %q", cat.Prefixes[0])
	}

	found := false
	for _, c := range cat.Candidates("mengajar") {
		if c.Root == "ajar" {
			found = true
		}
	}
	if !found {
		t.Error("custom nasal me/4 should recover ajar from mengajar")
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog("/nonexistent/affixes.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("prefixes: [ber, '']\n"), 0644)
	if _, err := LoadCatalog(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("LoadCatalog with empty prefix = %v, want ErrInvalidConfig", err)
	}
}
