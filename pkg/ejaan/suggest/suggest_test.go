package suggest

import (
	"testing"

	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/similarity"
)

func TestSuggestTopCandidate(t *testing.T) {
	lex := lexicon.New([]string{"makan", "minum", "rumah"})
	r := New(lex, nil, DefaultOptions())

	tests := []struct {
		token string
		want  string
	}{
		{"rumahku", "rumah"},
		{"minumm", "minum"},
		{"makam", "makan"},
	}

	for _, tt := range tests {
		got := r.Suggest(tt.token)
		if got.NoRecommendation() {
			t.Fatalf("Suggest(%q) returned no recommendation", tt.token)
		}
		if got.Items[0].Word != tt.want {
			t.Errorf("Suggest(%q) top = %q, want %q", tt.token, got.Items[0].Word, tt.want)
		}
		if got.Fallback {
			t.Errorf("Suggest(%q) should be a direct match", tt.token)
		}
	}
}

func TestSuggestSortedAndCapped(t *testing.T) {
	lex := lexicon.New([]string{"main", "makan", "makin", "makam", "makna", "mekar", "malam"})
	r := New(lex, nil, DefaultOptions())

	got := r.Suggest("makn")
	if len(got.Items) == 0 || len(got.Items) > 3 {
		t.Fatalf("Suggest(makn) returned %d items, want 1..3", len(got.Items))
	}
	for i := 1; i < len(got.Items); i++ {
		if got.Items[i].Similarity > got.Items[i-1].Similarity {
			t.Errorf("items not sorted descending: %+v", got.Items)
		}
	}
	for _, it := range got.Items {
		if it.Similarity < DefaultMinSimilarity || it.Similarity > 1 {
			t.Errorf("similarity %.3f out of range for %q", it.Similarity, it.Word)
		}
	}
}

func TestSuggestTiesFollowLexiconOrder(t *testing.T) {
	r := New(lexicon.New([]string{"abce", "abcf"}), nil, DefaultOptions())
	got := r.Suggest("abcd").Words()
	if len(got) != 2 || got[0] != "abce" || got[1] != "abcf" {
		t.Errorf("Suggest(abcd) = %v, want [abce abcf]", got)
	}

	r = New(lexicon.New([]string{"abcf", "abce"}), nil, DefaultOptions())
	got = r.Suggest("abcd").Words()
	if len(got) != 2 || got[0] != "abcf" || got[1] != "abce" {
		t.Errorf("Suggest(abcd) = %v, want [abcf abce]", got)
	}
}

func TestSuggestScoresDictionaryWordFirst(t *testing.T) {
	// ratio(abnabna, aan) = 0.4 but ratio(aan, abnabna) = 0.6
	r := New(lexicon.New([]string{"abnabna"}), nil, DefaultOptions())
	if got := r.Suggest("aan"); !got.NoRecommendation() {
		t.Errorf("Suggest(aan) = %v, want no recommendation", got.Words())
	}

	r = New(lexicon.New([]string{"aan"}), nil, DefaultOptions())
	got := r.Suggest("abnabna")
	if len(got.Items) != 1 || got.Items[0].Word != "aan" {
		t.Errorf("Suggest(abnabna) = %v, want [aan]", got.Words())
	}
}

func TestSuggestPrefixFallback(t *testing.T) {
	lex := lexicon.New([]string{"ajar"})
	r := New(lex, nil, Options{MinSimilarity: 0.7})

	got := r.Suggest("berajarr")
	if got.NoRecommendation() {
		t.Fatal("fallback on ajarr should find ajar")
	}
	if !got.Fallback {
		t.Error("result should be marked as fallback")
	}
	if got.Items[0].Word != "ajar" {
		t.Errorf("top = %q, want ajar", got.Items[0].Word)
	}
}

func TestSuggestNoRecommendation(t *testing.T) {
	r := New(lexicon.New([]string{"makan"}), nil, DefaultOptions())

	got := r.Suggest("xyz")
	if !got.NoRecommendation() {
		t.Fatalf("Suggest(xyz) = %+v, want no recommendation", got)
	}
	if got.String() != NoRecommendationText {
		t.Errorf("String() = %q, want %q", got.String(), NoRecommendationText)
	}
}

func TestSuggestEmptyLexicon(t *testing.T) {
	r := New(lexicon.New(nil), nil, DefaultOptions())
	for _, tok := range []string{"makan", "berlari", ""} {
		if got := r.Suggest(tok); !got.NoRecommendation() {
			t.Errorf("empty lexicon: Suggest(%q) = %+v", tok, got)
		}
	}
}

func TestSuggestionsString(t *testing.T) {
	s := Suggestions{Items: []Suggestion{{"rumah", 0.8}, {"rumahan", 0.7}}}
	if got := s.String(); got != "rumah, rumahan" {
		t.Errorf("String() = %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	r := New(lexicon.New(nil), nil, Options{})
	opts := r.Options()
	if opts.MaxResults != DefaultMaxResults || opts.MinSimilarity != DefaultMinSimilarity {
		t.Errorf("zero options should take defaults, got %+v", opts)
	}
	if opts.Metric == nil || opts.Metric.Name() != similarity.NameRatio {
		t.Error("default metric should be ratio")
	}
}

func TestSuggestWithLevenshtein(t *testing.T) {
	metric, err := similarity.ByName(similarity.NameLevenshtein)
	if err != nil {
		t.Fatal(err)
	}
	lex := lexicon.New([]string{"makan", "minum", "rumah"})
	r := New(lex, nil, Options{MaxResults: 1, MinSimilarity: 0.6, Metric: metric})

	got := r.Suggest("minumm")
	if len(got.Items) != 1 || got.Items[0].Word != "minum" {
		t.Errorf("Suggest(minumm) = %+v, want [minum]", got.Items)
	}
}
