package fingerprint

import "testing"

func TestHashContent_NormalizesCaseAndWhitespace(t *testing.T) {
	a := HashContent("What is  4+6?")
	b := HashContent("what is 4+6?\n")
	if a != b {
		t.Error("hash must be stable under case and whitespace differences")
	}
	if a == HashContent("What is 4+7?") {
		t.Error("different content must hash differently")
	}
}

func TestExtractKeywords_TopFiveByFrequency(t *testing.T) {
	raw := "fraction fraction fraction denominator denominator numerator equivalent simplify compare"
	got := ExtractKeywords(raw)
	if len(got) != 5 {
		t.Fatalf("got %d keywords, want 5", len(got))
	}
	if got[0] != "fraction" || got[1] != "denominator" {
		t.Errorf("keywords %v, want fraction then denominator first", got)
	}
}

func TestJaccard(t *testing.T) {
	if got := jaccard([]string{"a", "b"}, []string{"a", "b"}); got != 1.0 {
		t.Errorf("identical sets: got %v, want 1.0", got)
	}
	if got := jaccard([]string{"a", "b", "c"}, []string{"a", "d"}); got != 0.25 {
		t.Errorf("one of four shared: got %v, want 0.25", got)
	}
	if got := jaccard(nil, nil); got != 1.0 {
		t.Errorf("empty sets: got %v, want 1.0", got)
	}
}
