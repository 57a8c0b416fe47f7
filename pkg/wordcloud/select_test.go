package wordcloud

import "testing"

func TestSelectWords(t *testing.T) {
	words := []Word{
		{Text: "low", Value: 1},
		{Text: "high", Value: 10},
		{Text: "mid", Value: 5},
	}

	tests := []struct {
		name     string
		maxWords int
		want     []string
	}{
		{"all", 3, []string{"high", "mid", "low"}},
		{"truncated", 1, []string{"high"}},
		{"zero", 0, []string{}},
		{"negative treated as zero", -1, []string{}},
		{"max beyond length", 10, []string{"high", "mid", "low"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectWords(words, tt.maxWords)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d words, want %d", len(got), len(tt.want))
			}
			for i, text := range tt.want {
				if got[i].Text != text {
					t.Errorf("word %d = %q, want %q", i, got[i].Text, text)
				}
			}
		})
	}
}

func TestSelectWordsStableTies(t *testing.T) {
	words := []Word{
		{Text: "first", Value: 3},
		{Text: "second", Value: 3},
		{Text: "third", Value: 3},
	}

	got := SelectWords(words, 3)
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Text != want {
			t.Errorf("tied word %d = %q, want %q (original order must be preserved)", i, got[i].Text, want)
		}
	}
}

func TestSelectWordsDoesNotMutateInput(t *testing.T) {
	words := []Word{
		{Text: "a", Value: 1},
		{Text: "b", Value: 2},
	}

	SelectWords(words, 2)

	if words[0].Text != "a" || words[1].Text != "b" {
		t.Error("input slice was reordered")
	}
}

func TestSelectWordsEmpty(t *testing.T) {
	if got := SelectWords(nil, 5); len(got) != 0 {
		t.Errorf("empty input should give empty output, got %d words", len(got))
	}
}
