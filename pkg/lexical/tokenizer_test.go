package lexical

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "Hello, World! Testing.",
			want: []string{"hello", "world", "testing"},
		},
		{
			name: "drops stopwords",
			text: "the cat is on the mat",
			want: []string{"cat", "mat"},
		},
		{
			name: "keeps numeric tokens",
			text: "Atatürk 1881 doğum tarihi",
			want: []string{"atatürk", "1881", "doğum", "tarihi"},
		},
		{
			name: "keeps alphanumeric product codes",
			text: "model XJ9 revision 2024-B",
			want: []string{"model", "xj9", "revision", "2024"},
		},
		{
			name: "drops single characters",
			text: "x y z 7 q-factor",
			want: []string{"factor"},
		},
		{
			name: "turkish stopwords removed",
			text: "bu konu ve bir örnek için",
			want: []string{"konu", "örnek"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only stopwords",
			text: "the and of",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeExtraStopwords(t *testing.T) {
	tok := NewTokenizer("lorem", "IPSUM")

	got := tok.Tokenize("lorem ipsum dolor")
	want := []string{"dolor"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize with extra stopwords = %v, want %v", got, want)
	}
}

func TestTokenizeAll(t *testing.T) {
	tok := NewTokenizer()

	got := tok.TokenizeAll([]string{"first doc", "", "second doc"})
	if len(got) != 3 {
		t.Fatalf("TokenizeAll returned %d results, want 3", len(got))
	}
	if got[1] != nil {
		t.Errorf("empty document should tokenize to nil, got %v", got[1])
	}
}
