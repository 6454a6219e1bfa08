package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "lowercase and split hyphen", text: "Sci-Fi Action", want: []string{"sci", "fi", "action"}},
		{name: "drop single chars", text: "a x Up", want: []string{"up"}},
		{name: "punctuation", text: "space, battles & aliens!", want: []string{"space", "battles", "aliens"}},
		{name: "unicode letters", text: "Amélie café", want: []string{"amélie", "café"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTerms_DropsStopWords(t *testing.T) {
	got := Terms("space battles and aliens in the future")
	want := []string{"space", "battles", "aliens", "future"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
	if len(Terms("and the of it")) != 0 {
		t.Error("expected only stop words to produce no terms")
	}
}
