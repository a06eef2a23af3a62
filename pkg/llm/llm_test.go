package llm

import (
	"Moments/config"
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"#sunset #beach #sea", []string{"sunset", "beach", "sea"}},
		{"Here you go: #cat#dog  #cat", []string{"cat", "dog"}},
		{"no tags at all", []string{}},
	}
	for _, c := range cases {
		got := ParseTags(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDisabledSuggester(t *testing.T) {
	s := NewTagSuggester(&config.LLM{})
	_, err := s.SuggestTags(context.Background(), "http://localhost/images/a.jpg")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
