package lang

import "testing"

func TestDetect(t *testing.T) {
	cases := map[string]string{
		"hello":        "en",
		"привет":       "ru",
		"":             "en",
		"1234 !?":      "en",
		"кот and собака": "ru",
	}
	for text, expected := range cases {
		if got := Detect(text); got != expected {
			t.Fatalf("Detect(%q) = %q, expected %q", text, got, expected)
		}
	}
}
