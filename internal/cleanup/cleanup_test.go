package cleanup

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "passthrough",
			in:   "to speak",
			want: "to speak",
		},
		{
			name: "strips oneself",
			in:   "to wash oneself",
			want: "to wash",
		},
		{
			name: "strips oneself case insensitive",
			in:   "to dry Oneself off",
			want: "to dry off",
		},
		{
			name: "keeps subject prefix",
			in:   "(he / she / it) speaks",
			want: "(he / she / it) speaks",
		},
		{
			name: "strips trailing parenthetical",
			in:   "to run (informal)",
			want: "to run",
		},
		{
			name: "keeps it parenthetical",
			in:   "(it) pleases (colloquial)",
			want: "(it) pleases",
		},
		{
			name: "subject prefix with inner parenthetical",
			in:   "(we) eat (breakfast)",
			want: "(we) eat",
		},
		{
			name: "collapses whitespace",
			in:   "to   go \t home",
			want: "to go home",
		},
		{
			name: "removes space before punctuation",
			in:   "to leave , quickly",
			want: "to leave, quickly",
		},
		{
			name: "trims hyphens and spaces",
			in:   " - to arrive - ",
			want: "to arrive",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q)=%q want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"to speak",
		"to wash oneself",
		"(I) speak",
		"(I) ",
		"(they / you-plural) leave (formal)",
		"(it) rains a lot (in spring)",
		"to   pause ,  briefly",
		" - dangling - ",
		"",
		"nested ((odd)) parens",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
