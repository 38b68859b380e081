package normalize

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already iso", input: "2024-03-07", want: "2024-03-07"},
		{name: "full month name", input: "07 March 2024", want: "2024-03-07"},
		{name: "abbreviated month name", input: "07 Mar 2024", want: "2024-03-07"},
		{name: "day first slashes", input: "07/03/2024", want: "2024-03-07"},
		{name: "month first when day invalid", input: "03/14/2024", want: "2024-03-14"},
		{name: "day first dashes", input: "07-03-2024", want: "2024-03-07"},
		{name: "ambiguous resolves day first", input: "03/04/2024", want: "2024-04-03"},
		{name: "surrounding whitespace", input: "  2024-03-07  ", want: "2024-03-07"},
		{name: "unrecognized kept as is", input: "not a date", want: "not a date"},
		{name: "empty", input: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeDate(tc.input); got != tc.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsISODate(t *testing.T) {
	if !IsISODate("2024-03-07") {
		t.Fatal("expected 2024-03-07 to be ISO")
	}
	for _, s := range []string{"", "07/03/2024", "not a date", "2024-3-7"} {
		if IsISODate(s) {
			t.Fatalf("expected %q not to be ISO", s)
		}
	}
}
