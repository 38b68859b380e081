package normalize

import "testing"

func TestCleanSupplier(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Acme Corp,;:·", want: "Acme Corp"},
		{input: "  Acme Ltd, ", want: "Acme Ltd"},
		{input: "Acme", want: "Acme"},
		{input: "", want: ""},
		{input: ",;:·", want: ""},
	}
	for _, tc := range cases {
		if got := CleanSupplier(tc.input); got != tc.want {
			t.Fatalf("CleanSupplier(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestStripNewlines(t *testing.T) {
	got := StripNewlines("Acme\nCorp\r\nLtd")
	want := "Acme Corp  Ltd"
	if got != want {
		t.Fatalf("StripNewlines = %q, want %q", got, want)
	}
}
