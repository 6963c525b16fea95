package store

import "testing"

func TestEmailKey(t *testing.T) {
	cases := []struct {
		email   string
		want    string
		wantErr bool
	}{
		{"student@g-mail.nsysu.edu.tw", "student@g-mail,nsysu,edu,tw", false},
		{"a.b.c@d.e", "a,b,c@d,e", false},
		{"  padded@x.y  ", "padded@x,y", false},
		{"nodomain@", "", true},
		{"@nolocal.tw", "", true},
		{"not-an-email", "", true},
		{"", "", true},
		{"has space@x.y", "", true},
		{"slash/x@y.z", "", true},
	}
	for _, c := range cases {
		got, err := EmailKey(c.email)
		if c.wantErr {
			if err == nil {
				t.Errorf("EmailKey(%q): expected error, got %q", c.email, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("EmailKey(%q): %v", c.email, err)
			continue
		}
		if got != c.want {
			t.Errorf("EmailKey(%q) = %q, want %q", c.email, got, c.want)
		}
	}
}

func TestEmailKeyStable(t *testing.T) {
	// The same address must always derive the same key; it is the only way
	// the binding record is ever found again.
	a, err := EmailKey("x.y@z.tw")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EmailKey("x.y@z.tw")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("derivation not stable: %q vs %q", a, b)
	}
}
