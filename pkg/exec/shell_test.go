package exec

import (
	"runtime"
	"testing"
)

func TestQuote(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix quoting only")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"don't", `'don'\''t'`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestJoinArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix quoting only")
	}
	got := JoinArgs([]string{"python", "src/main.py", "--flag value"})
	want := `'python' 'src/main.py' '--flag value'`
	if got != want {
		t.Errorf("JoinArgs() = %s, want %s", got, want)
	}
}
