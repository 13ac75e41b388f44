package normalize

import "testing"

func TestFlagKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dark-mode", "dark-mode"},
		{"  Dark-Mode ", "dark-mode"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FlagKey(tt.in); got != tt.want {
			t.Errorf("FlagKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTeamKeepsCase(t *testing.T) {
	if got := Team("  Team-A\t"); got != "Team-A" {
		t.Errorf("Team() = %q, want %q", got, "Team-A")
	}
}

func TestEmail(t *testing.T) {
	if got := Email(" Ada@Example.COM "); got != "ada@example.com" {
		t.Errorf("Email() = %q", got)
	}
}

func TestQueryParam(t *testing.T) {
	if got := QueryParam("  team-a "); got != "team-a" {
		t.Errorf("QueryParam() = %q", got)
	}
}
