package developments

import "testing"

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"M1 1AD", "M11AD"},
		{"m1 1ad", "M11AD"},
		{"  SW1A  2AA ", "SW1A2AA"},
		{"LS1\t4AP", "LS14AP"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePostcode(tt.in); got != tt.want {
			t.Errorf("NormalizePostcode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"now letting", "Operational"},
		{"Now Letting", "Operational"},
		{"completed", "Operational"},
		{"building", "Under Construction"},
		{"Under Construction", "Under Construction"},
		{"planned", "In Planning"},
		{"  planning  ", "In Planning"},
		{"demolished", "demolished"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"375", 375, true},
		{" 120 ", 120, true},
		{"0", 0, true},
		{"-5", 0, false},
		{"approx 300", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseUnits(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseUnits(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.greystar.co.uk/properties/manchester", "greystar.co.uk"},
		{"http://quintain.com", "quintain.com"},
		{"https://WWW.Example.COM/path", "example.com"},
		{"grainger.co.uk", "grainger.co.uk"},
		{"www.grainger.co.uk/about", "grainger.co.uk"},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
