package models

import "testing"

func TestVisibilityString(t *testing.T) {
	tests := []struct {
		visibility Visibility
		expected   string
	}{
		{VisibilityPrivate, "private"},
		{VisibilityPublic, "public"},
		{VisibilityUnlisted, "unlisted"},
		{Visibility(99), "private"},
	}

	for _, tt := range tests {
		if got := tt.visibility.String(); got != tt.expected {
			t.Errorf("Visibility(%d).String() = %q, expected %q", tt.visibility, got, tt.expected)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		input    string
		expected Visibility
		wantErr  bool
	}{
		{"private", VisibilityPrivate, false},
		{"public", VisibilityPublic, false},
		{"unlisted", VisibilityUnlisted, false},
		{"PUBLIC", VisibilityPublic, false},
		{" unlisted ", VisibilityUnlisted, false},
		{"", VisibilityPrivate, false},
		{"friends-only", VisibilityPrivate, true},
	}

	for _, tt := range tests {
		got, err := ParseVisibility(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVisibility(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVisibility(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseVisibility(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestPlaylistURL(t *testing.T) {
	p := &Playlist{ID: "PLabc123"}
	expected := "https://www.youtube.com/playlist?list=PLabc123"
	if got := p.URL(); got != expected {
		t.Errorf("URL() = %q, expected %q", got, expected)
	}
}
