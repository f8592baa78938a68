package share

import "testing"

func TestLink(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		templateID string
		want       string
	}{
		{
			name:       "plain origin",
			baseURL:    "https://example.com",
			templateID: "abc123",
			want:       "https://example.com/shared/template/abc123",
		},
		{
			name:       "trailing slash trimmed",
			baseURL:    "https://example.com/",
			templateID: "abc123",
			want:       "https://example.com/shared/template/abc123",
		},
		{
			name:       "numeric id",
			baseURL:    "http://localhost:8080",
			templateID: "1700000000000",
			want:       "http://localhost:8080/shared/template/1700000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGenerator(tt.baseURL).Link(tt.templateID)
			if got != tt.want {
				t.Fatalf("Link() = %q, want %q", got, tt.want)
			}
		})
	}
}
