package validation

import (
	"strings"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		wantErrors int
		wantFields []string
	}{
		{
			name:     "valid registration",
			userName: "Ada Lovelace",
			email:    "ada@example.com",
			password: "hunter22",
		},
		{
			name:       "missing name",
			email:      "ada@example.com",
			password:   "hunter22",
			wantErrors: 1,
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			userName:   strings.Repeat("x", 51),
			email:      "ada@example.com",
			password:   "hunter22",
			wantErrors: 1,
			wantFields: []string{"name"},
		},
		{
			name:       "invalid email format",
			userName:   "Ada",
			email:      "not-an-email",
			password:   "hunter22",
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name:       "password too short",
			userName:   "Ada",
			email:      "ada@example.com",
			password:   "12345",
			wantErrors: 1,
			wantFields: []string{"password"},
		},
		{
			name:       "everything wrong",
			userName:   "",
			email:      "bad",
			password:   "",
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.userName, tt.email, tt.password)
			if len(errs) != tt.wantErrors {
				t.Errorf("Got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
			for _, wantField := range tt.wantFields {
				found := false
				for _, err := range errs {
					if err.Field == wantField {
						found = true
					}
				}
				if !found {
					t.Errorf("Expected error on field %q", wantField)
				}
			}
		})
	}
}

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		subtitle   string
		content    string
		wantErrors int
	}{
		{"valid article", "Title", "Subtitle", "Content", 0},
		{"missing title", "", "", "Content", 1},
		{"whitespace title", "   ", "", "Content", 1},
		{"missing content", "Title", "", "", 1},
		{"title too long", strings.Repeat("x", 201), "", "Content", 1},
		{"subtitle too long", "Title", strings.Repeat("x", 301), "Content", 1},
		{"title at limit is fine", strings.Repeat("x", 200), strings.Repeat("y", 300), "Content", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateArticleInput(tt.title, tt.subtitle, tt.content)
			if len(errs) != tt.wantErrors {
				t.Errorf("Got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
		})
	}
}

func TestValidateArticlePatch(t *testing.T) {
	empty := ""
	long := strings.Repeat("x", 201)
	ok := "fine"

	tests := []struct {
		name       string
		title      *string
		subtitle   *string
		content    *string
		wantErrors int
	}{
		{"nil patch fields carry no constraints", nil, nil, nil, 0},
		{"valid replacement", &ok, &ok, &ok, 0},
		{"empty title rejected", &empty, nil, nil, 1},
		{"empty content rejected", nil, nil, &empty, 1},
		{"oversized title rejected", &long, nil, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateArticlePatch(tt.title, tt.subtitle, tt.content)
			if len(errs) != tt.wantErrors {
				t.Errorf("Got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErrors int
	}{
		{"valid comment", "nice read", 0},
		{"empty comment", "", 1},
		{"whitespace comment", "   ", 1},
		{"at the limit", strings.Repeat("x", 1000), 0},
		{"over the limit", strings.Repeat("x", 1001), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateComment(tt.content)
			if len(errs) != tt.wantErrors {
				t.Errorf("Got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name        string
		catName     string
		description string
		wantErrors  int
	}{
		{"valid category", "Technology", "All about tech", 0},
		{"unknown name", "Gossip", "Celebrity news", 1},
		{"missing name", "", "desc", 1},
		{"missing description", "Design", "", 1},
		{"description too long", "Health", strings.Repeat("x", 201), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCategory(tt.catName, tt.description)
			if len(errs) != tt.wantErrors {
				t.Errorf("Got %d errors, want %d. Errors: %v", len(errs), tt.wantErrors, errs)
			}
		})
	}
}
