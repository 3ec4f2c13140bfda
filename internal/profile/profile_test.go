package profile

import (
	"testing"

	"github.com/thoreinstein/strata/internal/errors"
)

func TestParseStoreType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StoreType
		wantErr bool
	}{
		{"local", "local", StoreLocal, false},
		{"sql", "sql", StoreSQL, false},
		{"rest", "rest", StoreREST, false},
		{"uppercase", "REST", StoreREST, false},
		{"surrounding whitespace", "  sql ", StoreSQL, false},
		{"unknown", "mongo", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStoreType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStoreType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseStoreType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStoreType_Remote(t *testing.T) {
	if StoreLocal.Remote() {
		t.Error("local store should not be remote")
	}
	if !StoreSQL.Remote() {
		t.Error("sql store should be remote")
	}
	if !StoreREST.Remote() {
		t.Error("rest store should be remote")
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr bool
	}{
		{
			name:    "default local profile",
			profile: New("default"),
			wantErr: false,
		},
		{
			name:    "rest profile with url",
			profile: &Profile{Name: "staging", StoreType: StoreREST, StoreURL: "https://staging.example.com"},
			wantErr: false,
		},
		{
			name:    "rest profile without url",
			profile: &Profile{Name: "staging", StoreType: StoreREST},
			wantErr: true,
		},
		{
			name:    "sql profile with blank url",
			profile: &Profile{Name: "db", StoreType: StoreSQL, StoreURL: "   "},
			wantErr: true,
		},
		{
			name:    "empty name",
			profile: &Profile{Name: "", StoreType: StoreLocal},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			profile: &Profile{Name: "   ", StoreType: StoreLocal},
			wantErr: true,
		},
		{
			name:    "unknown store type",
			profile: &Profile{Name: "x", StoreType: "mongo"},
			wantErr: true,
		},
		{
			name:    "uppercase name rejected",
			profile: &Profile{Name: "Staging", StoreType: StoreLocal},
			wantErr: true,
		},
		{
			name:    "hyphenated name accepted",
			profile: &Profile{Name: "staging-eu-1", StoreType: StoreLocal},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}
