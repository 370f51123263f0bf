package services

import (
	"reflect"
	"testing"

	"github.com/messmate/mess-client/internal/core/domain"
)

func TestDecide_Table(t *testing.T) {
	unverified := &domain.Identity{ID: 1, Status: domain.StatusUnverified}
	registered := &domain.Identity{ID: 1, Status: domain.StatusRegistrationComplete}
	complete := &domain.Identity{ID: 1, Status: domain.StatusProfileComplete}

	tests := []struct {
		name    string
		loading bool
		ident   *domain.Identity
		path    string

		wantAction GuardAction
		wantTo     string
		wantNotice domain.NotificationKind // zero value means no notice
	}{
		{name: "loading blocks everything", loading: true, ident: complete, path: "/dashboard", wantAction: ActionShowLoading},
		{name: "anonymous redirected to login silently", path: "/dashboard", wantAction: ActionRedirect, wantTo: PathLogin},
		{name: "anonymous on payments", path: "/payments", wantAction: ActionRedirect, wantTo: PathLogin},
		{name: "unverified pushed to register with warning", ident: unverified, path: "/dashboard", wantAction: ActionRedirect, wantTo: PathRegister, wantNotice: domain.NoticeWarning},
		{name: "unverified allowed on register", ident: unverified, path: PathRegister, wantAction: ActionRender},
		{name: "unverified allowed on login", ident: unverified, path: PathLogin, wantAction: ActionRender},
		{name: "registration_complete pushed to profile with info", ident: registered, path: "/dashboard", wantAction: ActionRedirect, wantTo: PathProfile, wantNotice: domain.NoticeInfo},
		{name: "registration_complete allowed on profile", ident: registered, path: PathProfile, wantAction: ActionRender},
		{name: "complete renders anything", ident: complete, path: "/leaves", wantAction: ActionRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.loading, tt.ident, tt.path)
			if got.Action != tt.wantAction {
				t.Fatalf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.Action != ActionRedirect {
				return
			}
			if got.To != tt.wantTo {
				t.Errorf("redirect to %q, want %q", got.To, tt.wantTo)
			}
			if got.From != tt.path {
				t.Errorf("remembered path %q, want %q", got.From, tt.path)
			}
			if tt.wantNotice == "" {
				if got.Notice != nil {
					t.Errorf("expected a silent redirect, got notice %+v", got.Notice)
				}
			} else {
				if got.Notice == nil {
					t.Fatal("expected a notice on the redirect")
				}
				if got.Notice.Kind != tt.wantNotice {
					t.Errorf("notice kind = %q, want %q", got.Notice.Kind, tt.wantNotice)
				}
			}
		})
	}
}

func TestDecide_IsPure(t *testing.T) {
	ident := &domain.Identity{ID: 1, Status: domain.StatusUnverified}
	first := Decide(false, ident, "/payments")
	for i := 0; i < 5; i++ {
		if got := Decide(false, ident, "/payments"); !reflect.DeepEqual(got, first) {
			t.Fatalf("decision changed between identical calls: %+v vs %+v", got, first)
		}
	}
}

func TestEntryRedirect(t *testing.T) {
	ident := &domain.Identity{ID: 1, Status: domain.StatusProfileComplete}

	if to, ok := EntryRedirect(ident, PathLogin); !ok || to != PathDashboard {
		t.Errorf("authenticated user on /login should go to dashboard, got %q %t", to, ok)
	}
	if to, ok := EntryRedirect(ident, PathRegister); !ok || to != PathDashboard {
		t.Errorf("authenticated user on /register should go to dashboard, got %q %t", to, ok)
	}
	if _, ok := EntryRedirect(nil, PathLogin); ok {
		t.Error("anonymous user should stay on the login page")
	}
	if _, ok := EntryRedirect(ident, "/dashboard"); ok {
		t.Error("entry rule only applies to the entry paths")
	}
}
