package services

import (
	"context"
	"testing"
	"time"

	"github.com/Senthuron/Gym-Backend/internal/models"
)

func newTestMemberService() (*MemberService, *memUsers, *memMembers) {
	rec, users, members, trainers, employees := newTestReconciler()
	_ = trainers
	_ = employees
	return NewMemberService(members, users, rec, NewHub()), users, members
}

func TestMemberMatchesFilter(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	active := &models.Member{MembershipEndDate: now.AddDate(0, 0, 20)}
	expiring := &models.Member{MembershipEndDate: now.AddDate(0, 0, 5)}
	expired := &models.Member{MembershipEndDate: now.AddDate(0, 0, -3)}
	flaggedActive := &models.Member{Status: models.MemberStatusActive, MembershipEndDate: now.AddDate(0, 0, -3)}
	pending := &models.Member{Status: models.MemberStatusPending, MembershipEndDate: now.AddDate(0, 0, 20)}

	tests := []struct {
		name   string
		m      *models.Member
		filter string
		want   bool
	}{
		{"all matches active", active, FilterAll, true},
		{"all matches expired", expired, FilterAll, true},
		{"active matches active", active, FilterActive, true},
		{"active rejects expired", expired, FilterActive, false},
		{"explicit active status wins over dates", flaggedActive, FilterActive, true},
		{"pending is not active despite valid dates", pending, FilterActive, false},
		{"inactive matches expired", expired, FilterInactive, true},
		{"inactive rejects active", active, FilterInactive, false},
		{"expiring matches soon-to-expire", expiring, FilterExpiring, true},
		{"expiring rejects long-running", active, FilterExpiring, false},
		{"expiring rejects already expired", expired, FilterExpiring, false},
		{"unknown filter matches everything", expired, "bogus", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberMatchesFilter(tt.m, tt.filter, now); got != tt.want {
				t.Errorf("MemberMatchesFilter(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestListMembersAppliesFilter(t *testing.T) {
	svc, _, members := newTestMemberService()
	ctx := context.Background()

	now := time.Now()
	for _, m := range []*models.Member{
		{Name: "A", Email: "a@x.lk", MembershipEndDate: now.AddDate(0, 0, 30)},
		{Name: "B", Email: "b@x.lk", MembershipEndDate: now.AddDate(0, 0, -1)},
	} {
		if err := members.Insert(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.ListMembers(ctx, FilterActive, "")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("active filter returned %v, want only A", got)
	}

	got, err = svc.ListMembers(ctx, FilterAll, "b@x")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("search returned %v, want only B", got)
	}
}

func TestListMembersHealsMissingProfiles(t *testing.T) {
	svc, users, members := newTestMemberService()
	ctx := context.Background()

	u := &models.User{Name: "Ghost", Email: "ghost@gym.lk", Role: models.RoleMember}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListMembers(ctx, FilterAll, "")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(got) != 1 || got[0].Email != "ghost@gym.lk" {
		t.Errorf("listing should heal the missing profile, got %v", got)
	}
	if len(members.docs) != 1 {
		t.Errorf("expected one healed profile, got %d", len(members.docs))
	}
}

func TestUpdateMemberPushesSharedFieldsToIdentity(t *testing.T) {
	svc, users, _ := newTestMemberService()
	ctx := context.Background()

	m, err := svc.CreateMember(ctx, memberInput("push@gym.lk"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateMember(ctx, m.ID.Hex(), UpdateMemberInput{Name: "Pushed", Phone: "0711111111"})
	if err != nil {
		t.Fatalf("UpdateMember() error = %v", err)
	}
	if updated.Name != "Pushed" {
		t.Errorf("member name = %q, want Pushed", updated.Name)
	}
	u, _ := users.FindByID(ctx, *m.User)
	if u.Name != "Pushed" || u.Phone != "0711111111" {
		t.Errorf("identity not synced: %+v", u)
	}
}

func TestUpdateMemberEmailPropagatesToIdentity(t *testing.T) {
	svc, users, members := newTestMemberService()
	ctx := context.Background()

	m, err := svc.CreateMember(ctx, memberInput("old@gym.lk"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateMember(ctx, m.ID.Hex(), UpdateMemberInput{Email: "New@Gym.LK"})
	if err != nil {
		t.Fatalf("UpdateMember() error = %v", err)
	}
	if updated.Email != "new@gym.lk" {
		t.Errorf("member email = %q, want normalized lowercase", updated.Email)
	}
	u, _ := users.FindByID(ctx, *m.User)
	if u.Email != "new@gym.lk" {
		t.Errorf("identity email = %q, want new@gym.lk", u.Email)
	}
	if got, _ := members.FindByEmail(ctx, "old@gym.lk"); got != nil {
		t.Error("old email still resolves to a member profile")
	}
}

func TestUpdateMemberRejectsInvertedDates(t *testing.T) {
	svc, _, _ := newTestMemberService()
	ctx := context.Background()

	m, err := svc.CreateMember(ctx, memberInput("inv@gym.lk"))
	if err != nil {
		t.Fatal(err)
	}
	bad := m.MembershipStartDate.AddDate(0, 0, -1)
	if _, err := svc.UpdateMember(ctx, m.ID.Hex(), UpdateMemberInput{MembershipEndDate: &bad}); err == nil {
		t.Fatal("expected validation error for end before start")
	}
	equal := m.MembershipStartDate
	if _, err := svc.UpdateMember(ctx, m.ID.Hex(), UpdateMemberInput{MembershipEndDate: &equal}); err == nil {
		t.Fatal("expected validation error for end equal to start")
	}
}

func TestDeleteMemberCascadesThroughIdentity(t *testing.T) {
	svc, users, members := newTestMemberService()
	ctx := context.Background()

	m, err := svc.CreateMember(ctx, memberInput("gonemem@gym.lk"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteMember(ctx, m.ID.Hex()); err != nil {
		t.Fatalf("DeleteMember() error = %v", err)
	}
	if u, _ := users.FindByID(ctx, *m.User); u != nil {
		t.Error("identity survived member delete")
	}
	if got, _ := members.FindByID(ctx, m.ID); got != nil {
		t.Error("member profile survived delete")
	}
}

func TestGetMemberByUserHealsMissingProfile(t *testing.T) {
	svc, users, members := newTestMemberService()
	ctx := context.Background()

	u := &models.User{Name: "Healed", Email: "heal@gym.lk", Role: models.RoleMember}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatal(err)
	}

	m, err := svc.GetMemberByUser(ctx, u.ID.Hex())
	if err != nil {
		t.Fatalf("GetMemberByUser() error = %v", err)
	}
	if m.User == nil || *m.User != u.ID {
		t.Error("healed profile not linked to the identity")
	}
	if len(members.docs) != 1 {
		t.Errorf("member docs = %d, want 1", len(members.docs))
	}
}

func TestGetMemberByUserRejectsNonMember(t *testing.T) {
	svc, users, _ := newTestMemberService()
	ctx := context.Background()

	u := &models.User{Name: "Staff", Email: "staff@gym.lk", Role: models.RoleReception}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetMemberByUser(ctx, u.ID.Hex()); err == nil {
		t.Fatal("expected forbidden error for non-member identity")
	}
}
