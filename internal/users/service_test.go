package users

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	sharedauth "nurture-backend/internal/shared/auth"
	"nurture-backend/internal/shared/storage/object/local"
	"nurture-backend/internal/shared/testutil"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRfake-image")

func newTestService(t *testing.T) *Service {
	t.Helper()
	testutil.CaptureLogs(t)
	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()), time.Hour)
	svc.HashCost = bcrypt.MinCost
	return svc
}

func TestSignUpThenSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Email: "Ana@Example.com", Password: "correct-horse", FullName: "Ana"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if session.Profile.Role != RoleParent || session.Profile.PasswordHash == "correct-horse" {
		t.Fatalf("unexpected profile %+v", session.Profile)
	}
	claims, err := sharedauth.VerifyJWT(session.Token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != session.Profile.ID || claims.Role != "parent" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	again, err := svc.SignIn(ctx, "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if again.Profile.ID != session.Profile.ID {
		t.Fatalf("signed into a different profile")
	}

	if _, err := svc.SignIn(ctx, "ana@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	in := SignUpInput{Email: "dup@example.com", Password: "password1", FullName: "Dup"}
	if _, err := svc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	in.Email = "DUP@example.com"
	if _, err := svc.SignUp(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpsertFromGoogleReusesProfile(t *testing.T) {
	svc := newTestService(t)
	first, err := svc.UpsertFromGoogle(context.Background(), "g@example.com", "Gee")
	if err != nil {
		t.Fatalf("UpsertFromGoogle: %v", err)
	}
	second, err := svc.UpsertFromGoogle(context.Background(), "g@example.com", "Gee")
	if err != nil {
		t.Fatalf("UpsertFromGoogle: %v", err)
	}
	if first.Profile.ID != second.Profile.ID || first.Profile.Role != RoleParent {
		t.Fatalf("expected same parent profile, got %+v and %+v", first.Profile, second.Profile)
	}
	if _, err := svc.SignIn(context.Background(), "g@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("google-only profile must not accept password sign in")
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t)
	session, err := svc.SignUp(context.Background(), SignUpInput{Email: "p@example.com", Password: "password1", FullName: "Pat"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	child := "Sam"
	age := 7
	updated, err := svc.Update(context.Background(), session.Profile.ID, ProfilePatch{ChildName: &child, Age: &age})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != "Pat" || updated.ChildName != "Sam" || updated.Age == nil || *updated.Age != 7 {
		t.Fatalf("unexpected profile %+v", updated)
	}
}

func TestSetAvatarStoresImage(t *testing.T) {
	svc := newTestService(t)
	session, _ := svc.SignUp(context.Background(), SignUpInput{Email: "a@example.com", Password: "password1", FullName: "A"})

	profile, err := svc.SetAvatar(context.Background(), session.Profile.ID, "me.png", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("SetAvatar: %v", err)
	}
	if !strings.HasSuffix(profile.AvatarURL, "_me.png") {
		t.Fatalf("unexpected avatar key %q", profile.AvatarURL)
	}

	rc, err := svc.OpenAvatar(context.Background(), session.Profile.ID)
	if err != nil {
		t.Fatalf("OpenAvatar: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, pngBytes) {
		t.Fatalf("avatar bytes mismatch")
	}
}

func TestSetAvatarRejectsNonImage(t *testing.T) {
	svc := newTestService(t)
	session, _ := svc.SignUp(context.Background(), SignUpInput{Email: "b@example.com", Password: "password1", FullName: "B"})

	_, err := svc.SetAvatar(context.Background(), session.Profile.ID, "notes.txt", strings.NewReader("just text"))
	if !errors.Is(err, ErrUnsupportedAvatar) {
		t.Fatalf("expected ErrUnsupportedAvatar, got %v", err)
	}
	if _, err := svc.OpenAvatar(context.Background(), session.Profile.ID); !errors.Is(err, ErrNoAvatar) {
		t.Fatalf("expected ErrNoAvatar, got %v", err)
	}
}
