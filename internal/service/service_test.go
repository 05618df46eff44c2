package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	auth     *AuthService
	accounts *AccountService
	entries  *EntryService
	stats    *StatsService
	sessions *repository.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()
	store := kvstore.NewMemoryStore()
	now := func() time.Time { return fixedNow }
	cfg := &config.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}

	accountRepo := repository.NewAccountRepository(store, config.BlobKey, repository.DefaultAccounts("tccnbd"), log)
	entryRepo := repository.NewEntryRepository(store, config.BlobKey, now, log)
	sessionRepo := repository.NewSessionRepository(store, config.BlobKey, log)

	auth := NewAuthService(cfg, accountRepo, sessionRepo, log)
	auth.now = now
	return &fixture{
		auth:     auth,
		accounts: NewAccountService(accountRepo, sessionRepo, auth, log),
		entries:  NewEntryService(entryRepo, now, log),
		stats:    NewStatsService(entryRepo, accountRepo, log),
		sessions: sessionRepo,
	}
}

func sampleRequest(subject, class, date string) model.EntryRequest {
	return model.EntryRequest{
		Subject:       subject,
		ClassName:     class,
		Session:       model.SessionMorning,
		PeriodSlot:    2,
		Duration:      2,
		LessonTopic:   "Ôn tập",
		TotalStudents: 30,
		AbsentCount:   1,
		Date:          date,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher needs no password", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.auth.Login(ctx, "gv01", "anything")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if resp.Account.ID != "u1" || resp.Token == "" {
			t.Fatalf("unexpected response %+v", resp)
		}
		current, err := f.auth.CurrentAccount(ctx)
		if err != nil || current == nil || current.ID != "u1" {
			t.Fatalf("current account = %+v, %v", current, err)
		}
	})

	t.Run("admin with wrong password fails and keeps no session", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.auth.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := f.auth.Login(ctx, "admin", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("empty password must fail, got %v", err)
		}
		current, _ := f.auth.CurrentAccount(ctx)
		if current != nil {
			t.Fatalf("expected no session, got %+v", current)
		}
	})

	t.Run("admin with seeded plain secret", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.auth.Login(ctx, "admin", "tccnbd")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if resp.Account.Role != model.RoleAdmin {
			t.Fatalf("role = %s", resp.Account.Role)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.auth.Login(ctx, "ghost", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_SingleActiveSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.auth.Login(ctx, "gv01", "")
	if err != nil {
		t.Fatalf("login gv01: %v", err)
	}
	second, err := f.auth.Login(ctx, "gv02", "")
	if err != nil {
		t.Fatalf("login gv02: %v", err)
	}

	claims, err := f.auth.ValidateToken(first.Token)
	if err != nil {
		t.Fatalf("first token must still parse: %v", err)
	}
	if _, err := f.auth.ValidateSession(ctx, claims); !errors.Is(err, ErrSessionInvalidated) {
		t.Fatalf("expected ErrSessionInvalidated, got %v", err)
	}

	claims, err = f.auth.ValidateToken(second.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	acc, err := f.auth.ValidateSession(ctx, claims)
	if err != nil || acc.ID != "u2" {
		t.Fatalf("ValidateSession = %+v, %v", acc, err)
	}

	if err := f.auth.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.auth.ValidateSession(ctx, claims); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	if err := f.auth.Logout(ctx); err != nil {
		t.Fatalf("logout twice: %v", err)
	}
}

func TestAuthService_ValidateTokenRejectsForeignSignature(t *testing.T) {
	f := newFixture(t)
	resp, err := f.auth.Login(context.Background(), "gv01", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	f.auth.cfg.JWTSecret = "another-secret"
	if _, err := f.auth.ValidateToken(resp.Token); err == nil {
		t.Fatal("expected signature error")
	}
	if _, err := f.auth.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAuthService_CheckPassword(t *testing.T) {
	f := newFixture(t)
	hash, err := f.auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name    string
		stored  string
		given   string
		wantErr bool
	}{
		{"bcrypt match", hash, "secret123", false},
		{"bcrypt mismatch", hash, "secret124", true},
		{"plain match", "tccnbd", "tccnbd", false},
		{"plain is case sensitive", "tccnbd", "TCCNBD", true},
		{"empty given", "tccnbd", "", true},
		{"empty stored", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.auth.CheckPassword(tt.stored, tt.given)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPassword err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountService_ChangeCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.auth.Login(ctx, "admin", "tccnbd"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.accounts.ChangeCredential(ctx, "admin", "newpass"); err != nil {
		t.Fatalf("change credential: %v", err)
	}

	sess, err := f.sessions.Get(ctx)
	if err != nil || sess == nil {
		t.Fatalf("session: %+v, %v", sess, err)
	}
	if f.auth.CheckPassword(sess.Account.Secret, "newpass") != nil {
		t.Fatal("session copy of the admin must carry the new secret")
	}

	if _, err := f.auth.Login(ctx, "admin", "tccnbd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old secret must fail, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "admin", "newpass"); err != nil {
		t.Fatalf("new secret: %v", err)
	}

	if err := f.accounts.ChangeCredential(ctx, "u1", "whatever"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("teacher credential change: expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Teachers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.accounts.CreateTeacher(ctx, "gv03", "Phạm Văn E")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != model.RoleTeacher || created.ID == "" {
		t.Fatalf("unexpected account %+v", created)
	}
	if _, err := f.accounts.CreateTeacher(ctx, "gv03", "Someone Else"); !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	teachers, err := f.accounts.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, a := range teachers {
		names = append(names, a.Username)
	}
	if strings.Join(names, ",") != "gv01,gv02,gv03" {
		t.Fatalf("teachers = %v", names)
	}

	admin, err := f.accounts.CreateAdmin(ctx, "root", "Root", "rootpass")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Secret == "rootpass" {
		t.Fatal("admin secret must be hashed")
	}
	if _, err := f.auth.Login(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("login new admin: %v", err)
	}

	if err := f.accounts.DeleteTeacher(ctx, admin.ID); !errors.Is(err, ErrNotTeacherAccount) {
		t.Fatalf("deleting an admin as a teacher: got %v", err)
	}
	if _, err := f.auth.Login(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("admin must survive a refused delete: %v", err)
	}
	if err := f.accounts.DeleteTeacher(ctx, "ghost"); err != nil {
		t.Fatalf("unknown id should be a no-op: %v", err)
	}

	if err := f.accounts.DeleteTeacher(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.auth.Login(ctx, "gv03", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deleted teacher must not log in, got %v", err)
	}
}

func TestEntryService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := model.Account{ID: "u1", FullName: "Nguyễn Văn A", Role: model.RoleTeacher}
	u2 := model.Account{ID: "u2", FullName: "Trần Thị B", Role: model.RoleTeacher}
	admin := model.Account{ID: "admin", Role: model.RoleAdmin}

	created, err := f.entries.Create(ctx, u2, sampleRequest("Vật Lý", "11B2", "2026-10-15"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TeacherID != "u2" || created.TeacherName != "Trần Thị B" {
		t.Fatalf("owner snapshot missing: %+v", created)
	}
	if created.CreatedAt != fixedNow.UnixMilli() {
		t.Fatalf("created_at = %d", created.CreatedAt)
	}

	if _, err := f.entries.Update(ctx, u1, created.ID, sampleRequest("Hóa", "11B2", "2026-10-15")); !errors.Is(err, ErrNotEntryOwner) {
		t.Fatalf("foreign update: expected ErrNotEntryOwner, got %v", err)
	}
	if err := f.entries.Delete(ctx, u1, created.ID); !errors.Is(err, ErrNotEntryOwner) {
		t.Fatalf("foreign delete: expected ErrNotEntryOwner, got %v", err)
	}
	if _, err := f.entries.Get(ctx, u1, created.ID); !errors.Is(err, ErrNotEntryOwner) {
		t.Fatalf("foreign get: expected ErrNotEntryOwner, got %v", err)
	}
	if _, err := f.entries.Get(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	updated, err := f.entries.Update(ctx, u2, created.ID, sampleRequest("Hóa", "11B3", "2026-10-14"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Subject != "Hóa" || updated.ID != created.ID || updated.CreatedAt != created.CreatedAt || updated.TeacherName != "Trần Thị B" {
		t.Fatalf("update result %+v", updated)
	}

	if _, err := f.entries.Update(ctx, u2, "missing", sampleRequest("Hóa", "11B3", "2026-10-14")); !errors.Is(err, repository.ErrEntryNotFound) {
		t.Fatalf("update missing: expected ErrEntryNotFound, got %v", err)
	}
	if err := f.entries.Delete(ctx, u2, "missing"); err != nil {
		t.Fatalf("delete missing must succeed: %v", err)
	}

	if err := f.entries.Delete(ctx, u2, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.entries.Get(ctx, u2, created.ID); !errors.Is(err, repository.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_Views(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := model.Account{ID: "u1", FullName: "Nguyễn Văn A", Role: model.RoleTeacher}
	u2 := model.Account{ID: "u2", FullName: "Trần Thị B", Role: model.RoleTeacher}

	if _, err := f.entries.Create(ctx, u1, sampleRequest("Tin học", "10A1", "2026-09-01")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.entries.Create(ctx, u2, sampleRequest("Vật Lý", "11B2", "2026-10-15")); err != nil {
		t.Fatalf("create: %v", err)
	}

	today, err := f.entries.Today(ctx, u1)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(today) != 1 || today[0].ID != "e1" {
		t.Fatalf("today = %+v", today)
	}

	recent, err := f.entries.RecentSubjects(ctx, u1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if strings.Join(recent, ",") != "Tin học,Toán" {
		t.Fatalf("recent = %v", recent)
	}

	history, err := f.entries.History(ctx, u1, model.EntryQuery{Subject: "Toán", DateTo: "2026-10-14"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != "e2" {
		t.Fatalf("history = %+v", history)
	}

	opts, err := f.entries.Options(ctx, u2)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if strings.Join(opts.Classes, ",") != "all,11B2" || strings.Join(opts.Subjects, ",") != "all,Vật Lý" {
		t.Fatalf("options = %+v", opts)
	}
}

func TestStatsService_Report(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u2 := model.Account{ID: "u2", FullName: "Trần Thị B", Role: model.RoleTeacher}
	admin := model.Account{ID: "admin", FullName: "Quản Trị Viên", Role: model.RoleAdmin}

	if _, err := f.entries.Create(ctx, u2, sampleRequest("Vật Lý", "11B2", "2026-10-15")); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name        string
		account     model.Account
		teacherID   string
		wantTitle   string
		wantEntries int
		wantPeriods int
	}{
		{"teacher sees own only", u2, "u1", "Thống Kê Giảng Dạy", 1, 2},
		{"admin whole school", admin, "all", "Thống Kê Toàn Trường", 3, 4},
		{"admin empty selection", admin, "", "Thống Kê Toàn Trường", 3, 4},
		{"admin one teacher", admin, "u1", "Thống Kê cho: Nguyễn Văn A", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := f.stats.Report(ctx, tt.account, tt.teacherID)
			if err != nil {
				t.Fatalf("report: %v", err)
			}
			if r.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", r.Title, tt.wantTitle)
			}
			if r.EntryCount != tt.wantEntries {
				t.Errorf("entries = %d, want %d", r.EntryCount, tt.wantEntries)
			}
			if r.Totals.TotalPeriods != tt.wantPeriods {
				t.Errorf("periods = %d, want %d", r.Totals.TotalPeriods, tt.wantPeriods)
			}
		})
	}

	if _, err := f.stats.Report(ctx, admin, "nobody"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("unknown teacher: expected ErrAccountNotFound, got %v", err)
	}
}

func TestStatsService_Subjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u2 := model.Account{ID: "u2", FullName: "Trần Thị B", Role: model.RoleTeacher}

	if _, err := f.entries.Create(ctx, u2, sampleRequest("Toán", "11B2", "2026-10-15")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.entries.Create(ctx, u2, sampleRequest("Vật Lý", "11B2", "2026-10-15")); err != nil {
		t.Fatalf("create: %v", err)
	}

	subjects, err := f.stats.Subjects(ctx, "toán")
	if err != nil {
		t.Fatalf("subjects: %v", err)
	}
	if len(subjects) != 1 || subjects[0].EntryCount != 3 || subjects[0].TeacherCount != 2 {
		t.Fatalf("subjects = %+v", subjects)
	}

	removed, err := f.stats.DeleteSubject(ctx, "Toán")
	if err != nil || removed != 3 {
		t.Fatalf("delete subject = %d, %v", removed, err)
	}
	all, err := f.stats.Subjects(ctx, "")
	if err != nil {
		t.Fatalf("subjects: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Vật Lý" {
		t.Fatalf("after delete = %+v", all)
	}
}

type stubRewriter struct {
	out    string
	err    error
	called bool
	got    [3]string
}

func (s *stubRewriter) Rewrite(_ context.Context, draft, subject, className string) (string, error) {
	s.called = true
	s.got = [3]string{draft, subject, className}
	return s.out, s.err
}

func TestCommentService_Rewrite(t *testing.T) {
	ctx := context.Background()

	t.Run("blank draft is returned without a call", func(t *testing.T) {
		stub := &stubRewriter{out: "x"}
		svc := NewCommentService(stub, zerolog.Nop())
		if got := svc.Rewrite(ctx, "   ", "Toán", "10A1"); got != "   " || stub.called {
			t.Fatalf("got %q, called %v", got, stub.called)
		}
	})

	t.Run("defaults for blank subject and class", func(t *testing.T) {
		stub := &stubRewriter{out: "  Lớp học tích cực.  "}
		svc := NewCommentService(stub, zerolog.Nop())
		got := svc.Rewrite(ctx, "lop ngoan", "", " ")
		if got != "Lớp học tích cực." {
			t.Fatalf("got %q", got)
		}
		if stub.got[1] != "Môn học" || stub.got[2] != "chung" {
			t.Fatalf("defaults not applied: %v", stub.got)
		}
	})

	t.Run("error yields fallback", func(t *testing.T) {
		svc := NewCommentService(&stubRewriter{err: errors.New("quota")}, zerolog.Nop())
		if got := svc.Rewrite(ctx, "draft", "Toán", "10A1"); got != CommentFallback {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("empty reply yields fallback", func(t *testing.T) {
		svc := NewCommentService(&stubRewriter{out: "\n"}, zerolog.Nop())
		if got := svc.Rewrite(ctx, "draft", "Toán", "10A1"); got != CommentFallback {
			t.Fatalf("got %q", got)
		}
	})
}
