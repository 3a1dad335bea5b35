package service

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/security"
	"chorepoints/internal/token"
)

type testEnv struct {
	db      *database.DB
	auth    *AuthService
	child   *ChildService
	habit   *HabitService
	task    *TaskService
	gift    *GiftService
	account *AccountService
	tokens  *token.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "service.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	// MinCost keeps the bcrypt work factor down for tests
	hasher := security.NewHasher(4)
	tokens := token.NewManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	childSvc := NewChildService(childRepo, habitRepo, taskRepo, giftRepo)

	return &testEnv{
		db:      db,
		auth:    NewAuthService(userRepo, tokens, hasher, nil, log),
		child:   childSvc,
		habit:   NewHabitService(db, habitRepo, childRepo),
		task:    NewTaskService(db, taskRepo, childRepo),
		gift:    NewGiftService(db, giftRepo, childRepo),
		account: NewAccountService(userRepo, childRepo, childSvc, hasher),
		tokens:  tokens,
	}
}

func registerParent(t *testing.T, env *testEnv, email string) *models.Parent {
	t.Helper()
	parent, err := env.auth.Register(email, "password123", "Test Parent", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return parent
}

func createChild(t *testing.T, env *testEnv, parentID int64) *models.Child {
	t.Helper()
	child, err := env.child.CreateChild(parentID, "Alice", "female")
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	return child
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	registerParent(t, env, "dup@example.com")

	if _, err := env.auth.Register("dup@example.com", "password123", "Second", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	registerParent(t, env, "login@example.com")

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := env.auth.Login("nobody@example.com", "password123"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := env.auth.Login("login@example.com", "wrongpassword"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})

	t.Run("success issues verifiable token pair", func(t *testing.T) {
		user, pair, err := env.auth.Login("login@example.com", "password123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if pair.SessionID == "" {
			t.Error("expected a session ID")
		}

		claims, err := env.tokens.VerifyAccessToken(pair.AccessToken)
		if err != nil {
			t.Fatalf("access token does not verify: %v", err)
		}
		if claims.UID != user.ID || claims.SID != pair.SessionID {
			t.Errorf("claims mismatch: uid=%d sid=%s", claims.UID, claims.SID)
		}
		if _, err := env.tokens.VerifyRefreshToken(pair.RefreshToken); err != nil {
			t.Errorf("refresh token does not verify: %v", err)
		}
	})
}

func TestAuthenticateAndLogout(t *testing.T) {
	env := newTestEnv(t)
	registerParent(t, env, "sess@example.com")

	_, pair, err := env.auth.Login("sess@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, session, err := env.auth.Authenticate(pair.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if session.ID != pair.SessionID {
		t.Errorf("wrong session: got %s, want %s", session.ID, pair.SessionID)
	}
	if user.Email != "sess@example.com" {
		t.Errorf("wrong user: %s", user.Email)
	}

	if err := env.auth.Logout(pair.SessionID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// A logged-out session must not authenticate even with a valid token
	if _, _, err := env.auth.Authenticate(pair.AccessToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	registerParent(t, env, "rotate@example.com")

	_, pair, err := env.auth.Login("rotate@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	rotated, err := env.auth.Refresh(pair.SessionID, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rotated.SessionID == pair.SessionID {
		t.Error("rotation must issue a new session ID")
	}

	// Replaying the consumed pair must fail: the old session is gone
	if _, err := env.auth.Refresh(pair.SessionID, pair.RefreshToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on replay, got %v", err)
	}

	// The rotated pair keeps working
	if _, err := env.auth.Refresh(rotated.SessionID, rotated.RefreshToken); err != nil {
		t.Errorf("rotated pair should refresh: %v", err)
	}
}

func TestRefreshWithBadTokenRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	registerParent(t, env, "revoke@example.com")

	_, pair, err := env.auth.Login("revoke@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := env.auth.Refresh(pair.SessionID, "garbage.token.value"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// The session named by the bad refresh must be dead now
	if _, _, err := env.auth.Authenticate(pair.AccessToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session to be revoked, got %v", err)
	}
}

func TestHabitWindow(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "habit@example.com")
	child := createChild(t, env, parent.ID)

	habit, err := env.habit.CreateHabit(parent.ID, child.ID, "Brush teeth", 4)
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if len(habit.Days) != models.HabitWindowDays {
		t.Fatalf("expected %d days, got %d", models.HabitWindowDays, len(habit.Days))
	}
	for _, day := range habit.Days {
		if day.IsCompleted != models.StatusUnknown {
			t.Errorf("day %s should start unknown, got %s", day.Date, day.IsCompleted)
		}
	}
	if habit.Days[0].Date != time.Now().Format("2006-01-02") {
		t.Errorf("window should start today, got %s", habit.Days[0].Date)
	}
}

func TestConfirmHabitDay(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "confirm@example.com")
	child := createChild(t, env, parent.ID)

	habit, err := env.habit.CreateHabit(parent.ID, child.ID, "Make bed", 4)
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	today := habit.Days[0].Date

	updated, rewards, err := env.habit.ConfirmDay(parent.ID, habit.ID, today)
	if err != nil {
		t.Fatalf("ConfirmDay failed: %v", err)
	}
	if rewards != 4 {
		t.Errorf("expected 4 rewards, got %d", rewards)
	}
	if updated.Day(today).IsCompleted != models.StatusConfirmed {
		t.Error("day should be confirmed")
	}

	t.Run("double confirm", func(t *testing.T) {
		if _, _, err := env.habit.ConfirmDay(parent.ID, habit.ID, today); !errors.Is(err, ErrDayAlreadyConfirmed) {
			t.Errorf("expected ErrDayAlreadyConfirmed, got %v", err)
		}
	})

	t.Run("date outside window", func(t *testing.T) {
		if _, _, err := env.habit.ConfirmDay(parent.ID, habit.ID, "1999-01-01"); !errors.Is(err, ErrDayNotFound) {
			t.Errorf("expected ErrDayNotFound, got %v", err)
		}
	})

	t.Run("cancel confirmed day", func(t *testing.T) {
		if _, err := env.habit.CancelDay(parent.ID, habit.ID, today); !errors.Is(err, ErrDayAlreadyConfirmed) {
			t.Errorf("expected ErrDayAlreadyConfirmed, got %v", err)
		}
	})
}

func TestHabitCompletionBonus(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "bonus@example.com")
	child := createChild(t, env, parent.ID)

	habit, err := env.habit.CreateHabit(parent.ID, child.ID, "Read", 4)
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	var rewards int
	for _, day := range habit.Days {
		_, rewards, err = env.habit.ConfirmDay(parent.ID, habit.ID, day.Date)
		if err != nil {
			t.Fatalf("ConfirmDay(%s) failed: %v", day.Date, err)
		}
	}

	// 10 days * 4 points, plus the completion bonus of 4*10/2 = 20
	if rewards != 60 {
		t.Errorf("expected 60 rewards after full window, got %d", rewards)
	}

	got, err := env.child.GetChild(parent.ID, child.ID)
	if err != nil {
		t.Fatalf("GetChild failed: %v", err)
	}
	if got.Rewards != 60 {
		t.Errorf("persisted rewards = %d, want 60", got.Rewards)
	}
}

func TestHabitOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := registerParent(t, env, "owner@example.com")
	other := registerParent(t, env, "other@example.com")
	child := createChild(t, env, owner.ID)

	habit, err := env.habit.CreateHabit(owner.ID, child.ID, "Practice piano", 3)
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if _, _, err := env.habit.ConfirmDay(other.ID, habit.ID, habit.Days[0].Date); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound for foreign parent, got %v", err)
	}
	if err := env.habit.DeleteHabit(other.ID, habit.ID); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("expected ErrChildNotFound for foreign delete, got %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "task@example.com")
	child := createChild(t, env, parent.ID)

	task, err := env.task.CreateTask(parent.ID, child.ID, "Clean room", 15, nil)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Schedule != nil {
		t.Error("task without daysToComplete should carry no schedule")
	}

	t.Run("reset before any confirmation", func(t *testing.T) {
		if _, err := env.task.ResetTask(parent.ID, task.ID); !errors.Is(err, ErrTaskAlreadyReset) {
			t.Errorf("expected ErrTaskAlreadyReset, got %v", err)
		}
	})

	confirmed, rewards, err := env.task.ConfirmTask(parent.ID, task.ID)
	if err != nil {
		t.Fatalf("ConfirmTask failed: %v", err)
	}
	if confirmed.IsCompleted != models.StatusConfirmed {
		t.Error("task should be confirmed")
	}
	if rewards != 15 {
		t.Errorf("expected 15 rewards, got %d", rewards)
	}

	t.Run("double confirm", func(t *testing.T) {
		if _, _, err := env.task.ConfirmTask(parent.ID, task.ID); !errors.Is(err, ErrTaskAlreadyConfirmed) {
			t.Errorf("expected ErrTaskAlreadyConfirmed, got %v", err)
		}
	})

	t.Run("reset keeps rewards", func(t *testing.T) {
		if _, err := env.task.ResetTask(parent.ID, task.ID); err != nil {
			t.Fatalf("ResetTask failed: %v", err)
		}
		got, err := env.child.GetChild(parent.ID, child.ID)
		if err != nil {
			t.Fatalf("GetChild failed: %v", err)
		}
		if got.Rewards != 15 {
			t.Errorf("reset must not claw back rewards, got %d", got.Rewards)
		}
	})
}

func TestTaskSchedule(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "sched@example.com")
	child := createChild(t, env, parent.ID)

	days := 5
	task, err := env.task.CreateTask(parent.ID, child.ID, "Homework", 10, &days)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Schedule == nil {
		t.Fatal("expected a schedule")
	}

	today := time.Now().Format("2006-01-02")
	if task.Schedule.StartDate != today {
		t.Errorf("startDate = %s, want %s", task.Schedule.StartDate, today)
	}
	wantEnd := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if task.Schedule.EndDate != wantEnd {
		t.Errorf("endDate = %s, want %s", task.Schedule.EndDate, wantEnd)
	}

	// Editing daysToComplete keeps the original start date
	newDays := 2
	updated, err := env.task.UpdateTask(parent.ID, task.ID, nil, nil, &newDays)
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Schedule.StartDate != today {
		t.Errorf("edit changed startDate to %s", updated.Schedule.StartDate)
	}
	wantEnd = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	if updated.Schedule.EndDate != wantEnd {
		t.Errorf("endDate = %s, want %s", updated.Schedule.EndDate, wantEnd)
	}
}

func TestFinishedTasks(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "finished@example.com")
	child := createChild(t, env, parent.ID)

	if _, err := env.task.FinishedTasks(parent.ID, child.ID); !errors.Is(err, ErrNoFinishedTasks) {
		t.Errorf("expected ErrNoFinishedTasks, got %v", err)
	}

	task, err := env.task.CreateTask(parent.ID, child.ID, "Walk dog", 5, nil)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, _, err := env.task.ConfirmTask(parent.ID, task.ID); err != nil {
		t.Fatalf("ConfirmTask failed: %v", err)
	}

	finished, err := env.task.FinishedTasks(parent.ID, child.ID)
	if err != nil {
		t.Fatalf("FinishedTasks failed: %v", err)
	}
	if len(finished) != 1 || finished[0].ID != task.ID {
		t.Errorf("unexpected finished list: %+v", finished)
	}
}

func TestGiftPurchase(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "gift@example.com")
	child := createChild(t, env, parent.ID)

	gift, err := env.gift.CreateGift(parent.ID, child.ID, "Bicycle", 50, "https://example.com/bike.png")
	if err != nil {
		t.Fatalf("CreateGift failed: %v", err)
	}

	t.Run("insufficient balance leaves state untouched", func(t *testing.T) {
		if _, _, err := env.gift.BuyGift(parent.ID, gift.ID); !errors.Is(err, ErrNotEnoughRewards) {
			t.Fatalf("expected ErrNotEnoughRewards, got %v", err)
		}
		current, err := env.child.GetChild(parent.ID, child.ID)
		if err != nil {
			t.Fatalf("GetChild failed: %v", err)
		}
		if current.Rewards != 0 {
			t.Errorf("rewards should be unchanged, got %d", current.Rewards)
		}
	})

	// Earn enough points through a task
	task, err := env.task.CreateTask(parent.ID, child.ID, "Big chore", 60, nil)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, _, err := env.task.ConfirmTask(parent.ID, task.ID); err != nil {
		t.Fatalf("ConfirmTask failed: %v", err)
	}

	bought, rewards, err := env.gift.BuyGift(parent.ID, gift.ID)
	if err != nil {
		t.Fatalf("BuyGift failed: %v", err)
	}
	if !bought.IsPurchased {
		t.Error("gift should be purchased")
	}
	if rewards != 10 {
		t.Errorf("expected 10 rewards left, got %d", rewards)
	}

	t.Run("double purchase", func(t *testing.T) {
		if _, _, err := env.gift.BuyGift(parent.ID, gift.ID); !errors.Is(err, ErrGiftAlreadyPurchased) {
			t.Errorf("expected ErrGiftAlreadyPurchased, got %v", err)
		}
	})

	t.Run("reset without refund", func(t *testing.T) {
		reset, err := env.gift.ResetGift(parent.ID, gift.ID)
		if err != nil {
			t.Fatalf("ResetGift failed: %v", err)
		}
		if reset.IsPurchased {
			t.Error("gift should be unpurchased after reset")
		}
		current, err := env.child.GetChild(parent.ID, child.ID)
		if err != nil {
			t.Fatalf("GetChild failed: %v", err)
		}
		if current.Rewards != 10 {
			t.Errorf("reset must not refund, got %d", current.Rewards)
		}
	})

	t.Run("reset unpurchased gift", func(t *testing.T) {
		if _, err := env.gift.ResetGift(parent.ID, gift.ID); !errors.Is(err, ErrGiftAlreadyReset) {
			t.Errorf("expected ErrGiftAlreadyReset, got %v", err)
		}
	})
}

func TestChildrenDetails(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "details@example.com")
	child := createChild(t, env, parent.ID)

	if _, err := env.habit.CreateHabit(parent.ID, child.ID, "Brush teeth", 2); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	details, err := env.child.GetChildren(parent.ID)
	if err != nil {
		t.Fatalf("GetChildren failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 child, got %d", len(details))
	}
	if len(details[0].Habits) != 1 {
		t.Errorf("expected 1 habit, got %d", len(details[0].Habits))
	}
	if details[0].Tasks == nil || details[0].Gifts == nil {
		t.Error("empty collections should be non-nil")
	}
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	parent := registerParent(t, env, "delete@example.com")
	createChild(t, env, parent.ID)

	t.Run("wrong password", func(t *testing.T) {
		if err := env.account.DeleteAccount("delete@example.com", "wrongpassword"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})

	if err := env.account.DeleteAccount("delete@example.com", "password123"); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if _, _, err := env.auth.Login("delete@example.com", "password123"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("account should be gone, got %v", err)
	}
}
