package handlers

import "net/http"

// NewRouter wires every endpoint to its handler. Credential endpoints sit
// behind the rate limiter; everything past /auth requires an access token.
func NewRouter(mw *Middleware, auth *AuthHandler, child *ChildHandler, habit *HabitHandler, task *TaskHandler, gift *GiftHandler, user *UserHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/register", mw.RateLimit(auth.Register))
	mux.HandleFunc("POST /auth/login", mw.RateLimit(auth.Login))
	mux.HandleFunc("POST /auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /auth/logout", mw.Authorize(auth.Logout))
	mux.HandleFunc("GET /auth/google", auth.StartOAuth("google"))
	mux.HandleFunc("GET /auth/google-redirect", auth.OAuthCallback("google"))
	mux.HandleFunc("GET /auth/facebook", auth.StartOAuth("facebook"))
	mux.HandleFunc("GET /auth/facebook-redirect", auth.OAuthCallback("facebook"))

	// Children
	mux.HandleFunc("POST /child", mw.Authorize(child.Create))
	mux.HandleFunc("GET /child", mw.Authorize(child.List))
	mux.HandleFunc("PATCH /child/{childId}", mw.Authorize(child.Update))
	mux.HandleFunc("DELETE /child/{childId}", mw.Authorize(child.Delete))

	// Habits
	mux.HandleFunc("POST /habit/{childId}", mw.Authorize(habit.Create))
	mux.HandleFunc("GET /habit", mw.Authorize(habit.List))
	mux.HandleFunc("PATCH /habit/confirm/{habitId}", mw.Authorize(habit.ConfirmDay))
	mux.HandleFunc("PATCH /habit/cancel/{habitId}", mw.Authorize(habit.CancelDay))
	mux.HandleFunc("PATCH /habit/{habitId}", mw.Authorize(habit.Update))
	mux.HandleFunc("DELETE /habit/{habitId}", mw.Authorize(habit.Delete))

	// Tasks
	mux.HandleFunc("POST /task/{childId}", mw.Authorize(task.Create))
	mux.HandleFunc("GET /task", mw.Authorize(task.List))
	mux.HandleFunc("GET /task/finished/{childId}", mw.Authorize(task.Finished))
	mux.HandleFunc("PATCH /task/confirm/{taskId}", mw.Authorize(task.Confirm))
	mux.HandleFunc("PATCH /task/cancel/{taskId}", mw.Authorize(task.Cancel))
	mux.HandleFunc("PATCH /task/reset/{taskId}", mw.Authorize(task.Reset))
	mux.HandleFunc("PATCH /task/{taskId}", mw.Authorize(task.Update))
	mux.HandleFunc("DELETE /task/{taskId}", mw.Authorize(task.Delete))

	// Gifts
	mux.HandleFunc("POST /gift/{childId}", mw.Authorize(gift.Create))
	mux.HandleFunc("GET /gift", mw.Authorize(gift.List))
	mux.HandleFunc("PATCH /gift/buy/{giftId}", mw.Authorize(gift.Buy))
	mux.HandleFunc("PATCH /gift/reset/{giftId}", mw.Authorize(gift.Reset))
	mux.HandleFunc("PATCH /gift/{giftId}", mw.Authorize(gift.Update))
	mux.HandleFunc("DELETE /gift/{giftId}", mw.Authorize(gift.Delete))

	// User aggregate
	mux.HandleFunc("GET /user/info", mw.Authorize(user.Info))
	mux.HandleFunc("DELETE /user", mw.Authorize(user.Delete))

	return mux
}
