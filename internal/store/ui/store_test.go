package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"prize-portal-service/internal/persist"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft := &fakeTimer{d: d, fn: fn}
	f.pending = append(f.pending, ft)
	return func() {
		f.mu.Lock()
		ft.cancelled = true
		f.mu.Unlock()
	}
}

func (f *fakeScheduler) fire(t *testing.T, i int) {
	t.Helper()
	f.mu.Lock()
	if i >= len(f.pending) {
		f.mu.Unlock()
		t.Fatalf("no scheduled timer at index %d", i)
	}
	ft := f.pending[i]
	f.mu.Unlock()
	if !ft.cancelled {
		ft.fn()
	}
}

func (f *fakeScheduler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func newTestStore(sched *fakeScheduler) *Store {
	opts := Options{}
	if sched != nil {
		opts.Schedule = sched.schedule
	}
	return New(opts)
}

func TestDefaults(t *testing.T) {
	s := newTestStore(nil)

	st := s.State()
	want := Appearance{Theme: ThemeLight, PrimaryColor: "#4f46e5", FontSize: FontMedium}
	if diff := cmp.Diff(want, st.Appearance); diff != "" {
		t.Fatalf("appearance (-want +got):\n%s", diff)
	}
	if st.Page != 1 || st.PageSize != defaultPageSize {
		t.Fatalf("pagination defaults: page=%d size=%d", st.Page, st.PageSize)
	}
	if !st.Notifications.Email || !st.Notifications.Push || st.Notifications.Marketing {
		t.Fatalf("notification defaults: %+v", st.Notifications)
	}
}

func TestApplyHookRunsOnConstructionAndChanges(t *testing.T) {
	var applied []Appearance
	s := New(Options{Apply: func(a Appearance) { applied = append(applied, a) }})

	s.SetTheme(ThemeDark)
	s.SetPrimaryColor("#16a34a")
	s.ToggleSidebar()

	if len(applied) != 3 {
		t.Fatalf("apply calls = %d, want 3 (construction + two changes)", len(applied))
	}
	if applied[1].Theme != ThemeDark || applied[2].PrimaryColor != "#16a34a" {
		t.Fatalf("applied: %+v", applied)
	}
}

func TestToggleTheme(t *testing.T) {
	s := newTestStore(nil)

	s.ToggleTheme()
	if s.State().Appearance.Theme != ThemeDark {
		t.Fatal("light must toggle to dark")
	}
	s.ToggleTheme()
	if s.State().Appearance.Theme != ThemeLight {
		t.Fatal("dark must toggle to light")
	}

	s.SetTheme(ThemeSystem)
	s.ToggleTheme()
	if s.State().Appearance.Theme != ThemeDark {
		t.Fatal("system must toggle to dark")
	}
}

func TestModals(t *testing.T) {
	s := newTestStore(nil)

	s.OpenModal("login")
	s.OpenModal("cart")
	if !s.ModalOpen("login") || !s.ModalOpen("cart") {
		t.Fatal("modals not open")
	}

	s.CloseModal("login")
	if s.ModalOpen("login") || !s.ModalOpen("cart") {
		t.Fatal("close must affect only its key")
	}

	s.OpenModal("login")
	s.CloseAllModals()
	if len(s.State().Modals) != 0 {
		t.Fatalf("modals remain: %+v", s.State().Modals)
	}
}

func TestLoadingFlags(t *testing.T) {
	s := newTestStore(nil)

	s.SetLoadingFlag("competitions", true)
	s.SetLoadingFlag("cart", true)
	if !s.LoadingFlag("competitions") || !s.LoadingFlag("cart") {
		t.Fatal("flags not set")
	}

	s.SetLoadingFlag("competitions", false)
	if s.LoadingFlag("competitions") || !s.LoadingFlag("cart") {
		t.Fatal("clearing one flag must not touch others")
	}
	if _, ok := s.State().LoadingFlags["competitions"]; ok {
		t.Fatal("cleared flag must be removed, not set false")
	}
}

func TestUpdateNotificationsMerges(t *testing.T) {
	s := newTestStore(nil)
	on := true
	off := false

	s.UpdateNotifications(NotificationPatch{SMS: &on})
	s.UpdateNotifications(NotificationPatch{Email: &off})

	got := s.State().Notifications
	want := NotificationSettings{Email: false, SMS: true, Push: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}

func TestSearchAndPaginationScratch(t *testing.T) {
	s := newTestStore(nil)

	s.SetPage(4)
	s.SetSearchQuery("watch")
	if st := s.State(); st.Page != 1 || st.SearchQuery != "watch" {
		t.Fatalf("search must reset page: %+v", st)
	}

	s.SetPage(3)
	s.ResetSearch()
	if st := s.State(); st.SearchQuery != "" || st.Page != 3 {
		t.Fatalf("reset search must keep page: %+v", st)
	}

	s.ResetPagination()
	if st := s.State(); st.Page != 1 || st.PageSize != defaultPageSize {
		t.Fatalf("reset pagination: %+v", st)
	}

	s.SetPage(0)
	if s.State().Page != 1 {
		t.Fatal("page must clamp to 1")
	}
}

func TestPersistedPreferencesSurviveRestart(t *testing.T) {
	store := persist.NewFile(t.TempDir())
	off := false

	s := New(Options{Persist: store})
	s.SetTheme(ThemeDark)
	s.SetPrimaryColor("#16a34a")
	s.SetFontSize(FontLarge)
	s.SetPageSize(24)
	s.UpdateNotifications(NotificationPatch{Email: &off})
	s.ToggleSidebar()
	s.OpenModal("login")
	s.AddToast(ToastInfo, "hello", -1)

	restored := New(Options{Persist: store})
	st := restored.State()

	want := Appearance{Theme: ThemeDark, PrimaryColor: "#16a34a", FontSize: FontLarge}
	if diff := cmp.Diff(want, st.Appearance); diff != "" {
		t.Fatalf("appearance (-want +got):\n%s", diff)
	}
	if st.PageSize != 24 {
		t.Fatalf("page size = %d", st.PageSize)
	}
	if st.Notifications.Email {
		t.Fatal("notification patch not restored")
	}
	if st.SidebarOpen || len(st.Modals) != 0 || len(st.Toasts) != 0 {
		t.Fatalf("session state leaked into restart: %+v", st)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	sched := &fakeScheduler{}
	s := newTestStore(sched)
	s.SetTheme(ThemeDark)
	s.OpenModal("login")
	s.SetLoadingFlag("cart", true)
	s.AddToast(ToastError, "boom", time.Minute)

	s.Reset()

	if diff := cmp.Diff(initialState(), s.State()); diff != "" {
		t.Fatalf("reset state (-want +got):\n%s", diff)
	}
	if !sched.pending[0].cancelled {
		t.Fatal("reset must cancel pending toast dismissals")
	}
}

type recordingPersist struct {
	mu    sync.Mutex
	saves []persistedSlice
}

func (r *recordingPersist) Save(_ string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, v.(persistedSlice))
	return nil
}

func (r *recordingPersist) Load(string, any) error { return persist.ErrNotFound }

func TestLastPersistedSliceMatchesFinalState(t *testing.T) {
	rec := &recordingPersist{}
	s := New(Options{Persist: rec})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.SetPageSize(n*100 + j + 1)
			}
		}(i)
	}
	wg.Wait()

	rec.mu.Lock()
	last := rec.saves[len(rec.saves)-1]
	rec.mu.Unlock()
	if got := s.State().PageSize; last.PageSize != got {
		t.Fatalf("last persisted page size %d, store holds %d", last.PageSize, got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore(&fakeScheduler{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.ToggleSidebar()
				id := s.AddToast(ToastInfo, "x", -1)
				s.RemoveToast(id)
				_ = s.State()
			}
		}()
	}
	wg.Wait()

	if n := len(s.State().Toasts); n != 0 {
		t.Fatalf("toasts remain: %d", n)
	}
}
