// Package ui holds client-facing interface state: appearance preferences,
// navigation chrome, keyed modals and loading flags, toast notifications,
// and the shared search/pagination scratch. Preference fields survive
// restarts; everything else is session-scoped.
package ui

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/metrics"
	"prize-portal-service/internal/persist"
)

const (
	storeName  = "ui"
	persistKey = "ui"

	defaultPageSize = 12
)

// Theme is the closed set of appearance themes.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// FontSize is the closed set of font scale presets.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Appearance groups the presentation preferences that the apply hook
// receives whenever any of them changes.
type Appearance struct {
	Theme        Theme    `json:"theme"`
	PrimaryColor string   `json:"primaryColor"`
	FontSize     FontSize `json:"fontSize"`
}

func defaultAppearance() Appearance {
	return Appearance{
		Theme:        ThemeLight,
		PrimaryColor: "#4f46e5",
		FontSize:     FontMedium,
	}
}

// NotificationSettings are the user's notification preferences. Updates
// merge field by field, so callers may patch a single channel.
type NotificationSettings struct {
	Email     bool `json:"email"`
	SMS       bool `json:"sms"`
	Push      bool `json:"push"`
	Marketing bool `json:"marketing"`
}

func defaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Email: true, Push: true}
}

// NotificationPatch is a partial NotificationSettings update; nil fields
// keep their current value.
type NotificationPatch struct {
	Email     *bool
	SMS       *bool
	Push      *bool
	Marketing *bool
}

// State is the complete store state. Subscribers receive copies.
type State struct {
	Appearance    Appearance           `json:"appearance"`
	SidebarOpen   bool                 `json:"sidebarOpen"`
	MobileMenu    bool                 `json:"mobileMenu"`
	Modals        map[string]bool      `json:"modals"`
	Toasts        []Toast              `json:"toasts"`
	LoadingFlags  map[string]bool      `json:"loadingFlags"`
	Notifications NotificationSettings `json:"notifications"`
	SearchQuery   string               `json:"searchQuery"`
	Page          int                  `json:"page"`
	PageSize      int                  `json:"pageSize"`
}

func initialState() State {
	return State{
		Appearance:    defaultAppearance(),
		Modals:        map[string]bool{},
		LoadingFlags:  map[string]bool{},
		Notifications: defaultNotificationSettings(),
		Page:          1,
		PageSize:      defaultPageSize,
	}
}

func (s State) snapshot() State {
	out := s
	out.Modals = make(map[string]bool, len(s.Modals))
	for k, v := range s.Modals {
		out.Modals[k] = v
	}
	out.LoadingFlags = make(map[string]bool, len(s.LoadingFlags))
	for k, v := range s.LoadingFlags {
		out.LoadingFlags[k] = v
	}
	out.Toasts = append([]Toast(nil), s.Toasts...)
	return out
}

type persistedSlice struct {
	Theme         Theme                `json:"theme"`
	PrimaryColor  string               `json:"primaryColor"`
	FontSize      FontSize             `json:"fontSize"`
	Notifications NotificationSettings `json:"notificationSettings"`
	PageSize      int                  `json:"pageSize"`
}

// Subscriber receives a state snapshot after every mutation.
type Subscriber func(State)

// ApplyFunc receives the appearance whenever a presentation preference
// changes, including once at construction for the restored values.
type ApplyFunc func(Appearance)

// Options configures a Store.
type Options struct {
	Persist  persist.Store
	Recorder *metrics.Recorder
	Logger   *zap.Logger
	Apply    ApplyFunc

	// Schedule overrides toast auto-dismiss scheduling in tests. The
	// returned function cancels the pending call.
	Schedule func(d time.Duration, fn func()) func()
}

// Store is the interface state container.
type Store struct {
	mu       sync.Mutex
	state    State
	subs     map[int]Subscriber
	nextSub  int
	timers   map[string]func()
	persist  persist.Store
	recorder *metrics.Recorder
	logger   *zap.Logger
	apply    ApplyFunc
	schedule func(d time.Duration, fn func()) func()
	now      func() time.Time
}

// New constructs a Store, restoring persisted preferences when present and
// applying the resulting appearance.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule := opts.Schedule
	if schedule == nil {
		schedule = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	s := &Store{
		state:    initialState(),
		subs:     make(map[int]Subscriber),
		timers:   make(map[string]func()),
		persist:  opts.Persist,
		recorder: opts.Recorder,
		logger:   logger,
		apply:    opts.Apply,
		schedule: schedule,
		now:      time.Now,
	}
	s.restore()
	if s.apply != nil {
		s.apply(s.state.Appearance)
	}
	return s
}

func (s *Store) restore() {
	if s.persist == nil {
		return
	}
	var slice persistedSlice
	if err := s.persist.Load(persistKey, &slice); err != nil {
		return
	}
	if slice.Theme != "" {
		s.state.Appearance.Theme = slice.Theme
	}
	if slice.PrimaryColor != "" {
		s.state.Appearance.PrimaryColor = slice.PrimaryColor
	}
	if slice.FontSize != "" {
		s.state.Appearance.FontSize = slice.FontSize
	}
	s.state.Notifications = slice.Notifications
	if slice.PageSize > 0 {
		s.state.PageSize = slice.PageSize
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.snapshot()
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetTheme sets the theme and re-applies the appearance.
func (s *Store) SetTheme(theme Theme) {
	s.mutate("setTheme", true, func(st *State) {
		st.Appearance.Theme = theme
	})
}

// ToggleTheme flips between light and dark. System resolves to dark first,
// matching a user reaching for the toggle to escape their OS default.
func (s *Store) ToggleTheme() {
	s.mutate("toggleTheme", true, func(st *State) {
		if st.Appearance.Theme == ThemeDark {
			st.Appearance.Theme = ThemeLight
		} else {
			st.Appearance.Theme = ThemeDark
		}
	})
}

// SetPrimaryColor sets the accent color and re-applies the appearance.
func (s *Store) SetPrimaryColor(color string) {
	s.mutate("setPrimaryColor", true, func(st *State) {
		st.Appearance.PrimaryColor = color
	})
}

// SetFontSize sets the font scale and re-applies the appearance.
func (s *Store) SetFontSize(size FontSize) {
	s.mutate("setFontSize", true, func(st *State) {
		st.Appearance.FontSize = size
	})
}

// ToggleSidebar flips the sidebar.
func (s *Store) ToggleSidebar() {
	s.mutate("toggleSidebar", false, func(st *State) {
		st.SidebarOpen = !st.SidebarOpen
	})
}

// SetSidebar sets the sidebar explicitly.
func (s *Store) SetSidebar(open bool) {
	s.mutate("setSidebar", false, func(st *State) {
		st.SidebarOpen = open
	})
}

// ToggleMobileMenu flips the mobile menu.
func (s *Store) ToggleMobileMenu() {
	s.mutate("toggleMobileMenu", false, func(st *State) {
		st.MobileMenu = !st.MobileMenu
	})
}

// CloseMobileMenu closes the mobile menu.
func (s *Store) CloseMobileMenu() {
	s.mutate("closeMobileMenu", false, func(st *State) {
		st.MobileMenu = false
	})
}

// OpenModal marks the keyed modal open.
func (s *Store) OpenModal(key string) {
	s.mutate("openModal", false, func(st *State) {
		st.Modals[key] = true
	})
}

// CloseModal marks the keyed modal closed.
func (s *Store) CloseModal(key string) {
	s.mutate("closeModal", false, func(st *State) {
		delete(st.Modals, key)
	})
}

// CloseAllModals closes every open modal in one transition.
func (s *Store) CloseAllModals() {
	s.mutate("closeAllModals", false, func(st *State) {
		st.Modals = map[string]bool{}
	})
}

// ModalOpen reports whether the keyed modal is open.
func (s *Store) ModalOpen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Modals[key]
}

// SetLoadingFlag sets a keyed loading flag; false removes the key.
func (s *Store) SetLoadingFlag(key string, loading bool) {
	s.mutate("setLoadingFlag", false, func(st *State) {
		if loading {
			st.LoadingFlags[key] = true
		} else {
			delete(st.LoadingFlags, key)
		}
	})
}

// LoadingFlag reports the keyed loading flag.
func (s *Store) LoadingFlag(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LoadingFlags[key]
}

// UpdateNotifications merges patch into the notification settings.
func (s *Store) UpdateNotifications(patch NotificationPatch) {
	s.mutate("updateNotifications", true, func(st *State) {
		if patch.Email != nil {
			st.Notifications.Email = *patch.Email
		}
		if patch.SMS != nil {
			st.Notifications.SMS = *patch.SMS
		}
		if patch.Push != nil {
			st.Notifications.Push = *patch.Push
		}
		if patch.Marketing != nil {
			st.Notifications.Marketing = *patch.Marketing
		}
	})
}

// SetSearchQuery sets the shared search scratch and resets the page.
func (s *Store) SetSearchQuery(query string) {
	s.mutate("setSearchQuery", false, func(st *State) {
		st.SearchQuery = query
		st.Page = 1
	})
}

// ResetSearch clears the search scratch only.
func (s *Store) ResetSearch() {
	s.mutate("resetSearch", false, func(st *State) {
		st.SearchQuery = ""
	})
}

// SetPage sets the shared pagination scratch.
func (s *Store) SetPage(page int) {
	s.mutate("setPage", false, func(st *State) {
		if page < 1 {
			page = 1
		}
		st.Page = page
	})
}

// SetPageSize sets the preferred page size; it is a persisted preference.
func (s *Store) SetPageSize(size int) {
	s.mutate("setPageSize", true, func(st *State) {
		if size < 1 {
			size = defaultPageSize
		}
		st.PageSize = size
	})
}

// ResetPagination returns the pagination scratch to page 1 without touching
// the search query or the page size preference.
func (s *Store) ResetPagination() {
	s.mutate("resetPagination", false, func(st *State) {
		st.Page = 1
	})
}

// Reset returns every field to its initial value, cancelling any pending
// toast dismissals, and re-applies the default appearance.
func (s *Store) Reset() {
	s.mu.Lock()
	for id, cancel := range s.timers {
		cancel()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.mutate("reset", true, func(st *State) {
		*st = initialState()
	})
}

func (s *Store) mutate(action string, persistAfter bool, fn func(*State)) {
	s.mu.Lock()
	before := s.state.Appearance
	fn(&s.state)
	appearance := s.state.Appearance
	snap := s.state.snapshot()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	// The blob is written before the lock is released so a restore can
	// never see an older slice than the latest mutation.
	var persistErr error
	if persistAfter && s.persist != nil {
		persistErr = s.persist.Save(persistKey, persistedSlice{
			Theme:         s.state.Appearance.Theme,
			PrimaryColor:  s.state.Appearance.PrimaryColor,
			FontSize:      s.state.Appearance.FontSize,
			Notifications: s.state.Notifications,
			PageSize:      s.state.PageSize,
		})
	}
	s.mu.Unlock()

	s.recorder.RecordStoreMutation(storeName, action)

	if s.apply != nil && appearance != before {
		s.apply(appearance)
	}

	if persistErr != nil {
		s.logger.Warn("persist ui state",
			zap.String(logging.FieldAction, action),
			zap.Error(persistErr),
		)
	}

	for _, sub := range subs {
		sub(snap)
	}
}
