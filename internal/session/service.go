package session

import (
	"context"

	"github.com/google/uuid"

	"session-service/internal/clock"
	"session-service/internal/netinfo"
)

// Service is the session lifecycle state machine. It owns every
// login/update/logout/status/list transition; storage, timekeeping
// and network introspection are injected.
type Service struct {
	store Store
	clk   *clock.Clock

	serverInfo func() netinfo.Info
	resolveIP  func(string) string
}

func NewService(store Store, clk *clock.Clock) *Service {
	return &Service{
		store:      store,
		clk:        clk,
		serverInfo: netinfo.ServerInfo,
		resolveIP:  netinfo.ResolveClientIP,
	}
}

type LoginInput struct {
	Email      string
	Nickname   string
	MACAddress string
	RemoteAddr string
}

type UpdateInput struct {
	SessionID  string
	Email      string
	Nickname   string
	RemoteAddr string
}

// Login registers a new session. All three identity fields are
// required; the returned record carries a fresh uuid identifier and
// status Active.
func (svc *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	switch {
	case in.Email == "":
		return nil, &ValidationError{Field: "email"}
	case in.Nickname == "":
		return nil, &ValidationError{Field: "nickname"}
	case in.MACAddress == "":
		return nil, &ValidationError{Field: "macAddress"}
	}

	now := svc.clk.Now()
	s := Session{
		SessionID: uuid.NewString(),
		Email:     in.Email,
		Nickname:  in.Nickname,
		ClientInfo: ClientInfo{
			IP:  svc.resolveIP(in.RemoteAddr),
			MAC: in.MACAddress,
		},
		ServerInfo:   svc.serverInfo(),
		Status:       StatusActive,
		CreatedAt:    now,
		LastAccessed: now,
		UpdatedAt:    now,
	}

	if err := svc.store.Create(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update applies any supplied identity changes, refreshes network
// info, reactivates the session and touches its access time.
func (svc *Service) Update(ctx context.Context, in UpdateInput) (*Session, error) {
	s, err := svc.store.FindByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		s.Email = in.Email
	}
	if in.Nickname != "" {
		s.Nickname = in.Nickname
	}

	now := svc.clk.Now()
	s.ClientInfo.IP = svc.resolveIP(in.RemoteAddr)
	s.ServerInfo = svc.serverInfo()
	s.Status = StatusActive
	s.LastAccessed = now
	s.UpdatedAt = now

	if err := svc.store.Save(ctx, *s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout marks the session Inactive. The record stays in the store;
// only PurgeAll removes records.
func (svc *Service) Logout(ctx context.Context, sessionID string) error {
	s, err := svc.store.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	now := svc.clk.Now()
	s.Status = StatusInactive
	s.LastAccessed = now
	s.UpdatedAt = now

	return svc.store.Save(ctx, *s)
}

// Status returns the session annotated with fresh network identity
// and the inactivity breakdown. Read-only: the access time is not
// touched.
func (svc *Service) Status(ctx context.Context, sessionID, remoteAddr string) (*View, error) {
	if sessionID == "" {
		return nil, &ValidationError{Field: "sessionId"}
	}

	s, err := svc.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := svc.annotate(*s, remoteAddr)
	return &view, nil
}

// ListAll returns every session annotated as in Status. No sessions
// is an empty slice, never an error.
func (svc *Service) ListAll(ctx context.Context, remoteAddr string) ([]View, error) {
	return svc.list(ctx, StatusAny, remoteAddr)
}

// ListActive is ListAll filtered to Active sessions.
func (svc *Service) ListActive(ctx context.Context, remoteAddr string) ([]View, error) {
	return svc.list(ctx, StatusActive, remoteAddr)
}

// PurgeAll unconditionally removes every session record.
func (svc *Service) PurgeAll(ctx context.Context) (int64, error) {
	return svc.store.DeleteAll(ctx)
}

func (svc *Service) list(ctx context.Context, status Status, remoteAddr string) ([]View, error) {
	records, err := svc.store.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(records))
	for _, s := range records {
		views = append(views, svc.annotate(s, remoteAddr))
	}
	return views, nil
}

func (svc *Service) annotate(s Session, remoteAddr string) View {
	s.ClientInfo.IP = svc.resolveIP(remoteAddr)
	s.ServerInfo = svc.serverInfo()
	return View{
		Session:        s,
		InactivityTime: svc.clk.Elapsed(s.LastAccessed),
	}
}
