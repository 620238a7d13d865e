package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"
)

// Session экран распределения одного пользователя
type Session struct {
	ID         string
	Controller *allocationWorkflow.Controller
	CreatedAt  time.Time
}

// Service реестр сессий распределения в памяти процесса.
// Сессии независимы друг от друга; неактивные дольше idleTTL удаляются
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	factory ControllerFactory
	idleTTL time.Duration
	metrics Metrics
	logger  Logger
	now     func() time.Time
}

// NewService создает реестр сессий. metrics может быть nil
func NewService(factory ControllerFactory, idleTTL time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		factory:  factory,
		idleTTL:  idleTTL,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Create открывает сессию и выполняет первичную загрузку списка
func (s *Service) Create(ctx context.Context) (*Session, error) {
	session := &Session{
		ID:         uuid.NewString(),
		Controller: s.factory(),
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	count := len(s.sessions)
	s.mu.Unlock()
	s.reportCount(count)

	s.logger.Info("Create: session id=%s opened", session.ID)

	if err := session.Controller.Load(ctx); err != nil {
		s.logger.Error("Create: initial load for session id=%s failed: %v", session.ID, err)
		s.remove(session.ID)
		return nil, err
	}
	return session, nil
}

// Get возвращает сессию; истекшая сессия удаляется и считается отсутствующей
func (s *Service) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(session) {
		s.remove(id)
		s.logger.Info("Get: session id=%s expired", id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete закрывает сессию
func (s *Service) Delete(id string) error {
	if !s.remove(id) {
		return ErrSessionNotFound
	}
	s.logger.Info("Delete: session id=%s closed", id)
	return nil
}

// Len количество открытых сессий
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictExpired удаляет неактивные сессии и возвращает их количество
func (s *Service) EvictExpired() int {
	s.mu.Lock()
	evicted := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			evicted++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.reportCount(count)
		s.logger.Info("EvictExpired: %d idle sessions removed, %d left", evicted, count)
	}
	return evicted
}

// Run периодически удаляет неактивные сессии до отмены контекста
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictExpired()
		}
	}
}

// expired сессия с выполняющимся шагом не истекает; idleTTL <= 0 отключает истечение
func (s *Service) expired(session *Session) bool {
	if s.idleTTL <= 0 || session.Controller.InFlight() {
		return false
	}
	return s.now().Sub(session.Controller.LastActivity()) > s.idleTTL
}

func (s *Service) remove(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		s.reportCount(count)
	}
	return ok
}

func (s *Service) reportCount(n int) {
	if s.metrics != nil {
		s.metrics.SetActiveSessions(n)
	}
}
