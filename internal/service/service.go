package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/cache"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/config"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// insightCacheTTL keeps ranked insights around for a day; profiles shift
// slowly enough that anything fresher is wasted computation.
const insightCacheTTL = 24 * time.Hour

// Store provides the persistence operations the service needs
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	CurrentMonthSummary(ctx context.Context, userID string, now time.Time) (*models.MonthSummary, error)
	ListActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

// InsightEngine produces profiles and ranked insights from a user's records
type InsightEngine interface {
	Analyze(ctx context.Context, userID string) (*models.FinancialProfile, error)
	GenerateInsights(ctx context.Context, userID string, snap models.Snapshot) ([]models.Insight, error)
}

// RateSource supplies the current base interest rate
type RateSource interface {
	CurrentSelicRate() (float64, error)
}

// DigestSender delivers insight digests to users
type DigestSender interface {
	SendInsightDigest(to, name string, insights []models.Insight) error
}

// Service handles business logic
type Service struct {
	store  Store
	engine InsightEngine
	cache  cache.Cache
	rates  RateSource
	mailer DigestSender
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service. rates and mailer may be nil; the
// corresponding features degrade gracefully.
func NewService(store Store, engine InsightEngine, c cache.Cache, rates RateSource, mailer DigestSender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		engine: engine,
		cache:  c,
		rates:  rates,
		mailer: mailer,
		log:    log,
		config: cfg,
		now:    time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetProfile computes the user's financial profile
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.FinancialProfile, error) {
	return s.engine.Analyze(ctx, userID)
}

// GetInsights returns the user's ranked insights, serving a day-old cached
// copy when one exists
func (s *Service) GetInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	key := fmt.Sprintf("insights:%s:%s", userID, s.now().Format("2006-01-02"))
	if cached, ok := s.cache.Get(ctx, key); ok {
		var insights []models.Insight
		if err := json.Unmarshal([]byte(cached), &insights); err == nil {
			return insights, nil
		}
		s.log.Warnf("Discarding unreadable cached insights for user %s", userID)
	}

	insights, err := s.engine.GenerateInsights(ctx, userID, s.buildSnapshot(ctx, userID))
	if err != nil {
		return nil, err
	}

	// Caching is best-effort; a cache outage must not fail the request.
	if payload, err := json.Marshal(insights); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), insightCacheTTL); err != nil {
			s.log.Warnf("Failed to cache insights for user %s: %v", userID, err)
		}
	}
	return insights, nil
}

// buildSnapshot assembles the current-period figures handed to generators.
// Every part is optional; a partial snapshot is still a valid snapshot.
func (s *Service) buildSnapshot(ctx context.Context, userID string) models.Snapshot {
	snap := models.Snapshot{}

	if summary, err := s.store.CurrentMonthSummary(ctx, userID, s.now()); err == nil {
		snap["current_month_revenue"] = summary.Revenue
		snap["current_month_expense"] = summary.Expense
		snap["current_month_balance"] = summary.Balance
	} else {
		s.log.Warnf("Failed to summarize current month for user %s: %v", userID, err)
	}

	if s.rates != nil {
		if rate, err := s.rates.CurrentSelicRate(); err == nil {
			snap["selic_rate_pct"] = rate
		} else {
			s.log.Warnf("Failed to fetch Selic rate: %v", err)
		}
	}
	return snap
}

// WarmInsightCache precomputes insights for users active in the last week.
// Run daily so morning dashboard loads hit the cache.
func (s *Service) WarmInsightCache(ctx context.Context) {
	userIDs, err := s.store.ListActiveUserIDs(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		s.log.Errorf("Cache warm-up aborted: %v", err)
		return
	}
	warmed := 0
	for _, id := range userIDs {
		if _, err := s.GetInsights(ctx, id); err != nil {
			s.log.Warnf("Cache warm-up failed for user %s: %v", id, err)
			continue
		}
		warmed++
	}
	s.log.Infof("Insight cache warmed for %d/%d active users", warmed, len(userIDs))
}

// SendWeeklyDigests emails each recently active user their top insights
func (s *Service) SendWeeklyDigests(ctx context.Context) {
	if s.mailer == nil {
		return
	}
	userIDs, err := s.store.ListActiveUserIDs(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		s.log.Errorf("Digest run aborted: %v", err)
		return
	}
	sent := 0
	for _, id := range userIDs {
		user, err := s.store.GetUser(ctx, id)
		if err != nil {
			s.log.Warnf("Digest skipped for user %s: %v", id, err)
			continue
		}
		insights, err := s.GetInsights(ctx, id)
		if err != nil {
			s.log.Warnf("Digest skipped for user %s: %v", id, err)
			continue
		}
		if err := s.mailer.SendInsightDigest(user.Email, user.Name, insights); err != nil {
			continue
		}
		sent++
	}
	s.log.Infof("Weekly digests sent to %d/%d active users", sent, len(userIDs))
}
