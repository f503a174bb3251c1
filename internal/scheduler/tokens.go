package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	"github.com/codr1/leagueapi/internal/metrics"
)

const (
	TokenCleanupJobName = "auth_token_cleanup"
	tokenCleanupTimeout = time.Minute
)

// TokenStore is the slice of the query layer the cleanup job needs.
type TokenStore interface {
	DeleteAuthTokensCreatedBefore(ctx context.Context, createdAt int64) (int64, error)
}

// PurgeExpiredTokens deletes tokens issued more than ttl before now.
// A zero ttl means tokens never expire and nothing is deleted.
func PurgeExpiredTokens(ctx context.Context, store TokenStore, ttl time.Duration, now time.Time) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-ttl).Unix()
	deleted, err := store.DeleteAuthTokensCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return deleted, nil
}

// RegisterTokenCleanupJob schedules PurgeExpiredTokens on cronExpr.
// Nothing is registered when ttl is zero.
func (s *Service) RegisterTokenCleanupJob(queries *dbgen.Queries, ttl time.Duration, cronExpr string) error {
	if queries == nil {
		return fmt.Errorf("token cleanup job requires queries")
	}
	jobLogger := log.With().
		Str("component", "token_cleanup_job").
		Str("job_name", TokenCleanupJobName).
		Dur("token_ttl", ttl).
		Logger()

	if ttl <= 0 {
		jobLogger.Info().Msg("Token TTL disabled, cleanup job not registered")
		return nil
	}

	_, err := s.AddJob(TokenCleanupJobName, cronExpr, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), tokenCleanupTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		deleted, err := PurgeExpiredTokens(ctx, queries, ttl, time.Now())
		if err != nil {
			return err
		}
		metrics.RecordTokensPurged(deleted)
		if deleted > 0 {
			jobLogger.Info().Int64("deleted", deleted).Msg("Expired auth tokens removed")
		}
		return nil
	})
	return err
}

// RegisterTokenCleanupJob registers the cleanup job on the singleton scheduler.
func RegisterTokenCleanupJob(queries *dbgen.Queries, ttl time.Duration, cronExpr string) error {
	svc, err := ServiceInstance()
	if err != nil {
		return err
	}
	return svc.RegisterTokenCleanupJob(queries, ttl, cronExpr)
}
