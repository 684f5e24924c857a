// Package app wires the process-wide pieces every staffdesk command needs:
// configuration, the logger, the shell, the API client, the audit store and
// the employee service.
package app

import (
	"context"
	"fmt"
	"os"

	"nathanbeddoewebdev/staffdesk/internal/auditlog"
	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/httpapi"
	"nathanbeddoewebdev/staffdesk/internal/logging"
	"nathanbeddoewebdev/staffdesk/internal/services/auth"
	"nathanbeddoewebdev/staffdesk/internal/shell"

	"go.uber.org/zap"
)

var (
	storeOverride    auth.Store
	cacheDirOverride string
)

// SetTokenStore replaces the keychain store. Intended for testing.
func SetTokenStore(s auth.Store) { storeOverride = s }

// SetCacheDir overrides the query cache directory. Intended for testing.
func SetCacheDir(dir string) { cacheDirOverride = dir }

// Reset clears all overrides. Intended for testing.
func Reset() {
	storeOverride = nil
	cacheDirOverride = ""
}

// TokenStore returns the auth store commands should use.
func TokenStore() auth.Store {
	if storeOverride != nil {
		return storeOverride
	}
	return auth.DefaultStore()
}

// Session is everything one command invocation shares.
type Session struct {
	Config  *config.Config
	Runtime config.Runtime
	Shell   *shell.Shell
	Service *employee.Service

	// Audit is nil when the local database could not be opened.
	Audit *auditlog.SQLiteRepository
}

// Open loads configuration and builds a Session. The caller must Close it.
func Open() (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	rt := config.Resolve(cfg)
	logger := logging.NewOrNop(rt.LogLevel)

	sh := shell.New(shell.Options{
		Store:    config.NewThemeStore(),
		CacheDir: cacheDirOverride,
		Logger:   logger,
	})

	token, err := auth.TokenOrEmpty(TokenStore(), auth.DefaultAccount)
	if err != nil {
		logger.Warn("keychain lookup failed", zap.Error(err))
	}
	client := httpapi.New(rt.APIURL, httpapi.WithToken(token), httpapi.WithLogger(logger))

	opts := []employee.Option{
		employee.WithCache(sh.Cache()),
		employee.WithLogger(logger),
	}
	audit, err := auditlog.Open()
	if err != nil {
		logger.Warn("audit log unavailable", zap.Error(err))
	} else {
		opts = append(opts, employee.WithAudit(audit))
	}

	logger.Debug("session opened", zap.String("api_url", rt.APIURL), zap.Bool("token", token != ""))

	return &Session{
		Config:  cfg,
		Runtime: rt,
		Shell:   sh,
		Service: employee.NewService(client, opts...),
		Audit:   audit,
	}, nil
}

// Context attaches audit metadata for source to ctx.
func Context(ctx context.Context, source string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return auditlog.WithMetadata(ctx, auditlog.Metadata{Source: source, Actor: actor()})
}

func actor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}

// Close releases the audit store and flushes the logger.
func (s *Session) Close() {
	if s.Audit != nil {
		_ = s.Audit.Close()
	}
	s.Shell.Close()
}
