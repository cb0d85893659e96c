package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/middleware"
	"github.com/mmynk/hourbook/internal/recordstore"
	"github.com/mmynk/hourbook/pkg/api"
)

// Ensure AdminService implements api.AdminServiceHandler
var _ api.AdminServiceHandler = (*AdminService)(nil)

// AdminService implements the Connect AdminService. Every procedure except
// Login must be mounted behind middleware.RequireAdmin.
type AdminService struct {
	store      *recordstore.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store *recordstore.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:      store,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// log returns the service logger tagged with the caller's admin session and
// request IDs.
func (s *AdminService) log(ctx context.Context) *slog.Logger {
	return s.logger.With(
		"session_id", middleware.GetSessionID(ctx),
		"request_id", middleware.GetRequestID(ctx),
	)
}

// Login exchanges the admin password for a short-lived token.
func (s *AdminService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.log(ctx).Info("Login request")

	if err := s.store.VerifyPassword(ctx, req.Msg.Password); err != nil {
		s.log(ctx).Warn("Login failed", "error", err)
		return nil, toConnectError(err)
	}

	token, expires, err := s.jwtManager.Generate(auth.RoleAdmin)
	if err != nil {
		s.log(ctx).Error("Failed to generate token", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: expires.Unix(),
	}), nil
}

// ChangePassword replaces the admin password.
func (s *AdminService) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	if err := s.store.ChangePassword(ctx, req.Msg.CurrentPassword, req.Msg.NewPassword); err != nil {
		s.log(ctx).Warn("ChangePassword failed", "error", err)
		return nil, toConnectError(err)
	}
	s.log(ctx).Info("Admin password changed")
	return connect.NewResponse(&api.ChangePasswordResponse{Message: "Password changed successfully"}), nil
}

// ListEntries returns the raw table.
func (s *AdminService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	entries, err := s.store.GetAllEntries(ctx)
	if err != nil {
		s.log(ctx).Error("ListEntries failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListEntriesResponse{Entries: toAPIEntries(entries)}), nil
}

// DeleteEntry removes rows equal to the given entry.
func (s *AdminService) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error) {
	removed, err := s.store.DeleteEntry(ctx, fromAPIEntry(req.Msg.Entry))
	if err != nil {
		s.log(ctx).Error("DeleteEntry failed", "error", err)
		return nil, toConnectError(err)
	}
	s.log(ctx).Info("DeleteEntry completed", "removed", removed)
	return connect.NewResponse(&api.DeleteEntryResponse{Removed: removed}), nil
}

// AddEntry appends a row verbatim.
func (s *AdminService) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error) {
	if err := s.store.AddEntry(ctx, fromAPIEntry(req.Msg.Entry)); err != nil {
		s.log(ctx).Error("AddEntry failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddEntryResponse{}), nil
}

// CleanEmptyEntries removes rows without activity data.
func (s *AdminService) CleanEmptyEntries(ctx context.Context, req *connect.Request[api.CleanEmptyEntriesRequest]) (*connect.Response[api.CleanEmptyEntriesResponse], error) {
	removed, err := s.store.CleanEmptyEntries(ctx)
	if err != nil {
		s.log(ctx).Error("CleanEmptyEntries failed", "error", err)
		return nil, toConnectError(err)
	}
	s.log(ctx).Info("CleanEmptyEntries completed", "removed", removed)
	return connect.NewResponse(&api.CleanEmptyEntriesResponse{
		Removed: removed,
		Message: fmt.Sprintf("Deleted %d entries because not all required fields were filled.", removed),
	}), nil
}

// ImportEntries merges a file on the server into the table.
func (s *AdminService) ImportEntries(ctx context.Context, req *connect.Request[api.ImportEntriesRequest]) (*connect.Response[api.ImportEntriesResponse], error) {
	result, err := s.store.ImportAndMerge(ctx, req.Msg.Path)
	if err != nil {
		s.log(ctx).Warn("ImportEntries failed", "path", req.Msg.Path, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ImportEntriesResponse{
		Imported: result.Imported,
		Total:    result.Total,
		Message:  result.String(),
	}), nil
}

// ExportEntries writes the table to a file on the server.
func (s *AdminService) ExportEntries(ctx context.Context, req *connect.Request[api.ExportEntriesRequest]) (*connect.Response[api.ExportEntriesResponse], error) {
	path := req.Msg.Path
	if strings.TrimSpace(path) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("export path is required"))
	}

	format := req.Msg.Format
	if format == "" {
		format = formatFromPath(path)
	}

	start := time.Now()
	var err error
	switch format {
	case api.FormatCSV:
		err = s.store.ExportCSV(ctx, path)
	case api.FormatExcel:
		err = s.store.ExportExcel(ctx, path)
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown export format %q", format))
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	s.log(ctx).Info("Export completed", "path", path, "format", format, "duration_ms", time.Since(start).Milliseconds())
	return connect.NewResponse(&api.ExportEntriesResponse{
		Message: fmt.Sprintf("Data exported to %s", path),
	}), nil
}

// ConfigureMirror enables automatic workbook mirroring.
func (s *AdminService) ConfigureMirror(ctx context.Context, req *connect.Request[api.ConfigureMirrorRequest]) (*connect.Response[api.ConfigureMirrorResponse], error) {
	if strings.TrimSpace(req.Msg.Path) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("mirror path is required"))
	}
	if err := s.store.SetupMirror(ctx, req.Msg.Path); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ConfigureMirrorResponse{
		Message: "Auto Excel update configured successfully!",
	}), nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return api.FormatExcel
	default:
		return api.FormatCSV
	}
}
