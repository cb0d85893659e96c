package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/hourbook/internal/calculator"
	"github.com/mmynk/hourbook/internal/recordstore"
	"github.com/mmynk/hourbook/pkg/api"
)

// Ensure HourbookService implements api.HourbookServiceHandler
var _ api.HourbookServiceHandler = (*HourbookService)(nil)

// HourbookService implements the Connect HourbookService
type HourbookService struct {
	store *recordstore.Store
}

// NewHourbookService creates a new HourbookService over the given record store.
func NewHourbookService(store *recordstore.Store) *HourbookService {
	return &HourbookService{store: store}
}

// ListPeople returns every distinct person, sorted.
func (s *HourbookService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, toConnectError(err)
	}
	if people == nil {
		people = []string{}
	}

	slog.Info("ListPeople successful", "count", len(people))

	return connect.NewResponse(&api.ListPeopleResponse{People: people}), nil
}

// AddPerson registers a new person.
func (s *HourbookService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	slog.Info("AddPerson request received", "name", req.Msg.Name)

	if err := s.store.AddPerson(ctx, req.Msg.Name); err != nil {
		slog.Warn("AddPerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddPersonResponse{Message: "Person added successfully!"}), nil
}

// AddInformation records activity for a person.
func (s *HourbookService) AddInformation(ctx context.Context, req *connect.Request[api.AddInformationRequest]) (*connect.Response[api.AddInformationResponse], error) {
	msg := req.Msg
	slog.Info("AddInformation request received",
		"name", msg.Name,
		"event", msg.Event,
		"date", msg.Date,
	)

	if err := s.store.AddInformation(ctx, msg.Name, msg.Location, msg.Event, msg.Hours, msg.Date); err != nil {
		slog.Warn("AddInformation failed", "name", msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddInformationResponse{Message: "Information added successfully!"}), nil
}

// GetPersonInfo returns every entry for a person.
func (s *HourbookService) GetPersonInfo(ctx context.Context, req *connect.Request[api.GetPersonInfoRequest]) (*connect.Response[api.GetPersonInfoResponse], error) {
	entries, err := s.store.GetPersonInfo(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("GetPersonInfo failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetPersonInfo successful", "name", req.Msg.Name, "entries", len(entries))

	return connect.NewResponse(&api.GetPersonInfoResponse{Entries: toAPIEntries(entries)}), nil
}

// GetSummary returns per-person hour totals.
func (s *HourbookService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	totals, err := s.store.Summary(ctx)
	if err != nil {
		slog.Error("GetSummary failed", "error", err)
		return nil, toConnectError(err)
	}

	people := make([]api.PersonTotal, len(totals))
	for i, t := range totals {
		people[i] = api.PersonTotal{
			Name:      t.Name,
			Hours:     t.Hours,
			Entries:   t.Entries,
			Unparsed:  t.Unparsed,
			FirstDate: t.FirstDate,
			LastDate:  t.LastDate,
		}
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		People:     people,
		TotalHours: calculator.GrandTotal(totals),
	}), nil
}
