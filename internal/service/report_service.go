package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/roomledger/internal/calculator"
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/report"
	"github.com/mmynk/roomledger/internal/storage"
	"github.com/mmynk/roomledger/pkg/reportapi"
)

// ReportService implements the Connect ReportService
type ReportService struct {
	reportapi.UnimplementedReportServiceHandler
	builder *report.Builder
}

// NewReportService creates a new ReportService on top of a report builder.
func NewReportService(builder *report.Builder) *ReportService {
	return &ReportService{builder: builder}
}

// GetReport returns balances, settlements and summaries for a room.
func (s *ReportService) GetReport(ctx context.Context, req *connect.Request[reportapi.GetReportRequest]) (*connect.Response[reportapi.GetReportResponse], error) {
	slog.Info("GetReport request received",
		"room_id", req.Msg.RoomID,
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	from, to, err := parseRange(req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, toConnectError(err)
	}

	r, err := s.builder.Build(ctx, report.Request{RoomID: req.Msg.RoomID, From: from, To: to})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(ReportToAPI(r)), nil
}

// ListMonths returns the room's month totals, newest first.
func (s *ReportService) ListMonths(ctx context.Context, req *connect.Request[reportapi.ListMonthsRequest]) (*connect.Response[reportapi.ListMonthsResponse], error) {
	slog.Info("ListMonths request received", "room_id", req.Msg.RoomID)

	from, to, err := parseRange(req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, toConnectError(err)
	}

	months, currency, err := s.builder.Months(ctx, report.Request{RoomID: req.Msg.RoomID, From: from, To: to})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&reportapi.ListMonthsResponse{
		Currency: currencyToAPI(currency),
		Months:   bucketsToAPI(months),
	}), nil
}

// GetDayBreakdown returns the days of one month with per-participant totals.
func (s *ReportService) GetDayBreakdown(ctx context.Context, req *connect.Request[reportapi.GetDayBreakdownRequest]) (*connect.Response[reportapi.GetDayBreakdownResponse], error) {
	slog.Info("GetDayBreakdown request received",
		"room_id", req.Msg.RoomID,
		"year", req.Msg.Year,
		"month", req.Msg.Month,
	)

	days, participants, currency, err := s.builder.DayBreakdown(ctx, req.Msg.RoomID, req.Msg.Year, time.Month(req.Msg.Month))
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &reportapi.GetDayBreakdownResponse{
		Currency:     currencyToAPI(currency),
		Participants: make([]reportapi.Participant, len(participants)),
		Days:         bucketsToAPI(days),
	}
	for i, p := range participants {
		resp.Participants[i] = reportapi.Participant{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Kind:        string(p.Kind),
			MemberCount: p.MemberCount,
		}
	}
	return connect.NewResponse(resp), nil
}

// parseRange parses optional YYYY-MM-DD bounds.
func parseRange(fromStr, toStr string) (from, to models.Date, err error) {
	if fromStr != "" {
		if from, err = models.ParseDate(fromStr); err != nil {
			return models.Date{}, models.Date{}, err
		}
	}
	if toStr != "" {
		if to, err = models.ParseDate(toStr); err != nil {
			return models.Date{}, models.Date{}, err
		}
	}
	return from, to, nil
}

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, calculator.ErrUnknownParticipant):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrUnknownCurrency):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		slog.Error("Unexpected report error", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
