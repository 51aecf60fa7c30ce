package reportapi

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// ReportServiceName is the fully-qualified name of the ReportService service.
const ReportServiceName = "roomledger.v1.ReportService"

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	ReportServiceGetReportProcedure       = "/roomledger.v1.ReportService/GetReport"
	ReportServiceListMonthsProcedure      = "/roomledger.v1.ReportService/ListMonths"
	ReportServiceGetDayBreakdownProcedure = "/roomledger.v1.ReportService/GetDayBreakdown"
)

// ReportServiceClient is a client for the roomledger.v1.ReportService service.
type ReportServiceClient interface {
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
	ListMonths(context.Context, *connect.Request[ListMonthsRequest]) (*connect.Response[ListMonthsResponse], error)
	GetDayBreakdown(context.Context, *connect.Request[GetDayBreakdownRequest]) (*connect.Response[GetDayBreakdownResponse], error)
}

// NewReportServiceClient constructs a client for the
// roomledger.v1.ReportService service. The JSON codec is always applied.
//
// The URL supplied here should be the base URL for the Connect server (for
// example, http://localhost:8080).
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &reportServiceClient{
		getReport: connect.NewClient[GetReportRequest, GetReportResponse](
			httpClient,
			baseURL+ReportServiceGetReportProcedure,
			opts...,
		),
		listMonths: connect.NewClient[ListMonthsRequest, ListMonthsResponse](
			httpClient,
			baseURL+ReportServiceListMonthsProcedure,
			opts...,
		),
		getDayBreakdown: connect.NewClient[GetDayBreakdownRequest, GetDayBreakdownResponse](
			httpClient,
			baseURL+ReportServiceGetDayBreakdownProcedure,
			opts...,
		),
	}
}

type reportServiceClient struct {
	getReport       *connect.Client[GetReportRequest, GetReportResponse]
	listMonths      *connect.Client[ListMonthsRequest, ListMonthsResponse]
	getDayBreakdown *connect.Client[GetDayBreakdownRequest, GetDayBreakdownResponse]
}

func (c *reportServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

func (c *reportServiceClient) ListMonths(ctx context.Context, req *connect.Request[ListMonthsRequest]) (*connect.Response[ListMonthsResponse], error) {
	return c.listMonths.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetDayBreakdown(ctx context.Context, req *connect.Request[GetDayBreakdownRequest]) (*connect.Response[GetDayBreakdownResponse], error) {
	return c.getDayBreakdown.CallUnary(ctx, req)
}

// ReportServiceHandler is an implementation of the
// roomledger.v1.ReportService service.
type ReportServiceHandler interface {
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
	ListMonths(context.Context, *connect.Request[ListMonthsRequest]) (*connect.Response[ListMonthsResponse], error)
	GetDayBreakdown(context.Context, *connect.Request[GetDayBreakdownRequest]) (*connect.Response[GetDayBreakdownResponse], error)
}

// NewReportServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	getReportHandler := connect.NewUnaryHandler(
		ReportServiceGetReportProcedure,
		svc.GetReport,
		opts...,
	)
	listMonthsHandler := connect.NewUnaryHandler(
		ReportServiceListMonthsProcedure,
		svc.ListMonths,
		opts...,
	)
	getDayBreakdownHandler := connect.NewUnaryHandler(
		ReportServiceGetDayBreakdownProcedure,
		svc.GetDayBreakdown,
		opts...,
	)
	return "/roomledger.v1.ReportService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceGetReportProcedure:
			getReportHandler.ServeHTTP(w, r)
		case ReportServiceListMonthsProcedure:
			listMonthsHandler.ServeHTTP(w, r)
		case ReportServiceGetDayBreakdownProcedure:
			getDayBreakdownHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedReportServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReportServiceHandler struct{}

func (UnimplementedReportServiceHandler) GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("roomledger.v1.ReportService.GetReport is not implemented"))
}

func (UnimplementedReportServiceHandler) ListMonths(context.Context, *connect.Request[ListMonthsRequest]) (*connect.Response[ListMonthsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("roomledger.v1.ReportService.ListMonths is not implemented"))
}

func (UnimplementedReportServiceHandler) GetDayBreakdown(context.Context, *connect.Request[GetDayBreakdownRequest]) (*connect.Response[GetDayBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("roomledger.v1.ReportService.GetDayBreakdown is not implemented"))
}
