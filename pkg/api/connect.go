package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// HourbookServiceName is the fully-qualified name of the HourbookService.
	HourbookServiceName = "hourbook.v1.HourbookService"
	// AdminServiceName is the fully-qualified name of the AdminService.
	AdminServiceName = "hourbook.v1.AdminService"
)

// Procedure paths, as sent in the URL and reported by connect.Spec.
const (
	HourbookServiceListPeopleProcedure     = "/hourbook.v1.HourbookService/ListPeople"
	HourbookServiceAddPersonProcedure      = "/hourbook.v1.HourbookService/AddPerson"
	HourbookServiceAddInformationProcedure = "/hourbook.v1.HourbookService/AddInformation"
	HourbookServiceGetPersonInfoProcedure  = "/hourbook.v1.HourbookService/GetPersonInfo"
	HourbookServiceGetSummaryProcedure     = "/hourbook.v1.HourbookService/GetSummary"

	AdminServiceLoginProcedure             = "/hourbook.v1.AdminService/Login"
	AdminServiceChangePasswordProcedure    = "/hourbook.v1.AdminService/ChangePassword"
	AdminServiceListEntriesProcedure       = "/hourbook.v1.AdminService/ListEntries"
	AdminServiceDeleteEntryProcedure       = "/hourbook.v1.AdminService/DeleteEntry"
	AdminServiceAddEntryProcedure          = "/hourbook.v1.AdminService/AddEntry"
	AdminServiceCleanEmptyEntriesProcedure = "/hourbook.v1.AdminService/CleanEmptyEntries"
	AdminServiceImportEntriesProcedure     = "/hourbook.v1.AdminService/ImportEntries"
	AdminServiceExportEntriesProcedure     = "/hourbook.v1.AdminService/ExportEntries"
	AdminServiceConfigureMirrorProcedure   = "/hourbook.v1.AdminService/ConfigureMirror"
)

// HourbookServiceHandler is implemented by the server for everyday data entry.
type HourbookServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	AddInformation(context.Context, *connect.Request[AddInformationRequest]) (*connect.Response[AddInformationResponse], error)
	GetPersonInfo(context.Context, *connect.Request[GetPersonInfoRequest]) (*connect.Response[GetPersonInfoResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// AdminServiceHandler is implemented by the server for password-gated
// maintenance of the raw table.
type AdminServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error)
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
	DeleteEntry(context.Context, *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error)
	AddEntry(context.Context, *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error)
	CleanEmptyEntries(context.Context, *connect.Request[CleanEmptyEntriesRequest]) (*connect.Response[CleanEmptyEntriesResponse], error)
	ImportEntries(context.Context, *connect.Request[ImportEntriesRequest]) (*connect.Response[ImportEntriesResponse], error)
	ExportEntries(context.Context, *connect.Request[ExportEntriesRequest]) (*connect.Response[ExportEntriesResponse], error)
	ConfigureMirror(context.Context, *connect.Request[ConfigureMirrorRequest]) (*connect.Response[ConfigureMirrorResponse], error)
}

// NewHourbookServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewHourbookServiceHandler(svc HourbookServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSONHandler(opts)
	routes := map[string]http.Handler{
		HourbookServiceListPeopleProcedure:     connect.NewUnaryHandler(HourbookServiceListPeopleProcedure, svc.ListPeople, opts...),
		HourbookServiceAddPersonProcedure:      connect.NewUnaryHandler(HourbookServiceAddPersonProcedure, svc.AddPerson, opts...),
		HourbookServiceAddInformationProcedure: connect.NewUnaryHandler(HourbookServiceAddInformationProcedure, svc.AddInformation, opts...),
		HourbookServiceGetPersonInfoProcedure:  connect.NewUnaryHandler(HourbookServiceGetPersonInfoProcedure, svc.GetPersonInfo, opts...),
		HourbookServiceGetSummaryProcedure:     connect.NewUnaryHandler(HourbookServiceGetSummaryProcedure, svc.GetSummary, opts...),
	}
	return "/" + HourbookServiceName + "/", route(routes)
}

// NewAdminServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSONHandler(opts)
	routes := map[string]http.Handler{
		AdminServiceLoginProcedure:             connect.NewUnaryHandler(AdminServiceLoginProcedure, svc.Login, opts...),
		AdminServiceChangePasswordProcedure:    connect.NewUnaryHandler(AdminServiceChangePasswordProcedure, svc.ChangePassword, opts...),
		AdminServiceListEntriesProcedure:       connect.NewUnaryHandler(AdminServiceListEntriesProcedure, svc.ListEntries, opts...),
		AdminServiceDeleteEntryProcedure:       connect.NewUnaryHandler(AdminServiceDeleteEntryProcedure, svc.DeleteEntry, opts...),
		AdminServiceAddEntryProcedure:          connect.NewUnaryHandler(AdminServiceAddEntryProcedure, svc.AddEntry, opts...),
		AdminServiceCleanEmptyEntriesProcedure: connect.NewUnaryHandler(AdminServiceCleanEmptyEntriesProcedure, svc.CleanEmptyEntries, opts...),
		AdminServiceImportEntriesProcedure:     connect.NewUnaryHandler(AdminServiceImportEntriesProcedure, svc.ImportEntries, opts...),
		AdminServiceExportEntriesProcedure:     connect.NewUnaryHandler(AdminServiceExportEntriesProcedure, svc.ExportEntries, opts...),
		AdminServiceConfigureMirrorProcedure:   connect.NewUnaryHandler(AdminServiceConfigureMirrorProcedure, svc.ConfigureMirror, opts...),
	}
	return "/" + AdminServiceName + "/", route(routes)
}

// HourbookServiceClient is a client for the HourbookService.
type HourbookServiceClient interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	AddInformation(context.Context, *connect.Request[AddInformationRequest]) (*connect.Response[AddInformationResponse], error)
	GetPersonInfo(context.Context, *connect.Request[GetPersonInfoRequest]) (*connect.Response[GetPersonInfoResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// NewHourbookServiceClient constructs a client for the HourbookService
// served at baseURL (for example, http://localhost:8080).
func NewHourbookServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HourbookServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withJSONClient(opts)
	return &hourbookServiceClient{
		listPeople:     connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+HourbookServiceListPeopleProcedure, opts...),
		addPerson:      connect.NewClient[AddPersonRequest, AddPersonResponse](httpClient, baseURL+HourbookServiceAddPersonProcedure, opts...),
		addInformation: connect.NewClient[AddInformationRequest, AddInformationResponse](httpClient, baseURL+HourbookServiceAddInformationProcedure, opts...),
		getPersonInfo:  connect.NewClient[GetPersonInfoRequest, GetPersonInfoResponse](httpClient, baseURL+HourbookServiceGetPersonInfoProcedure, opts...),
		getSummary:     connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+HourbookServiceGetSummaryProcedure, opts...),
	}
}

type hourbookServiceClient struct {
	listPeople     *connect.Client[ListPeopleRequest, ListPeopleResponse]
	addPerson      *connect.Client[AddPersonRequest, AddPersonResponse]
	addInformation *connect.Client[AddInformationRequest, AddInformationResponse]
	getPersonInfo  *connect.Client[GetPersonInfoRequest, GetPersonInfoResponse]
	getSummary     *connect.Client[GetSummaryRequest, GetSummaryResponse]
}

func (c *hourbookServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *hourbookServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *hourbookServiceClient) AddInformation(ctx context.Context, req *connect.Request[AddInformationRequest]) (*connect.Response[AddInformationResponse], error) {
	return c.addInformation.CallUnary(ctx, req)
}

func (c *hourbookServiceClient) GetPersonInfo(ctx context.Context, req *connect.Request[GetPersonInfoRequest]) (*connect.Response[GetPersonInfoResponse], error) {
	return c.getPersonInfo.CallUnary(ctx, req)
}

func (c *hourbookServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// AdminServiceClient is a client for the AdminService.
type AdminServiceClient interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error)
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
	DeleteEntry(context.Context, *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error)
	AddEntry(context.Context, *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error)
	CleanEmptyEntries(context.Context, *connect.Request[CleanEmptyEntriesRequest]) (*connect.Response[CleanEmptyEntriesResponse], error)
	ImportEntries(context.Context, *connect.Request[ImportEntriesRequest]) (*connect.Response[ImportEntriesResponse], error)
	ExportEntries(context.Context, *connect.Request[ExportEntriesRequest]) (*connect.Response[ExportEntriesResponse], error)
	ConfigureMirror(context.Context, *connect.Request[ConfigureMirrorRequest]) (*connect.Response[ConfigureMirrorResponse], error)
}

// NewAdminServiceClient constructs a client for the AdminService served at
// baseURL. Admin calls other than Login need an Authorization header carrying
// the token returned by Login.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withJSONClient(opts)
	return &adminServiceClient{
		login:             connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AdminServiceLoginProcedure, opts...),
		changePassword:    connect.NewClient[ChangePasswordRequest, ChangePasswordResponse](httpClient, baseURL+AdminServiceChangePasswordProcedure, opts...),
		listEntries:       connect.NewClient[ListEntriesRequest, ListEntriesResponse](httpClient, baseURL+AdminServiceListEntriesProcedure, opts...),
		deleteEntry:       connect.NewClient[DeleteEntryRequest, DeleteEntryResponse](httpClient, baseURL+AdminServiceDeleteEntryProcedure, opts...),
		addEntry:          connect.NewClient[AddEntryRequest, AddEntryResponse](httpClient, baseURL+AdminServiceAddEntryProcedure, opts...),
		cleanEmptyEntries: connect.NewClient[CleanEmptyEntriesRequest, CleanEmptyEntriesResponse](httpClient, baseURL+AdminServiceCleanEmptyEntriesProcedure, opts...),
		importEntries:     connect.NewClient[ImportEntriesRequest, ImportEntriesResponse](httpClient, baseURL+AdminServiceImportEntriesProcedure, opts...),
		exportEntries:     connect.NewClient[ExportEntriesRequest, ExportEntriesResponse](httpClient, baseURL+AdminServiceExportEntriesProcedure, opts...),
		configureMirror:   connect.NewClient[ConfigureMirrorRequest, ConfigureMirrorResponse](httpClient, baseURL+AdminServiceConfigureMirrorProcedure, opts...),
	}
}

type adminServiceClient struct {
	login             *connect.Client[LoginRequest, LoginResponse]
	changePassword    *connect.Client[ChangePasswordRequest, ChangePasswordResponse]
	listEntries       *connect.Client[ListEntriesRequest, ListEntriesResponse]
	deleteEntry       *connect.Client[DeleteEntryRequest, DeleteEntryResponse]
	addEntry          *connect.Client[AddEntryRequest, AddEntryResponse]
	cleanEmptyEntries *connect.Client[CleanEmptyEntriesRequest, CleanEmptyEntriesResponse]
	importEntries     *connect.Client[ImportEntriesRequest, ImportEntriesResponse]
	exportEntries     *connect.Client[ExportEntriesRequest, ExportEntriesResponse]
	configureMirror   *connect.Client[ConfigureMirrorRequest, ConfigureMirrorResponse]
}

func (c *adminServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *adminServiceClient) ChangePassword(ctx context.Context, req *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error) {
	return c.changePassword.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListEntries(ctx context.Context, req *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteEntry(ctx context.Context, req *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error) {
	return c.deleteEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) AddEntry(ctx context.Context, req *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error) {
	return c.addEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) CleanEmptyEntries(ctx context.Context, req *connect.Request[CleanEmptyEntriesRequest]) (*connect.Response[CleanEmptyEntriesResponse], error) {
	return c.cleanEmptyEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) ImportEntries(ctx context.Context, req *connect.Request[ImportEntriesRequest]) (*connect.Response[ImportEntriesResponse], error) {
	return c.importEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) ExportEntries(ctx context.Context, req *connect.Request[ExportEntriesRequest]) (*connect.Response[ExportEntriesResponse], error) {
	return c.exportEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) ConfigureMirror(ctx context.Context, req *connect.Request[ConfigureMirrorRequest]) (*connect.Response[ConfigureMirrorResponse], error) {
	return c.configureMirror.CallUnary(ctx, req)
}

func withJSONHandler(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func withJSONClient(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func route(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
